package export

import "time"

// QA is one prompt/answer pair, kept as a slice on Row so the workbook
// columns stay in question order.
type QA struct {
	Prompt string `json:"prompt"`
	Value  string `json:"value"`
}

// Row is the flat record appended to the workbook and the audit log for
// every completed response.
type Row struct {
	Timestamp   time.Time `json:"timestamp"`
	SurveyTitle string    `json:"survey_title"`
	ChatID      int64     `json:"chat_id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	Contact     string    `json:"contact"`
	Files       string    `json:"files"`
	Answers     []QA      `json:"answers"`
}
