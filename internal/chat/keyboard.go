package chat

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sdiki1/assistant-add-bot/internal"
	"github.com/sdiki1/assistant-add-bot/internal/survey/question"

	"github.com/google/uuid"
)

const (
	selectedPrefix = "✅ "

	doneButtonLabel      = "Done"
	doneFilesButtonLabel = "Finish upload"
	shareContactLabel    = "Share contact"
	manualEntryLabel     = "Type it manually"
	startAssessmentLabel = "Find out your assistant type"
)

// startAssessmentCallback begins the scored assessment flow from a plain
// inline button, outside any question.
const startAssessmentCallback = "start_assessment"

type Button struct {
	Text           string `json:"text"`
	CallbackData   string `json:"callback_data,omitempty"`
	RequestContact bool   `json:"request_contact,omitempty"`
}

type Keyboard struct {
	Inline [][]Button `json:"inline_keyboard"`
}

func optionCallback(questionID, optionID uuid.UUID) string {
	return fmt.Sprintf("q%s:opt%s", questionID, optionID)
}

func doneCallback(questionID uuid.UUID) string {
	return fmt.Sprintf("q%s:done", questionID)
}

func doneFilesCallback(questionID uuid.UUID) string {
	return fmt.Sprintf("q%s:done_files", questionID)
}

func manualEntryCallback(questionID uuid.UUID) string {
	return fmt.Sprintf("q%s:manual", questionID)
}

// Callback is a parsed button press.
type Callback struct {
	QuestionID uuid.UUID
	OptionID   uuid.UUID

	HasOption       bool
	Done            bool
	DoneFiles       bool
	ManualEntry     bool
	StartAssessment bool
}

// ParseCallback decodes button data of the forms "q<qid>:opt<oid>",
// "q<qid>:done", "q<qid>:done_files", "q<qid>:manual" and the standalone
// start-assessment marker.
func ParseCallback(data string) (Callback, error) {
	if data == startAssessmentCallback {
		return Callback{StartAssessment: true}, nil
	}

	rest, ok := strings.CutPrefix(data, "q")
	if !ok {
		return Callback{}, fmt.Errorf("%w: callback data %q", internal.ErrInvalidRequestBody, data)
	}

	qidRaw, action, ok := strings.Cut(rest, ":")
	if !ok {
		return Callback{}, fmt.Errorf("%w: callback data %q", internal.ErrInvalidRequestBody, data)
	}

	questionID, err := uuid.Parse(qidRaw)
	if err != nil {
		return Callback{}, fmt.Errorf("%w: question id in callback data %q", internal.ErrInvalidRequestBody, data)
	}

	cb := Callback{QuestionID: questionID}
	switch {
	case action == "done":
		cb.Done = true
	case action == "done_files":
		cb.DoneFiles = true
	case action == "manual":
		cb.ManualEntry = true
	case strings.HasPrefix(action, "opt"):
		optionID, err := uuid.Parse(strings.TrimPrefix(action, "opt"))
		if err != nil {
			return Callback{}, fmt.Errorf("%w: option id in callback data %q", internal.ErrInvalidRequestBody, data)
		}
		cb.OptionID = optionID
		cb.HasOption = true
	default:
		return Callback{}, fmt.Errorf("%w: callback action %q", internal.ErrInvalidRequestBody, action)
	}

	return cb, nil
}

// singleChoiceKeyboard renders one button per option.
func singleChoiceKeyboard(ask question.Askable) *Keyboard {
	q := ask.Question()
	var rows [][]Button
	for _, opt := range ask.Options() {
		rows = append(rows, []Button{{
			Text:         opt.Label,
			CallbackData: optionCallback(q.ID, opt.ID),
		}})
	}
	return &Keyboard{Inline: rows}
}

// multiChoiceKeyboard marks the selected options and closes with a done
// button. Re-rendered in place after every toggle.
func multiChoiceKeyboard(ask question.Askable, selected []uuid.UUID) *Keyboard {
	q := ask.Question()
	var rows [][]Button
	for _, opt := range ask.Options() {
		label := opt.Label
		if slices.Contains(selected, opt.ID) {
			label = selectedPrefix + label
		}
		rows = append(rows, []Button{{
			Text:         label,
			CallbackData: optionCallback(q.ID, opt.ID),
		}})
	}
	rows = append(rows, []Button{{
		Text:         doneButtonLabel,
		CallbackData: doneCallback(q.ID),
	}})
	return &Keyboard{Inline: rows}
}

func fileKeyboard(questionID uuid.UUID) *Keyboard {
	return &Keyboard{Inline: [][]Button{{{
		Text:         doneFilesButtonLabel,
		CallbackData: doneFilesCallback(questionID),
	}}}}
}

// assessmentOfferKeyboard invites the user into the scored assessment,
// shown with the intake completion message.
func assessmentOfferKeyboard() *Keyboard {
	return &Keyboard{Inline: [][]Button{{{
		Text:         startAssessmentLabel,
		CallbackData: startAssessmentCallback,
	}}}}
}

func contactKeyboard(questionID uuid.UUID) *Keyboard {
	return &Keyboard{Inline: [][]Button{
		{{Text: shareContactLabel, RequestContact: true}},
		{{Text: manualEntryLabel, CallbackData: manualEntryCallback(questionID)}},
	}}
}

// keyboardFor picks the keyboard for a freshly sent question. Text questions
// have none.
func keyboardFor(ask question.Askable, selected []uuid.UUID) *Keyboard {
	q := ask.Question()
	switch q.Kind {
	case question.QuestionKindSingleChoice:
		return singleChoiceKeyboard(ask)
	case question.QuestionKindMultiChoice:
		return multiChoiceKeyboard(ask, selected)
	case question.QuestionKindFile:
		return fileKeyboard(q.ID)
	case question.QuestionKindContact:
		return contactKeyboard(q.ID)
	default:
		return nil
	}
}
