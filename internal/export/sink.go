package export

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const sheetName = "Responses"

var baseHeader = []string{"Timestamp", "Survey", "Chat ID", "Username", "Full name", "Contact", "Files"}

// Sink appends completed responses to an xlsx workbook and a jsonl audit
// log. The audit line is written first so a workbook failure never loses
// the record.
type Sink struct {
	logger       *zap.Logger
	workbookPath string
	auditPath    string

	mu sync.Mutex
}

func NewSink(logger *zap.Logger, workbookPath, auditPath string) *Sink {
	return &Sink{
		logger:       logger,
		workbookPath: workbookPath,
		auditPath:    auditPath,
	}
}

func (s *Sink) Append(row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.appendAudit(row); err != nil {
		return fmt.Errorf("append audit line: %w", err)
	}

	if err := s.appendWorkbook(row); err != nil {
		return fmt.Errorf("append workbook row: %w", err)
	}

	s.logger.Info("Exported response",
		zap.String("survey", row.SurveyTitle),
		zap.Int64("chat_id", row.ChatID))

	return nil
}

func (s *Sink) appendAudit(row Row) error {
	f, err := os.OpenFile(s.auditPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(row)
}

func (s *Sink) appendWorkbook(row Row) error {
	wb, fresh, err := s.openWorkbook()
	if err != nil {
		return err
	}
	defer wb.Close()

	if fresh {
		header := make([]interface{}, 0, len(baseHeader)+len(row.Answers))
		for _, h := range baseHeader {
			header = append(header, h)
		}
		for _, qa := range row.Answers {
			header = append(header, qa.Prompt)
		}
		if err := wb.SetSheetRow(sheetName, "A1", &header); err != nil {
			return err
		}
	}

	rows, err := wb.GetRows(sheetName)
	if err != nil {
		return err
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}

	values := []interface{}{
		row.Timestamp.Format(time.RFC3339),
		row.SurveyTitle,
		row.ChatID,
		row.Username,
		row.FullName,
		row.Contact,
		row.Files,
	}
	for _, qa := range row.Answers {
		values = append(values, qa.Value)
	}
	if err := wb.SetSheetRow(sheetName, cell, &values); err != nil {
		return err
	}

	return wb.SaveAs(s.workbookPath)
}

func (s *Sink) openWorkbook() (*excelize.File, bool, error) {
	wb, err := excelize.OpenFile(s.workbookPath)
	if err == nil {
		return wb, false, nil
	}
	if !os.IsNotExist(err) {
		return nil, false, err
	}

	wb = excelize.NewFile()
	index, err := wb.NewSheet(sheetName)
	if err != nil {
		return nil, false, err
	}
	wb.SetActiveSheet(index)
	if err := wb.DeleteSheet("Sheet1"); err != nil {
		return nil, false, err
	}

	return wb, true, nil
}
