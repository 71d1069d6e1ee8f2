package question

import (
	"fmt"
	"strings"

	"github.com/sdiki1/assistant-add-bot/internal"

	"github.com/google/uuid"
)

type SingleChoice struct {
	question Question
	options  []Option
}

func NewSingleChoice(q Question, options []Option) SingleChoice {
	return SingleChoice{question: q, options: options}
}

func (s SingleChoice) Question() Question {
	return s.question
}

func (s SingleChoice) Options() []Option {
	return s.options
}

func (s SingleChoice) Validate(in Input) error {
	if in.Text != "" || len(in.FileIDs) > 0 {
		return fmt.Errorf("%w: choice question %s accepts only option selections", internal.ErrWrongAnswerKind, s.question.Code)
	}
	if len(in.OptionIDs) != 1 {
		return fmt.Errorf("%w: single choice question %s takes exactly one option", internal.ErrWrongAnswerKind, s.question.Code)
	}
	return checkOptionIDs(s.options, in.OptionIDs, s.question.Code)
}

func (s SingleChoice) DisplayValue(in Input) (string, error) {
	labels := resolveLabels(s.options, in.OptionIDs)
	if len(labels) == 0 {
		return "", nil
	}
	return labels[0], nil
}

type MultiChoice struct {
	question Question
	options  []Option
}

func NewMultiChoice(q Question, options []Option) MultiChoice {
	return MultiChoice{question: q, options: options}
}

func (m MultiChoice) Question() Question {
	return m.question
}

func (m MultiChoice) Options() []Option {
	return m.options
}

func (m MultiChoice) Validate(in Input) error {
	if in.Text != "" || len(in.FileIDs) > 0 {
		return fmt.Errorf("%w: choice question %s accepts only option selections", internal.ErrWrongAnswerKind, m.question.Code)
	}
	if m.question.Required && len(in.OptionIDs) == 0 {
		return fmt.Errorf("%w: multi choice question %s requires at least one option", internal.ErrWrongAnswerKind, m.question.Code)
	}
	return checkOptionIDs(m.options, in.OptionIDs, m.question.Code)
}

// DisplayValue renders each selected option as a bullet line, in the order
// the ids are stored.
func (m MultiChoice) DisplayValue(in Input) (string, error) {
	labels := resolveLabels(m.options, in.OptionIDs)
	lines := make([]string, 0, len(labels))
	for _, label := range labels {
		lines = append(lines, "• "+label)
	}
	return strings.Join(lines, "\n"), nil
}

func checkOptionIDs(options []Option, ids []uuid.UUID, code string) error {
	for _, id := range ids {
		if findOption(options, id) == nil {
			return fmt.Errorf("%w: option %s does not belong to question %s", internal.ErrOptionNotFound, id, code)
		}
	}
	return nil
}

// resolveLabels keeps transcripts renderable even if an option row was
// deleted after the answer was stored: unknown ids fall back to the id text.
func resolveLabels(options []Option, ids []uuid.UUID) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if opt := findOption(options, id); opt != nil {
			labels = append(labels, opt.Label)
			continue
		}
		labels = append(labels, id.String())
	}
	return labels
}

func findOption(options []Option, id uuid.UUID) *Option {
	for i := range options {
		if options[i].ID == id {
			return &options[i]
		}
	}
	return nil
}
