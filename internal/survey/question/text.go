package question

import (
	"fmt"
	"strings"

	"github.com/sdiki1/assistant-add-bot/internal"
)

type Text struct {
	question Question
}

func NewText(q Question) Text {
	return Text{question: q}
}

func (t Text) Question() Question {
	return t.question
}

func (t Text) Options() []Option {
	return nil
}

func (t Text) Validate(in Input) error {
	if len(in.OptionIDs) > 0 || len(in.FileIDs) > 0 {
		return fmt.Errorf("%w: text question %s accepts only a typed message", internal.ErrWrongAnswerKind, t.question.Code)
	}
	if t.question.Required && strings.TrimSpace(in.Text) == "" {
		return fmt.Errorf("%w: text question %s requires a non-empty message", internal.ErrWrongAnswerKind, t.question.Code)
	}
	return nil
}

func (t Text) DisplayValue(in Input) (string, error) {
	return in.Text, nil
}
