package question

import (
	"fmt"
	"strings"

	"github.com/sdiki1/assistant-add-bot/internal"
)

// Contact is answered either by the chat platform's share-contact action or
// by typing a phone number. Both arrive as text by the time they reach here.
type Contact struct {
	question Question
}

func NewContact(q Question) Contact {
	return Contact{question: q}
}

func (c Contact) Question() Question {
	return c.question
}

func (c Contact) Options() []Option {
	return nil
}

func (c Contact) Validate(in Input) error {
	if len(in.OptionIDs) > 0 || len(in.FileIDs) > 0 {
		return fmt.Errorf("%w: contact question %s accepts only a phone number", internal.ErrWrongAnswerKind, c.question.Code)
	}
	if strings.TrimSpace(in.Text) == "" {
		return fmt.Errorf("%w: contact question %s requires a phone number", internal.ErrWrongAnswerKind, c.question.Code)
	}
	return nil
}

func (c Contact) DisplayValue(in Input) (string, error) {
	return in.Text, nil
}
