package question

import (
	"fmt"

	"github.com/sdiki1/assistant-add-bot/internal"

	"github.com/google/uuid"
)

// Input carries a candidate or stored answer payload. Only the field
// matching the question kind is consulted.
type Input struct {
	Text      string
	OptionIDs []uuid.UUID
	FileIDs   []uuid.UUID
}

type Askable interface {
	Question() Question

	// Options returns the selectable options, empty for non-choice kinds.
	Options() []Option

	// Validate checks the payload against the question kind before it is stored.
	Validate(in Input) error

	// DisplayValue renders a stored payload as a human-readable line for
	// transcripts. File payloads are rendered by the caller, which owns the
	// file metadata.
	DisplayValue(in Input) (string, error)
}

// NewAskable wraps a question row in its kind-specific behavior. Every value
// of QuestionKind must be covered here; an unhandled kind is a data error,
// not a fallback case.
func NewAskable(q Question, options []Option) (Askable, error) {
	switch q.Kind {
	case QuestionKindText:
		return NewText(q), nil
	case QuestionKindContact:
		return NewContact(q), nil
	case QuestionKindSingleChoice:
		return NewSingleChoice(q, options), nil
	case QuestionKindMultiChoice:
		return NewMultiChoice(q, options), nil
	case QuestionKindFile:
		return NewUpload(q), nil
	default:
		return nil, fmt.Errorf("%w: %q", internal.ErrUnknownQuestionKind, q.Kind)
	}
}
