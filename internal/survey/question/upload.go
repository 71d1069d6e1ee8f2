package question

import (
	"fmt"

	"github.com/sdiki1/assistant-add-bot/internal"
)

// Upload collects one or more attachments. The conversation stays on the
// question until the user presses its done button, so Validate is only
// consulted at that point.
type Upload struct {
	question Question
}

func NewUpload(q Question) Upload {
	return Upload{question: q}
}

func (u Upload) Question() Question {
	return u.question
}

func (u Upload) Options() []Option {
	return nil
}

func (u Upload) Validate(in Input) error {
	if in.Text != "" || len(in.OptionIDs) > 0 {
		return fmt.Errorf("%w: file question %s accepts only attachments", internal.ErrWrongAnswerKind, u.question.Code)
	}
	if u.question.Required && len(in.FileIDs) == 0 {
		return fmt.Errorf("%w: file question %s", internal.ErrNoFilesUploaded, u.question.Code)
	}
	return nil
}

// DisplayValue is not meaningful for uploads, the caller renders file
// metadata itself.
func (u Upload) DisplayValue(in Input) (string, error) {
	return "", nil
}
