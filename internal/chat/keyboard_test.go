package chat

import (
	"fmt"
	"testing"

	"github.com/sdiki1/assistant-add-bot/internal"
	"github.com/sdiki1/assistant-add-bot/internal/survey/question"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	t.Parallel()

	questionID := uuid.New()
	optionID := uuid.New()

	t.Run("option press round-trips", func(t *testing.T) {
		t.Parallel()

		cb, err := ParseCallback(optionCallback(questionID, optionID))
		require.NoError(t, err)
		require.True(t, cb.HasOption)
		require.Equal(t, questionID, cb.QuestionID)
		require.Equal(t, optionID, cb.OptionID)
	})

	t.Run("done round-trips", func(t *testing.T) {
		t.Parallel()

		cb, err := ParseCallback(doneCallback(questionID))
		require.NoError(t, err)
		require.True(t, cb.Done)
		require.Equal(t, questionID, cb.QuestionID)
	})

	t.Run("done files round-trips", func(t *testing.T) {
		t.Parallel()

		cb, err := ParseCallback(doneFilesCallback(questionID))
		require.NoError(t, err)
		require.True(t, cb.DoneFiles)
	})

	t.Run("start assessment marker", func(t *testing.T) {
		t.Parallel()

		cb, err := ParseCallback(startAssessmentCallback)
		require.NoError(t, err)
		require.True(t, cb.StartAssessment)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		t.Parallel()

		for _, data := range []string{"", "nope", "q123:opt456", fmt.Sprintf("q%s:frobnicate", questionID)} {
			_, err := ParseCallback(data)
			require.ErrorIs(t, err, internal.ErrInvalidRequestBody, "data %q", data)
		}
	})
}

func TestMultiChoiceKeyboard(t *testing.T) {
	t.Parallel()

	q := question.Question{ID: uuid.New(), Kind: question.QuestionKindMultiChoice}
	remote := question.Option{ID: uuid.New(), QuestionID: q.ID, Label: "Remote"}
	hybrid := question.Option{ID: uuid.New(), QuestionID: q.ID, Label: "Hybrid"}
	ask := question.NewMultiChoice(q, []question.Option{remote, hybrid})

	kb := multiChoiceKeyboard(ask, []uuid.UUID{hybrid.ID})
	require.Len(t, kb.Inline, 3)

	require.Equal(t, "Remote", kb.Inline[0][0].Text)
	require.Equal(t, selectedPrefix+"Hybrid", kb.Inline[1][0].Text)
	require.Equal(t, doneButtonLabel, kb.Inline[2][0].Text)
	require.Equal(t, doneCallback(q.ID), kb.Inline[2][0].CallbackData)
}

func TestAssessmentOfferKeyboard(t *testing.T) {
	t.Parallel()

	kb := assessmentOfferKeyboard()
	require.Len(t, kb.Inline, 1)
	require.Equal(t, startAssessmentLabel, kb.Inline[0][0].Text)

	parsed, err := ParseCallback(kb.Inline[0][0].CallbackData)
	require.NoError(t, err)
	require.True(t, parsed.StartAssessment)
}

func TestKeyboardFor(t *testing.T) {
	t.Parallel()

	textQ := question.Question{ID: uuid.New(), Kind: question.QuestionKindText}
	require.Nil(t, keyboardFor(question.NewText(textQ), nil))

	fileQ := question.Question{ID: uuid.New(), Kind: question.QuestionKindFile}
	kb := keyboardFor(question.NewUpload(fileQ), nil)
	require.Len(t, kb.Inline, 1)
	require.Equal(t, doneFilesCallback(fileQ.ID), kb.Inline[0][0].CallbackData)

	contactQ := question.Question{ID: uuid.New(), Kind: question.QuestionKindContact}
	kb = keyboardFor(question.NewContact(contactQ), nil)
	require.True(t, kb.Inline[0][0].RequestContact)
	require.Equal(t, manualEntryCallback(contactQ.ID), kb.Inline[1][0].CallbackData)
}
