package result

import (
	"context"
	"testing"
	"time"

	"github.com/sdiki1/assistant-add-bot/internal/file"
	"github.com/sdiki1/assistant-add-bot/internal/survey"
	"github.com/sdiki1/assistant-add-bot/internal/survey/answer"
	"github.com/sdiki1/assistant-add-bot/internal/survey/question"
	"github.com/sdiki1/assistant-add-bot/internal/survey/response"
	"github.com/sdiki1/assistant-add-bot/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

type projectorFixture struct {
	projector *Projector
	resp      response.Response

	nameQuestion   question.Question
	formatQuestion question.Question
	fileQuestion   question.Question
	remote         question.Option
	hybrid         question.Option
}

func newProjectorFixture(t *testing.T) *projectorFixture {
	t.Helper()

	surveyID := uuid.New()
	userID := uuid.New()
	resp := response.Response{
		ID:          uuid.New(),
		UserID:      userID,
		SurveyID:    surveyID,
		Status:      response.ResponseStatusCompleted,
		CompletedAt: pgtype.Timestamptz{Time: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), Valid: true},
	}

	nameQ := question.Question{ID: uuid.New(), SurveyID: surveyID, Code: "fio", Prompt: "Your full name", Kind: question.QuestionKindText, Order: 1}
	formatQ := question.Question{ID: uuid.New(), SurveyID: surveyID, Code: "format", Prompt: "Preferred format", Kind: question.QuestionKindMultiChoice, Order: 2}
	fileQ := question.Question{ID: uuid.New(), SurveyID: surveyID, Code: "files", Prompt: "Attach documents", Kind: question.QuestionKindFile, Order: 3}

	remote := question.Option{ID: uuid.New(), QuestionID: formatQ.ID, Label: "Remote", Value: "A", Order: 1}
	hybrid := question.Option{ID: uuid.New(), QuestionID: formatQ.ID, Label: "Hybrid", Value: "B", Order: 2}

	askables := []question.Askable{
		question.NewText(nameQ),
		question.NewMultiChoice(formatQ, []question.Option{remote, hybrid}),
		question.NewUpload(fileQ),
	}

	ss := &mockSurveyStore{}
	qs := &mockQuestionStore{}
	as := &mockAnswerStore{}
	fs := &mockFileStore{}
	us := &mockUserStore{}

	ss.On("GetByID", mock.Anything, surveyID).
		Return(survey.Survey{ID: surveyID, Code: "assistant_v1", Title: "Assistant intake"}, nil)
	us.On("GetByID", mock.Anything, userID).
		Return(user.User{
			ID:       userID,
			ChatID:   777,
			Username: pgtype.Text{String: "ivan", Valid: true},
		}, nil)
	qs.On("List", mock.Anything, surveyID).Return(askables, nil)
	as.On("ListByResponseID", mock.Anything, resp.ID).Return([]answer.Answer{
		{ResponseID: resp.ID, QuestionID: nameQ.ID, TextValue: pgtype.Text{String: "Ivan Petrov", Valid: true}},
		{ResponseID: resp.ID, QuestionID: formatQ.ID, OptionIds: []uuid.UUID{remote.ID, hybrid.ID}},
		// file question left unanswered
	}, nil)

	return &projectorFixture{
		projector: &Projector{
			logger:        zap.NewNop(),
			surveyStore:   ss,
			questionStore: qs,
			answerStore:   as,
			fileStore:     fs,
			userStore:     us,
			policy:        bluemonday.StrictPolicy(),
			tracer:        noop.NewTracerProvider().Tracer("test"),
		},
		resp:           resp,
		nameQuestion:   nameQ,
		formatQuestion: formatQ,
		fileQuestion:   fileQ,
		remote:         remote,
		hybrid:         hybrid,
	}
}

func TestProjector_Transcript(t *testing.T) {
	t.Parallel()

	f := newProjectorFixture(t)

	lines, err := f.projector.Transcript(context.Background(), f.resp)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	require.Equal(t, "Your full name", lines[0].Prompt)
	require.Equal(t, "Ivan Petrov", lines[0].Rendered)

	require.Equal(t, "• Remote\n• Hybrid", lines[1].Rendered)

	// Unanswered questions render as the placeholder dash.
	require.Equal(t, "—", lines[2].Rendered)
}

func TestProjector_Transcript_SanitizesText(t *testing.T) {
	t.Parallel()

	f := newProjectorFixture(t)

	surveyID := uuid.New()
	q := question.Question{ID: uuid.New(), SurveyID: surveyID, Code: "about", Prompt: "About", Kind: question.QuestionKindText, Order: 1}

	qs := &mockQuestionStore{}
	as := &mockAnswerStore{}
	qs.On("List", mock.Anything, surveyID).Return([]question.Askable{question.NewText(q)}, nil)
	as.On("ListByResponseID", mock.Anything, mock.Anything).Return([]answer.Answer{
		{QuestionID: q.ID, TextValue: pgtype.Text{String: `<script>alert(1)</script>hello`, Valid: true}},
	}, nil)
	f.projector.questionStore = qs
	f.projector.answerStore = as

	lines, err := f.projector.Transcript(context.Background(), response.Response{ID: uuid.New(), SurveyID: surveyID})
	require.NoError(t, err)
	require.Equal(t, "hello", lines[0].Rendered)
}

func TestProjector_ExportRow(t *testing.T) {
	t.Parallel()

	f := newProjectorFixture(t)

	row, err := f.projector.ExportRow(context.Background(), f.resp)
	require.NoError(t, err)

	require.Equal(t, "Assistant intake", row.SurveyTitle)
	require.Equal(t, int64(777), row.ChatID)
	require.Equal(t, "ivan", row.Username)
	require.Equal(t, "Ivan Petrov", row.FullName)
	require.Equal(t, f.resp.CompletedAt.Time, row.Timestamp)

	require.Len(t, row.Answers, 3)
	require.Equal(t, "Your full name", row.Answers[0].Prompt)
	require.Equal(t, "Ivan Petrov", row.Answers[0].Value)
	// Multi selections are semicolon-joined in the flat record.
	require.Equal(t, "Remote; Hybrid", row.Answers[1].Value)
	// Missing answers flatten to empty, not the transcript dash.
	require.Equal(t, "", row.Answers[2].Value)
}

func TestProjector_Transcript_FileAnswers(t *testing.T) {
	t.Parallel()

	f := newProjectorFixture(t)

	surveyID := uuid.New()
	q := question.Question{ID: uuid.New(), SurveyID: surveyID, Code: "files", Prompt: "Attach documents", Kind: question.QuestionKindFile, Order: 1}
	firstID := uuid.New()
	secondID := uuid.New()

	qs := &mockQuestionStore{}
	as := &mockAnswerStore{}
	fs := &mockFileStore{}
	qs.On("List", mock.Anything, surveyID).Return([]question.Askable{question.NewUpload(q)}, nil)
	as.On("ListByResponseID", mock.Anything, mock.Anything).Return([]answer.Answer{
		{QuestionID: q.ID, FileIds: []uuid.UUID{firstID, secondID}},
	}, nil)
	fs.On("GetByIDs", mock.Anything, []uuid.UUID{firstID, secondID}).Return([]file.UploadedFile{
		{ID: firstID, PublicUrl: "https://files.example.com/api/files/" + firstID.String()},
		{ID: secondID, Filename: "scan.pdf"}, // no public URL, falls back to the filename
	}, nil)
	f.projector.questionStore = qs
	f.projector.answerStore = as
	f.projector.fileStore = fs

	lines, err := f.projector.Transcript(context.Background(), response.Response{ID: uuid.New(), SurveyID: surveyID})
	require.NoError(t, err)
	require.Equal(t,
		"• https://files.example.com/api/files/"+firstID.String()+"\n• scan.pdf",
		lines[0].Rendered)
}
