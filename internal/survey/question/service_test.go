package question

import (
	"context"
	"testing"

	"github.com/sdiki1/assistant-add-bot/internal"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

type mockQuerier struct {
	mock.Mock
}

func (m *mockQuerier) ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]Question, error) {
	args := m.Called(ctx, surveyID)
	rows, _ := args.Get(0).([]Question)
	return rows, args.Error(1)
}

func (m *mockQuerier) GetByID(ctx context.Context, id uuid.UUID) (Question, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(Question)
	return row, args.Error(1)
}

func (m *mockQuerier) Create(ctx context.Context, arg CreateParams) (Question, error) {
	args := m.Called(ctx, arg)
	row, _ := args.Get(0).(Question)
	return row, args.Error(1)
}

func (m *mockQuerier) CreateOption(ctx context.Context, arg CreateOptionParams) (Option, error) {
	args := m.Called(ctx, arg)
	row, _ := args.Get(0).(Option)
	return row, args.Error(1)
}

func (m *mockQuerier) ListOptionsByQuestionID(ctx context.Context, questionID uuid.UUID) ([]Option, error) {
	args := m.Called(ctx, questionID)
	rows, _ := args.Get(0).([]Option)
	return rows, args.Error(1)
}

func (m *mockQuerier) ListOptionsBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]Option, error) {
	args := m.Called(ctx, surveyID)
	rows, _ := args.Get(0).([]Option)
	return rows, args.Error(1)
}

func newTestService(t *testing.T) (*Service, *mockQuerier) {
	t.Helper()

	q := &mockQuerier{}
	return &Service{
		logger:  zap.NewNop(),
		queries: q,
		tracer:  noop.NewTracerProvider().Tracer("test"),
	}, q
}

func TestNewAskable(t *testing.T) {
	t.Parallel()

	kinds := []QuestionKind{
		QuestionKindText,
		QuestionKindContact,
		QuestionKindSingleChoice,
		QuestionKindMultiChoice,
		QuestionKindFile,
	}

	for _, kind := range kinds {
		askable, err := NewAskable(Question{ID: uuid.New(), Kind: kind}, nil)
		require.NoError(t, err)
		require.Equal(t, kind, askable.Question().Kind)
	}

	_, err := NewAskable(Question{ID: uuid.New(), Kind: QuestionKind("slider")}, nil)
	require.ErrorIs(t, err, internal.ErrUnknownQuestionKind)
}

func TestService_List_Order(t *testing.T) {
	t.Parallel()

	surveyID := uuid.New()
	first := Question{ID: uuid.New(), SurveyID: surveyID, Code: "fio", Kind: QuestionKindText, Order: 1}
	second := Question{ID: uuid.New(), SurveyID: surveyID, Code: "contact", Kind: QuestionKindContact, Order: 5}
	third := Question{ID: uuid.New(), SurveyID: surveyID, Code: "files", Kind: QuestionKindFile, Order: 10}

	svc, q := newTestService(t)
	// Rows arrive shuffled, List must still yield conversation order.
	q.On("ListBySurveyID", mock.Anything, surveyID).
		Return([]Question{third, first, second}, nil)
	q.On("ListOptionsBySurveyID", mock.Anything, surveyID).
		Return([]Option(nil), nil)

	askables, err := svc.List(context.Background(), surveyID)
	require.NoError(t, err)
	require.Len(t, askables, 3)
	require.Equal(t, "fio", askables[0].Question().Code)
	require.Equal(t, "contact", askables[1].Question().Code)
	require.Equal(t, "files", askables[2].Question().Code)
}

func TestService_Next(t *testing.T) {
	t.Parallel()

	surveyID := uuid.New()
	first := Question{ID: uuid.New(), SurveyID: surveyID, Code: "fio", Kind: QuestionKindText, Order: 1}
	second := Question{ID: uuid.New(), SurveyID: surveyID, Code: "contact", Kind: QuestionKindContact, Order: 2}
	last := Question{ID: uuid.New(), SurveyID: surveyID, Code: "files", Kind: QuestionKindFile, Order: 3}

	setup := func(t *testing.T) (*Service, *mockQuerier) {
		svc, q := newTestService(t)
		q.On("ListBySurveyID", mock.Anything, surveyID).
			Return([]Question{first, second, last}, nil)
		q.On("ListOptionsBySurveyID", mock.Anything, surveyID).
			Return([]Option(nil), nil)
		return svc, q
	}

	t.Run("middle question has a successor", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)
		next, ok, err := svc.Next(context.Background(), surveyID, first.ID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, second.ID, next.Question().ID)
	})

	t.Run("last question ends the walk", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)
		_, ok, err := svc.Next(context.Background(), surveyID, last.ID)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("unknown current question", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)
		_, _, err := svc.Next(context.Background(), surveyID, uuid.New())
		require.ErrorIs(t, err, internal.ErrQuestionNotFound)
	})
}

func TestService_Create_DuplicateOrder(t *testing.T) {
	t.Parallel()

	svc, q := newTestService(t)
	q.On("Create", mock.Anything, mock.Anything).
		Return(Question{}, &pgconn.PgError{Code: uniqueViolation})

	_, err := svc.Create(context.Background(), CreateParams{
		SurveyID: uuid.New(),
		Code:     "fio",
		Kind:     QuestionKindText,
		Order:    1,
	})
	require.ErrorIs(t, err, internal.ErrDuplicateQuestionOrder)
}

func TestService_Create_DefaultsSettings(t *testing.T) {
	t.Parallel()

	svc, q := newTestService(t)
	q.On("Create", mock.Anything, mock.MatchedBy(func(arg CreateParams) bool {
		return string(arg.Settings) == "{}"
	})).Return(Question{ID: uuid.New(), Code: "fio"}, nil).Once()

	_, err := svc.Create(context.Background(), CreateParams{
		SurveyID: uuid.New(),
		Code:     "fio",
		Kind:     QuestionKindText,
		Order:    1,
	})
	require.NoError(t, err)
	q.AssertExpectations(t)
}

func TestChoice_Validate(t *testing.T) {
	t.Parallel()

	q := Question{ID: uuid.New(), Code: "format", Kind: QuestionKindMultiChoice, Required: true}
	optA := Option{ID: uuid.New(), QuestionID: q.ID, Label: "Remote", Value: "A"}
	optB := Option{ID: uuid.New(), QuestionID: q.ID, Label: "Hybrid", Value: "B"}
	multi := NewMultiChoice(q, []Option{optA, optB})

	require.NoError(t, multi.Validate(Input{OptionIDs: []uuid.UUID{optA.ID, optB.ID}}))
	require.ErrorIs(t, multi.Validate(Input{OptionIDs: []uuid.UUID{uuid.New()}}), internal.ErrOptionNotFound)
	require.ErrorIs(t, multi.Validate(Input{}), internal.ErrWrongAnswerKind)

	single := NewSingleChoice(q, []Option{optA, optB})
	require.NoError(t, single.Validate(Input{OptionIDs: []uuid.UUID{optB.ID}}))
	require.ErrorIs(t, single.Validate(Input{OptionIDs: []uuid.UUID{optA.ID, optB.ID}}), internal.ErrWrongAnswerKind)
}

func TestMultiChoice_DisplayValue(t *testing.T) {
	t.Parallel()

	q := Question{ID: uuid.New(), Code: "format", Kind: QuestionKindMultiChoice}
	optA := Option{ID: uuid.New(), QuestionID: q.ID, Label: "Remote", Value: "A"}
	optB := Option{ID: uuid.New(), QuestionID: q.ID, Label: "Hybrid", Value: "B"}
	multi := NewMultiChoice(q, []Option{optA, optB})

	got, err := multi.DisplayValue(Input{OptionIDs: []uuid.UUID{optA.ID, optB.ID}})
	require.NoError(t, err)
	require.Equal(t, "• Remote\n• Hybrid", got)
}
