package answer

import (
	"bytes"
	"context"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

type mockQuerier struct {
	mock.Mock
}

func (m *mockQuerier) Get(ctx context.Context, arg GetParams) (Answer, error) {
	args := m.Called(ctx, arg)
	row, _ := args.Get(0).(Answer)
	return row, args.Error(1)
}

func (m *mockQuerier) ListByResponseID(ctx context.Context, responseID uuid.UUID) ([]Answer, error) {
	args := m.Called(ctx, responseID)
	rows, _ := args.Get(0).([]Answer)
	return rows, args.Error(1)
}

func (m *mockQuerier) UpsertText(ctx context.Context, arg UpsertTextParams) (Answer, error) {
	args := m.Called(ctx, arg)
	row, _ := args.Get(0).(Answer)
	return row, args.Error(1)
}

func (m *mockQuerier) UpsertOptions(ctx context.Context, arg UpsertOptionsParams) (Answer, error) {
	args := m.Called(ctx, arg)
	row, _ := args.Get(0).(Answer)
	return row, args.Error(1)
}

func (m *mockQuerier) AppendFile(ctx context.Context, arg AppendFileParams) (Answer, error) {
	args := m.Called(ctx, arg)
	row, _ := args.Get(0).(Answer)
	return row, args.Error(1)
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

func sorted(ids ...uuid.UUID) []uuid.UUID {
	out := slices.Clone(ids)
	slices.SortFunc(out, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return out
}

func TestService_Toggle(t *testing.T) {
	t.Parallel()

	responseID := uuid.New()
	questionID := uuid.New()
	optA := uuid.New()
	optB := uuid.New()

	t.Run("first toggle adds the option", func(t *testing.T) {
		t.Parallel()

		svc, q := newTestService(t)
		q.On("Get", mock.Anything, GetParams{ResponseID: responseID, QuestionID: questionID}).
			Return(Answer{}, pgx.ErrNoRows)
		q.On("UpsertOptions", mock.Anything, UpsertOptionsParams{
			ResponseID: responseID,
			QuestionID: questionID,
			OptionIds:  []uuid.UUID{optA},
		}).Return(Answer{OptionIds: []uuid.UUID{optA}}, nil)

		got, err := svc.Toggle(context.Background(), responseID, questionID, optA)
		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{optA}, got.OptionIds)
		q.AssertExpectations(t)
	})

	t.Run("second toggle of the same option removes it", func(t *testing.T) {
		t.Parallel()

		svc, q := newTestService(t)
		q.On("Get", mock.Anything, GetParams{ResponseID: responseID, QuestionID: questionID}).
			Return(Answer{OptionIds: sorted(optA, optB)}, nil)
		q.On("UpsertOptions", mock.Anything, UpsertOptionsParams{
			ResponseID: responseID,
			QuestionID: questionID,
			OptionIds:  []uuid.UUID{optB},
		}).Return(Answer{OptionIds: []uuid.UUID{optB}}, nil)

		got, err := svc.Toggle(context.Background(), responseID, questionID, optA)
		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{optB}, got.OptionIds)
		q.AssertExpectations(t)
	})

	t.Run("toggling twice restores the empty selection", func(t *testing.T) {
		t.Parallel()

		svc, q := newTestService(t)
		q.On("Get", mock.Anything, GetParams{ResponseID: responseID, QuestionID: questionID}).
			Return(Answer{}, pgx.ErrNoRows).
			Once()
		q.On("UpsertOptions", mock.Anything, UpsertOptionsParams{
			ResponseID: responseID,
			QuestionID: questionID,
			OptionIds:  []uuid.UUID{optA},
		}).Return(Answer{OptionIds: []uuid.UUID{optA}}, nil).Once()

		added, err := svc.Toggle(context.Background(), responseID, questionID, optA)
		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{optA}, added.OptionIds)

		q.On("Get", mock.Anything, GetParams{ResponseID: responseID, QuestionID: questionID}).
			Return(added, nil).
			Once()
		q.On("UpsertOptions", mock.Anything, UpsertOptionsParams{
			ResponseID: responseID,
			QuestionID: questionID,
			OptionIds:  []uuid.UUID{},
		}).Return(Answer{OptionIds: []uuid.UUID{}}, nil).Once()

		removed, err := svc.Toggle(context.Background(), responseID, questionID, optA)
		require.NoError(t, err)
		require.Empty(t, removed.OptionIds)
		q.AssertExpectations(t)
	})
}

func TestService_SaveOptions_Normalizes(t *testing.T) {
	t.Parallel()

	responseID := uuid.New()
	questionID := uuid.New()
	optA := uuid.New()
	optB := uuid.New()
	expected := sorted(optA, optB)

	svc, q := newTestService(t)
	q.On("UpsertOptions", mock.Anything, UpsertOptionsParams{
		ResponseID: responseID,
		QuestionID: questionID,
		OptionIds:  expected,
	}).Return(Answer{OptionIds: expected}, nil)

	// Reverse of the normalized order must persist identically.
	reversed := []uuid.UUID{expected[1], expected[0]}
	got, err := svc.SaveOptions(context.Background(), responseID, questionID, reversed)
	require.NoError(t, err)
	require.Equal(t, expected, got.OptionIds)
	q.AssertExpectations(t)
}

func TestService_RecordFile_PreservesUploadOrder(t *testing.T) {
	t.Parallel()

	responseID := uuid.New()
	questionID := uuid.New()
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	svc, q := newTestService(t)
	stored := []uuid.UUID{}
	for _, fileID := range []uuid.UUID{first, second, third} {
		stored = append(stored, fileID)
		q.On("AppendFile", mock.Anything, AppendFileParams{
			ResponseID: responseID,
			QuestionID: questionID,
			FileID:     fileID,
		}).Return(Answer{FileIds: slices.Clone(stored)}, nil).Once()
	}

	var last Answer
	for _, fileID := range []uuid.UUID{first, second, third} {
		var err error
		last, err = svc.RecordFile(context.Background(), responseID, questionID, fileID)
		require.NoError(t, err)
	}

	require.Equal(t, []uuid.UUID{first, second, third}, last.FileIds)
	q.AssertExpectations(t)
}
