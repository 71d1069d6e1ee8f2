package survey

import (
	"context"
	"testing"

	"github.com/sdiki1/assistant-add-bot/internal"

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

func (m *mockQuerier) GetActive(ctx context.Context) (Survey, error) {
	args := m.Called(ctx)
	row, _ := args.Get(0).(Survey)
	return row, args.Error(1)
}

func (m *mockQuerier) GetByCode(ctx context.Context, code string) (Survey, error) {
	args := m.Called(ctx, code)
	row, _ := args.Get(0).(Survey)
	return row, args.Error(1)
}

func (m *mockQuerier) GetByID(ctx context.Context, id uuid.UUID) (Survey, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(Survey)
	return row, args.Error(1)
}

func (m *mockQuerier) Create(ctx context.Context, arg CreateParams) (Survey, error) {
	args := m.Called(ctx, arg)
	row, _ := args.Get(0).(Survey)
	return row, args.Error(1)
}

func (m *mockQuerier) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
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

func TestService_GetActive(t *testing.T) {
	t.Parallel()

	active := Survey{ID: uuid.New(), Code: "assistant_v1", Title: "Assistant intake", IsActive: true}

	cases := []struct {
		name        string
		setup       func(q *mockQuerier)
		expected    Survey
		expectedErr error
	}{
		{
			name: "returns the active survey",
			setup: func(q *mockQuerier) {
				q.On("GetActive", mock.Anything).Return(active, nil)
			},
			expected: active,
		},
		{
			name: "no active survey maps to not configured",
			setup: func(q *mockQuerier) {
				q.On("GetActive", mock.Anything).Return(Survey{}, pgx.ErrNoRows)
			},
			expectedErr: internal.ErrSurveyNotConfigured,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, q := newTestService(t)
			tc.setup(q)

			got, err := svc.GetActive(context.Background())
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestService_GetByCode(t *testing.T) {
	t.Parallel()

	svc, q := newTestService(t)
	q.On("GetByCode", mock.Anything, "missing").Return(Survey{}, pgx.ErrNoRows)

	_, err := svc.GetByCode(context.Background(), "missing")
	require.ErrorIs(t, err, internal.ErrSurveyNotFound)
}
