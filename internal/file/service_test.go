package file

import (
	"context"
	"strings"
	"testing"

	"github.com/sdiki1/assistant-add-bot/internal"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

type mockQuerier struct {
	mock.Mock
}

func (m *mockQuerier) Create(ctx context.Context, arg CreateParams) (UploadedFile, error) {
	args := m.Called(ctx, arg)
	row, _ := args.Get(0).(UploadedFile)
	return row, args.Error(1)
}

func (m *mockQuerier) GetByID(ctx context.Context, id uuid.UUID) (UploadedFile, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(UploadedFile)
	return row, args.Error(1)
}

func (m *mockQuerier) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]UploadedFile, error) {
	args := m.Called(ctx, ids)
	rows, _ := args.Get(0).([]UploadedFile)
	return rows, args.Error(1)
}

func (m *mockQuerier) ListByResponseID(ctx context.Context, responseID uuid.UUID) ([]UploadedFile, error) {
	args := m.Called(ctx, responseID)
	rows, _ := args.Get(0).([]UploadedFile)
	return rows, args.Error(1)
}

func newTestService(t *testing.T) (*Service, *mockQuerier) {
	t.Helper()

	q := &mockQuerier{}
	return &Service{
		logger:      zap.NewNop(),
		queries:     q,
		baseURL:     "https://files.example.com",
		maxFileSize: 1 << 20,
		tracer:      noop.NewTracerProvider().Tracer("test"),
	}, q
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "plain name passes through", in: "resume.pdf", expected: "resume.pdf"},
		{name: "path components stripped", in: "../../etc/passwd", expected: "passwd"},
		{name: "windows path stripped", in: `C:\temp\report.docx`, expected: "report.docx"},
		{name: "header-breaking characters removed", in: `photo".jpg`, expected: "photo.jpg"},
		{name: "empty falls back", in: "", expected: "file"},
		{name: "dot-dot falls back", in: "..", expected: "file"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, SanitizeFilename(tc.in))
		})
	}
}

func TestService_SaveIncoming(t *testing.T) {
	t.Parallel()

	responseID := uuid.New()
	questionID := uuid.New()

	t.Run("stores bytes and derives the public url", func(t *testing.T) {
		t.Parallel()

		svc, q := newTestService(t)
		q.On("Create", mock.Anything, mock.MatchedBy(func(arg CreateParams) bool {
			return arg.ResponseID == responseID &&
				arg.QuestionID == questionID &&
				arg.Filename == "resume.pdf" &&
				arg.Size == int64(5) &&
				arg.PublicUrl == "https://files.example.com/api/files/"+arg.ID.String()
		})).Return(UploadedFile{ID: uuid.New()}, nil)

		_, err := svc.SaveIncoming(context.Background(), responseID, questionID, Meta{
			RemoteFileID: "remote-1",
			Filename:     "resume.pdf",
			ContentType:  "application/pdf",
			Size:         5,
			MediaKind:    "document",
		}, strings.NewReader("hello"))
		require.NoError(t, err)
		q.AssertExpectations(t)
	})

	t.Run("rejects oversized declared size", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		_, err := svc.SaveIncoming(context.Background(), responseID, questionID, Meta{
			RemoteFileID: "remote-2",
			Filename:     "huge.bin",
			Size:         (1 << 20) + 1,
			MediaKind:    "document",
		}, strings.NewReader(""))
		require.ErrorIs(t, err, internal.ErrFileTooLarge)
	})

	t.Run("rejects unknown media kind", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		_, err := svc.SaveIncoming(context.Background(), responseID, questionID, Meta{
			RemoteFileID: "remote-3",
			Filename:     "sticker.webp",
			MediaKind:    "sticker",
		}, strings.NewReader(""))
		require.ErrorIs(t, err, internal.ErrUnsupportedMedia)
	})
}

func TestService_GetByIDs_PreservesOrder(t *testing.T) {
	t.Parallel()

	first := UploadedFile{ID: uuid.New(), Filename: "a.pdf"}
	second := UploadedFile{ID: uuid.New(), Filename: "b.pdf"}
	third := UploadedFile{ID: uuid.New(), Filename: "c.pdf"}
	ids := []uuid.UUID{first.ID, second.ID, third.ID}

	svc, q := newTestService(t)
	// The database returns rows in arbitrary order.
	q.On("ListByIDs", mock.Anything, ids).
		Return([]UploadedFile{third, first, second}, nil)

	got, err := svc.GetByIDs(context.Background(), ids)
	require.NoError(t, err)
	require.Equal(t, []UploadedFile{first, second, third}, got)
}
