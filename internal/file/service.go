package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sdiki1/assistant-add-bot/internal"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const fallbackFilename = "file"

var allowedMediaKinds = map[string]struct{}{
	"document": {},
	"photo":    {},
	"video":    {},
	"audio":    {},
	"voice":    {},
}

type Querier interface {
	Create(ctx context.Context, arg CreateParams) (UploadedFile, error)
	GetByID(ctx context.Context, id uuid.UUID) (UploadedFile, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]UploadedFile, error)
	ListByResponseID(ctx context.Context, responseID uuid.UUID) ([]UploadedFile, error)
}

// Meta describes an incoming attachment as reported by the chat platform.
type Meta struct {
	RemoteFileID   string
	RemoteUniqueID string
	Filename       string
	ContentType    string
	Size           int64
	MediaKind      string
}

type Service struct {
	logger      *zap.Logger
	queries     Querier
	baseURL     string
	maxFileSize int64
	tracer      trace.Tracer
}

func NewService(logger *zap.Logger, db DBTX, baseURL string, maxFileSize int64) *Service {
	return &Service{
		logger:      logger,
		queries:     New(db),
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxFileSize: maxFileSize,
		tracer:      otel.Tracer("file/service"),
	}
}

// SaveIncoming stores the attachment bytes and derives the public download
// URL. The id is generated here rather than by the database so the URL can
// be written in the same insert.
func (s *Service) SaveIncoming(ctx context.Context, responseID, questionID uuid.UUID, meta Meta, content io.Reader) (UploadedFile, error) {
	ctx, span := s.tracer.Start(ctx, "SaveIncoming")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	if _, ok := allowedMediaKinds[meta.MediaKind]; !ok {
		err := fmt.Errorf("%w: %q", internal.ErrUnsupportedMedia, meta.MediaKind)
		span.RecordError(err)
		return UploadedFile{}, err
	}
	if meta.Size > s.maxFileSize {
		span.RecordError(internal.ErrFileTooLarge)
		return UploadedFile{}, internal.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(content, s.maxFileSize+1))
	if err != nil {
		span.RecordError(err)
		return UploadedFile{}, fmt.Errorf("read attachment: %w", err)
	}
	if int64(len(data)) > s.maxFileSize {
		span.RecordError(internal.ErrFileTooLarge)
		return UploadedFile{}, internal.ErrFileTooLarge
	}

	id := uuid.New()
	saved, err := s.queries.Create(ctx, CreateParams{
		ID:             id,
		ResponseID:     responseID,
		QuestionID:     questionID,
		RemoteFileID:   meta.RemoteFileID,
		RemoteUniqueID: pgtype.Text{String: meta.RemoteUniqueID, Valid: meta.RemoteUniqueID != ""},
		Filename:       SanitizeFilename(meta.Filename),
		ContentType:    pgtype.Text{String: meta.ContentType, Valid: meta.ContentType != ""},
		Size:           int64(len(data)),
		Data:           data,
		PublicUrl:      s.baseURL + "/api/files/" + id.String(),
		MediaKind:      meta.MediaKind,
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "create uploaded file")
		span.RecordError(err)
		return UploadedFile{}, err
	}

	logger.Info("Stored uploaded file",
		zap.String("id", saved.ID.String()),
		zap.String("filename", saved.Filename),
		zap.Int64("size", saved.Size))

	return saved, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (UploadedFile, error) {
	ctx, span := s.tracer.Start(ctx, "GetByID")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	found, err := s.queries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.RecordError(internal.ErrFileNotFound)
			return UploadedFile{}, internal.ErrFileNotFound
		}
		err = databaseutil.WrapDBError(err, logger, "get uploaded file by id")
		span.RecordError(err)
		return UploadedFile{}, err
	}

	return found, nil
}

// GetByIDs returns the stored files in the order of ids, which is the upload
// order kept on the answer. Ids without a row are dropped.
func (s *Service) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]UploadedFile, error) {
	ctx, span := s.tracer.Start(ctx, "GetByIDs")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.queries.ListByIDs(ctx, ids)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "list uploaded files by ids")
		span.RecordError(err)
		return nil, err
	}

	byID := make(map[uuid.UUID]UploadedFile, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	ordered := make([]UploadedFile, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}

	return ordered, nil
}

func (s *Service) ListByResponseID(ctx context.Context, responseID uuid.UUID) ([]UploadedFile, error) {
	ctx, span := s.tracer.Start(ctx, "ListByResponseID")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	rows, err := s.queries.ListByResponseID(ctx, responseID)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "list uploaded files by response id")
		span.RecordError(err)
		return nil, err
	}

	return rows, nil
}

// SanitizeFilename strips directory components and characters that would be
// unsafe in a Content-Disposition header or on disk.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20, r == 0x7f:
		case strings.ContainsRune(`"'<>|:*?`, r):
		default:
			b.WriteRune(r)
		}
	}

	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return fallbackFilename
	}
	return cleaned
}
