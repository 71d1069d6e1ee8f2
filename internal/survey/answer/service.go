package answer

import (
	"bytes"
	"context"
	"errors"
	"slices"

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

type Querier interface {
	Get(ctx context.Context, arg GetParams) (Answer, error)
	ListByResponseID(ctx context.Context, responseID uuid.UUID) ([]Answer, error)
	UpsertText(ctx context.Context, arg UpsertTextParams) (Answer, error)
	UpsertOptions(ctx context.Context, arg UpsertOptionsParams) (Answer, error)
	AppendFile(ctx context.Context, arg AppendFileParams) (Answer, error)
}

type Service struct {
	logger  *zap.Logger
	queries Querier
	tracer  trace.Tracer
}

func NewService(logger *zap.Logger, db DBTX) *Service {
	return &Service{
		logger:  logger,
		queries: New(db),
		tracer:  otel.Tracer("answer/service"),
	}
}

func (s *Service) Get(ctx context.Context, responseID, questionID uuid.UUID) (Answer, error) {
	ctx, span := s.tracer.Start(ctx, "Get")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	found, err := s.queries.Get(ctx, GetParams{ResponseID: responseID, QuestionID: questionID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.RecordError(internal.ErrNotFound)
			return Answer{}, internal.ErrNotFound
		}
		err = databaseutil.WrapDBError(err, logger, "get answer")
		span.RecordError(err)
		return Answer{}, err
	}

	return found, nil
}

func (s *Service) ListByResponseID(ctx context.Context, responseID uuid.UUID) ([]Answer, error) {
	ctx, span := s.tracer.Start(ctx, "ListByResponseID")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	items, err := s.queries.ListByResponseID(ctx, responseID)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "list answers by response id")
		span.RecordError(err)
		return nil, err
	}

	return items, nil
}

// SaveText stores the free-typed answer for a question, replacing any
// earlier one.
func (s *Service) SaveText(ctx context.Context, responseID, questionID uuid.UUID, text string) (Answer, error) {
	ctx, span := s.tracer.Start(ctx, "SaveText")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	saved, err := s.queries.UpsertText(ctx, UpsertTextParams{
		ResponseID: responseID,
		QuestionID: questionID,
		TextValue:  pgtype.Text{String: text, Valid: true},
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "upsert text answer")
		span.RecordError(err)
		return Answer{}, err
	}

	return saved, nil
}

// SaveOptions stores a selection set. Ids are normalized into ascending
// byte order before writing so equal selections always persist identically.
func (s *Service) SaveOptions(ctx context.Context, responseID, questionID uuid.UUID, optionIDs []uuid.UUID) (Answer, error) {
	ctx, span := s.tracer.Start(ctx, "SaveOptions")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	normalized := normalizeOptionIDs(optionIDs)

	saved, err := s.queries.UpsertOptions(ctx, UpsertOptionsParams{
		ResponseID: responseID,
		QuestionID: questionID,
		OptionIds:  normalized,
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "upsert option answer")
		span.RecordError(err)
		return Answer{}, err
	}

	return saved, nil
}

// Toggle flips optionID in the stored selection for a multi-choice question
// and returns the resulting set. A question with no answer yet starts from
// the empty selection.
func (s *Service) Toggle(ctx context.Context, responseID, questionID, optionID uuid.UUID) (Answer, error) {
	ctx, span := s.tracer.Start(ctx, "Toggle")
	defer span.End()

	var current []uuid.UUID
	existing, err := s.Get(ctx, responseID, questionID)
	switch {
	case err == nil:
		current = existing.OptionIds
	case errors.Is(err, internal.ErrNotFound):
		// first toggle on this question
	default:
		span.RecordError(err)
		return Answer{}, err
	}

	next := make([]uuid.UUID, 0, len(current)+1)
	found := false
	for _, id := range current {
		if id == optionID {
			found = true
			continue
		}
		next = append(next, id)
	}
	if !found {
		next = append(next, optionID)
	}

	return s.SaveOptions(ctx, responseID, questionID, next)
}

// RecordFile appends an uploaded file to the question's answer, preserving
// upload order.
func (s *Service) RecordFile(ctx context.Context, responseID, questionID, fileID uuid.UUID) (Answer, error) {
	ctx, span := s.tracer.Start(ctx, "RecordFile")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	saved, err := s.queries.AppendFile(ctx, AppendFileParams{
		ResponseID: responseID,
		QuestionID: questionID,
		FileID:     fileID,
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "append file to answer")
		span.RecordError(err)
		return Answer{}, err
	}

	logger.Info("Recorded uploaded file",
		zap.String("response_id", responseID.String()),
		zap.String("question_id", questionID.String()),
		zap.String("file_id", fileID.String()))

	return saved, nil
}

func normalizeOptionIDs(ids []uuid.UUID) []uuid.UUID {
	normalized := slices.Clone(ids)
	slices.SortFunc(normalized, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	if normalized == nil {
		normalized = []uuid.UUID{}
	}
	return normalized
}
