package survey

import (
	"context"
	"errors"

	"github.com/sdiki1/assistant-add-bot/internal"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Querier interface {
	GetActive(ctx context.Context) (Survey, error)
	GetByCode(ctx context.Context, code string) (Survey, error)
	GetByID(ctx context.Context, id uuid.UUID) (Survey, error)
	Create(ctx context.Context, arg CreateParams) (Survey, error)
	Count(ctx context.Context) (int64, error)
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
		tracer:  otel.Tracer("survey/service"),
	}
}

// GetActive returns the survey new conversations are started against.
func (s *Service) GetActive(ctx context.Context) (Survey, error) {
	ctx, span := s.tracer.Start(ctx, "GetActive")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	active, err := s.queries.GetActive(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.RecordError(internal.ErrSurveyNotConfigured)
			return Survey{}, internal.ErrSurveyNotConfigured
		}
		err = databaseutil.WrapDBError(err, logger, "get active survey")
		span.RecordError(err)
		return Survey{}, err
	}

	return active, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (Survey, error) {
	ctx, span := s.tracer.Start(ctx, "GetByCode")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	found, err := s.queries.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.RecordError(internal.ErrSurveyNotFound)
			return Survey{}, internal.ErrSurveyNotFound
		}
		err = databaseutil.WrapDBError(err, logger, "get survey by code")
		span.RecordError(err)
		return Survey{}, err
	}

	return found, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (Survey, error) {
	ctx, span := s.tracer.Start(ctx, "GetByID")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	found, err := s.queries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.RecordError(internal.ErrSurveyNotFound)
			return Survey{}, internal.ErrSurveyNotFound
		}
		err = databaseutil.WrapDBError(err, logger, "get survey by id")
		span.RecordError(err)
		return Survey{}, err
	}

	return found, nil
}

func (s *Service) Create(ctx context.Context, code, title string, isActive bool) (Survey, error) {
	ctx, span := s.tracer.Start(ctx, "Create")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	created, err := s.queries.Create(ctx, CreateParams{
		Code:     code,
		Title:    title,
		IsActive: isActive,
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "create survey")
		span.RecordError(err)
		return Survey{}, err
	}

	logger.Info("Created survey",
		zap.String("id", created.ID.String()),
		zap.String("code", created.Code))

	return created, nil
}

// Count reports how many surveys exist, used to decide whether seeding is needed.
func (s *Service) Count(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "Count")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	total, err := s.queries.Count(ctx)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "count surveys")
		span.RecordError(err)
		return 0, err
	}

	return total, nil
}
