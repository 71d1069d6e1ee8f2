package user

import (
	"context"
	"errors"

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
	Upsert(ctx context.Context, arg UpsertParams) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByChatID(ctx context.Context, chatID int64) (User, error)
	UpdatePhone(ctx context.Context, arg UpdatePhoneParams) (User, error)
	List(ctx context.Context) ([]User, error)
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
		tracer:  otel.Tracer("user/service"),
	}
}

// Upsert creates the user on first contact and refreshes the profile fields
// on every later one, keyed by the chat id.
func (s *Service) Upsert(ctx context.Context, chatID int64, username, firstName, lastName string) (User, error) {
	ctx, span := s.tracer.Start(ctx, "Upsert")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	saved, err := s.queries.Upsert(ctx, UpsertParams{
		ChatID:    chatID,
		Username:  pgtype.Text{String: username, Valid: username != ""},
		FirstName: pgtype.Text{String: firstName, Valid: firstName != ""},
		LastName:  pgtype.Text{String: lastName, Valid: lastName != ""},
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "upsert user")
		span.RecordError(err)
		return User{}, err
	}

	return saved, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	ctx, span := s.tracer.Start(ctx, "GetByID")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	found, err := s.queries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.RecordError(internal.ErrUserNotFound)
			return User{}, internal.ErrUserNotFound
		}
		err = databaseutil.WrapDBError(err, logger, "get user by id")
		span.RecordError(err)
		return User{}, err
	}

	return found, nil
}

func (s *Service) GetByChatID(ctx context.Context, chatID int64) (User, error) {
	ctx, span := s.tracer.Start(ctx, "GetByChatID")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	found, err := s.queries.GetByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.RecordError(internal.ErrUserNotFound)
			return User{}, internal.ErrUserNotFound
		}
		err = databaseutil.WrapDBError(err, logger, "get user by chat id")
		span.RecordError(err)
		return User{}, err
	}

	return found, nil
}

// UpdatePhone persists a shared contact back onto the profile.
func (s *Service) UpdatePhone(ctx context.Context, id uuid.UUID, phone string) (User, error) {
	ctx, span := s.tracer.Start(ctx, "UpdatePhone")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	updated, err := s.queries.UpdatePhone(ctx, UpdatePhoneParams{
		ID:    id,
		Phone: pgtype.Text{String: phone, Valid: phone != ""},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.RecordError(internal.ErrUserNotFound)
			return User{}, internal.ErrUserNotFound
		}
		err = databaseutil.WrapDBError(err, logger, "update user phone")
		span.RecordError(err)
		return User{}, err
	}

	return updated, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	ctx, span := s.tracer.Start(ctx, "List")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	users, err := s.queries.List(ctx)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "list users")
		span.RecordError(err)
		return nil, err
	}

	return users, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "Count")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	total, err := s.queries.Count(ctx)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "count users")
		span.RecordError(err)
		return 0, err
	}

	return total, nil
}
