package response

import (
	"context"
	"errors"

	"github.com/sdiki1/assistant-add-bot/internal"
	"github.com/sdiki1/assistant-add-bot/internal/survey/question"

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
	Create(ctx context.Context, arg CreateParams) (Response, error)
	GetByID(ctx context.Context, id uuid.UUID) (Response, error)
	GetActive(ctx context.Context, arg GetActiveParams) (Response, error)
	AbandonActive(ctx context.Context, arg AbandonActiveParams) error
	SetCurrentQuestion(ctx context.Context, arg SetCurrentQuestionParams) (Response, error)
	Complete(ctx context.Context, id uuid.UUID) (Response, error)
	AppendPromptMessageID(ctx context.Context, arg AppendPromptMessageIDParams) error
	AppendUserMessageID(ctx context.Context, arg AppendUserMessageIDParams) error
	CountCompletedBySurveyID(ctx context.Context, surveyID uuid.UUID) (int64, error)
}

// QuestionStore resolves the successor of the current question during Advance.
type QuestionStore interface {
	Next(ctx context.Context, surveyID uuid.UUID, currentID uuid.UUID) (question.Askable, bool, error)
}

type Service struct {
	logger        *zap.Logger
	queries       Querier
	questionStore QuestionStore
	tracer        trace.Tracer
}

func NewService(logger *zap.Logger, db DBTX, questionStore QuestionStore) *Service {
	return &Service{
		logger:        logger,
		queries:       New(db),
		questionStore: questionStore,
		tracer:        otel.Tracer("response/service"),
	}
}

// Start opens a fresh in-progress response positioned at firstQuestionID.
// The caller abandons any previous in-progress response of the same user
// and survey first; Start does not enforce that itself.
func (s *Service) Start(ctx context.Context, userID, surveyID, firstQuestionID uuid.UUID) (Response, error) {
	ctx, span := s.tracer.Start(ctx, "Start")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	created, err := s.queries.Create(ctx, CreateParams{
		UserID:            userID,
		SurveyID:          surveyID,
		CurrentQuestionID: pgtype.UUID{Bytes: firstQuestionID, Valid: true},
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "create response")
		span.RecordError(err)
		return Response{}, err
	}

	logger.Info("Started response",
		zap.String("id", created.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("survey_id", surveyID.String()))

	return created, nil
}

// AbandonActive marks every in-progress response of the user and survey
// abandoned. Idempotent; abandoning nothing is not an error.
func (s *Service) AbandonActive(ctx context.Context, userID, surveyID uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "AbandonActive")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	err := s.queries.AbandonActive(ctx, AbandonActiveParams{UserID: userID, SurveyID: surveyID})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "abandon active response")
		span.RecordError(err)
		return err
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Response, error) {
	ctx, span := s.tracer.Start(ctx, "Get")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	found, err := s.queries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.RecordError(internal.ErrResponseNotFound)
			return Response{}, internal.ErrResponseNotFound
		}
		err = databaseutil.WrapDBError(err, logger, "get response by id")
		span.RecordError(err)
		return Response{}, err
	}

	return found, nil
}

func (s *Service) GetActive(ctx context.Context, userID, surveyID uuid.UUID) (Response, error) {
	ctx, span := s.tracer.Start(ctx, "GetActive")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	active, err := s.queries.GetActive(ctx, GetActiveParams{UserID: userID, SurveyID: surveyID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.RecordError(internal.ErrNoActiveResponse)
			return Response{}, internal.ErrNoActiveResponse
		}
		err = databaseutil.WrapDBError(err, logger, "get active response")
		span.RecordError(err)
		return Response{}, err
	}

	return active, nil
}

// Advance is the only place a response moves forward. It positions the
// response on the question after the current one, or completes it when the
// current question was the last. The returned Askable is nil exactly when
// the response completed.
func (s *Service) Advance(ctx context.Context, id uuid.UUID) (Response, question.Askable, error) {
	ctx, span := s.tracer.Start(ctx, "Advance")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	current, err := s.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return Response{}, nil, err
	}

	if current.Status != ResponseStatusInProgress {
		span.RecordError(internal.ErrResponseCompleted)
		return Response{}, nil, internal.ErrResponseCompleted
	}
	if !current.CurrentQuestionID.Valid {
		span.RecordError(internal.ErrQuestionNotFound)
		return Response{}, nil, internal.ErrQuestionNotFound
	}

	next, ok, err := s.questionStore.Next(ctx, current.SurveyID, uuid.UUID(current.CurrentQuestionID.Bytes))
	if err != nil {
		span.RecordError(err)
		return Response{}, nil, err
	}

	if !ok {
		completed, err := s.queries.Complete(ctx, id)
		if err != nil {
			err = databaseutil.WrapDBError(err, logger, "complete response")
			span.RecordError(err)
			return Response{}, nil, err
		}

		logger.Info("Completed response", zap.String("id", id.String()))
		return completed, nil, nil
	}

	updated, err := s.queries.SetCurrentQuestion(ctx, SetCurrentQuestionParams{
		ID:                id,
		CurrentQuestionID: pgtype.UUID{Bytes: next.Question().ID, Valid: true},
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "set current question")
		span.RecordError(err)
		return Response{}, nil, err
	}

	return updated, next, nil
}

func (s *Service) Abandon(ctx context.Context, userID, surveyID uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "Abandon")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	err := s.queries.AbandonActive(ctx, AbandonActiveParams{UserID: userID, SurveyID: surveyID})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "abandon active response")
		span.RecordError(err)
		return err
	}

	return nil
}

// RecordPromptMessage remembers a chat message id sent by us for this
// response, so finished conversations can be cleaned up later.
func (s *Service) RecordPromptMessage(ctx context.Context, id uuid.UUID, messageID int64) error {
	ctx, span := s.tracer.Start(ctx, "RecordPromptMessage")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	err := s.queries.AppendPromptMessageID(ctx, AppendPromptMessageIDParams{ID: id, ArrayAppend: messageID})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "append prompt message id")
		span.RecordError(err)
		return err
	}

	return nil
}

// RecordUserMessage remembers a chat message id sent by the user.
func (s *Service) RecordUserMessage(ctx context.Context, id uuid.UUID, messageID int64) error {
	ctx, span := s.tracer.Start(ctx, "RecordUserMessage")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	err := s.queries.AppendUserMessageID(ctx, AppendUserMessageIDParams{ID: id, ArrayAppend: messageID})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "append user message id")
		span.RecordError(err)
		return err
	}

	return nil
}

func (s *Service) CountCompleted(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "CountCompleted")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	total, err := s.queries.CountCompletedBySurveyID(ctx, surveyID)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "count completed responses")
		span.RecordError(err)
		return 0, err
	}

	return total, nil
}
