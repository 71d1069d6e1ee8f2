package question

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/sdiki1/assistant-add-bot/internal"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

type Querier interface {
	ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]Question, error)
	GetByID(ctx context.Context, id uuid.UUID) (Question, error)
	Create(ctx context.Context, arg CreateParams) (Question, error)
	CreateOption(ctx context.Context, arg CreateOptionParams) (Option, error)
	ListOptionsByQuestionID(ctx context.Context, questionID uuid.UUID) ([]Option, error)
	ListOptionsBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]Option, error)
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
		tracer:  otel.Tracer("question/service"),
	}
}

// compareQuestions is the conversation order: position first, id as the
// tie-break so equal positions still have a deterministic walk.
func compareQuestions(a, b Question) int {
	if c := cmp.Compare(a.Order, b.Order); c != 0 {
		return c
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}

// List returns the survey's questions wrapped in their kind behavior, in
// conversation order.
func (s *Service) List(ctx context.Context, surveyID uuid.UUID) ([]Askable, error) {
	ctx, span := s.tracer.Start(ctx, "List")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	rows, err := s.queries.ListBySurveyID(ctx, surveyID)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "list questions by survey id")
		span.RecordError(err)
		return nil, err
	}

	options, err := s.queries.ListOptionsBySurveyID(ctx, surveyID)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "list options by survey id")
		span.RecordError(err)
		return nil, err
	}

	byQuestion := make(map[uuid.UUID][]Option, len(rows))
	for _, opt := range options {
		byQuestion[opt.QuestionID] = append(byQuestion[opt.QuestionID], opt)
	}

	slices.SortFunc(rows, compareQuestions)

	askables := make([]Askable, 0, len(rows))
	for _, row := range rows {
		askable, err := NewAskable(row, byQuestion[row.ID])
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		askables = append(askables, askable)
	}

	return askables, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Askable, error) {
	ctx, span := s.tracer.Start(ctx, "Get")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	row, err := s.queries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.RecordError(internal.ErrQuestionNotFound)
			return nil, internal.ErrQuestionNotFound
		}
		err = databaseutil.WrapDBError(err, logger, "get question by id")
		span.RecordError(err)
		return nil, err
	}

	options, err := s.queries.ListOptionsByQuestionID(ctx, row.ID)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "list options by question id")
		span.RecordError(err)
		return nil, err
	}

	return NewAskable(row, options)
}

// First returns the opening question of a survey, or false when the survey
// has no questions at all.
func (s *Service) First(ctx context.Context, surveyID uuid.UUID) (Askable, bool, error) {
	ctx, span := s.tracer.Start(ctx, "First")
	defer span.End()

	askables, err := s.List(ctx, surveyID)
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}
	if len(askables) == 0 {
		return nil, false, nil
	}

	return askables[0], true, nil
}

// Next returns the question that follows currentID in conversation order,
// or false when currentID is the last question. Following means strictly
// after: a question never follows itself, so repeated advancing always
// terminates.
func (s *Service) Next(ctx context.Context, surveyID uuid.UUID, currentID uuid.UUID) (Askable, bool, error) {
	ctx, span := s.tracer.Start(ctx, "Next")
	defer span.End()

	askables, err := s.List(ctx, surveyID)
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}

	idx := slices.IndexFunc(askables, func(a Askable) bool {
		return a.Question().ID == currentID
	})
	if idx < 0 {
		span.RecordError(internal.ErrQuestionNotFound)
		return nil, false, internal.ErrQuestionNotFound
	}
	if idx+1 >= len(askables) {
		return nil, false, nil
	}

	return askables[idx+1], true, nil
}

func (s *Service) Create(ctx context.Context, arg CreateParams) (Question, error) {
	ctx, span := s.tracer.Start(ctx, "Create")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	// settings is NOT NULL; a nil slice would reach the driver as SQL NULL.
	if arg.Settings == nil {
		arg.Settings = []byte("{}")
	}

	created, err := s.queries.Create(ctx, arg)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			span.RecordError(internal.ErrDuplicateQuestionOrder)
			return Question{}, internal.ErrDuplicateQuestionOrder
		}
		err = databaseutil.WrapDBError(err, logger, "create question")
		span.RecordError(err)
		return Question{}, err
	}

	logger.Info("Created question",
		zap.String("id", created.ID.String()),
		zap.String("code", created.Code),
		zap.Int32("order", created.Order))

	return created, nil
}

func (s *Service) AddOption(ctx context.Context, arg CreateOptionParams) (Option, error) {
	ctx, span := s.tracer.Start(ctx, "AddOption")
	defer span.End()
	logger := logutil.WithContext(ctx, s.logger)

	created, err := s.queries.CreateOption(ctx, arg)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "create option")
		span.RecordError(err)
		return Option{}, err
	}

	return created, nil
}
