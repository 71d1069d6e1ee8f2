package result

import (
	"context"
	"strings"
	"time"

	"github.com/sdiki1/assistant-add-bot/internal/export"
	"github.com/sdiki1/assistant-add-bot/internal/file"
	"github.com/sdiki1/assistant-add-bot/internal/survey"
	"github.com/sdiki1/assistant-add-bot/internal/survey/answer"
	"github.com/sdiki1/assistant-add-bot/internal/survey/question"
	"github.com/sdiki1/assistant-add-bot/internal/survey/response"
	"github.com/sdiki1/assistant-add-bot/internal/user"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// noAnswer marks a question the user never reached or skipped.
const noAnswer = "—"

// nameQuestionCode identifies the seeded full-name question whose answer
// feeds the export's dedicated name column.
const nameQuestionCode = "fio"

type SurveyStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (survey.Survey, error)
}

type QuestionStore interface {
	List(ctx context.Context, surveyID uuid.UUID) ([]question.Askable, error)
}

type AnswerStore interface {
	ListByResponseID(ctx context.Context, responseID uuid.UUID) ([]answer.Answer, error)
}

type FileStore interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]file.UploadedFile, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
}

// Line is one transcript entry, in conversation order.
type Line struct {
	Prompt   string
	Rendered string
}

// Projector renders a response into human-facing shapes: a chat transcript
// and a flat export row. It never mutates conversation state.
type Projector struct {
	logger        *zap.Logger
	surveyStore   SurveyStore
	questionStore QuestionStore
	answerStore   AnswerStore
	fileStore     FileStore
	userStore     UserStore
	policy        *bluemonday.Policy
	tracer        trace.Tracer
}

func NewProjector(
	logger *zap.Logger,
	surveyStore SurveyStore,
	questionStore QuestionStore,
	answerStore AnswerStore,
	fileStore FileStore,
	userStore UserStore,
) *Projector {
	return &Projector{
		logger:        logger,
		surveyStore:   surveyStore,
		questionStore: questionStore,
		answerStore:   answerStore,
		fileStore:     fileStore,
		userStore:     userStore,
		policy:        bluemonday.StrictPolicy(),
		tracer:        otel.Tracer("result/projector"),
	}
}

// Transcript renders every question of the response's survey with its
// answer. Questions without an answer render as the placeholder dash.
func (p *Projector) Transcript(ctx context.Context, resp response.Response) ([]Line, error) {
	ctx, span := p.tracer.Start(ctx, "Transcript")
	defer span.End()

	askables, byQuestion, err := p.load(ctx, resp)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	lines := make([]Line, 0, len(askables))
	for _, ask := range askables {
		ans, ok := byQuestion[ask.Question().ID]
		if !ok {
			lines = append(lines, Line{Prompt: ask.Question().Prompt, Rendered: noAnswer})
			continue
		}

		rendered, err := p.render(ctx, ask, ans, false)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		lines = append(lines, Line{Prompt: ask.Question().Prompt, Rendered: rendered})
	}

	return lines, nil
}

// ExportRow flattens a completed response for the spreadsheet sink. Missing
// answers become empty strings and list values are semicolon-joined.
func (p *Projector) ExportRow(ctx context.Context, resp response.Response) (export.Row, error) {
	ctx, span := p.tracer.Start(ctx, "ExportRow")
	defer span.End()

	srv, err := p.surveyStore.GetByID(ctx, resp.SurveyID)
	if err != nil {
		span.RecordError(err)
		return export.Row{}, err
	}

	usr, err := p.userStore.GetByID(ctx, resp.UserID)
	if err != nil {
		span.RecordError(err)
		return export.Row{}, err
	}

	askables, byQuestion, err := p.load(ctx, resp)
	if err != nil {
		span.RecordError(err)
		return export.Row{}, err
	}

	row := export.Row{
		Timestamp:   time.Now(),
		SurveyTitle: srv.Title,
		ChatID:      usr.ChatID,
		Username:    usr.Username.String,
	}
	if resp.CompletedAt.Valid {
		row.Timestamp = resp.CompletedAt.Time
	}

	var allFiles []string
	for _, ask := range askables {
		q := ask.Question()

		value := ""
		if ans, ok := byQuestion[q.ID]; ok {
			value, err = p.render(ctx, ask, ans, true)
			if err != nil {
				span.RecordError(err)
				return export.Row{}, err
			}
			if q.Kind == question.QuestionKindFile && value != "" {
				allFiles = append(allFiles, value)
			}
		}

		switch {
		case q.Code == nameQuestionCode:
			row.FullName = value
		case q.Kind == question.QuestionKindContact:
			row.Contact = value
		}

		row.Answers = append(row.Answers, export.QA{Prompt: q.Prompt, Value: value})
	}
	row.Files = strings.Join(allFiles, "; ")

	return row, nil
}

func (p *Projector) load(ctx context.Context, resp response.Response) ([]question.Askable, map[uuid.UUID]answer.Answer, error) {
	askables, err := p.questionStore.List(ctx, resp.SurveyID)
	if err != nil {
		return nil, nil, err
	}

	answers, err := p.answerStore.ListByResponseID(ctx, resp.ID)
	if err != nil {
		return nil, nil, err
	}

	byQuestion := make(map[uuid.UUID]answer.Answer, len(answers))
	for _, ans := range answers {
		byQuestion[ans.QuestionID] = ans
	}

	return askables, byQuestion, nil
}

// render produces the display form of one answer. forExport switches list
// joining from transcript bullets to semicolon separation.
func (p *Projector) render(ctx context.Context, ask question.Askable, ans answer.Answer, forExport bool) (string, error) {
	q := ask.Question()

	switch q.Kind {
	case question.QuestionKindText, question.QuestionKindContact:
		return p.policy.Sanitize(ans.TextValue.String), nil

	case question.QuestionKindFile:
		files, err := p.fileStore.GetByIDs(ctx, ans.FileIds)
		if err != nil {
			return "", err
		}
		refs := make([]string, 0, len(files))
		for _, f := range files {
			ref := f.PublicUrl
			if ref == "" {
				ref = f.Filename
			}
			refs = append(refs, ref)
		}
		return joinList(refs, forExport), nil

	case question.QuestionKindMultiChoice:
		if forExport {
			labels := make([]string, 0, len(ans.OptionIds))
			for _, id := range ans.OptionIds {
				labels = append(labels, labelFor(ask.Options(), id))
			}
			return strings.Join(labels, "; "), nil
		}
		return ask.DisplayValue(question.Input{OptionIDs: ans.OptionIds})

	default:
		return ask.DisplayValue(question.Input{
			Text:      ans.TextValue.String,
			OptionIDs: ans.OptionIds,
		})
	}
}

func joinList(values []string, forExport bool) string {
	if forExport {
		return strings.Join(values, "; ")
	}
	if len(values) <= 1 {
		return strings.Join(values, "")
	}
	bullets := make([]string, 0, len(values))
	for _, v := range values {
		bullets = append(bullets, "• "+v)
	}
	return strings.Join(bullets, "\n")
}

func labelFor(options []question.Option, id uuid.UUID) string {
	for _, opt := range options {
		if opt.ID == id {
			return opt.Label
		}
	}
	return id.String()
}
