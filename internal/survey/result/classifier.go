package result

import (
	"context"
	"strings"

	"github.com/sdiki1/assistant-add-bot/internal/config"
	"github.com/sdiki1/assistant-add-bot/internal/survey/response"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Category string

const (
	CategoryOffice   Category = "OFFICE"
	CategoryPersonal Category = "PERSONAL"
	CategoryBusiness Category = "BUSINESS"
	CategoryMulti    Category = "MULTI"
)

// tag values carried by assessment options.
const (
	tagOffice   = "A"
	tagPersonal = "B"
	tagBusiness = "C"
)

var categoryByTag = map[string]Category{
	tagOffice:   CategoryOffice,
	tagPersonal: CategoryPersonal,
	tagBusiness: CategoryBusiness,
}

// Classifier scores a completed assessment response by tallying the tag
// values of every selected option.
type Classifier struct {
	logger        *zap.Logger
	questionStore QuestionStore
	answerStore   AnswerStore
	scoring       config.Scoring
	tracer        trace.Tracer
}

func NewClassifier(logger *zap.Logger, questionStore QuestionStore, answerStore AnswerStore, scoring config.Scoring) *Classifier {
	return &Classifier{
		logger:        logger,
		questionStore: questionStore,
		answerStore:   answerStore,
		scoring:       scoring,
		tracer:        otel.Tracer("result/classifier"),
	}
}

// Classify picks the tag with the highest tally, but only when it reaches
// the win threshold and leads the runner-up by at least the win margin.
// Anything less decisive is the blended category.
func (c *Classifier) Classify(ctx context.Context, resp response.Response) (Category, error) {
	ctx, span := c.tracer.Start(ctx, "Classify")
	defer span.End()

	askables, err := c.questionStore.List(ctx, resp.SurveyID)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	answers, err := c.answerStore.ListByResponseID(ctx, resp.ID)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	valueByOption := make(map[string]string)
	for _, ask := range askables {
		for _, opt := range ask.Options() {
			valueByOption[opt.ID.String()] = opt.Value
		}
	}

	// Only the three designated tags count; any other option value is noise
	// and must not influence top or runner-up.
	tally := make(map[string]int)
	for _, ans := range answers {
		for _, optionID := range ans.OptionIds {
			tag := strings.ToUpper(strings.TrimSpace(valueByOption[optionID.String()]))
			if _, known := categoryByTag[tag]; !known {
				continue
			}
			tally[tag]++
		}
	}

	top, second := "", 0
	topCount := 0
	for tag, count := range tally {
		switch {
		case count > topCount:
			second = topCount
			top, topCount = tag, count
		case count > second:
			second = count
		}
	}

	category, known := categoryByTag[top]
	if !known || topCount < c.scoring.WinThreshold || topCount-second < c.scoring.WinMargin {
		return CategoryMulti, nil
	}

	c.logger.Debug("Classified response",
		zap.String("response_id", resp.ID.String()),
		zap.String("category", string(category)),
		zap.Int("top", topCount),
		zap.Int("second", second))

	return category, nil
}
