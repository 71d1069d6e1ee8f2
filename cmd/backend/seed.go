package main

import (
	"context"
	"fmt"

	"github.com/sdiki1/assistant-add-bot/internal/config"
	"github.com/sdiki1/assistant-add-bot/internal/survey"
	"github.com/sdiki1/assistant-add-bot/internal/survey/question"

	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

type seedOption struct {
	label string
	value string
}

type seedQuestion struct {
	code     string
	prompt   string
	kind     question.QuestionKind
	required bool
	helpText string
	options  []seedOption
}

// seedIfEmpty creates the intake survey and the assistant type test on a
// fresh database. A database that already has any survey is left alone.
func seedIfEmpty(
	ctx context.Context,
	logger *zap.Logger,
	surveys *survey.Service,
	questions *question.Service,
	cfg config.Config,
) error {
	count, err := surveys.Count(ctx)
	if err != nil {
		return fmt.Errorf("count surveys: %w", err)
	}
	if count > 0 {
		return nil
	}

	logger.Info("Empty database detected, seeding default surveys")

	if err := seedSurvey(ctx, surveys, questions, cfg.MainSurveyCode, "Assistant intake", true, intakeQuestions()); err != nil {
		return fmt.Errorf("seed intake survey: %w", err)
	}
	if err := seedSurvey(ctx, surveys, questions, cfg.AssessmentSurveyCode, "Assistant type test", false, assessmentQuestions()); err != nil {
		return fmt.Errorf("seed assessment survey: %w", err)
	}

	logger.Info("Seeded default surveys",
		zap.String("main_code", cfg.MainSurveyCode),
		zap.String("assessment_code", cfg.AssessmentSurveyCode))

	return nil
}

func seedSurvey(
	ctx context.Context,
	surveys *survey.Service,
	questions *question.Service,
	code, title string,
	active bool,
	items []seedQuestion,
) error {
	created, err := surveys.Create(ctx, code, title, active)
	if err != nil {
		return err
	}

	for order, item := range items {
		var helpText pgtype.Text
		if item.helpText != "" {
			helpText = pgtype.Text{String: item.helpText, Valid: true}
		}

		q, err := questions.Create(ctx, question.CreateParams{
			SurveyID: created.ID,
			Code:     item.code,
			Prompt:   item.prompt,
			Kind:     item.kind,
			Required: item.required,
			Order:    int32(order),
			HelpText: helpText,
		})
		if err != nil {
			return fmt.Errorf("create question %q: %w", item.code, err)
		}

		for optOrder, opt := range item.options {
			if _, err := questions.AddOption(ctx, question.CreateOptionParams{
				QuestionID: q.ID,
				Label:      opt.label,
				Value:      opt.value,
				Order:      int32(optOrder + 1),
			}); err != nil {
				return fmt.Errorf("create option %q for question %q: %w", opt.label, item.code, err)
			}
		}
	}

	return nil
}

func intakeQuestions() []seedQuestion {
	return []seedQuestion{
		{
			code:     "consent",
			prompt:   "Consent to personal data processing. By pressing Continue you agree that the details you provide are used to match you with open positions.",
			kind:     question.QuestionKindSingleChoice,
			required: true,
			options:  []seedOption{{label: "Continue", value: "continue"}},
		},
		{
			code:     "fio",
			prompt:   "Your full name",
			kind:     question.QuestionKindText,
			required: true,
			helpText: "Format: first and last name",
		},
		{
			code:     "contact",
			prompt:   "Contact details",
			kind:     question.QuestionKindContact,
			required: true,
			helpText: "Share your contact or type a phone number",
		},
		{
			code:     "tasks",
			prompt:   "Which tasks do you want (and know how) to handle?",
			kind:     question.QuestionKindMultiChoice,
			required: true,
			options: []seedOption{
				{label: "Calendar, meetings, travel", value: "calendar"},
				{label: "Tracking the principal's tasks", value: "task_tracking"},
				{label: "Communication with contractors", value: "contractors"},
				{label: "Documents and presentations", value: "documents"},
				{label: "Events and trips", value: "events"},
				{label: "Budgets, reports, spreadsheets", value: "finance"},
				{label: "Personal errands", value: "errands"},
			},
		},
		{
			code:     "work_format",
			prompt:   "Preferred work format",
			kind:     question.QuestionKindMultiChoice,
			required: true,
			options: []seedOption{
				{label: "Remote", value: "remote"},
				{label: "Hybrid", value: "hybrid"},
				{label: "Office only", value: "office"},
			},
		},
		{
			code:     "salary",
			prompt:   "Expected compensation",
			kind:     question.QuestionKindSingleChoice,
			required: true,
			helpText: "Pick the range that matches your experience and the responsibility you are ready to take.",
			options: []seedOption{
				{label: "50 000 – 80 000", value: "50-80"},
				{label: "80 000 – 130 000", value: "80-130"},
				{label: "130 000 – 200 000", value: "130-200"},
				{label: "200 000 – 350 000+", value: "200-350"},
			},
		},
		{
			code:     "positioning",
			prompt:   "Short positioning: a few sentences about you as a specialist",
			kind:     question.QuestionKindText,
			required: true,
			helpText: "Anything you consider important: strengths, working style, what you take off the principal's plate.",
		},
		{
			code:     "files",
			prompt:   "Candidate resume",
			kind:     question.QuestionKindFile,
			required: true,
			helpText: "Please attach your resume. Without it we cannot match you with positions.",
		},
	}
}

func assessmentQuestions() []seedQuestion {
	abc := func(office, personal, business string) []seedOption {
		return []seedOption{
			{label: office, value: "A"},
			{label: personal, value: "B"},
			{label: business, value: "C"},
		}
	}

	return []seedQuestion{
		{
			code: "t1", prompt: "What kind of work energizes you most?",
			kind: question.QuestionKindSingleChoice, required: true,
			options: abc(
				"Keeping the office running like clockwork",
				"Taking personal errands off someone's plate",
				"Driving projects and negotiations forward",
			),
		},
		{
			code: "t2", prompt: "A typical day you would enjoy looks like:",
			kind: question.QuestionKindSingleChoice, required: true,
			options: abc(
				"Documents, schedules and vendor calls",
				"Gifts, bookings, family logistics",
				"Budgets, contractors, reporting",
			),
		},
		{
			code: "t3", prompt: "Which praise would please you most?",
			kind: question.QuestionKindSingleChoice, required: true,
			options: abc(
				"Nothing in the office breaks on your watch",
				"The principal's life simply works",
				"The numbers and deadlines always hold",
			),
		},
		{
			code: "t4", prompt: "Pick the task you would grab first:",
			kind: question.QuestionKindSingleChoice, required: true,
			options: abc(
				"Reorganize the document flow",
				"Plan a surprise trip for the family",
				"Renegotiate a supplier contract",
			),
		},
		{
			code: "t5", prompt: "What do you track most naturally?",
			kind: question.QuestionKindSingleChoice, required: true,
			options: abc(
				"Meeting rooms, supplies, couriers",
				"Birthdays, appointments, preferences",
				"Invoices, margins, timelines",
			),
		},
		{
			code: "t6", prompt: "Your ideal principal is:",
			kind: question.QuestionKindSingleChoice, required: true,
			options: abc(
				"A team that needs a reliable hub",
				"A busy person who needs their life managed",
				"An owner who delegates whole projects",
			),
		},
		{
			code: "t7", prompt: "Under pressure you first:",
			kind: question.QuestionKindSingleChoice, required: true,
			options: abc(
				"Stabilize the routine so nothing slips",
				"Shield the principal from the noise",
				"Re-plan resources and push through",
			),
		},
		{
			code: "t8", prompt: "Which tool set feels like home?",
			kind: question.QuestionKindSingleChoice, required: true,
			options: abc(
				"Calendars, trackers, office systems",
				"Concierge services and trusted contacts",
				"Spreadsheets, CRMs, dashboards",
			),
		},
		{
			code: "t9", prompt: "Success after a year in the role means:",
			kind: question.QuestionKindSingleChoice, required: true,
			options: abc(
				"The office runs without reminders",
				"The principal forgot what routine feels like",
				"The business grew and you grew with it",
			),
		},
	}
}
