package internal

import (
	"errors"

	"github.com/NYCU-SDC/summer/pkg/problem"
)

var (
	// Generic Errors
	ErrInternalServerError = errors.New("internal server error")
	ErrNotFound            = errors.New("not found")
	ErrInvalidRequestBody  = errors.New("invalid request body")

	// Survey Errors
	ErrSurveyNotConfigured = errors.New("no active survey is configured")
	ErrSurveyNotFound      = errors.New("survey not found")

	// Question Errors
	ErrQuestionNotFound       = errors.New("question not found")
	ErrUnknownQuestionKind    = errors.New("unknown question kind")
	ErrDuplicateQuestionOrder = errors.New("a question with this order already exists in the survey")
	ErrOptionNotFound         = errors.New("option not found")

	// Response Errors
	ErrResponseNotFound  = errors.New("response not found")
	ErrNoActiveResponse  = errors.New("no active response for this user and survey")
	ErrStaleInteraction  = errors.New("interaction targets a question that is no longer current")
	ErrResponseCompleted = errors.New("response is already completed")

	// Answer Errors
	ErrWrongAnswerKind = errors.New("answer does not match the current question kind")
	ErrNoFilesUploaded = errors.New("no files uploaded for the current question")

	// User Errors
	ErrUserNotFound = errors.New("user not found")

	// File Errors
	ErrFileNotFound     = errors.New("file not found")
	ErrFileTooLarge     = errors.New("file exceeds maximum size")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrInvalidFileID    = errors.New("invalid file ID")

	// Webhook Errors
	ErrInvalidWebhookSecret = errors.New("invalid webhook secret")
)

func NewProblemWriter() *problem.HttpWriter {
	return problem.NewWithMapping(ErrorHandler)
}

func ErrorHandler(err error) problem.Problem {
	switch {
	case errors.Is(err, ErrInternalServerError):
		return problem.NewInternalServerProblem("internal server error")
	case errors.Is(err, ErrNotFound):
		return problem.NewNotFoundProblem("not found")
	case errors.Is(err, ErrInvalidRequestBody):
		return problem.NewBadRequestProblem("invalid request body")

	// Survey Errors
	case errors.Is(err, ErrSurveyNotConfigured):
		return problem.NewNotFoundProblem("no active survey is configured")
	case errors.Is(err, ErrSurveyNotFound):
		return problem.NewNotFoundProblem("survey not found")

	// Question Errors
	case errors.Is(err, ErrQuestionNotFound):
		return problem.NewNotFoundProblem("question not found")
	case errors.Is(err, ErrUnknownQuestionKind):
		return problem.NewInternalServerProblem("unknown question kind")
	case errors.Is(err, ErrDuplicateQuestionOrder):
		return problem.NewValidateProblem("a question with this order already exists in the survey")
	case errors.Is(err, ErrOptionNotFound):
		return problem.NewNotFoundProblem("option not found")

	// Response Errors
	case errors.Is(err, ErrResponseNotFound):
		return problem.NewNotFoundProblem("response not found")
	case errors.Is(err, ErrNoActiveResponse):
		return problem.NewValidateProblem("no active response for this user and survey")
	case errors.Is(err, ErrStaleInteraction):
		return problem.NewValidateProblem("interaction targets a question that is no longer current")
	case errors.Is(err, ErrResponseCompleted):
		return problem.NewValidateProblem("response is already completed")

	// Answer Errors
	case errors.Is(err, ErrWrongAnswerKind):
		return problem.NewValidateProblem("answer does not match the current question kind")
	case errors.Is(err, ErrNoFilesUploaded):
		return problem.NewValidateProblem("no files uploaded for the current question")

	// User Errors
	case errors.Is(err, ErrUserNotFound):
		return problem.NewNotFoundProblem("user not found")

	// File Errors
	case errors.Is(err, ErrFileNotFound):
		return problem.NewNotFoundProblem("file not found")
	case errors.Is(err, ErrFileTooLarge):
		return problem.NewValidateProblem("file exceeds maximum size")
	case errors.Is(err, ErrUnsupportedMedia):
		return problem.NewValidateProblem("unsupported media type")
	case errors.Is(err, ErrInvalidFileID):
		return problem.NewBadRequestProblem("invalid file ID")

	// Webhook Errors
	case errors.Is(err, ErrInvalidWebhookSecret):
		return problem.NewForbiddenProblem("invalid webhook secret")
	}
	return problem.Problem{}
}
