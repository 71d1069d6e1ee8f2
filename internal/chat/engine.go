package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sdiki1/assistant-add-bot/internal"
	"github.com/sdiki1/assistant-add-bot/internal/export"
	"github.com/sdiki1/assistant-add-bot/internal/file"
	"github.com/sdiki1/assistant-add-bot/internal/survey"
	"github.com/sdiki1/assistant-add-bot/internal/survey/answer"
	"github.com/sdiki1/assistant-add-bot/internal/survey/question"
	"github.com/sdiki1/assistant-add-bot/internal/survey/response"
	"github.com/sdiki1/assistant-add-bot/internal/survey/result"
	"github.com/sdiki1/assistant-add-bot/internal/user"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	msgNotConfigured = "No survey is available right now. Please try again later."
	msgCompleted     = "Thank you! Your answers have been recorded."
	msgFileReceived  = "Received. Send more files or press \"Finish upload\"."
	msgManualEntry   = "Please type your phone number."
	msgStale         = "This question is no longer active."
	msgNeedFiles     = "Please upload at least one file first."
	msgNeedChoice    = "Please select at least one option first."

	msgRetryText    = "Please answer with a text message."
	msgRetryChoice  = "Please use the buttons to answer this question."
	msgRetryFile    = "Please send a file to answer this question."
	msgRetryContact = "Please share your contact or type a phone number."
)

var assessmentResultText = map[result.Category]string{
	result.CategoryOffice:   "Your profile fits an office assistant best.",
	result.CategoryPersonal: "Your profile fits a personal assistant best.",
	result.CategoryBusiness: "Your profile fits a business assistant best.",
	result.CategoryMulti:    "Your profile blends several assistant types.",
}

var resultDocuments = map[result.Category]string{
	result.CategoryOffice:   "office.pdf",
	result.CategoryPersonal: "personal.pdf",
	result.CategoryBusiness: "business.pdf",
	result.CategoryMulti:    "multi.pdf",
}

type SurveyStore interface {
	GetActive(ctx context.Context) (survey.Survey, error)
	GetByCode(ctx context.Context, code string) (survey.Survey, error)
	GetByID(ctx context.Context, id uuid.UUID) (survey.Survey, error)
}

type QuestionStore interface {
	First(ctx context.Context, surveyID uuid.UUID) (question.Askable, bool, error)
	Get(ctx context.Context, id uuid.UUID) (question.Askable, error)
}

type ResponseStore interface {
	Start(ctx context.Context, userID, surveyID, firstQuestionID uuid.UUID) (response.Response, error)
	AbandonActive(ctx context.Context, userID, surveyID uuid.UUID) error
	GetActive(ctx context.Context, userID, surveyID uuid.UUID) (response.Response, error)
	Advance(ctx context.Context, id uuid.UUID) (response.Response, question.Askable, error)
	RecordPromptMessage(ctx context.Context, id uuid.UUID, messageID int64) error
	RecordUserMessage(ctx context.Context, id uuid.UUID, messageID int64) error
}

type AnswerStore interface {
	Get(ctx context.Context, responseID, questionID uuid.UUID) (answer.Answer, error)
	SaveText(ctx context.Context, responseID, questionID uuid.UUID, text string) (answer.Answer, error)
	SaveOptions(ctx context.Context, responseID, questionID uuid.UUID, optionIDs []uuid.UUID) (answer.Answer, error)
	Toggle(ctx context.Context, responseID, questionID, optionID uuid.UUID) (answer.Answer, error)
	RecordFile(ctx context.Context, responseID, questionID, fileID uuid.UUID) (answer.Answer, error)
}

type UserStore interface {
	Upsert(ctx context.Context, chatID int64, username, firstName, lastName string) (user.User, error)
	UpdatePhone(ctx context.Context, id uuid.UUID, phone string) (user.User, error)
}

type FileStore interface {
	SaveIncoming(ctx context.Context, responseID, questionID uuid.UUID, meta file.Meta, content io.Reader) (file.UploadedFile, error)
}

type Projector interface {
	Transcript(ctx context.Context, resp response.Response) ([]result.Line, error)
	ExportRow(ctx context.Context, resp response.Response) (export.Row, error)
}

type Classifier interface {
	Classify(ctx context.Context, resp response.Response) (result.Category, error)
}

type Exporter interface {
	Enqueue(ctx context.Context, row export.Row) error
}

// Engine drives the conversation: one inbound event in, zero or more
// outbound messages, and the response state machine moved at most one step.
type Engine struct {
	logger *zap.Logger
	tracer trace.Tracer

	surveyStore    SurveyStore
	questionStore  QuestionStore
	responseStore  ResponseStore
	answerStore    AnswerStore
	userStore      UserStore
	fileStore      FileStore
	projector      Projector
	classifier     Classifier
	exporter       Exporter
	transport      Transport
	assessmentCode string
	resultDocDir   string

	// chat-level serialization: events for one conversation are handled to
	// completion before the next one starts.
	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

func NewEngine(
	logger *zap.Logger,
	surveyStore SurveyStore,
	questionStore QuestionStore,
	responseStore ResponseStore,
	answerStore AnswerStore,
	userStore UserStore,
	fileStore FileStore,
	projector Projector,
	classifier Classifier,
	exporter Exporter,
	transport Transport,
	assessmentCode string,
	resultDocDir string,
) *Engine {
	return &Engine{
		logger:         logger,
		tracer:         otel.Tracer("chat/engine"),
		surveyStore:    surveyStore,
		questionStore:  questionStore,
		responseStore:  responseStore,
		answerStore:    answerStore,
		userStore:      userStore,
		fileStore:      fileStore,
		projector:      projector,
		classifier:     classifier,
		exporter:       exporter,
		transport:      transport,
		assessmentCode: assessmentCode,
		resultDocDir:   resultDocDir,
		locks:          map[int64]*sync.Mutex{},
	}
}

func (e *Engine) chatLock(chatID int64) *sync.Mutex {
	e.locksMu.Lock()
	defer e.locksMu.Unlock()

	lock, ok := e.locks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[chatID] = lock
	}
	return lock
}

// HandleUpdate dispatches one webhook event. Events for the same chat are
// serialized; errors reaching here mean the event could not be applied at
// all, softer conditions are already turned into user notices.
func (e *Engine) HandleUpdate(ctx context.Context, upd Update) error {
	ctx, span := e.tracer.Start(ctx, "HandleUpdate")
	defer span.End()

	switch {
	case upd.Message != nil:
		lock := e.chatLock(upd.Message.Chat.ID)
		lock.Lock()
		defer lock.Unlock()
		return e.handleMessage(ctx, upd.Message)

	case upd.CallbackQuery != nil && upd.CallbackQuery.Message != nil:
		lock := e.chatLock(upd.CallbackQuery.Message.Chat.ID)
		lock.Lock()
		defer lock.Unlock()
		return e.handleCallback(ctx, upd.CallbackQuery)

	default:
		// Nothing actionable; acknowledged and dropped.
		return nil
	}
}

func (e *Engine) handleMessage(ctx context.Context, msg *Message) error {
	ctx, span := e.tracer.Start(ctx, "handleMessage")
	defer span.End()
	logger := logutil.WithContext(ctx, e.logger)

	usr, err := e.upsertSender(ctx, msg)
	if err != nil {
		span.RecordError(err)
		return err
	}

	command := strings.TrimSpace(msg.Text)
	if command == "/start" || command == "/restart" {
		return e.start(ctx, msg.Chat.ID, usr, "")
	}

	resp, err := e.activeResponse(ctx, usr.ID)
	if err != nil {
		if errors.Is(err, internal.ErrNoActiveResponse) {
			e.notify(ctx, msg.Chat.ID, "Send /start to begin.")
			return nil
		}
		span.RecordError(err)
		return err
	}

	if err := e.responseStore.RecordUserMessage(ctx, resp.ID, msg.MessageID); err != nil {
		logger.Warn("Failed to record user message id", zap.Error(err))
	}

	if !resp.CurrentQuestionID.Valid {
		span.RecordError(internal.ErrQuestionNotFound)
		return internal.ErrQuestionNotFound
	}

	ask, err := e.questionStore.Get(ctx, uuid.UUID(resp.CurrentQuestionID.Bytes))
	if err != nil {
		span.RecordError(err)
		return err
	}

	switch {
	case msg.Contact != nil:
		return e.applyContact(ctx, msg.Chat.ID, usr, resp, ask, msg.Contact.PhoneNumber)
	case msg.hasAttachment():
		return e.applyFile(ctx, msg, resp, ask)
	default:
		return e.applyText(ctx, msg.Chat.ID, usr, resp, ask, msg.Text)
	}
}

func (e *Engine) applyText(ctx context.Context, chatID int64, usr user.User, resp response.Response, ask question.Askable, text string) error {
	ctx, span := e.tracer.Start(ctx, "applyText")
	defer span.End()

	trimmed := strings.TrimSpace(text)
	q := ask.Question()

	switch q.Kind {
	case question.QuestionKindText:
		if err := ask.Validate(question.Input{Text: trimmed}); err != nil {
			e.notify(ctx, chatID, msgRetryText)
			return nil
		}
		if _, err := e.answerStore.SaveText(ctx, resp.ID, q.ID, trimmed); err != nil {
			span.RecordError(err)
			return err
		}
		return e.advance(ctx, chatID, resp.ID)

	case question.QuestionKindContact:
		// Manual phone entry.
		return e.applyContact(ctx, chatID, usr, resp, ask, trimmed)

	case question.QuestionKindFile:
		e.notify(ctx, chatID, msgRetryFile)
		return nil

	default:
		e.notify(ctx, chatID, msgRetryChoice)
		return nil
	}
}

func (e *Engine) applyContact(ctx context.Context, chatID int64, usr user.User, resp response.Response, ask question.Askable, phone string) error {
	ctx, span := e.tracer.Start(ctx, "applyContact")
	defer span.End()
	logger := logutil.WithContext(ctx, e.logger)

	q := ask.Question()
	if q.Kind != question.QuestionKindContact {
		e.notify(ctx, chatID, msgRetryChoice)
		return nil
	}

	if err := ask.Validate(question.Input{Text: phone}); err != nil {
		e.notify(ctx, chatID, msgRetryContact)
		return nil
	}

	if _, err := e.userStore.UpdatePhone(ctx, usr.ID, phone); err != nil {
		// Profile update is secondary to the answer itself.
		logger.Warn("Failed to persist phone to profile", zap.Error(err))
	}

	if _, err := e.answerStore.SaveText(ctx, resp.ID, q.ID, phone); err != nil {
		span.RecordError(err)
		return err
	}

	return e.advance(ctx, chatID, resp.ID)
}

func (e *Engine) applyFile(ctx context.Context, msg *Message, resp response.Response, ask question.Askable) error {
	ctx, span := e.tracer.Start(ctx, "applyFile")
	defer span.End()
	logger := logutil.WithContext(ctx, e.logger)

	q := ask.Question()
	if q.Kind != question.QuestionKindFile {
		e.notify(ctx, msg.Chat.ID, msgRetryChoice)
		return nil
	}

	remoteID, incoming := attachmentMeta(msg)

	fetched, content, err := e.transport.FetchFile(ctx, remoteID)
	if err != nil {
		logger.Warn("Failed to fetch attachment", zap.Error(err), zap.String("remote_file_id", remoteID))
		e.notify(ctx, msg.Chat.ID, msgRetryFile)
		return nil
	}
	defer content.Close()

	meta := mergeMeta(incoming, fetched)

	stored, err := e.fileStore.SaveIncoming(ctx, resp.ID, q.ID, meta, content)
	if err != nil {
		if errors.Is(err, internal.ErrFileTooLarge) || errors.Is(err, internal.ErrUnsupportedMedia) {
			e.notify(ctx, msg.Chat.ID, msgRetryFile)
			return nil
		}
		span.RecordError(err)
		return err
	}

	if _, err := e.answerStore.RecordFile(ctx, resp.ID, q.ID, stored.ID); err != nil {
		span.RecordError(err)
		return err
	}

	e.notify(ctx, msg.Chat.ID, msgFileReceived)
	return nil
}

func (e *Engine) handleCallback(ctx context.Context, cb *CallbackQuery) error {
	ctx, span := e.tracer.Start(ctx, "handleCallback")
	defer span.End()
	logger := logutil.WithContext(ctx, e.logger)

	chatID := cb.Message.Chat.ID

	from := cb.From
	if from == nil {
		from = &From{ID: chatID}
	}
	usr, err := e.userStore.Upsert(ctx, chatID, from.Username, from.FirstName, from.LastName)
	if err != nil {
		span.RecordError(err)
		return err
	}

	parsed, err := ParseCallback(cb.Data)
	if err != nil {
		logger.Warn("Dropping malformed callback", zap.String("data", cb.Data), zap.Error(err))
		e.answerCallback(ctx, cb.ID, "", false)
		return nil
	}

	if parsed.StartAssessment {
		e.answerCallback(ctx, cb.ID, "", false)
		return e.start(ctx, chatID, usr, e.assessmentCode)
	}

	resp, err := e.activeResponse(ctx, usr.ID)
	if err != nil && !errors.Is(err, internal.ErrNoActiveResponse) {
		span.RecordError(err)
		return err
	}

	// Stale guard: a press on anything but the current question of a live
	// response is acknowledged and discarded without touching state.
	if err != nil || !resp.CurrentQuestionID.Valid || uuid.UUID(resp.CurrentQuestionID.Bytes) != parsed.QuestionID {
		e.answerCallback(ctx, cb.ID, msgStale, true)
		return nil
	}

	if parsed.ManualEntry {
		e.answerCallback(ctx, cb.ID, "", false)
		e.notify(ctx, chatID, msgManualEntry)
		return nil
	}

	ask, err := e.questionStore.Get(ctx, parsed.QuestionID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	q := ask.Question()

	switch {
	case parsed.HasOption && q.Kind == question.QuestionKindSingleChoice:
		if err := ask.Validate(question.Input{OptionIDs: []uuid.UUID{parsed.OptionID}}); err != nil {
			e.answerCallback(ctx, cb.ID, msgStale, true)
			return nil
		}
		if _, err := e.answerStore.SaveOptions(ctx, resp.ID, q.ID, []uuid.UUID{parsed.OptionID}); err != nil {
			span.RecordError(err)
			return err
		}
		e.clearKeyboard(ctx, chatID, cb.Message.MessageID)
		e.answerCallback(ctx, cb.ID, "", false)
		return e.advance(ctx, chatID, resp.ID)

	case parsed.HasOption && q.Kind == question.QuestionKindMultiChoice:
		toggled, err := e.answerStore.Toggle(ctx, resp.ID, q.ID, parsed.OptionID)
		if err != nil {
			span.RecordError(err)
			return err
		}
		if err := e.transport.EditKeyboard(ctx, chatID, cb.Message.MessageID, multiChoiceKeyboard(ask, toggled.OptionIds)); err != nil {
			logger.Warn("Failed to re-render keyboard", zap.Error(err))
		}
		e.answerCallback(ctx, cb.ID, "", false)
		return nil

	case parsed.Done && q.Kind == question.QuestionKindMultiChoice:
		current, err := e.answerStore.Get(ctx, resp.ID, q.ID)
		if err != nil && !errors.Is(err, internal.ErrNotFound) {
			span.RecordError(err)
			return err
		}
		if err := ask.Validate(question.Input{OptionIDs: current.OptionIds}); err != nil {
			e.answerCallback(ctx, cb.ID, msgNeedChoice, true)
			return nil
		}
		e.clearKeyboard(ctx, chatID, cb.Message.MessageID)
		e.answerCallback(ctx, cb.ID, "", false)
		return e.advance(ctx, chatID, resp.ID)

	case parsed.DoneFiles && q.Kind == question.QuestionKindFile:
		current, err := e.answerStore.Get(ctx, resp.ID, q.ID)
		if err != nil && !errors.Is(err, internal.ErrNotFound) {
			span.RecordError(err)
			return err
		}
		if err := ask.Validate(question.Input{FileIDs: current.FileIds}); err != nil {
			e.answerCallback(ctx, cb.ID, msgNeedFiles, true)
			return nil
		}
		e.clearKeyboard(ctx, chatID, cb.Message.MessageID)
		e.answerCallback(ctx, cb.ID, "", false)
		return e.advance(ctx, chatID, resp.ID)

	default:
		e.answerCallback(ctx, cb.ID, msgStale, true)
		return nil
	}
}

// start begins (or restarts) a conversation. An empty code means the
// currently active survey.
func (e *Engine) start(ctx context.Context, chatID int64, usr user.User, code string) error {
	ctx, span := e.tracer.Start(ctx, "start")
	defer span.End()
	logger := logutil.WithContext(ctx, e.logger)

	var srv survey.Survey
	var err error
	if code == "" {
		srv, err = e.surveyStore.GetActive(ctx)
	} else {
		srv, err = e.surveyStore.GetByCode(ctx, code)
	}
	if err != nil {
		if errors.Is(err, internal.ErrSurveyNotConfigured) || errors.Is(err, internal.ErrSurveyNotFound) {
			e.notify(ctx, chatID, msgNotConfigured)
			return nil
		}
		span.RecordError(err)
		return err
	}

	first, ok, err := e.questionStore.First(ctx, srv.ID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !ok {
		e.notify(ctx, chatID, msgNotConfigured)
		return nil
	}

	// Abandon before creating, so at most one response per (user, survey)
	// is ever in progress.
	if err := e.responseStore.AbandonActive(ctx, usr.ID, srv.ID); err != nil {
		span.RecordError(err)
		return err
	}

	resp, err := e.responseStore.Start(ctx, usr.ID, srv.ID, first.Question().ID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	logger.Info("Conversation started",
		zap.Int64("chat_id", chatID),
		zap.String("survey_code", srv.Code),
		zap.String("response_id", resp.ID.String()))

	return e.sendQuestion(ctx, chatID, resp, first)
}

// advance moves the response one step and either sends the next question or
// runs the finish path.
func (e *Engine) advance(ctx context.Context, chatID int64, responseID uuid.UUID) error {
	ctx, span := e.tracer.Start(ctx, "advance")
	defer span.End()

	updated, next, err := e.responseStore.Advance(ctx, responseID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if next != nil {
		return e.sendQuestion(ctx, chatID, updated, next)
	}

	return e.finish(ctx, chatID, updated)
}

func (e *Engine) sendQuestion(ctx context.Context, chatID int64, resp response.Response, ask question.Askable) error {
	ctx, span := e.tracer.Start(ctx, "sendQuestion")
	defer span.End()
	logger := logutil.WithContext(ctx, e.logger)

	q := ask.Question()
	text := q.Prompt
	if q.HelpText.Valid && q.HelpText.String != "" {
		text += "\n\n" + q.HelpText.String
	}

	var selected []uuid.UUID
	if q.Kind == question.QuestionKindMultiChoice {
		if current, err := e.answerStore.Get(ctx, resp.ID, q.ID); err == nil {
			selected = current.OptionIds
		}
	}

	messageID, err := e.transport.SendMessage(ctx, chatID, text, keyboardFor(ask, selected))
	if err != nil {
		logger.Error("Failed to send question", zap.Error(err), zap.String("question_code", q.Code))
		span.RecordError(err)
		return nil
	}

	if err := e.responseStore.RecordPromptMessage(ctx, resp.ID, messageID); err != nil {
		logger.Warn("Failed to record prompt message id", zap.Error(err))
	}

	return nil
}

func (e *Engine) finish(ctx context.Context, chatID int64, resp response.Response) error {
	ctx, span := e.tracer.Start(ctx, "finish")
	defer span.End()
	logger := logutil.WithContext(ctx, e.logger)

	srv, err := e.surveyStore.GetByID(ctx, resp.SurveyID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if e.assessmentCode != "" && srv.Code == e.assessmentCode {
		return e.finishAssessment(ctx, chatID, resp)
	}

	row, err := e.projector.ExportRow(ctx, resp)
	if err != nil {
		logger.Error("Failed to project export row", zap.Error(err))
	} else if err := e.exporter.Enqueue(ctx, row); err != nil {
		// The conversation still finishes; the export is recoverable from
		// the database.
		logger.Error("Failed to enqueue export", zap.Error(err))
	}

	// The completion message carries the invite into the scored assessment.
	var offer *Keyboard
	if e.assessmentCode != "" {
		offer = assessmentOfferKeyboard()
	}

	lines, err := e.projector.Transcript(ctx, resp)
	if err != nil {
		logger.Error("Failed to build transcript", zap.Error(err))
		e.send(ctx, chatID, msgCompleted, offer)
		return nil
	}

	var b strings.Builder
	b.WriteString(msgCompleted)
	b.WriteString("\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "\n%s\n%s\n", line.Prompt, line.Rendered)
	}

	e.send(ctx, chatID, b.String(), offer)
	return nil
}

func (e *Engine) finishAssessment(ctx context.Context, chatID int64, resp response.Response) error {
	ctx, span := e.tracer.Start(ctx, "finishAssessment")
	defer span.End()
	logger := logutil.WithContext(ctx, e.logger)

	category, err := e.classifier.Classify(ctx, resp)
	if err != nil {
		span.RecordError(err)
		return err
	}

	// Clean the question history out of the chat before posting the result.
	for _, messageID := range resp.PromptMessageIds {
		if err := e.transport.DeleteMessage(ctx, chatID, messageID); err != nil {
			logger.Warn("Failed to delete prompt message", zap.Error(err), zap.Int64("message_id", messageID))
		}
	}

	e.notify(ctx, chatID, assessmentResultText[category])

	if e.resultDocDir != "" {
		docPath := filepath.Join(e.resultDocDir, resultDocuments[category])
		if _, err := os.Stat(docPath); err != nil {
			logger.Warn("Assessment result document not available", zap.String("path", docPath))
		} else if err := e.transport.SendDocument(ctx, chatID, docPath); err != nil {
			logger.Warn("Failed to send result document", zap.Error(err), zap.String("path", docPath))
		}
	}

	logger.Info("Assessment finished",
		zap.Int64("chat_id", chatID),
		zap.String("category", string(category)))

	return nil
}

// activeResponse finds the in-progress response for the user, checking the
// active survey first and the assessment survey second.
func (e *Engine) activeResponse(ctx context.Context, userID uuid.UUID) (response.Response, error) {
	var surveys []survey.Survey

	if srv, err := e.surveyStore.GetActive(ctx); err == nil {
		surveys = append(surveys, srv)
	} else if !errors.Is(err, internal.ErrSurveyNotConfigured) {
		return response.Response{}, err
	}

	if e.assessmentCode != "" {
		if srv, err := e.surveyStore.GetByCode(ctx, e.assessmentCode); err == nil {
			surveys = append(surveys, srv)
		} else if !errors.Is(err, internal.ErrSurveyNotFound) {
			return response.Response{}, err
		}
	}

	for _, srv := range surveys {
		resp, err := e.responseStore.GetActive(ctx, userID, srv.ID)
		if err == nil {
			return resp, nil
		}
		if !errors.Is(err, internal.ErrNoActiveResponse) {
			return response.Response{}, err
		}
	}

	return response.Response{}, internal.ErrNoActiveResponse
}

func (e *Engine) upsertSender(ctx context.Context, msg *Message) (user.User, error) {
	from := msg.From
	if from == nil {
		from = &From{ID: msg.Chat.ID}
	}
	return e.userStore.Upsert(ctx, msg.Chat.ID, from.Username, from.FirstName, from.LastName)
}

// notify sends a plain message; delivery failures are logged, never fatal.
func (e *Engine) notify(ctx context.Context, chatID int64, text string) {
	e.send(ctx, chatID, text, nil)
}

func (e *Engine) send(ctx context.Context, chatID int64, text string, kb *Keyboard) {
	if _, err := e.transport.SendMessage(ctx, chatID, text, kb); err != nil {
		e.logger.Warn("Failed to send notice", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (e *Engine) answerCallback(ctx context.Context, callbackID, notice string, alert bool) {
	if err := e.transport.AnswerCallback(ctx, callbackID, notice, alert); err != nil {
		e.logger.Warn("Failed to answer callback", zap.Error(err))
	}
}

func (e *Engine) clearKeyboard(ctx context.Context, chatID, messageID int64) {
	if err := e.transport.EditKeyboard(ctx, chatID, messageID, nil); err != nil {
		e.logger.Warn("Failed to clear keyboard", zap.Error(err))
	}
}

func attachmentMeta(msg *Message) (string, file.Meta) {
	if msg.Document != nil {
		return msg.Document.FileID, file.Meta{
			RemoteFileID:   msg.Document.FileID,
			RemoteUniqueID: msg.Document.FileUniqueID,
			Filename:       msg.Document.FileName,
			ContentType:    msg.Document.MimeType,
			Size:           msg.Document.FileSize,
			MediaKind:      "document",
		}
	}

	// Largest photo rendition carries the best quality.
	best := msg.Photo[0]
	for _, p := range msg.Photo[1:] {
		if p.Width*p.Height > best.Width*best.Height {
			best = p
		}
	}
	return best.FileID, file.Meta{
		RemoteFileID:   best.FileID,
		RemoteUniqueID: best.FileUniqueID,
		Size:           best.FileSize,
		MediaKind:      "photo",
	}
}

// mergeMeta prefers what the message declared, filling gaps from the
// platform's file info.
func mergeMeta(incoming, fetched file.Meta) file.Meta {
	merged := incoming
	if merged.Filename == "" {
		merged.Filename = fetched.Filename
	}
	if merged.ContentType == "" {
		merged.ContentType = fetched.ContentType
	}
	if merged.Size == 0 {
		merged.Size = fetched.Size
	}
	if merged.RemoteUniqueID == "" {
		merged.RemoteUniqueID = fetched.RemoteUniqueID
	}
	return merged
}
