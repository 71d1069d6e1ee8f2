package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/sdiki1/assistant-add-bot/internal/file"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Transport is the outbound edge to the chat platform. The engine only
// talks to this interface, tests substitute a mock.
type Transport interface {
	SendMessage(ctx context.Context, chatID int64, text string, kb *Keyboard) (int64, error)
	EditKeyboard(ctx context.Context, chatID, messageID int64, kb *Keyboard) error
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
	AnswerCallback(ctx context.Context, callbackID, notice string, alert bool) error
	SendDocument(ctx context.Context, chatID int64, filePath string) error
	FetchFile(ctx context.Context, remoteFileID string) (file.Meta, io.ReadCloser, error)
}

// HTTPTransport implements Transport against the platform's bot HTTP API.
type HTTPTransport struct {
	logger  *zap.Logger
	client  *http.Client
	baseURL string
	token   string
	tracer  trace.Tracer
}

func NewHTTPTransport(logger *zap.Logger, baseURL, token string) *HTTPTransport {
	return &HTTPTransport{
		logger:  logger,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		tracer:  otel.Tracer("chat/transport"),
	}
}

type apiEnvelope struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
}

func (t *HTTPTransport) call(ctx context.Context, method string, payload any, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if !envelope.OK {
		return fmt.Errorf("%s rejected: %s", method, envelope.Description)
	}
	if result != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}

	return nil
}

func (t *HTTPTransport) SendMessage(ctx context.Context, chatID int64, text string, kb *Keyboard) (int64, error) {
	ctx, span := t.tracer.Start(ctx, "SendMessage")
	defer span.End()

	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if kb != nil {
		payload["reply_markup"] = kb
	}

	var sent struct {
		MessageID int64 `json:"message_id"`
	}
	if err := t.call(ctx, "sendMessage", payload, &sent); err != nil {
		span.RecordError(err)
		return 0, err
	}

	return sent.MessageID, nil
}

func (t *HTTPTransport) EditKeyboard(ctx context.Context, chatID, messageID int64, kb *Keyboard) error {
	ctx, span := t.tracer.Start(ctx, "EditKeyboard")
	defer span.End()

	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
	}
	if kb != nil {
		payload["reply_markup"] = kb
	}

	if err := t.call(ctx, "editMessageReplyMarkup", payload, nil); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (t *HTTPTransport) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	ctx, span := t.tracer.Start(ctx, "DeleteMessage")
	defer span.End()

	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
	}
	if err := t.call(ctx, "deleteMessage", payload, nil); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (t *HTTPTransport) AnswerCallback(ctx context.Context, callbackID, notice string, alert bool) error {
	ctx, span := t.tracer.Start(ctx, "AnswerCallback")
	defer span.End()

	payload := map[string]any{
		"callback_query_id": callbackID,
		"text":              notice,
		"show_alert":        alert,
	}
	if err := t.call(ctx, "answerCallbackQuery", payload, nil); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// SendDocument uploads a local file as a document attachment. Documents go
// out as multipart form data, unlike the JSON methods.
func (t *HTTPTransport) SendDocument(ctx context.Context, chatID int64, filePath string) error {
	ctx, span := t.tracer.Start(ctx, "SendDocument")
	defer span.End()

	doc, err := os.Open(filePath)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("open document %s: %w", filePath, err)
	}
	defer doc.Close()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return err
	}
	part, err := form.CreateFormFile("document", path.Base(filePath))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, doc); err != nil {
		span.RecordError(err)
		return fmt.Errorf("read document %s: %w", filePath, err)
	}
	if err := form.Close(); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendDocument", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		span.RecordError(err)
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := t.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("call sendDocument: %w", err)
	}
	defer resp.Body.Close()

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		span.RecordError(err)
		return fmt.Errorf("decode sendDocument response: %w", err)
	}
	if !envelope.OK {
		err := fmt.Errorf("sendDocument rejected: %s", envelope.Description)
		span.RecordError(err)
		return err
	}

	return nil
}

// FetchFile resolves the remote file id to a download path and opens a
// stream over it. The caller owns the returned reader.
func (t *HTTPTransport) FetchFile(ctx context.Context, remoteFileID string) (file.Meta, io.ReadCloser, error) {
	ctx, span := t.tracer.Start(ctx, "FetchFile")
	defer span.End()

	var info struct {
		FileID       string `json:"file_id"`
		FileUniqueID string `json:"file_unique_id"`
		FileSize     int64  `json:"file_size"`
		FilePath     string `json:"file_path"`
	}
	if err := t.call(ctx, "getFile", map[string]any{"file_id": remoteFileID}, &info); err != nil {
		span.RecordError(err)
		return file.Meta{}, nil, err
	}

	url := fmt.Sprintf("%s/file/bot%s/%s", t.baseURL, t.token, info.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		span.RecordError(err)
		return file.Meta{}, nil, err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return file.Meta{}, nil, fmt.Errorf("download file %s: %w", remoteFileID, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		err := fmt.Errorf("download file %s: unexpected status %d", remoteFileID, resp.StatusCode)
		span.RecordError(err)
		return file.Meta{}, nil, err
	}

	meta := file.Meta{
		RemoteFileID:   remoteFileID,
		RemoteUniqueID: info.FileUniqueID,
		Filename:       path.Base(info.FilePath),
		ContentType:    resp.Header.Get("Content-Type"),
		Size:           info.FileSize,
	}

	return meta, resp.Body, nil
}
