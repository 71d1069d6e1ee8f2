package chat

import (
	"crypto/subtle"
	"net/http"

	"github.com/sdiki1/assistant-add-bot/internal"

	handlerutil "github.com/NYCU-SDC/summer/pkg/handler"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const secretHeader = "X-Webhook-Secret"

type Handler struct {
	logger        *zap.Logger
	validator     *validator.Validate
	problemWriter *problem.HttpWriter
	engine        *Engine
	secret        string
	tracer        trace.Tracer
}

func NewHandler(
	logger *zap.Logger,
	validator *validator.Validate,
	problemWriter *problem.HttpWriter,
	engine *Engine,
	secret string,
) *Handler {
	return &Handler{
		logger:        logger,
		validator:     validator,
		problemWriter: problemWriter,
		engine:        engine,
		secret:        secret,
		tracer:        otel.Tracer("chat/handler"),
	}
}

type webhookResponse struct {
	OK bool `json:"ok"`
}

// Webhook handles POST /api/chat/webhook. The platform retries non-200
// responses, so engine failures are logged and acknowledged rather than
// surfaced: redelivery would not make them succeed.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "Webhook")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	if h.secret != "" {
		provided := r.Header.Get(secretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
			h.problemWriter.WriteError(traceCtx, w, internal.ErrInvalidWebhookSecret, logger)
			return
		}
	}

	var upd Update
	if err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &upd); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	if err := h.engine.HandleUpdate(traceCtx, upd); err != nil {
		logger.Error("Failed to handle update", zap.Error(err), zap.Int64("update_id", upd.UpdateID))
		span.RecordError(err)
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, webhookResponse{OK: true})
}
