package file

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/sdiki1/assistant-add-bot/internal"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Handler struct {
	logger        *zap.Logger
	problemWriter *problem.HttpWriter
	service       *Service
	tracer        trace.Tracer
}

func NewHandler(logger *zap.Logger, problemWriter *problem.HttpWriter, service *Service) *Handler {
	return &Handler{
		logger:        logger,
		problemWriter: problemWriter,
		service:       service,
		tracer:        otel.Tracer("file/handler"),
	}
}

// Download handles GET /api/files/{id}, serving the stored bytes.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "Download")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	fileID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrInvalidFileID, logger)
		return
	}

	stored, err := h.service.GetByID(traceCtx, fileID)
	if err != nil {
		logger.Warn("Failed to get uploaded file", zap.Error(err), zap.String("file_id", fileID.String()))
		span.RecordError(err)
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	if stored.ContentType.Valid {
		w.Header().Set("Content-Type", stored.ContentType.String)
	}
	w.Header().Set("Content-Disposition", "attachment; filename=\""+stored.Filename+"\"")
	w.Header().Set("Content-Length", strconv.FormatInt(stored.Size, 10))

	http.ServeContent(w, r, stored.Filename, stored.CreatedAt.Time, bytes.NewReader(stored.Data))
}
