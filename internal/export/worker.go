package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// HandleExportRowTask replays a queued row into the sink. Returning an
// error lets asynq retry with backoff.
func HandleExportRowTask(sink *Sink) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var row Row
		if err := json.Unmarshal(t.Payload(), &row); err != nil {
			return fmt.Errorf("decode export row payload: %w", err)
		}
		return sink.Append(row)
	}
}

// Worker owns the asynq server consuming the export queue.
type Worker struct {
	logger *zap.Logger
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(logger *zap.Logger, redisAddr string, sink *Sink) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{Concurrency: 1},
	)

	mux := asynq.NewServeMux()
	mux.Handle(TypeExportRow, HandleExportRowTask(sink))

	return &Worker{
		logger: logger,
		server: server,
		mux:    mux,
	}
}

func (w *Worker) Run() error {
	w.logger.Info("Starting export worker")
	return w.server.Run(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
