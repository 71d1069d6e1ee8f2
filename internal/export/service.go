package export

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Client is the narrow slice of asynq.Client the service needs.
type Client interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Service hands completed responses to the export queue. Without a queue
// (no redis configured) it writes straight to the sink, losing the retry
// behavior but not the record.
type Service struct {
	logger *zap.Logger
	client Client
	sink   *Sink
	tracer trace.Tracer
}

func NewService(logger *zap.Logger, client Client, sink *Sink) *Service {
	return &Service{
		logger: logger,
		client: client,
		sink:   sink,
		tracer: otel.Tracer("export/service"),
	}
}

func (s *Service) Enqueue(ctx context.Context, row Row) error {
	ctx, span := s.tracer.Start(ctx, "Enqueue")
	defer span.End()

	if s.client == nil {
		if err := s.sink.Append(row); err != nil {
			span.RecordError(err)
			return err
		}
		return nil
	}

	task, err := NewExportRowTask(row)
	if err != nil {
		span.RecordError(err)
		return err
	}

	info, err := s.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second))
	if err != nil {
		span.RecordError(err)
		return err
	}

	s.logger.Debug("Enqueued export task", zap.String("task_id", info.ID))
	return nil
}
