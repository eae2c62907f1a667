package tasks

import (
	"context"
	"time"

	"sokoni/config"
	"sokoni/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Publisher decouples the lifecycle services from the queue. The services
// publish after their write commits; a failed enqueue is logged, not
// surfaced — the state change already happened.
type Publisher interface {
	Publish(ctx context.Context, ev LifecycleEvent)
}

// AsynqPublisher enqueues lifecycle events on the shared Redis queue.
type AsynqPublisher struct {
	client *asynq.Client
	logger *zap.Logger
}

// NewAsynqPublisher builds a Publisher on the configured Redis queue DB.
func NewAsynqPublisher() *AsynqPublisher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqPublisher{client: client, logger: utils.GetLogger()}
}

func (p *AsynqPublisher) Publish(ctx context.Context, ev LifecycleEvent) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	var (
		task *asynq.Task
		err  error
	)
	switch ev.Entity {
	case "order":
		task, err = NewOrderEventTask(ev)
	default:
		task, err = NewBookingEventTask(ev)
	}
	if err != nil {
		p.logger.Error("failed to build lifecycle event task", zap.Error(err), zap.String("event", ev.Event))
		return
	}

	if _, err := p.client.EnqueueContext(ctx, task); err != nil {
		p.logger.Error("failed to enqueue lifecycle event",
			zap.Error(err),
			zap.String("event", ev.Event),
			zap.String("entity_id", ev.EntityID),
		)
	}
}

// Close releases the underlying queue connection.
func (p *AsynqPublisher) Close() error {
	return p.client.Close()
}
