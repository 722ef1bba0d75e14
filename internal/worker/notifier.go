package worker

import (
	"context"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/queue-notifier/internal/model"
	"github.com/aliskhannn/queue-notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=notifier.go -destination=../mocks/worker/mock.go -package=mocks

type deliveryConsumer interface {
	Consume(out chan<- queue.DeliveryJob, strategy retry.Strategy) error
}

type jobHandler interface {
	HandleJob(ctx context.Context, job queue.DeliveryJob, strategy retry.Strategy)
}

type notificationService interface {
	GetNotificationStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (model.Status, error)
}

// Notifier is the worker pool that drains the delivery queue. Each job is
// prechecked against the current notification status so a record that already
// reached a terminal state is never attempted again.
type Notifier struct {
	queue   deliveryConsumer
	handler jobHandler
	service notificationService
}

func NewNotifier(q deliveryConsumer, h jobHandler, s notificationService) *Notifier {
	return &Notifier{
		queue:   q,
		handler: h,
		service: s,
	}
}

func (n *Notifier) Run(ctx context.Context, strategy retry.Strategy, workerCount int) {
	jobChan := make(chan queue.DeliveryJob)

	go func() {
		if err := n.queue.Consume(jobChan, strategy); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to consume delivery jobs")
		}
	}()

	for i := 0; i < workerCount; i++ {
		go func(id int) {
			zlog.Logger.Printf("worker-%d started", id)

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Printf("worker-%d shutting down", id)
					return
				case job := <-jobChan:
					status, err := n.service.GetNotificationStatusByID(ctx, strategy, job.NotificationID)
					if err != nil {
						zlog.Logger.Printf("failed to get status for %s: %v", job.NotificationID, err)
						continue
					}

					if status != model.StatusPending {
						zlog.Logger.Printf("notification %s already %s, skipping", job.NotificationID, status)
						continue
					}

					n.handler.HandleJob(ctx, job, strategy)
				}
			}
		}(i)
	}

	<-ctx.Done()
	zlog.Logger.Print("notifier stopped")
}
