package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/aliskhannn/queue-notifier/internal/mocks/worker"
	"github.com/aliskhannn/queue-notifier/internal/model"
	"github.com/aliskhannn/queue-notifier/internal/rabbitmq/queue"
)

func TestNotifier_Run_HandleJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConsumer := mocks.NewMockdeliveryConsumer(ctrl)
	mockHandler := mocks.NewMockjobHandler(ctrl)
	mockService := mocks.NewMocknotificationService(ctrl)

	n := NewNotifier(mockConsumer, mockHandler, mockService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	job := queue.DeliveryJob{
		NotificationID: uuid.New(),
		Channel:        model.ChannelSMS,
	}

	mockConsumer.EXPECT().Consume(gomock.Any(), strategy).DoAndReturn(
		func(out chan<- queue.DeliveryJob, _ retry.Strategy) error {
			out <- job
			return nil
		},
	)

	mockService.EXPECT().
		GetNotificationStatusByID(gomock.Any(), strategy, job.NotificationID).
		Return(model.StatusPending, nil)
	mockHandler.EXPECT().HandleJob(gomock.Any(), job, strategy)

	go n.Run(ctx, strategy, 1)

	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)
}

func TestNotifier_Run_SkipsSettledNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConsumer := mocks.NewMockdeliveryConsumer(ctrl)
	mockHandler := mocks.NewMockjobHandler(ctrl)
	mockService := mocks.NewMocknotificationService(ctrl)

	n := NewNotifier(mockConsumer, mockHandler, mockService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}
	job := queue.DeliveryJob{NotificationID: uuid.New(), Channel: model.ChannelEmail}

	mockConsumer.EXPECT().Consume(gomock.Any(), strategy).DoAndReturn(
		func(out chan<- queue.DeliveryJob, _ retry.Strategy) error {
			out <- job
			return nil
		},
	)

	// A terminal record never reaches the handler.
	mockService.EXPECT().
		GetNotificationStatusByID(gomock.Any(), strategy, job.NotificationID).
		Return(model.StatusSent, nil)

	go n.Run(ctx, strategy, 1)
	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)
}

func TestNotifier_Run_GetStatusError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConsumer := mocks.NewMockdeliveryConsumer(ctrl)
	mockHandler := mocks.NewMockjobHandler(ctrl)
	mockService := mocks.NewMocknotificationService(ctrl)

	n := NewNotifier(mockConsumer, mockHandler, mockService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}
	job := queue.DeliveryJob{NotificationID: uuid.New()}

	mockConsumer.EXPECT().Consume(gomock.Any(), strategy).DoAndReturn(
		func(out chan<- queue.DeliveryJob, _ retry.Strategy) error {
			out <- job
			return nil
		},
	)

	mockService.EXPECT().
		GetNotificationStatusByID(gomock.Any(), strategy, job.NotificationID).
		Return(model.Status(""), errors.New("db error"))

	go n.Run(ctx, strategy, 1)
	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)
}

func TestNotifier_Run_ContextCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConsumer := mocks.NewMockdeliveryConsumer(ctrl)
	mockHandler := mocks.NewMockjobHandler(ctrl)
	mockService := mocks.NewMocknotificationService(ctrl)

	n := NewNotifier(mockConsumer, mockHandler, mockService)

	ctx, cancel := context.WithCancel(context.Background())

	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	done := make(chan struct{})
	mockConsumer.EXPECT().Consume(gomock.Any(), strategy).DoAndReturn(
		func(out chan<- queue.DeliveryJob, _ retry.Strategy) error {
			<-done
			return nil
		},
	)

	go n.Run(ctx, strategy, 2)

	cancel()
	close(done)

	time.Sleep(50 * time.Millisecond)
	assert.True(t, true, "notifier stopped cleanly")
}
