package delivery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/aliskhannn/queue-notifier/internal/mocks/rabbitmq/handlers/delivery"
	"github.com/aliskhannn/queue-notifier/internal/model"
	"github.com/aliskhannn/queue-notifier/internal/rabbitmq/queue"
	"github.com/aliskhannn/queue-notifier/internal/sender"
)

func TestHandler_HandleJob_Delivered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	smsSender := mocks.NewMockChannelSender(ctrl)
	queueMock := mocks.NewMockdelayedPublisher(ctrl)
	serviceMock := mocks.NewMocknotificationService(ctrl)

	h := NewHandler(map[model.Channel]ChannelSender{model.ChannelSMS: smsSender}, queueMock, serviceMock)

	job := queue.DeliveryJob{NotificationID: uuid.New(), Channel: model.ChannelSMS}
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	smsSender.EXPECT().Deliver(gomock.Any(), strategy, job.NotificationID).Return(sender.Delivered())

	h.HandleJob(context.Background(), job, strategy)
}

func TestHandler_HandleJob_RetryScheduled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	smsSender := mocks.NewMockChannelSender(ctrl)
	queueMock := mocks.NewMockdelayedPublisher(ctrl)
	serviceMock := mocks.NewMocknotificationService(ctrl)

	h := NewHandler(map[model.Channel]ChannelSender{model.ChannelSMS: smsSender}, queueMock, serviceMock)

	job := queue.DeliveryJob{NotificationID: uuid.New(), Channel: model.ChannelSMS, Attempt: 0}
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	smsSender.EXPECT().
		Deliver(gomock.Any(), strategy, job.NotificationID).
		Return(sender.RetryIn(60*time.Second, "rate limited"))

	rescheduled := job
	rescheduled.Attempt = 1
	queueMock.EXPECT().PublishDelayed(rescheduled, 60*time.Second, strategy).Return(nil)

	h.HandleJob(context.Background(), job, strategy)
}

func TestHandler_HandleJob_RescheduleFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	smsSender := mocks.NewMockChannelSender(ctrl)
	queueMock := mocks.NewMockdelayedPublisher(ctrl)
	serviceMock := mocks.NewMocknotificationService(ctrl)

	h := NewHandler(map[model.Channel]ChannelSender{model.ChannelSMS: smsSender}, queueMock, serviceMock)

	job := queue.DeliveryJob{NotificationID: uuid.New(), Channel: model.ChannelSMS}
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	smsSender.EXPECT().
		Deliver(gomock.Any(), strategy, job.NotificationID).
		Return(sender.RetryIn(60*time.Second, "rate limited"))
	queueMock.EXPECT().
		PublishDelayed(gomock.Any(), 60*time.Second, strategy).
		Return(errors.New("broker unavailable"))
	serviceMock.EXPECT().
		MarkFailed(gomock.Any(), strategy, job.NotificationID, "failed to schedule retry: broker unavailable").
		Return(nil)

	h.HandleJob(context.Background(), job, strategy)
}

func TestHandler_HandleJob_UnknownChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queueMock := mocks.NewMockdelayedPublisher(ctrl)
	serviceMock := mocks.NewMocknotificationService(ctrl)

	h := NewHandler(map[model.Channel]ChannelSender{}, queueMock, serviceMock)

	job := queue.DeliveryJob{NotificationID: uuid.New(), Channel: "fax"}
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	serviceMock.EXPECT().
		MarkFailed(gomock.Any(), strategy, job.NotificationID, `unknown channel "fax"`).
		Return(nil)

	h.HandleJob(context.Background(), job, strategy)
}

func TestHandler_HandleJob_WaitsOutRunAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	smsSender := mocks.NewMockChannelSender(ctrl)
	queueMock := mocks.NewMockdelayedPublisher(ctrl)
	serviceMock := mocks.NewMocknotificationService(ctrl)

	h := NewHandler(map[model.Channel]ChannelSender{model.ChannelSMS: smsSender}, queueMock, serviceMock)

	job := queue.DeliveryJob{
		NotificationID: uuid.New(),
		Channel:        model.ChannelSMS,
		RunAt:          time.Now().Add(20 * time.Millisecond),
	}
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	smsSender.EXPECT().Deliver(gomock.Any(), strategy, job.NotificationID).Return(sender.Delivered())

	start := time.Now()
	h.HandleJob(context.Background(), job, strategy)

	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("handler ran the job %v early", 20*time.Millisecond-elapsed)
	}
}

func TestHandler_HandleJob_ContextCancelledDuringWait(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	smsSender := mocks.NewMockChannelSender(ctrl)
	queueMock := mocks.NewMockdelayedPublisher(ctrl)
	serviceMock := mocks.NewMocknotificationService(ctrl)

	h := NewHandler(map[model.Channel]ChannelSender{model.ChannelSMS: smsSender}, queueMock, serviceMock)

	job := queue.DeliveryJob{
		NotificationID: uuid.New(),
		Channel:        model.ChannelSMS,
		RunAt:          time.Now().Add(time.Hour),
	}
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// No sender call: the job is abandoned for redelivery on restart.
	h.HandleJob(ctx, job, strategy)
}
