package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/queue-notifier/internal/model"
)

const (
	ExchangeName   = "notify-exchange"
	MainQueueName  = "notify-delivery"
	RetryQueueName = "notify-retry"
	DLQName        = "notify-dlq"
	RoutingKey     = "notify"
)

// DeliveryJob is one unit of asynchronous delivery work. It carries only the
// notification id; the worker re-fetches the record so every attempt observes
// the latest persisted state. RunAt holds back execution of delayed retries.
type DeliveryJob struct {
	NotificationID uuid.UUID     `json:"notification_id"`
	Channel        model.Channel `json:"channel"`
	Attempt        int           `json:"attempt"`
	RunAt          time.Time     `json:"run_at"`
}

type DeliveryQueue struct {
	Publisher *rabbitmq.Publisher
	Consumer  *rabbitmq.Consumer
}

// NewDeliveryQueue declares the delivery topology: a direct exchange, the main
// queue (dead-lettering rejected messages to the DLQ) and a TTL retry queue
// that feeds expired messages back into the main queue.
func NewDeliveryQueue(ch *rabbitmq.Channel) (*DeliveryQueue, error) {
	exchange := rabbitmq.NewExchange(ExchangeName, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	_, err := qm.DeclareQueue(DLQName, rabbitmq.QueueConfig{Durable: true})
	if err != nil {
		return nil, fmt.Errorf("failed to declare DLQ queue: %w", err)
	}

	retryArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": MainQueueName,
		"x-message-ttl":             int32(5000),
	}

	_, err = qm.DeclareQueue(RetryQueueName, rabbitmq.QueueConfig{
		Durable: true,
		Args:    retryArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare retry queue: %w", err)
	}

	mainArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": DLQName,
	}

	mainQ, err := qm.DeclareQueue(MainQueueName, rabbitmq.QueueConfig{
		Durable: true,
		Args:    mainArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare main queue: %w", err)
	}

	if err := ch.QueueBind(mainQ.Name, RoutingKey, exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind the exchange to the main queue: %w", err)
	}

	pub := rabbitmq.NewPublisher(ch, exchange.Name())
	cons := rabbitmq.NewConsumer(ch, rabbitmq.NewConsumerConfig(mainQ.Name))

	return &DeliveryQueue{Publisher: pub, Consumer: cons}, nil
}

// Publish enqueues a delivery job for immediate execution.
func (q *DeliveryQueue) Publish(job DeliveryJob, strategy retry.Strategy) error {
	if job.RunAt.IsZero() {
		job.RunAt = time.Now().UTC()
	}

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	return q.Publisher.PublishWithRetry(body, RoutingKey, "application/json", strategy)
}

// PublishDelayed enqueues a delivery job that must not run before now+delay.
// The consumer side waits out the remaining delay before attempting.
func (q *DeliveryQueue) PublishDelayed(job DeliveryJob, delay time.Duration, strategy retry.Strategy) error {
	job.RunAt = time.Now().UTC().Add(delay)
	return q.Publish(job, strategy)
}

// Consume decodes delivery jobs off the main queue into out.
func (q *DeliveryQueue) Consume(out chan<- DeliveryJob, strategy retry.Strategy) error {
	msgChan := make(chan []byte)

	go func() {
		for m := range msgChan {
			var job DeliveryJob
			if err := json.Unmarshal(m, &job); err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to unmarshal delivery job")
				continue
			}

			out <- job
		}
	}()

	return q.Consumer.ConsumeWithRetry(msgChan, strategy)
}
