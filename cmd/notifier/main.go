package main

import (
	"context"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/queue-notifier/internal/config"
	"github.com/aliskhannn/queue-notifier/internal/model"
	deliveryhandler "github.com/aliskhannn/queue-notifier/internal/rabbitmq/handlers/delivery"
	"github.com/aliskhannn/queue-notifier/internal/rabbitmq/queue"
	"github.com/aliskhannn/queue-notifier/internal/reminder"
	apptrepo "github.com/aliskhannn/queue-notifier/internal/repository/appointment"
	notifrepo "github.com/aliskhannn/queue-notifier/internal/repository/notification"
	"github.com/aliskhannn/queue-notifier/internal/sender"
	notifsvc "github.com/aliskhannn/queue-notifier/internal/service/notification"
	"github.com/aliskhannn/queue-notifier/internal/template"
	"github.com/aliskhannn/queue-notifier/internal/worker"
	"github.com/aliskhannn/queue-notifier/pkg/email"
	"github.com/aliskhannn/queue-notifier/pkg/fcm"
	"github.com/aliskhannn/queue-notifier/pkg/twilio"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
	}

	q, err := queue.NewDeliveryQueue(ch)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create delivery queue")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))

	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.Database)

	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	repo := notifrepo.NewRepository(db)
	appointments := apptrepo.NewRepository(db)

	service := notifsvc.NewService(repo, q, rdb, val)

	// Channel credentials are read through closures so each delivery attempt
	// sees the currently loaded values.
	smsSender := sender.NewSMSSender(service,
		func() config.Twilio { return cfg.Twilio },
		func(c config.Twilio) sender.SMSProvider {
			return twilio.NewClient(c.AccountSID, c.AuthToken, c.FromNumber)
		},
	)
	emailSender := sender.NewEmailSender(service,
		func() config.SMTP { return cfg.SMTP },
		func(c config.SMTP) sender.MailProvider {
			port, perr := strconv.Atoi(c.Port)
			if perr != nil {
				zlog.Logger.Error().Err(perr).Msg("invalid smtp port")
			}
			return email.NewClient(c.Host, port, c.Username, c.Password, c.From)
		},
	)
	pushSender := sender.NewPushSender(service,
		func() config.Firebase { return cfg.Firebase },
		func(c config.Firebase) sender.PushProvider {
			return fcm.NewClient(c.ServerKey)
		},
	)

	senders := map[model.Channel]deliveryhandler.ChannelSender{
		model.ChannelSMS:   smsSender,
		model.ChannelEmail: emailSender,
		model.ChannelPush:  pushSender,
	}

	jobHandler := deliveryhandler.NewHandler(senders, q, service)

	notifier := worker.NewNotifier(q, jobHandler, service)
	go notifier.Run(ctx, cfg.Retry, cfg.Workers.Count)

	scanner := reminder.NewScanner(appointments, service, template.NewRegistry())
	go scanner.Run(ctx, cfg.Retry, cfg.Reminder.Interval)

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Printf("failed to close master DB: %v", err)
	}

	for i, s := range db.Slaves {
		if err := s.Close(); err != nil {
			zlog.Logger.Printf("failed to close slave DB %d: %v", i, err)
		}
	}

	if err := ch.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}
}
