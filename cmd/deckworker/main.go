package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pulseboard-dev/pulseboard/backend/internal/config"
	"github.com/pulseboard-dev/pulseboard/backend/internal/deck"
	"github.com/pulseboard-dev/pulseboard/backend/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * database
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("could not create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancelPing()

	if err := dbpool.PingContext(pingCtx); err != nil {
		logger.Error("could not connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * mail client (optional)
	 **********************************************/
	var mailClient *mail.Client
	if cfg.Email.Enabled {
		mailClient, err = mail.NewClient(cfg.Email.SMTP.Host,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithSSL(),
			mail.WithPort(cfg.Email.SMTP.Port),
			mail.WithUsername(cfg.Email.SMTP.Username),
			mail.WithPassword(cfg.Email.SMTP.Password),
		)
		if err != nil {
			logger.Error("could not create mail client", slog.String("error", err.Error()))
			return
		}
		defer mailClient.Close()

		dialCtx, cancelDial := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
		defer cancelDial()
		if err := mailClient.DialWithContext(dialCtx); err != nil {
			logger.Error("could not connect to mail server", slog.String("error", err.Error()))
			return
		}
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("could not connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("could not open channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		cfg.Deck.Queue, // queue name
		true,           // durable, jobs survive broker restarts
		false,          // do not auto-delete when no consumer is attached
		false,          // not exclusive
		false,          // wait for the broker to confirm the declare
		nil,            // no extra arguments
	)
	if err != nil {
		logger.Error("could not declare queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name, // queue
		"",     // let the broker pick a consumer tag
		false,  // manual acks: a job is only gone once its record is final
		false,  // not exclusive
		false,  // no-local is unsupported by rabbitmq, must be false
		false,  // wait for the broker to confirm
		nil,    // no extra arguments
	)
	if err != nil {
		logger.Error("could not consume messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	/**********************************************
	 * worker loop
	 **********************************************/
	worker := deck.NewWorker(cfg, repo, mailClient)

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx, msgs)
	}()

	logger.Info("waiting for deck jobs... (CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down deck worker...")
	cancel()
	wg.Wait()
	slog.Info("deck worker stopped")
}
