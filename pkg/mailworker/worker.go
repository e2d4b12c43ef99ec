package mailworker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"employee-directory-api/config"
	"employee-directory-api/internal/infrastructure/mq"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

// Worker drains the confirmation queue and hands each event to the mail
// transport. The directory keeps no delivery state: a lost mail is
// recovered by requesting confirmation again.
type Worker struct {
	cfg        config.MQ
	mailCfg    config.Mail
	log        *zap.Logger
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

func New(cfg config.MQ, mailCfg config.Mail, logger *zap.Logger, conn *amqp091.Connection) *Worker {
	return &Worker{
		cfg:     cfg,
		mailCfg: mailCfg,
		log:     logger,
		conn:    conn,
	}
}

var err error

func (w *Worker) Connect(dsn string) error {
	w.conn, err = amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	w.chConsume, err = w.conn.Channel()
	if err != nil {
		_ = w.conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}

	w.log.Info("rabbitmq mail worker connected successfully")

	return err
}

func (w *Worker) Init() error {
	if err = w.chConsume.ExchangeDeclare(
		w.cfg.Exchange,
		w.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err = w.chConsume.QueueDeclare(
		w.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err = w.chConsume.QueueBind(
		w.cfg.QueueName,
		mq.RouteConfirm,
		w.cfg.Exchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue bind %s: %w", mq.RouteConfirm, err)
	}

	if err = w.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	var cerr error
	w.chDelivery, cerr = w.chConsume.Consume(
		w.cfg.QueueName,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if cerr != nil {
		return fmt.Errorf("consume: %w", cerr)
	}

	return nil
}

func (w *Worker) DeliveryWorker(ctx context.Context) {
	w.log.Info("starting mail delivery worker")

	defer func() {
		w.log.Info("mail delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg := <-w.chDelivery:
			if err = w.delivery(msg); err != nil {
				// alert
				w.log.Error("mq read message error", zap.Error(err))
			}
		case <-ctx.Done():
			w.chConsume.Close()
			return
		}
	}
}

func (w *Worker) delivery(msg amqp091.Delivery) error {
	// simple delivery; prod would add ack/nack procedures

	var e mq.Event
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		return fmt.Errorf("decode confirmation event: %w", err)
	}

	// Stand-in for the SMTP transport.
	fmt.Fprintf(os.Stdout,
		"Mail From=%s To=%s Subject=Confirm your data ConfirmURL=%s\n",
		w.mailCfg.From,
		e.Email,
		e.ConfirmURL,
	)

	return nil
}
