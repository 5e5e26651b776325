package rabbitmq

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"

	"github.com/invoicehub/invoicehub.go/db/models"
)

// bufPool is a classic buffer pool pattern that allows more clever reuse of heap memory.
// Instead of allocating new memory everytime we need to encode an invoice we
// reuse buffers from this pool.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"

	routingKeyCreated = "invoice.created"
	routingKeyPaid    = "invoice.paid"
)

type (
	SubscribeToInvoicesFunc = func() (created chan models.Invoice, paid chan models.Invoice, err error)
	EncodeInvoiceFunc       = func(ctx context.Context, w io.Writer, invoice models.Invoice) error
)

// Client publishes invoice lifecycle events to an exchange so external
// consumers (bookkeeping, analytics) can follow along.
type Client interface {
	StartPublishInvoices(ctx context.Context, subscribeFunc SubscribeToInvoicesFunc, payloadFunc EncodeInvoiceFunc) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient

	invoiceExchange string

	logger *lecho.Logger
}

type ClientOption = func(client *DefaultClient)

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func WithInvoiceExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.invoiceExchange = exchange
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqpClient:      amqpClient,
		invoiceExchange: "invoicehub_invoice",
		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),
	}
	for _, opt := range options {
		opt(client)
	}
	return client, nil
}

func (client *DefaultClient) Close() error {
	return client.amqpClient.Close()
}

func (client *DefaultClient) StartPublishInvoices(ctx context.Context, invoicesSubscribeFunc SubscribeToInvoicesFunc, payloadFunc EncodeInvoiceFunc) error {
	err := client.amqpClient.ExchangeDeclare(
		client.invoiceExchange,
		// topic exchanges route messages to different queues based on the routing key
		"topic",
		// Durable and Non-Auto-Deleted exchanges will survive server restarts and remain
		// declared when there are no remaining bindings.
		true,
		false,
		// Non-Internal exchanges accept direct publishing
		false,
		// Nowait: wait for a server response to check whether the exchange
		// was created succesfully
		false,
		nil,
	)
	if err != nil {
		return err
	}

	client.logger.Info("Starting rabbitmq publisher")

	created, paid, err := invoicesSubscribeFunc()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case invoice := <-created:
			err = client.publishInvoice(ctx, invoice, routingKeyCreated, payloadFunc)
			if err != nil {
				captureErr(client.logger, err)
			}
		case invoice := <-paid:
			err = client.publishInvoice(ctx, invoice, routingKeyPaid, payloadFunc)
			if err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

func (client *DefaultClient) publishInvoice(ctx context.Context, invoice models.Invoice, key string, payloadFunc EncodeInvoiceFunc) error {
	payload := bufPool.Get().(*bytes.Buffer)
	defer func() {
		payload.Reset()
		bufPool.Put(payload)
	}()

	err := payloadFunc(ctx, payload, invoice)
	if err != nil {
		return err
	}

	err = client.amqpClient.PublishWithContext(ctx,
		client.invoiceExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s for invoice %d: %w", key, invoice.ID, err)
	}

	client.logger.Debugf("Published invoice %d with routing key %s", invoice.ID, key)
	return nil
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
