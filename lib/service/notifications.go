package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/cenkalti/backoff/v4"
	"github.com/invoicehub/invoicehub.go/common"
	"github.com/invoicehub/invoicehub.go/db/models"
	"github.com/invoicehub/invoicehub.go/mail"
)

// ErrNotificationFailed wraps any delivery failure from the mail collaborator.
var ErrNotificationFailed = errors.New("notification delivery failed")

// NotifyInvoiceCreated emails the client that a new invoice is waiting. Under
// the atomic policy the send happens inline and its error is returned to the
// caller. Under the async policy the background dispatcher picks the invoice
// up from the pubsub, so there is nothing to do here.
func (svc *InvoicehubService) NotifyInvoiceCreated(ctx context.Context, invoice *models.Invoice) error {
	if svc.Mailer == nil {
		return nil
	}
	if svc.Config.InvoiceNotification == common.NotificationPolicyAsync {
		return nil
	}
	if err := svc.Mailer.Send(ctx, creationMessage(invoice)); err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	return nil
}

// StartNotificationRoutine delivers creation notices out-of-band. Transient
// mail failures are retried with exponential backoff and eventually only
// logged, a lost email never affects the stored invoice.
func (svc *InvoicehubService) StartNotificationRoutine(ctx context.Context) {
	createdInvoices := make(chan models.Invoice)
	subId := svc.InvoicePubSub.Subscribe(common.InvoiceEventCreated, createdInvoices)

	for {
		select {
		case <-ctx.Done():
			svc.InvoicePubSub.Unsubscribe(subId, common.InvoiceEventCreated)
			return
		case invoice := <-createdInvoices:
			// deliver in its own goroutine, a retrying send must not stall
			// the receive loop and with it every publisher
			go svc.sendCreationNoticeWithRetry(ctx, invoice)
		}
	}
}

func (svc *InvoicehubService) sendCreationNoticeWithRetry(ctx context.Context, invoice models.Invoice) {
	expontentialBackoff := backoff.NewExponentialBackOff()
	err := backoff.Retry(func() error {
		return svc.Mailer.Send(ctx, creationMessage(&invoice))
	}, backoff.WithContext(expontentialBackoff, ctx))
	if err != nil {
		svc.Logger.Errorf("Failed to send creation notice for invoice %d: %v", invoice.ID, err)
	}
}

// SendReminder mails the client a payment reminder. Delivery failures are
// surfaced as-is, they are not retried.
func (svc *InvoicehubService) SendReminder(ctx context.Context, userId, invoiceId int64) error {
	invoice, err := svc.FindInvoice(ctx, userId, invoiceId)
	if err != nil {
		return err
	}
	if svc.Mailer == nil {
		return fmt.Errorf("%w: no mailer configured", ErrNotificationFailed)
	}
	if err := svc.Mailer.Send(ctx, reminderMessage(invoice)); err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	return nil
}

// SubscribeCreatedAndPaidInvoices feeds the optional RabbitMQ publisher.
func (svc *InvoicehubService) SubscribeCreatedAndPaidInvoices() (created chan models.Invoice, paid chan models.Invoice, err error) {
	created = make(chan models.Invoice)
	paid = make(chan models.Invoice)
	svc.InvoicePubSub.Subscribe(common.InvoiceEventCreated, created)
	svc.InvoicePubSub.Subscribe(common.InvoiceEventPaid, paid)
	return created, paid, nil
}

// EncodeInvoiceWithUserLogin writes the wire payload for published lifecycle
// events, annotated with the owner's login so consumers don't need to resolve
// user ids themselves.
func (svc *InvoicehubService) EncodeInvoiceWithUserLogin(ctx context.Context, w io.Writer, invoice models.Invoice) error {
	user, err := svc.FindUser(ctx, invoice.UserID)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(struct {
		models.Invoice
		UserLogin string `json:"user_login"`
	}{Invoice: invoice, UserLogin: user.Login})
}

var creationHTMLTemplate = template.Must(template.New("creation").Parse(`<!DOCTYPE html>
<html>
  <body>
    <h1>Invoice #{{.InvoiceNumber}}</h1>
    <p>Hello <strong>{{.ClientName}}</strong>,</p>
    <p>Your invoice has been generated and is ready for payment.</p>
    <h3>Invoice Details:</h3>
    <p><strong>From:</strong> {{.FromName}}</p>
    <p><strong>Amount:</strong> {{.Currency}} {{printf "%.2f" .Total}}</p>
    <p><strong>Due Date:</strong> Net {{.DueDate}} days</p>
    <p><strong>Description:</strong> {{.Description}}</p>
    <p>Please contact {{.FromName}} at {{.FromEmail}} for payment details.</p>
    <p>Thank you for your business!</p>
  </body>
</html>`))

var reminderHTMLTemplate = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
  <body>
    <h1>Payment Reminder</h1>
    <p>Hello <strong>{{.ClientName}}</strong>,</p>
    <p>This is a friendly reminder that the following invoice is outstanding:</p>
    <h3>Invoice Details:</h3>
    <p><strong>From:</strong> {{.FromName}}</p>
    <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
    <p><strong>Invoice Name:</strong> {{.InvoiceName}}</p>
    <p><strong>Amount Due:</strong> {{.Currency}} {{printf "%.2f" .Total}}</p>
    <p><strong>Due Date:</strong> Net {{.DueDate}} days</p>
    <p><strong>Description:</strong> {{.Description}}</p>
    <p><strong>Status:</strong> {{.Status}}</p>
    <p>Please arrange for payment at your earliest convenience.</p>
    <p>If you have already made the payment, please disregard this reminder.</p>
    <p>For any questions please contact <strong>{{.FromName}}</strong> at {{.FromEmail}}.</p>
    <p><em>This is an automated reminder</em></p>
  </body>
</html>`))

func creationMessage(invoice *models.Invoice) mail.Message {
	var html bytes.Buffer
	creationHTMLTemplate.Execute(&html, invoice)

	text := fmt.Sprintf(`INVOICE #%d

Hello %s,

Your invoice has been generated:

From: %s
Amount: %s %.2f
Due: Net %d days
Description: %s

Please contact %s at %s for payment details.

Thank you for your business!`,
		invoice.InvoiceNumber, invoice.ClientName, invoice.FromName, invoice.Currency,
		invoice.Total, invoice.DueDate, invoice.Description, invoice.FromName, invoice.FromEmail)

	return mail.Message{
		To:       invoice.ClientEmail,
		Subject:  fmt.Sprintf("Invoice #%d from %s", invoice.InvoiceNumber, invoice.FromName),
		HTMLBody: html.String(),
		TextBody: text,
	}
}

func reminderMessage(invoice *models.Invoice) mail.Message {
	var html bytes.Buffer
	reminderHTMLTemplate.Execute(&html, invoice)

	text := fmt.Sprintf(`PAYMENT REMINDER

Invoice #%d (%s) from %s is outstanding.
Amount due: %s %.2f, Net %d days.

Contact %s for questions.`,
		invoice.InvoiceNumber, invoice.InvoiceName, invoice.FromName,
		invoice.Currency, invoice.Total, invoice.DueDate, invoice.FromEmail)

	return mail.Message{
		To:       invoice.ClientEmail,
		Subject:  fmt.Sprintf("Reminder: Invoice #%d from %s", invoice.InvoiceNumber, invoice.FromName),
		HTMLBody: html.String(),
		TextBody: text,
	}
}
