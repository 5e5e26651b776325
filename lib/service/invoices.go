package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/invoicehub/invoicehub.go/common"
	"github.com/invoicehub/invoicehub.go/db/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrInvoiceNumberTaken signals a unique constraint violation on
	// (user_id, invoice_number). The database index is the only source of
	// truth here, there is no pre-check before the write.
	ErrInvoiceNumberTaken = errors.New("invoice number already exists")
)

// InvoiceParams are the raw form fields of the create and update flows.
// Quantity and Rate arrive as text and are coerced server-side; a submitted
// total is ignored.
type InvoiceParams struct {
	InvoiceName   string
	InvoiceNumber int64
	Currency      string
	FromName      string
	FromEmail     string
	FromAddress   string
	ClientName    string
	ClientEmail   string
	ClientAddress string
	Date          time.Time
	DueDate       int64
	Description   string
	Quantity      string
	Rate          string
	Note          string
}

func (svc *InvoicehubService) CreateInvoice(ctx context.Context, userId int64, params *InvoiceParams) (*models.Invoice, error) {
	quantity, rate := CoerceNumber(params.Quantity), CoerceNumber(params.Rate)

	invoice := &models.Invoice{
		UserID:        userId,
		InvoiceName:   params.InvoiceName,
		InvoiceNumber: params.InvoiceNumber,
		Currency:      params.Currency,
		Description:   params.Description,
		Quantity:      quantity,
		Rate:          rate,
		Total:         ComputeAmount(params.Quantity, params.Rate),
		FromName:      params.FromName,
		FromEmail:     params.FromEmail,
		FromAddress:   params.FromAddress,
		ClientName:    params.ClientName,
		ClientEmail:   params.ClientEmail,
		ClientAddress: params.ClientAddress,
		Date:          params.Date,
		DueDate:       params.DueDate,
		Note:          strings.TrimSpace(params.Note),
		Status:        common.InvoiceStatusPending,
	}

	_, err := svc.DB.NewInsert().Model(invoice).Exec(ctx)
	if err != nil {
		if isDuplicateInvoiceNumber(err) {
			return nil, ErrInvoiceNumberTaken
		}
		return nil, err
	}

	svc.InvoicePubSub.Publish(common.InvoiceEventCreated, *invoice)

	// With the atomic policy a failed client notification fails the whole
	// create, even though the row above is already committed. Questionable,
	// but it is the documented behavior; set INVOICE_NOTIFICATION=async to
	// decouple the two.
	if err := svc.NotifyInvoiceCreated(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

func (svc *InvoicehubService) FindInvoice(ctx context.Context, userId, invoiceId int64) (*models.Invoice, error) {
	var invoice models.Invoice

	// Always filter by owner. An invoice belonging to someone else behaves
	// exactly like a missing one.
	err := svc.DB.NewSelect().Model(&invoice).Where("invoice.id = ? AND invoice.user_id = ?", invoiceId, userId).Limit(1).Scan(ctx)
	if err != nil {
		return &invoice, err
	}
	return &invoice, nil
}

func (svc *InvoicehubService) InvoicesFor(ctx context.Context, userId int64) ([]models.Invoice, error) {
	var invoices []models.Invoice

	err := svc.DB.NewSelect().Model(&invoices).Where("user_id = ?", userId).OrderExpr("created_at DESC").Scan(ctx)
	return invoices, err
}

func (svc *InvoicehubService) RecentInvoicesFor(ctx context.Context, userId int64, limit int) ([]models.Invoice, error) {
	var invoices []models.Invoice

	err := svc.DB.NewSelect().Model(&invoices).Where("user_id = ?", userId).OrderExpr("created_at DESC").Limit(limit).Scan(ctx)
	return invoices, err
}

// UpdateInvoice is a full field replace. The total is recomputed from the
// submitted quantity and rate, the status is untouched.
func (svc *InvoicehubService) UpdateInvoice(ctx context.Context, userId, invoiceId int64, params *InvoiceParams) (*models.Invoice, error) {
	invoice, err := svc.FindInvoice(ctx, userId, invoiceId)
	if err != nil {
		return nil, err
	}

	invoice.InvoiceName = params.InvoiceName
	invoice.InvoiceNumber = params.InvoiceNumber
	invoice.Currency = params.Currency
	invoice.Description = params.Description
	invoice.Quantity = CoerceNumber(params.Quantity)
	invoice.Rate = CoerceNumber(params.Rate)
	invoice.Total = ComputeAmount(params.Quantity, params.Rate)
	invoice.FromName = params.FromName
	invoice.FromEmail = params.FromEmail
	invoice.FromAddress = params.FromAddress
	invoice.ClientName = params.ClientName
	invoice.ClientEmail = params.ClientEmail
	invoice.ClientAddress = params.ClientAddress
	invoice.Date = params.Date
	invoice.DueDate = params.DueDate
	invoice.Note = strings.TrimSpace(params.Note)

	_, err = svc.DB.NewUpdate().Model(invoice).WherePK().Exec(ctx)
	if err != nil {
		if isDuplicateInvoiceNumber(err) {
			return nil, ErrInvoiceNumberTaken
		}
		return nil, err
	}
	return invoice, nil
}

// MarkInvoicePaid moves a PENDING invoice to PAID. Calling it on an invoice
// that is already PAID is a no-op rather than an error; the UI short-circuits
// the button but the API does not reject the redundant transition.
func (svc *InvoicehubService) MarkInvoicePaid(ctx context.Context, userId, invoiceId int64) (*models.Invoice, error) {
	invoice, err := svc.FindInvoice(ctx, userId, invoiceId)
	if err != nil {
		return nil, err
	}
	if invoice.Status == common.InvoiceStatusPaid {
		return invoice, nil
	}

	invoice.Status = common.InvoiceStatusPaid
	invoice.PaidAt = bun.NullTime{Time: time.Now()}
	_, err = svc.DB.NewUpdate().Model(invoice).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	svc.InvoicePubSub.Publish(common.InvoiceEventPaid, *invoice)
	return invoice, nil
}

func (svc *InvoicehubService) DeleteInvoice(ctx context.Context, userId, invoiceId int64) error {
	invoice, err := svc.FindInvoice(ctx, userId, invoiceId)
	if err != nil {
		return err
	}

	_, err = svc.DB.NewDelete().Model(invoice).WherePK().Exec(ctx)
	return err
}

func isDuplicateInvoiceNumber(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
		return strings.Contains(pgErr.Error(), "invoice_number")
	}
	return strings.Contains(err.Error(), "duplicate") && strings.Contains(err.Error(), "invoice_number")
}
