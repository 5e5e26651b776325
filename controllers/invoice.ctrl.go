package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/invoicehub/invoicehub.go/db/models"
	"github.com/invoicehub/invoicehub.go/lib"
	"github.com/invoicehub/invoicehub.go/lib/responses"
	"github.com/invoicehub/invoicehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// InvoiceController : Invoice CRUD and lifecycle controller struct
type InvoiceController struct {
	svc *service.InvoicehubService
}

func NewInvoiceController(svc *service.InvoicehubService) *InvoiceController {
	return &InvoiceController{svc: svc}
}

type Invoice struct {
	ID            int64      `json:"id"`
	InvoiceName   string     `json:"invoice_name"`
	InvoiceNumber int64      `json:"invoice_number"`
	Currency      string     `json:"currency"`
	Total         float64    `json:"total"`
	Description   string     `json:"description"`
	Quantity      float64    `json:"quantity"`
	Rate          float64    `json:"rate"`
	FromName      string     `json:"from_name"`
	FromEmail     string     `json:"from_email"`
	FromAddress   string     `json:"from_address"`
	ClientName    string     `json:"client_name"`
	ClientEmail   string     `json:"client_email"`
	ClientAddress string     `json:"client_address"`
	Date          string     `json:"date"`
	DueDate       int64      `json:"due_date"`
	Note          string     `json:"note,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

type InvoiceRequestBody struct {
	InvoiceName   string  `json:"invoice_name" validate:"required"`
	InvoiceNumber int64   `json:"invoice_number" validate:"required,gt=0"`
	Currency      string  `json:"currency" validate:"required"`
	Total         float64 `json:"total"` // ignored, the total is derived server-side
	FromName      string  `json:"from_name" validate:"required"`
	FromEmail     string  `json:"from_email" validate:"required,email"`
	FromAddress   string  `json:"from_address" validate:"required"`
	ClientName    string  `json:"client_name" validate:"required"`
	ClientEmail   string  `json:"client_email" validate:"required,email"`
	ClientAddress string  `json:"client_address" validate:"required"`
	Date          string  `json:"date" validate:"required"`
	DueDate       int64   `json:"due_date" validate:"required,gt=0"`
	Description   string  `json:"description" validate:"required"`
	Quantity      string  `json:"quantity" validate:"required"`
	Rate          string  `json:"rate" validate:"required"`
	Note          string  `json:"note"`
}

type GetInvoicesResponseBody struct {
	Invoices []Invoice `json:"invoices"`
}

// AddInvoice : Create a new invoice for the authenticated user
func (controller *InvoiceController) AddInvoice(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	var body InvoiceRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load invoice request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	params, errResp := invoiceParams(c, &body)
	if errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	invoice, err := controller.svc.CreateInvoice(c.Request().Context(), userId, params)
	if err != nil {
		c.Logger().Errorf("Failed to create invoice: %v", err)
		return translateInvoiceError(c, err)
	}

	return c.JSON(http.StatusOK, toInvoiceResponse(invoice))
}

// GetInvoices : All invoices of the authenticated user, newest first
func (controller *InvoiceController) GetInvoices(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	invoices, err := controller.svc.InvoicesFor(c.Request().Context(), userId)
	if err != nil {
		return err
	}

	response := make([]Invoice, len(invoices))
	for i, invoice := range invoices {
		response[i] = toInvoiceResponse(&invoice)
	}
	return c.JSON(http.StatusOK, &GetInvoicesResponseBody{Invoices: response})
}

// GetInvoice : Single invoice, 404 when absent or owned by someone else
func (controller *InvoiceController) GetInvoice(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	invoiceId, ok := invoiceIdParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	invoice, err := controller.svc.FindInvoice(c.Request().Context(), userId, invoiceId)
	if err != nil {
		return translateInvoiceError(c, err)
	}
	return c.JSON(http.StatusOK, toInvoiceResponse(invoice))
}

// UpdateInvoice : Full field replace of an owned invoice
func (controller *InvoiceController) UpdateInvoice(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	invoiceId, ok := invoiceIdParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body InvoiceRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load invoice request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	params, errResp := invoiceParams(c, &body)
	if errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	invoice, err := controller.svc.UpdateInvoice(c.Request().Context(), userId, invoiceId, params)
	if err != nil {
		c.Logger().Errorf("Failed to update invoice %d: %v", invoiceId, err)
		return translateInvoiceError(c, err)
	}
	return c.JSON(http.StatusOK, toInvoiceResponse(invoice))
}

// MarkPaid : PENDING -> PAID transition, no-op on an already paid invoice
func (controller *InvoiceController) MarkPaid(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	invoiceId, ok := invoiceIdParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	invoice, err := controller.svc.MarkInvoicePaid(c.Request().Context(), userId, invoiceId)
	if err != nil {
		return translateInvoiceError(c, err)
	}
	return c.JSON(http.StatusOK, toInvoiceResponse(invoice))
}

// DeleteInvoice : Hard delete, irreversible
func (controller *InvoiceController) DeleteInvoice(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	invoiceId, ok := invoiceIdParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := controller.svc.DeleteInvoice(c.Request().Context(), userId, invoiceId); err != nil {
		return translateInvoiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func invoiceIdParam(c echo.Context) (int64, bool) {
	raw := c.Param("id")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func invoiceParams(c echo.Context, body *InvoiceRequestBody) (*service.InvoiceParams, *responses.ValidationErrorResponse) {
	if err := c.Validate(body); err != nil {
		resp := responses.ValidationError(lib.FieldErrors(err))
		return nil, &resp
	}
	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		resp := responses.ValidationError(map[string]string{"date": "Date must be formatted as YYYY-MM-DD"})
		return nil, &resp
	}

	return &service.InvoiceParams{
		InvoiceName:   body.InvoiceName,
		InvoiceNumber: body.InvoiceNumber,
		Currency:      body.Currency,
		FromName:      body.FromName,
		FromEmail:     body.FromEmail,
		FromAddress:   body.FromAddress,
		ClientName:    body.ClientName,
		ClientEmail:   body.ClientEmail,
		ClientAddress: body.ClientAddress,
		Date:          date,
		DueDate:       body.DueDate,
		Description:   body.Description,
		Quantity:      body.Quantity,
		Rate:          body.Rate,
		Note:          body.Note,
	}, nil
}

func translateInvoiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	case errors.Is(err, service.ErrInvoiceNumberTaken):
		return c.JSON(http.StatusConflict, responses.InvoiceNumberTakenError)
	case errors.Is(err, service.ErrNotificationFailed):
		return c.JSON(http.StatusInternalServerError, responses.DeliveryFailedError)
	default:
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
}

func toInvoiceResponse(invoice *models.Invoice) Invoice {
	response := Invoice{
		ID:            invoice.ID,
		InvoiceName:   invoice.InvoiceName,
		InvoiceNumber: invoice.InvoiceNumber,
		Currency:      invoice.Currency,
		Total:         invoice.Total,
		Description:   invoice.Description,
		Quantity:      invoice.Quantity,
		Rate:          invoice.Rate,
		FromName:      invoice.FromName,
		FromEmail:     invoice.FromEmail,
		FromAddress:   invoice.FromAddress,
		ClientName:    invoice.ClientName,
		ClientEmail:   invoice.ClientEmail,
		ClientAddress: invoice.ClientAddress,
		Date:          invoice.Date.Format("2006-01-02"),
		DueDate:       invoice.DueDate,
		Note:          invoice.Note,
		Status:        invoice.Status,
		CreatedAt:     invoice.CreatedAt,
	}
	if !invoice.PaidAt.IsZero() {
		paidAt := invoice.PaidAt.Time
		response.PaidAt = &paidAt
	}
	return response
}
