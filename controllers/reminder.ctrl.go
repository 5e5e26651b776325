package controllers

import (
	"net/http"

	"github.com/invoicehub/invoicehub.go/lib/responses"
	"github.com/invoicehub/invoicehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// ReminderController : Payment reminder controller struct
type ReminderController struct {
	svc *service.InvoicehubService
}

func NewReminderController(svc *service.InvoicehubService) *ReminderController {
	return &ReminderController{svc: svc}
}

type ReminderResponseBody struct {
	Message string `json:"message"`
}

// SendReminder : Email the client a payment reminder for an owned invoice
func (controller *ReminderController) SendReminder(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	invoiceId, ok := invoiceIdParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := controller.svc.SendReminder(c.Request().Context(), userId, invoiceId); err != nil {
		c.Logger().Errorf("Failed to send reminder for invoice %d: %v", invoiceId, err)
		return translateInvoiceError(c, err)
	}

	return c.JSON(http.StatusOK, &ReminderResponseBody{Message: "Reminder email sent successfully"})
}
