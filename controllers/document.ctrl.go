package controllers

import (
	"fmt"
	"net/http"

	"github.com/invoicehub/invoicehub.go/lib/responses"
	"github.com/invoicehub/invoicehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// DocumentController : Invoice PDF download controller struct
type DocumentController struct {
	svc *service.InvoicehubService
}

func NewDocumentController(svc *service.InvoicehubService) *DocumentController {
	return &DocumentController{svc: svc}
}

// GetInvoiceDocument : Render the owned invoice as a PDF. The renderer gets
// the stored record, so the total on the document is the derived one.
func (controller *DocumentController) GetInvoiceDocument(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	invoiceId, ok := invoiceIdParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	invoice, err := controller.svc.FindInvoice(c.Request().Context(), userId, invoiceId)
	if err != nil {
		return translateInvoiceError(c, err)
	}

	document, err := controller.svc.Renderer.RenderInvoiceDocument(invoice)
	if err != nil {
		c.Logger().Errorf("Failed to render invoice %d: %v", invoiceId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("inline; filename=invoice-%d.pdf", invoice.InvoiceNumber))
	return c.Blob(http.StatusOK, "application/pdf", document)
}
