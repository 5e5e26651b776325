package controllers

import (
	"net/http"

	"github.com/invoicehub/invoicehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// DashboardController : Dashboard aggregates controller struct
type DashboardController struct {
	svc *service.InvoicehubService
}

func NewDashboardController(svc *service.InvoicehubService) *DashboardController {
	return &DashboardController{svc: svc}
}

type GraphResponseBody struct {
	Series []service.DailyRevenue `json:"series"`
}

// Stats : Invoice counts and revenue for the dashboard blocks
func (controller *DashboardController) Stats(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	stats, err := controller.svc.DashboardStats(c.Request().Context(), userId)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Graph : Paid invoices of the trailing 30 days bucketed per day. An empty
// series tells the client to render its "no data" state.
func (controller *DashboardController) Graph(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	series, err := controller.svc.PaidInvoiceSeries(c.Request().Context(), userId)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &GraphResponseBody{Series: series})
}

// Recent : The most recent invoices for the dashboard sidebar
func (controller *DashboardController) Recent(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	invoices, err := controller.svc.RecentInvoicesFor(c.Request().Context(), userId, 7)
	if err != nil {
		return err
	}

	response := make([]Invoice, len(invoices))
	for i, invoice := range invoices {
		response[i] = toInvoiceResponse(&invoice)
	}
	return c.JSON(http.StatusOK, &GetInvoicesResponseBody{Invoices: response})
}
