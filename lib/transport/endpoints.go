package transport

import (
	"github.com/invoicehub/invoicehub.go/controllers"
	"github.com/invoicehub/invoicehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterEndpoints(svc *service.InvoicehubService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	e.POST("/auth", controllers.NewAuthController(svc).Auth, strictRateLimitMiddleware, logMw)
	if svc.Config.AllowAccountCreation {
		e.POST("/v2/users", controllers.NewCreateUserController(svc).CreateUser, strictRateLimitMiddleware, adminMw, logMw)
	}

	profileCtrl := controllers.NewProfileController(svc)
	secured.GET("/v2/profile", profileCtrl.GetProfile)
	secured.PUT("/v2/profile", profileCtrl.UpdateProfile)

	invoiceCtrl := controllers.NewInvoiceController(svc)
	secured.GET("/v2/invoices", invoiceCtrl.GetInvoices)
	secured.GET("/v2/invoices/:id", invoiceCtrl.GetInvoice)
	securedWithStrictRateLimit.POST("/v2/invoices", invoiceCtrl.AddInvoice)
	securedWithStrictRateLimit.PUT("/v2/invoices/:id", invoiceCtrl.UpdateInvoice)
	securedWithStrictRateLimit.DELETE("/v2/invoices/:id", invoiceCtrl.DeleteInvoice)
	securedWithStrictRateLimit.POST("/v2/invoices/:id/paid", invoiceCtrl.MarkPaid)
	securedWithStrictRateLimit.POST("/v2/invoices/:id/reminder", controllers.NewReminderController(svc).SendReminder)
	secured.GET("/v2/invoices/:id/document", controllers.NewDocumentController(svc).GetInvoiceDocument)

	// the response cache keys by URL only, so nothing per-user may sit
	// behind it
	cacheClient := CreateCacheClient()
	e.GET("/v2/info", controllers.NewInfoController(svc).GetInfo, cacheClient.Middleware(), logMw)

	dashboardCtrl := controllers.NewDashboardController(svc)
	secured.GET("/v2/dashboard/stats", dashboardCtrl.Stats)
	secured.GET("/v2/dashboard/graph", dashboardCtrl.Graph)
	secured.GET("/v2/dashboard/recent", dashboardCtrl.Recent)
}
