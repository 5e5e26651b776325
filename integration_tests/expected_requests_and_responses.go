package integration_tests

import "github.com/invoicehub/invoicehub.go/lib/service"

type ExpectedCreateUserRequestBody struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type ExpectedCreateUserResponseBody struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type ExpectedAuthRequestBody struct {
	Login        string `json:"login"`
	Password     string `json:"password"`
	RefreshToken string `json:"refresh_token"`
}

type ExpectedAuthResponseBody struct {
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token"`
}

type ExpectedDashboardStatsResponseBody struct {
	TotalInvoices   int     `json:"total_invoices"`
	TotalRevenue    float64 `json:"total_revenue"`
	PendingInvoices int     `json:"pending_invoices"`
	PaidInvoices    int     `json:"paid_invoices"`
}

type ExpectedGraphResponseBody struct {
	Series []service.DailyRevenue `json:"series"`
}

type ExpectedReminderResponseBody struct {
	Message string `json:"message"`
}
