package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/invoicehub/invoicehub.go/common"
	"github.com/invoicehub/invoicehub.go/db/models"
)

// CoerceNumber turns a raw form field into a float. Anything that does not
// parse counts as zero, coercion never fails.
func CoerceNumber(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return f
}

// ComputeAmount derives the line item amount from the submitted quantity and
// rate. The result replaces whatever total the client sent along.
func ComputeAmount(quantity, rate string) float64 {
	return CoerceNumber(quantity) * CoerceNumber(rate)
}

type DailyRevenue struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// AggregateByDay buckets PAID invoices of the trailing window into calendar
// days and sums their totals. The lower bound is inclusive. Buckets are
// ordered by the underlying day, not by the display label, so "Feb 1" sorts
// after "Jan 2".
func AggregateByDay(invoices []models.Invoice, now time.Time, windowDays int) []DailyRevenue {
	cutoff := now.AddDate(0, 0, -windowDays)

	sums := make(map[time.Time]float64)
	for _, invoice := range invoices {
		if invoice.Status != common.InvoiceStatusPaid {
			continue
		}
		if invoice.CreatedAt.Before(cutoff) || invoice.CreatedAt.After(now) {
			continue
		}
		year, month, day := invoice.CreatedAt.Date()
		bucket := time.Date(year, month, day, 0, 0, 0, 0, invoice.CreatedAt.Location())
		sums[bucket] += invoice.Total
	}

	days := make([]time.Time, 0, len(sums))
	for day := range sums {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	series := make([]DailyRevenue, 0, len(days))
	for _, day := range days {
		series = append(series, DailyRevenue{
			Date:   day.Format("Jan 2"),
			Amount: sums[day],
		})
	}
	return series
}

// PaidInvoiceSeries fetches the trailing 30 days of PAID invoices for the
// dashboard chart. An empty slice means the caller renders a "no data" state.
func (svc *InvoicehubService) PaidInvoiceSeries(ctx context.Context, userId int64) ([]DailyRevenue, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, -common.AggregationWindowDays)

	var invoices []models.Invoice
	err := svc.DB.NewSelect().Model(&invoices).
		Where("user_id = ? AND status = ? AND created_at >= ? AND created_at <= ?", userId, common.InvoiceStatusPaid, cutoff, now).
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateByDay(invoices, now, common.AggregationWindowDays), nil
}

type DashboardStats struct {
	TotalInvoices   int     `json:"total_invoices"`
	TotalRevenue    float64 `json:"total_revenue"`
	PendingInvoices int     `json:"pending_invoices"`
	PaidInvoices    int     `json:"paid_invoices"`
}

// DashboardStats runs its three independent aggregate queries concurrently,
// they have no ordering dependency on one another.
func (svc *InvoicehubService) DashboardStats(ctx context.Context, userId int64) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var errTotal, errPending, errPaid error

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		errTotal = svc.DB.NewSelect().Model((*models.Invoice)(nil)).
			ColumnExpr("count(*) as total, coalesce(sum(total), 0) as revenue").
			Where("user_id = ?", userId).
			Scan(ctx, &stats.TotalInvoices, &stats.TotalRevenue)
	}()
	go func() {
		defer wg.Done()
		stats.PendingInvoices, errPending = svc.DB.NewSelect().Model((*models.Invoice)(nil)).
			Where("user_id = ? AND status = ?", userId, common.InvoiceStatusPending).
			Count(ctx)
	}()
	go func() {
		defer wg.Done()
		stats.PaidInvoices, errPaid = svc.DB.NewSelect().Model((*models.Invoice)(nil)).
			Where("user_id = ? AND status = ?", userId, common.InvoiceStatusPaid).
			Count(ctx)
	}()
	wg.Wait()

	for _, err := range []error{errTotal, errPending, errPaid} {
		if err != nil {
			return nil, err
		}
	}
	return stats, nil
}
