package service

import (
	"testing"
	"time"

	"github.com/invoicehub/invoicehub.go/common"
	"github.com/invoicehub/invoicehub.go/db/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeAmount(t *testing.T) {
	assert.Equal(t, 46.5, ComputeAmount("3", "15.50"))
	assert.Equal(t, 0.0, ComputeAmount("0", "100"))
	assert.Equal(t, 12.0, ComputeAmount(" 4 ", " 3 "))
}

func TestComputeAmountNonNumeric(t *testing.T) {
	assert.Equal(t, 0.0, ComputeAmount("three", "15.50"))
	assert.Equal(t, 0.0, ComputeAmount("3", "abc"))
	assert.Equal(t, 0.0, ComputeAmount("", ""))
}

func paidInvoice(createdAt time.Time, total float64) models.Invoice {
	return models.Invoice{
		Status:    common.InvoiceStatusPaid,
		CreatedAt: createdAt,
		Total:     total,
	}
}

func TestAggregateByDaySumsSameDay(t *testing.T) {
	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	day := time.Date(2026, time.February, 3, 9, 0, 0, 0, time.UTC)

	series := AggregateByDay([]models.Invoice{
		paidInvoice(day, 100),
		paidInvoice(day.Add(4*time.Hour), 50),
	}, now, 30)

	assert.Len(t, series, 1)
	assert.Equal(t, "Feb 3", series[0].Date)
	assert.Equal(t, 150.0, series[0].Amount)
}

func TestAggregateByDayOrderIndependent(t *testing.T) {
	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	a := paidInvoice(now.AddDate(0, 0, -1), 10)
	b := paidInvoice(now.AddDate(0, 0, -5), 20)
	c := paidInvoice(now.AddDate(0, 0, -5).Add(time.Hour), 30)

	first := AggregateByDay([]models.Invoice{a, b, c}, now, 30)
	second := AggregateByDay([]models.Invoice{c, a, b}, now, 30)

	assert.Equal(t, first, second)
}

func TestAggregateByDayFilters(t *testing.T) {
	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)

	pending := models.Invoice{
		Status:    common.InvoiceStatusPending,
		CreatedAt: now.AddDate(0, 0, -2),
		Total:     999,
	}
	tooOld := paidInvoice(now.AddDate(0, 0, -30).Add(-time.Second), 500)
	// the lower bound is inclusive
	boundary := paidInvoice(now.AddDate(0, 0, -30), 75)

	series := AggregateByDay([]models.Invoice{pending, tooOld, boundary}, now, 30)

	assert.Len(t, series, 1)
	assert.Equal(t, 75.0, series[0].Amount)
}

func TestAggregateByDaySortsByDateNotLabel(t *testing.T) {
	// "Feb 1" sorts before "Jan 15" lexically, but not chronologically
	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)

	series := AggregateByDay([]models.Invoice{
		paidInvoice(time.Date(2026, time.February, 1, 8, 0, 0, 0, time.UTC), 10),
		paidInvoice(time.Date(2026, time.January, 15, 8, 0, 0, 0, time.UTC), 20),
	}, now, 30)

	assert.Len(t, series, 2)
	assert.Equal(t, "Jan 15", series[0].Date)
	assert.Equal(t, "Feb 1", series[1].Date)
}

func TestAggregateByDayEmpty(t *testing.T) {
	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)

	series := AggregateByDay(nil, now, 30)

	assert.NotNil(t, series)
	assert.Len(t, series, 0)
}
