package common

const (
	InvoiceStatusPending = "PENDING"
	InvoiceStatusPaid    = "PAID"

	InvoiceEventCreated = "invoice_created"
	InvoiceEventPaid    = "invoice_paid"

	// Invoice creation either fails when the client notification cannot be
	// delivered (atomic) or hands the mail off to a background routine (async).
	NotificationPolicyAtomic = "atomic"
	NotificationPolicyAsync  = "async"

	AggregationWindowDays = 30
)
