package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Invoice : Invoice Model
//
// Quantity, Rate and Total are stored as floats like the amounts on the wire.
// Total is always derived from Quantity * Rate before a row is written, a
// client-submitted total is never persisted.
type Invoice struct {
	ID            int64        `json:"id" bun:",pk,autoincrement"`
	UserID        int64        `json:"user_id" bun:",notnull"`
	User          *User        `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	InvoiceName   string       `json:"invoice_name" bun:",notnull"`
	InvoiceNumber int64        `json:"invoice_number" bun:",notnull"`
	Currency      string       `json:"currency" bun:",notnull"`
	Total         float64      `json:"total" bun:",notnull"`
	Description   string       `json:"description" bun:",notnull"`
	Quantity      float64      `json:"quantity" bun:",notnull"`
	Rate          float64      `json:"rate" bun:",notnull"`
	FromName      string       `json:"from_name" bun:",notnull"`
	FromEmail     string       `json:"from_email" bun:",notnull"`
	FromAddress   string       `json:"from_address" bun:",notnull"`
	ClientName    string       `json:"client_name" bun:",notnull"`
	ClientEmail   string       `json:"client_email" bun:",notnull"`
	ClientAddress string       `json:"client_address" bun:",notnull"`
	Date          time.Time    `json:"date" bun:",notnull"`
	DueDate       int64        `json:"due_date" bun:",notnull"`
	Note          string       `json:"note,omitempty" bun:",nullzero"`
	Status        string       `json:"status" bun:",default:'PENDING'"`
	CreatedAt     time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     bun.NullTime `json:"updated_at"`
	PaidAt        bun.NullTime `json:"paid_at"`
}

func (i *Invoice) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		i.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Invoice)(nil)
