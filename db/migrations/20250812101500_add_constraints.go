package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		// The unique index is the only guard against duplicate invoice numbers.
		// Inserts race straight into it and the constraint violation is
		// translated into a field-level error, there is no pre-check.
		sql := `
			CREATE UNIQUE INDEX invoices_user_id_invoice_number_idx
				ON invoices (user_id, invoice_number);

			ALTER TABLE invoices
				ADD CONSTRAINT check_invoice_status
				CHECK (status IN ('PENDING', 'PAID'));

			ALTER TABLE invoices
				ADD CONSTRAINT check_invoice_total
				CHECK (total >= 0);
		`
		_, err := db.Exec(sql)
		return err
	}, nil)
}
