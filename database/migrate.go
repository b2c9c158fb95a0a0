package database

import (
	"fmt"

	"practice-billing-backend/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns)
// - Money column types (NUMERIC(12,2))
// - Indexes (payments, line items, snapshots, idempotency keys)
// - CHECK constraints guarding the billing invariants the engine also
//   enforces in code (quantity > 0, rate >= 0, payment sign vs method)
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.User{},
			&models.Patient{},
			&models.Appointment{},
			&models.Invoice{},
			&models.LineItem{},
			&models.Payment{},
			&models.InvoiceSnapshot{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE invoices   ALTER COLUMN amount        TYPE numeric(12,2)`,
			`ALTER TABLE invoices   ALTER COLUMN amount_paid   TYPE numeric(12,2)`,
			`ALTER TABLE invoices   ALTER COLUMN balance       TYPE numeric(12,2)`,
			`ALTER TABLE invoices   ALTER COLUMN refund_amount TYPE numeric(12,2)`,
			`ALTER TABLE line_items ALTER COLUMN rate          TYPE numeric(12,2)`,
			`ALTER TABLE line_items ALTER COLUMN amount        TYPE numeric(12,2)`,
			`ALTER TABLE payments   ALTER COLUMN amount        TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_payments_invoice_date ON payments (invoice_id, date)`,
			`CREATE INDEX IF NOT EXISTS idx_line_items_invoice ON line_items (invoice_id)`,
			`CREATE INDEX IF NOT EXISTS idx_invoices_patient ON invoices (patient_id)`,
			`CREATE INDEX IF NOT EXISTS idx_invoices_status ON invoices (status)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_invoice_snapshots_invoice_seq ON invoice_snapshots (invoice_id, seq)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- CHECK constraints (idempotent) ---
		checks := []string{
			// Line item quantity must be positive.
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'line_items'::regclass
					  AND conname  = 'chk_line_items_quantity_positive'
				) THEN
					ALTER TABLE line_items
					ADD CONSTRAINT chk_line_items_quantity_positive
					CHECK (quantity > 0);
				END IF;
			END $$;`,
			// Line item rate cannot be negative.
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'line_items'::regclass
					  AND conname  = 'chk_line_items_rate_nonneg'
				) THEN
					ALTER TABLE line_items
					ADD CONSTRAINT chk_line_items_rate_nonneg
					CHECK (rate >= 0);
				END IF;
			END $$;`,
			// Payment sign must match its method: refunds negative, the rest non-negative.
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'payments'::regclass
					  AND conname  = 'chk_payments_sign_matches_method'
				) THEN
					ALTER TABLE payments
					ADD CONSTRAINT chk_payments_sign_matches_method
					CHECK ((method = 'Refund' AND amount < 0) OR (method <> 'Refund' AND amount >= 0));
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
