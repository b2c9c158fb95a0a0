package billing

import (
	"testing"

	"practice-billing-backend/models"
)

func TestDeriveStatus(t *testing.T) {
	const today = "2024-06-15"

	tests := []struct {
		name       string
		current    models.InvoiceStatus
		balance    float64
		amountPaid float64
		dueDate    string
		want       models.InvoiceStatus
	}{
		{"settled invoice is paid", models.StatusSent, 0, 75, "2024-07-01", models.StatusPaid},
		{"negative balance with payments is paid", models.StatusSent, -5, 105, "2024-07-01", models.StatusPaid},
		{"partial payment wins over lateness", models.StatusSent, 45, 30, "2024-01-01", models.StatusPartiallyPaid},
		{"unpaid past due advances to overdue", models.StatusSent, 100, 0, "2024-06-14", models.StatusOverdue},
		{"overdue stays overdue while unpaid", models.StatusOverdue, 100, 0, "2024-06-14", models.StatusOverdue},
		{"draft never auto-advances to overdue", models.StatusDraft, 100, 0, "2024-01-01", models.StatusDraft},
		{"sent and not yet due is unchanged", models.StatusSent, 100, 0, "2024-07-01", models.StatusSent},
		{"zero invoice with nothing paid is unchanged", models.StatusDraft, 0, 0, "2024-07-01", models.StatusDraft},
		{"missing due date never triggers overdue", models.StatusSent, 100, 0, "", models.StatusSent},
		{"voided is terminal", models.StatusVoided, 100, 0, "2024-01-01", models.StatusVoided},
		{"refunded is terminal", models.StatusRefunded, 0, 100, "2024-01-01", models.StatusRefunded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.current, tt.balance, tt.amountPaid, tt.dueDate, today)
			if got != tt.want {
				t.Errorf("DeriveStatus() = %v, want %v", got, tt.want)
			}

			// Reapplying with unchanged inputs must not oscillate.
			again := DeriveStatus(got, tt.balance, tt.amountPaid, tt.dueDate, today)
			if again != got {
				t.Errorf("DeriveStatus() not idempotent: %v then %v", got, again)
			}
		})
	}
}
