package billing

import (
	"practice-billing-backend/models"
	"practice-billing-backend/utils"
)

// Totals is the monetary rollup of an invoice's line items and payments.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	AmountPaid  float64 `json:"amount_paid"`
	RefundTotal float64 `json:"refund_total"`
	Balance     float64 `json:"balance"`
}

// Aggregate computes the rollup from scratch. Pure and deterministic:
// subtotal sums line item amounts, amountPaid sums positive payments,
// refundTotal sums the magnitude of negative payments, balance is
// subtotal minus amountPaid. Empty collections yield all zeros.
func Aggregate(items []models.LineItem, payments []models.Payment) Totals {
	var t Totals
	for _, item := range items {
		t.Subtotal += item.Amount
	}
	for _, p := range payments {
		switch {
		case p.Amount > 0:
			t.AmountPaid += p.Amount
		case p.Amount < 0:
			t.RefundTotal += -p.Amount
		}
	}
	t.Subtotal = utils.Round2(t.Subtotal)
	t.AmountPaid = utils.Round2(t.AmountPaid)
	t.RefundTotal = utils.Round2(t.RefundTotal)
	t.Balance = utils.Round2(t.Subtotal - t.AmountPaid)
	return t
}
