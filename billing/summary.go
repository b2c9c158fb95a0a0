package billing

import (
	"practice-billing-backend/models"
	"practice-billing-backend/utils"
)

// Summary is the dashboard rollup across a collection of invoices.
// Voided and refunded invoices are excluded from billed/outstanding sums;
// their original figures remain visible on the invoice itself.
type Summary struct {
	Billed      float64                      `json:"billed"`
	Collected   float64                      `json:"collected"`
	Outstanding float64                      `json:"outstanding"`
	Overdue     float64                      `json:"overdue"`
	Refunded    float64                      `json:"refunded"`
	ByStatus    map[models.InvoiceStatus]int `json:"byStatus"`
}

// Summarize computes dashboard totals for a set of invoices.
func Summarize(invoices []models.Invoice) Summary {
	s := Summary{ByStatus: make(map[models.InvoiceStatus]int)}
	for _, inv := range invoices {
		s.ByStatus[inv.Status]++
		s.Collected += inv.AmountPaid
		s.Refunded += inv.RefundAmount
		if inv.Status.IsTerminal() {
			continue
		}
		s.Billed += inv.Amount
		s.Outstanding += inv.Balance
		if inv.Status == models.StatusOverdue {
			s.Overdue += inv.Balance
		}
	}
	s.Billed = utils.Round2(s.Billed)
	s.Collected = utils.Round2(s.Collected)
	s.Outstanding = utils.Round2(s.Outstanding)
	s.Overdue = utils.Round2(s.Overdue)
	s.Refunded = utils.Round2(s.Refunded)
	return s
}
