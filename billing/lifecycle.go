package billing

import (
	"strings"

	"practice-billing-backend/models"
	"practice-billing-backend/utils"
)

// Save recomputes the invoice's derived totals from its current line items
// and payments, then derives the status from the recomputed figures. This is
// the only path by which non-terminal statuses advance.
func (e *Engine) Save(invoice *models.Invoice) error {
	if invoice.Status.IsTerminal() {
		return rejectTerminal(invoice.Status)
	}
	totals := Aggregate(invoice.LineItems, invoice.Payments)
	invoice.Amount = totals.Subtotal
	invoice.AmountPaid = totals.AmountPaid
	invoice.Balance = totals.Balance
	invoice.Status = DeriveStatus(invoice.Status, totals.Balance, totals.AmountPaid, invoice.DueDate, e.today())
	return nil
}

// Send marks a draft invoice as issued. Totals are not recomputed.
func (e *Engine) Send(invoice *models.Invoice) error {
	if invoice.Status.IsTerminal() {
		return rejectTerminal(invoice.Status)
	}
	if invoice.Status != models.StatusDraft {
		return &StateError{Err: ErrNotDraft, Details: "invoice is " + invoice.Status.String()}
	}
	invoice.Status = models.StatusSent
	return nil
}

// MarkAsPaid settles the invoice in full: a card payment for the open
// balance is appended and the status is forced to Paid, bypassing
// derivation.
func (e *Engine) MarkAsPaid(invoice *models.Invoice) error {
	if invoice.Status.IsTerminal() {
		return rejectTerminal(invoice.Status)
	}
	if invoice.Balance > 0 {
		invoice.Payments = append(invoice.Payments, models.Payment{
			ID:        e.newID(),
			InvoiceID: invoice.ID,
			Date:      e.today(),
			Amount:    invoice.Balance,
			Method:    models.MethodCardPayment,
			Reference: "PAY-" + e.newID(),
		})
	}
	invoice.AmountPaid = invoice.Amount
	invoice.Balance = 0
	invoice.Status = models.StatusPaid
	return nil
}

// Void seals the invoice. The original figures stay visible but the balance
// is forced to zero so the invoice drops out of outstanding totals.
func (e *Engine) Void(invoice *models.Invoice, reason string) error {
	if invoice.Status.IsTerminal() {
		return rejectTerminal(invoice.Status)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return &ValidationError{Err: ErrReasonRequired}
	}
	invoice.Status = models.StatusVoided
	invoice.Balance = 0
	invoice.VoidedDate = e.today()
	invoice.VoidedReason = reason
	return nil
}

// Refund returns amount to the payer and seals the invoice. The amount must
// not exceed what was actually paid.
func (e *Engine) Refund(invoice *models.Invoice, amount float64, reason string) error {
	if invoice.Status.IsTerminal() {
		return rejectTerminal(invoice.Status)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return &ValidationError{Err: ErrReasonRequired}
	}
	amount = utils.Round2(amount)
	if amount <= 0 {
		return invalidf(ErrAmountNotPositive, "got %.2f", amount)
	}
	if amount > invoice.AmountPaid {
		return invalidf(ErrRefundExceedsPaid, "refund %.2f, paid %.2f", amount, invoice.AmountPaid)
	}

	invoice.Payments = append(invoice.Payments, models.Payment{
		ID:        e.newID(),
		InvoiceID: invoice.ID,
		Date:      e.today(),
		Amount:    -amount,
		Method:    models.MethodRefund,
		Reference: "REF-" + e.newID(),
	})
	invoice.Status = models.StatusRefunded
	invoice.RefundedDate = e.today()
	invoice.RefundAmount = amount
	invoice.RefundReason = reason
	invoice.Balance = 0
	return nil
}

// RecordPayment validates and appends a payment, then recomputes totals and
// status via Save. Refund-method payments must carry a negative amount, all
// other methods a non-negative one.
func (e *Engine) RecordPayment(invoice *models.Invoice, payment models.Payment) error {
	if invoice.Status.IsTerminal() {
		return rejectTerminal(invoice.Status)
	}
	if !payment.Method.IsValid() {
		return invalidf(ErrUnknownMethod, "%q", payment.Method)
	}
	if payment.Method == models.MethodRefund && payment.Amount >= 0 {
		return invalidf(ErrPaymentSign, "refund payments must be negative, got %.2f", payment.Amount)
	}
	if payment.Method != models.MethodRefund && payment.Amount < 0 {
		return invalidf(ErrPaymentSign, "%s payments cannot be negative, got %.2f", payment.Method, payment.Amount)
	}

	payment.Amount = utils.Round2(payment.Amount)
	payment.InvoiceID = invoice.ID
	if payment.ID == "" {
		payment.ID = e.newID()
	}
	if payment.Date == "" {
		payment.Date = e.today()
	}
	if payment.Reference == "" {
		payment.Reference = "PMT-" + payment.ID
	}
	invoice.Payments = append(invoice.Payments, payment)
	return e.Save(invoice)
}
