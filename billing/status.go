package billing

import "practice-billing-backend/models"

// DeriveStatus maps an invoice's monetary figures and due date to its next
// status. Terminal statuses are never changed here. Payment progress takes
// precedence over lateness so staff see collection state first, and drafts
// never auto-advance to Overdue because they were never sent.
//
// dueDate and today are ISO-8601 date strings (YYYY-MM-DD), which compare
// correctly as plain strings.
func DeriveStatus(current models.InvoiceStatus, balance, amountPaid float64, dueDate, today string) models.InvoiceStatus {
	if current.IsTerminal() {
		return current
	}
	switch {
	case balance <= 0 && amountPaid > 0:
		return models.StatusPaid
	case amountPaid > 0:
		return models.StatusPartiallyPaid
	case dueDate != "" && dueDate < today && current != models.StatusDraft:
		return models.StatusOverdue
	}
	return current
}
