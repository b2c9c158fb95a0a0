package billing

import (
	"errors"
	"fmt"
)

// Sentinel errors so callers can branch on the unmet precondition.
var (
	// ErrReasonRequired is returned when void/refund is attempted without a reason.
	ErrReasonRequired = errors.New("reason is required")

	// ErrAmountNotPositive is returned when a refund amount is zero or negative.
	ErrAmountNotPositive = errors.New("amount must be greater than zero")

	// ErrRefundExceedsPaid is returned when a refund exceeds what was actually paid.
	ErrRefundExceedsPaid = errors.New("refund amount exceeds amount paid")

	// ErrQuantityNotPositive is returned for a line item with quantity < 1.
	ErrQuantityNotPositive = errors.New("quantity must be a positive integer")

	// ErrRateNegative is returned for a line item with a negative rate.
	ErrRateNegative = errors.New("rate cannot be negative")

	// ErrUnknownMethod is returned for a payment with an unrecognized method.
	ErrUnknownMethod = errors.New("unknown payment method")

	// ErrPaymentSign is returned when a payment's sign contradicts its method:
	// Refund payments must be negative, all others non-negative.
	ErrPaymentSign = errors.New("payment amount sign does not match method")

	// ErrInvoiceTerminal is returned when any lifecycle operation is attempted
	// on a voided or refunded invoice.
	ErrInvoiceTerminal = errors.New("invoice is in a terminal status")

	// ErrNotDraft is returned when send is attempted on a non-draft invoice.
	ErrNotDraft = errors.New("only draft invoices can be sent")
)

// ValidationError wraps a violated precondition with human-readable details.
// The operation it guards applies no mutation.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StateError marks a lifecycle operation rejected wholesale because the
// invoice is not in a status that permits it.
type StateError struct {
	Err     error
	Details string
}

func (e *StateError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *StateError) Unwrap() error {
	return e.Err
}

func invalidf(err error, format string, args ...any) error {
	return &ValidationError{Err: err, Details: fmt.Sprintf(format, args...)}
}

func rejectTerminal(status fmt.Stringer) error {
	return &StateError{Err: ErrInvoiceTerminal, Details: "invoice is " + status.String()}
}
