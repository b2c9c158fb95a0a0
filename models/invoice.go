package models

import (
	"time"

	"gorm.io/datatypes"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusDraft         InvoiceStatus = "Draft"
	StatusSent          InvoiceStatus = "Sent"
	StatusPaid          InvoiceStatus = "Paid"
	StatusPartiallyPaid InvoiceStatus = "PartiallyPaid"
	StatusOverdue       InvoiceStatus = "Overdue"
	StatusVoided        InvoiceStatus = "Voided"
	StatusRefunded      InvoiceStatus = "Refunded"
)

var validStatuses = map[InvoiceStatus]bool{
	StatusDraft:         true,
	StatusSent:          true,
	StatusPaid:          true,
	StatusPartiallyPaid: true,
	StatusOverdue:       true,
	StatusVoided:        true,
	StatusRefunded:      true,
}

// Voided and Refunded seal the invoice; no lifecycle operation may run after.
var terminalStatuses = map[InvoiceStatus]bool{
	StatusVoided:   true,
	StatusRefunded: true,
}

func (s InvoiceStatus) IsValid() bool { return validStatuses[s] }

// IsTerminal reports whether the invoice is sealed against further mutation.
func (s InvoiceStatus) IsTerminal() bool { return terminalStatuses[s] }

func (s InvoiceStatus) String() string { return string(s) }

// PaymentMethod describes how money moved against an invoice.
type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "BankTransfer"
	MethodCardPayment  PaymentMethod = "CardPayment"
	MethodCash         PaymentMethod = "Cash"
	MethodCheque       PaymentMethod = "Cheque"
	MethodInsurance    PaymentMethod = "Insurance"
	MethodRefund       PaymentMethod = "Refund"
)

var validMethods = map[PaymentMethod]bool{
	MethodBankTransfer: true,
	MethodCardPayment:  true,
	MethodCash:         true,
	MethodCheque:       true,
	MethodInsurance:    true,
	MethodRefund:       true,
}

func (m PaymentMethod) IsValid() bool { return validMethods[m] }

// Invoice is a bill owed by a payer for a patient's services.
// Amount, AmountPaid and Balance are derived; they are only written by the
// billing engine, never directly by handlers.
type Invoice struct {
	ID        string  `json:"id" gorm:"primaryKey"`
	PatientID string  `json:"patientId" gorm:"index;not null"`
	Patient   Patient `json:"-" gorm:"foreignKey:PatientID;references:Id"`

	Status InvoiceStatus `json:"status" gorm:"type:varchar(20);not null"`

	Amount     float64 `json:"amount" gorm:"type:numeric(12,2)"`
	AmountPaid float64 `json:"amountPaid" gorm:"type:numeric(12,2)"`
	Balance    float64 `json:"balance" gorm:"type:numeric(12,2)"`

	// Calendar dates as ISO-8601 strings (YYYY-MM-DD), per the UI contract.
	DueDate     string `json:"dueDate" gorm:"type:varchar(10)"`
	CreatedDate string `json:"createdDate" gorm:"type:varchar(10)"`

	Payer string `json:"payer"`
	Notes string `json:"notes"`

	LineItems []LineItem `json:"lineItems" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Payments  []Payment  `json:"payments" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	// Set only when the invoice enters the matching terminal status.
	VoidedDate   string  `json:"voidedDate,omitempty"`
	VoidedReason string  `json:"voidedReason,omitempty"`
	RefundedDate string  `json:"refundedDate,omitempty"`
	RefundAmount float64 `json:"refundAmount,omitempty" gorm:"type:numeric(12,2)"`
	RefundReason string  `json:"refundReason,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// LineItem is a billable component of an invoice. Amount normally equals
// Quantity*Rate but may be overridden for imported/legacy items.
type LineItem struct {
	ID          string  `json:"id" gorm:"primaryKey"`
	InvoiceID   string  `json:"-" gorm:"index"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate" gorm:"type:numeric(12,2)"`
	Amount      float64 `json:"amount" gorm:"type:numeric(12,2)"`

	// Provenance only; not used in any calculation.
	AppointmentID   string `json:"appointmentId,omitempty"`
	AppointmentDate string `json:"appointmentDate,omitempty" gorm:"type:varchar(10)"`
	ServiceCode     string `json:"serviceCode,omitempty"`
}

// Payment is a monetary movement against an invoice. Amount is signed:
// positive = payment received, negative = refund.
type Payment struct {
	ID        string        `json:"id" gorm:"primaryKey"`
	InvoiceID string        `json:"-" gorm:"index:idx_payments_invoice_date,priority:1"`
	Date      string        `json:"date" gorm:"type:varchar(10);index:idx_payments_invoice_date,priority:2"`
	Amount    float64       `json:"amount" gorm:"type:numeric(12,2)"`
	Method    PaymentMethod `json:"method" gorm:"type:varchar(20)"`
	Reference string        `json:"reference,omitempty"`
	CreatedAt time.Time     `json:"-"`
}

// InvoiceSnapshot is an immutable jsonb copy of an invoice taken when it is
// sent or sealed, kept as an audit trail.
type InvoiceSnapshot struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	InvoiceID string         `json:"invoice_id" gorm:"index:idx_invoice_snapshots_invoice_seq,unique,priority:1"`
	Seq       int            `json:"seq" gorm:"not null;index:idx_invoice_snapshots_invoice_seq,unique,priority:2"`
	Event     string         `json:"event" gorm:"type:varchar(20)"` // "sent" | "voided" | "refunded"
	Snapshot  datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
}
