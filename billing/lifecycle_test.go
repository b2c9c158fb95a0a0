package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practice-billing-backend/models"
)

func TestSaveRecomputesTotalsAndStatus(t *testing.T) {
	engine := testEngine("2024-06-01")
	invoice := &models.Invoice{
		Status:    models.StatusSent,
		DueDate:   "2024-07-01",
		LineItems: []models.LineItem{{Quantity: 1, Rate: 75, Amount: 75}},
		Payments:  []models.Payment{{Amount: 75, Method: models.MethodBankTransfer}},
	}

	require.NoError(t, engine.Save(invoice))

	assert.Equal(t, 75.0, invoice.Amount)
	assert.Equal(t, 75.0, invoice.AmountPaid)
	assert.Zero(t, invoice.Balance)
	assert.Equal(t, models.StatusPaid, invoice.Status)
}

func TestSavePartialPaymentBeatsLateness(t *testing.T) {
	engine := testEngine("2024-06-01")
	invoice := &models.Invoice{
		Status:    models.StatusSent,
		DueDate:   "2024-01-01", // long past due
		LineItems: []models.LineItem{{Quantity: 1, Rate: 75, Amount: 75}},
		Payments:  []models.Payment{{Amount: 30, Method: models.MethodCash}},
	}

	require.NoError(t, engine.Save(invoice))

	assert.Equal(t, 45.0, invoice.Balance)
	assert.Equal(t, models.StatusPartiallyPaid, invoice.Status)
}

func TestSaveAdvancesSentToOverdue(t *testing.T) {
	engine := testEngine("2024-06-01")
	invoice := &models.Invoice{
		Status:    models.StatusSent,
		DueDate:   "2024-05-31",
		LineItems: []models.LineItem{{Quantity: 1, Rate: 100, Amount: 100}},
	}

	require.NoError(t, engine.Save(invoice))

	assert.Equal(t, 100.0, invoice.Amount)
	assert.Zero(t, invoice.AmountPaid)
	assert.Equal(t, models.StatusOverdue, invoice.Status)
}

func TestSaveRejectsTerminalInvoice(t *testing.T) {
	engine := testEngine("2024-06-01")
	invoice := &models.Invoice{Status: models.StatusVoided}

	err := engine.Save(invoice)

	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.ErrorIs(t, err, ErrInvoiceTerminal)
}

func TestSend(t *testing.T) {
	engine := testEngine("2024-06-01")

	t.Run("draft is sent", func(t *testing.T) {
		invoice := &models.Invoice{Status: models.StatusDraft}
		require.NoError(t, engine.Send(invoice))
		assert.Equal(t, models.StatusSent, invoice.Status)
	})

	t.Run("non-draft is rejected", func(t *testing.T) {
		invoice := &models.Invoice{Status: models.StatusSent}
		err := engine.Send(invoice)
		assert.ErrorIs(t, err, ErrNotDraft)
		assert.Equal(t, models.StatusSent, invoice.Status)
	})

	t.Run("terminal is rejected", func(t *testing.T) {
		invoice := &models.Invoice{Status: models.StatusRefunded}
		assert.ErrorIs(t, engine.Send(invoice), ErrInvoiceTerminal)
	})
}

func TestMarkAsPaidSettlesBalance(t *testing.T) {
	engine := testEngine("2024-06-01")
	invoice := &models.Invoice{
		ID:      "inv-1",
		Status:  models.StatusSent,
		Amount:  150,
		Balance: 150,
	}

	require.NoError(t, engine.MarkAsPaid(invoice))

	require.Len(t, invoice.Payments, 1)
	payment := invoice.Payments[0]
	assert.Equal(t, 150.0, payment.Amount)
	assert.Equal(t, models.MethodCardPayment, payment.Method)
	assert.Equal(t, "2024-06-01", payment.Date)
	assert.NotEmpty(t, payment.Reference)

	assert.Equal(t, 150.0, invoice.AmountPaid)
	assert.Zero(t, invoice.Balance)
	assert.Equal(t, models.StatusPaid, invoice.Status)
}

func TestMarkAsPaidWithZeroBalanceAddsNoPayment(t *testing.T) {
	engine := testEngine("2024-06-01")
	invoice := &models.Invoice{
		Status:     models.StatusSent,
		Amount:     100,
		AmountPaid: 100,
		Balance:    0,
		Payments:   []models.Payment{{Amount: 100, Method: models.MethodCash}},
	}

	require.NoError(t, engine.MarkAsPaid(invoice))

	assert.Len(t, invoice.Payments, 1)
	assert.Equal(t, models.StatusPaid, invoice.Status)
}

func TestVoid(t *testing.T) {
	engine := testEngine("2024-06-01")
	invoice := &models.Invoice{
		Status:  models.StatusSent,
		Amount:  200,
		Balance: 200,
	}

	require.NoError(t, engine.Void(invoice, "duplicate"))

	assert.Equal(t, models.StatusVoided, invoice.Status)
	assert.Zero(t, invoice.Balance)
	assert.Equal(t, 200.0, invoice.Amount, "original figures stay visible")
	assert.Equal(t, "2024-06-01", invoice.VoidedDate)
	assert.Equal(t, "duplicate", invoice.VoidedReason)
}

func TestVoidRequiresReason(t *testing.T) {
	engine := testEngine("2024-06-01")
	invoice := &models.Invoice{Status: models.StatusSent, Amount: 200, Balance: 200}

	err := engine.Void(invoice, "   ")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ErrorIs(t, err, ErrReasonRequired)
	assert.Equal(t, models.StatusSent, invoice.Status)
	assert.Equal(t, 200.0, invoice.Balance)
}

func TestVoidedInvoiceRejectsFurtherOperations(t *testing.T) {
	engine := testEngine("2024-06-01")
	invoice := &models.Invoice{Status: models.StatusSent, Amount: 100, Balance: 100}
	require.NoError(t, engine.Void(invoice, "duplicate"))

	for name, op := range map[string]func() error{
		"mark as paid": func() error { return engine.MarkAsPaid(invoice) },
		"send":         func() error { return engine.Send(invoice) },
		"save":         func() error { return engine.Save(invoice) },
		"void again":   func() error { return engine.Void(invoice, "again") },
		"refund":       func() error { return engine.Refund(invoice, 10, "x") },
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, op(), ErrInvoiceTerminal)
			assert.Equal(t, models.StatusVoided, invoice.Status)
			assert.Zero(t, invoice.Balance)
		})
	}
}

func TestRefund(t *testing.T) {
	engine := testEngine("2024-06-01")
	invoice := &models.Invoice{
		ID:         "inv-1",
		Status:     models.StatusPaid,
		Amount:     100,
		AmountPaid: 100,
		Payments:   []models.Payment{{Amount: 100, Method: models.MethodCardPayment}},
	}

	require.NoError(t, engine.Refund(invoice, 100, "treatment cancelled"))

	require.Len(t, invoice.Payments, 2)
	refund := invoice.Payments[1]
	assert.Equal(t, -100.0, refund.Amount)
	assert.Equal(t, models.MethodRefund, refund.Method)
	assert.NotEmpty(t, refund.Reference)

	assert.Equal(t, models.StatusRefunded, invoice.Status)
	assert.Equal(t, "2024-06-01", invoice.RefundedDate)
	assert.Equal(t, 100.0, invoice.RefundAmount)
	assert.Equal(t, "treatment cancelled", invoice.RefundReason)
	assert.Zero(t, invoice.Balance)
}

func TestRefundExceedingPaidIsRejected(t *testing.T) {
	engine := testEngine("2024-06-01")
	invoice := &models.Invoice{
		Status:     models.StatusPaid,
		Amount:     100,
		AmountPaid: 100,
		Payments:   []models.Payment{{Amount: 100, Method: models.MethodCash}},
	}

	err := engine.Refund(invoice, 150, "x")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ErrorIs(t, err, ErrRefundExceedsPaid)

	// No partial mutation.
	assert.Equal(t, models.StatusPaid, invoice.Status)
	assert.Len(t, invoice.Payments, 1)
	assert.Zero(t, invoice.RefundAmount)
	assert.Empty(t, invoice.RefundedDate)
}

func TestRefundPreconditions(t *testing.T) {
	engine := testEngine("2024-06-01")

	tests := []struct {
		name    string
		amount  float64
		reason  string
		wantErr error
	}{
		{"zero amount", 0, "x", ErrAmountNotPositive},
		{"negative amount", -20, "x", ErrAmountNotPositive},
		{"empty reason", 50, "", ErrReasonRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoice := &models.Invoice{Status: models.StatusPaid, Amount: 100, AmountPaid: 100}
			err := engine.Refund(invoice, tt.amount, tt.reason)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, models.StatusPaid, invoice.Status)
			assert.Empty(t, invoice.Payments)
		})
	}
}

func TestRecordPayment(t *testing.T) {
	engine := testEngine("2024-06-01")
	invoice := &models.Invoice{
		ID:        "inv-1",
		Status:    models.StatusSent,
		DueDate:   "2024-07-01",
		LineItems: []models.LineItem{{Quantity: 2, Rate: 50, Amount: 100}},
	}

	err := engine.RecordPayment(invoice, models.Payment{Amount: 40, Method: models.MethodCheque})

	require.NoError(t, err)
	require.Len(t, invoice.Payments, 1)
	payment := invoice.Payments[0]
	assert.Equal(t, "inv-1", payment.InvoiceID)
	assert.NotEmpty(t, payment.ID)
	assert.Equal(t, "2024-06-01", payment.Date)
	assert.Equal(t, "PMT-"+payment.ID, payment.Reference)

	assert.Equal(t, 60.0, invoice.Balance)
	assert.Equal(t, models.StatusPartiallyPaid, invoice.Status)
}

func TestRecordPaymentSignRules(t *testing.T) {
	engine := testEngine("2024-06-01")

	tests := []struct {
		name    string
		payment models.Payment
		wantErr error
	}{
		{"positive refund", models.Payment{Amount: 50, Method: models.MethodRefund}, ErrPaymentSign},
		{"negative card payment", models.Payment{Amount: -50, Method: models.MethodCardPayment}, ErrPaymentSign},
		{"unknown method", models.Payment{Amount: 50, Method: "Crypto"}, ErrUnknownMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoice := &models.Invoice{Status: models.StatusSent, LineItems: []models.LineItem{{Amount: 100}}}
			err := engine.RecordPayment(invoice, tt.payment)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, invoice.Payments)
		})
	}
}

func TestRecordPaymentOnTerminalInvoice(t *testing.T) {
	engine := testEngine("2024-06-01")
	invoice := &models.Invoice{Status: models.StatusRefunded}

	err := engine.RecordPayment(invoice, models.Payment{Amount: 10, Method: models.MethodCash})

	assert.ErrorIs(t, err, ErrInvoiceTerminal)
}
