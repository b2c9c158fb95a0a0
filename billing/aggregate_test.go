package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"practice-billing-backend/models"
)

func TestAggregateEmptyCollections(t *testing.T) {
	totals := Aggregate(nil, nil)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.AmountPaid)
	assert.Zero(t, totals.RefundTotal)
	assert.Zero(t, totals.Balance)
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		items    []models.LineItem
		payments []models.Payment
		want     Totals
	}{
		{
			name: "items only",
			items: []models.LineItem{
				{Amount: 75},
				{Amount: 120.50},
			},
			want: Totals{Subtotal: 195.50, Balance: 195.50},
		},
		{
			name:  "payments and refunds split by sign",
			items: []models.LineItem{{Amount: 200}},
			payments: []models.Payment{
				{Amount: 150, Method: models.MethodBankTransfer},
				{Amount: -50, Method: models.MethodRefund},
				{Amount: 25, Method: models.MethodCash},
			},
			want: Totals{Subtotal: 200, AmountPaid: 175, RefundTotal: 50, Balance: 25},
		},
		{
			name:     "overpayment drives balance negative",
			items:    []models.LineItem{{Amount: 100}},
			payments: []models.Payment{{Amount: 130, Method: models.MethodInsurance}},
			want:     Totals{Subtotal: 100, AmountPaid: 130, Balance: -30},
		},
		{
			name: "fractional amounts round to cents",
			items: []models.LineItem{
				{Amount: 0.1},
				{Amount: 0.2},
			},
			payments: []models.Payment{{Amount: 0.1, Method: models.MethodCash}},
			want:     Totals{Subtotal: 0.3, AmountPaid: 0.1, Balance: 0.2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.items, tt.payments))
		})
	}
}
