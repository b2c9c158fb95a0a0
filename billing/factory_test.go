package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practice-billing-backend/models"
)

func TestNewBlank(t *testing.T) {
	engine := testEngine("2024-01-01")

	invoice := engine.NewBlank("patient-1", "", 30)

	assert.Equal(t, "2024-01-01", invoice.CreatedDate)
	assert.Equal(t, "2024-01-31", invoice.DueDate)
	assert.Equal(t, models.StatusDraft, invoice.Status)
	assert.Equal(t, SelfPay, invoice.Payer)
	assert.Zero(t, invoice.Amount)
	assert.Zero(t, invoice.AmountPaid)
	assert.Zero(t, invoice.Balance)
	assert.Empty(t, invoice.LineItems)
	assert.Empty(t, invoice.Payments)
}

func TestNewBlankKeepsExplicitPayer(t *testing.T) {
	engine := testEngine("2024-01-01")

	invoice := engine.NewBlank("patient-1", "Northwind Health", 14)

	assert.Equal(t, "Northwind Health", invoice.Payer)
	assert.Equal(t, "2024-01-15", invoice.DueDate)
}

func TestNewFromAppointment(t *testing.T) {
	engine := testEngine("2024-03-10")
	appointment := models.Appointment{
		Id:        "appt-9",
		PatientID: "patient-1",
		Type:      models.AppointmentVideo,
		Date:      "2024-03-08",
	}
	patient := models.Patient{Id: "patient-1", Insurer: "MediShield"}

	invoice := engine.NewFromAppointment(appointment, patient, 30)

	require.Len(t, invoice.LineItems, 1)
	item := invoice.LineItems[0]
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 65.0, item.Rate)
	assert.Equal(t, 65.0, item.Amount)
	assert.Equal(t, "appt-9", item.AppointmentID)
	assert.Equal(t, "2024-03-08", item.AppointmentDate)
	assert.Equal(t, models.AppointmentVideo, item.ServiceCode)

	assert.Equal(t, models.StatusDraft, invoice.Status)
	assert.Equal(t, "MediShield", invoice.Payer)
	assert.Equal(t, 65.0, invoice.Amount)
	assert.Equal(t, 65.0, invoice.Balance)
	assert.Equal(t, "2024-04-09", invoice.DueDate)
}

func TestNewFromAppointmentSelfPayFallback(t *testing.T) {
	engine := testEngine("2024-03-10")
	appointment := models.Appointment{Id: "appt-1", Type: models.AppointmentPhone, Date: "2024-03-09"}

	invoice := engine.NewFromAppointment(appointment, models.Patient{Id: "patient-2"}, 30)

	assert.Equal(t, SelfPay, invoice.Payer)
	assert.Equal(t, 55.0, invoice.Amount)
}

func TestRateTableLookup(t *testing.T) {
	rates := DefaultRates()

	assert.Equal(t, 110.0, rates.Lookup(models.AppointmentHomeVisit))
	assert.Equal(t, 120.0, rates.Lookup(models.AppointmentExtended))
	// Unknown delivery types fall back to the standard rate.
	assert.Equal(t, 75.0, rates.Lookup("walk-in"))
	assert.Equal(t, 75.0, rates.Lookup(""))
}
