package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"practice-billing-backend/models"
)

const dateLayout = "2006-01-02"

// SelfPay is the payer recorded for patients without a known insurer.
const SelfPay = "Self-pay"

// Engine owns invoice creation and lifecycle mutations. The clock and id
// generator are injectable so every operation is deterministic under test.
type Engine struct {
	now   func() time.Time
	newID func() string
	rates RateTable
	log   zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides the engine's id source.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// WithRates overrides the fee schedule.
func WithRates(rates RateTable) Option {
	return func(e *Engine) { e.rates = rates }
}

// NewEngine returns an engine with real time, UUIDv4 ids, and the default
// fee schedule unless options say otherwise.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:   time.Now,
		newID: uuid.NewString,
		rates: DefaultRates(),
		log:   log.With().Str("component", "billing").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) today() string {
	return e.now().Format(dateLayout)
}

func (e *Engine) dueIn(termsDays int) string {
	return e.now().AddDate(0, 0, termsDays).Format(dateLayout)
}

// NewBlank builds an empty draft invoice due termsDays from today.
func (e *Engine) NewBlank(patientID, payer string, termsDays int) *models.Invoice {
	if payer == "" {
		payer = SelfPay
	}
	return &models.Invoice{
		ID:          e.newID(),
		PatientID:   patientID,
		Status:      models.StatusDraft,
		Payer:       payer,
		CreatedDate: e.today(),
		DueDate:     e.dueIn(termsDays),
	}
}

// NewFromAppointment converts a booked appointment into a draft invoice with
// a single seeded line item priced from the fee schedule. The payer defaults
// to the patient's insurer, or self-pay when none is recorded.
func (e *Engine) NewFromAppointment(appointment models.Appointment, patient models.Patient, termsDays int) *models.Invoice {
	rate := e.rates.Lookup(appointment.Type)
	item := models.LineItem{
		ID:              e.newID(),
		Description:     ServiceLabel(appointment.Type),
		Quantity:        1,
		Rate:            rate,
		Amount:          rate,
		AppointmentID:   appointment.Id,
		AppointmentDate: appointment.Date,
		ServiceCode:     appointment.Type,
	}

	payer := patient.Insurer
	if payer == "" {
		payer = SelfPay
	}

	return &models.Invoice{
		ID:          e.newID(),
		PatientID:   patient.Id,
		Status:      models.StatusDraft,
		Payer:       payer,
		CreatedDate: e.today(),
		DueDate:     e.dueIn(termsDays),
		LineItems:   []models.LineItem{item},
		Amount:      rate,
		Balance:     rate,
	}
}
