package billing

import "practice-billing-backend/models"

// RateTable maps an appointment delivery type to the standard fee charged
// for it. Reference data supplied from outside the engine.
type RateTable map[string]float64

// DefaultRates is the practice's standard fee schedule.
func DefaultRates() RateTable {
	return RateTable{
		models.AppointmentVideo:     65,
		models.AppointmentPhone:     55,
		models.AppointmentHomeVisit: 110,
		models.AppointmentExtended:  120,
		models.AppointmentStandard:  75,
	}
}

// Lookup returns the rate for the given appointment type, falling back to
// the standard rate for unknown types.
func (rt RateTable) Lookup(appointmentType string) float64 {
	if rate, ok := rt[appointmentType]; ok {
		return rate
	}
	return rt[models.AppointmentStandard]
}

var serviceLabels = map[string]string{
	models.AppointmentVideo:     "Video consultation",
	models.AppointmentPhone:     "Phone consultation",
	models.AppointmentHomeVisit: "Home visit",
	models.AppointmentExtended:  "Extended consultation",
	models.AppointmentStandard:  "Consultation",
}

// ServiceLabel is the human-readable line item description for a type.
func ServiceLabel(appointmentType string) string {
	if label, ok := serviceLabels[appointmentType]; ok {
		return label
	}
	return serviceLabels[models.AppointmentStandard]
}
