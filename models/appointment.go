package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment delivery types; these key the billing rate table.
const (
	AppointmentVideo     = "video"
	AppointmentPhone     = "phone"
	AppointmentHomeVisit = "home-visit"
	AppointmentExtended  = "extended"
	AppointmentStandard  = "standard"
)

// Appointment is a scheduled consultation. The billing engine reads it when
// converting a booking into a draft invoice.
type Appointment struct {
	Id           string  `json:"id" gorm:"primaryKey"`
	PatientID    string  `json:"patient_id" gorm:"index;not null"`
	Patient      Patient `json:"-" gorm:"foreignKey:PatientID;references:Id"`
	Type         string  `json:"type" gorm:"type:varchar(20);not null"`
	Date         string  `json:"date" gorm:"type:varchar(10);not null"`
	StartTime    string  `json:"start_time" gorm:"type:varchar(5)"`
	DurationMins int     `json:"duration_mins"`
	Practitioner string  `json:"practitioner"`
	Notes        string  `json:"notes"`
}

func (appointment *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if appointment.Id == "" {
		appointment.Id = uuid.NewString()
	}
	return
}
