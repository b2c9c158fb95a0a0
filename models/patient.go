package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient is reference data for the billing engine; the engine never owns it.
type Patient struct {
	Id          string `json:"id" gorm:"primaryKey"`
	FirstName   string `json:"first_name" gorm:"not null"`
	LastName    string `json:"last_name" gorm:"not null"`
	DateOfBirth string `json:"date_of_birth" gorm:"type:varchar(10)"`
	Email       string `json:"email" gorm:"unique;not null"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Zip         string `json:"zip"`
	// Insurer is empty for self-pay patients.
	Insurer string `json:"insurer"`
	Active  bool   `json:"-"`
}

func (patient *Patient) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if patient.Id == "" {
		patient.Id = uuid.NewString()
	}
	return
}

func (patient *Patient) DisplayName() string {
	return strings.TrimSpace(patient.FirstName + " " + patient.LastName)
}
