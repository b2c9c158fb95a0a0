package controllers

import (
	"practice-billing-backend/database"
	"practice-billing-backend/middlewares"
	"practice-billing-backend/models"
	"practice-billing-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AppointmentCreateDTO struct {
	PatientID    string `json:"patient_id" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=video phone home-visit extended standard"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"start_time" validate:"omitempty,datetime=15:04"`
	DurationMins int    `json:"duration_mins" validate:"omitempty,gt=0"`
	Practitioner string `json:"practitioner" validate:"omitempty"`
	Notes        string `json:"notes" validate:"omitempty"`
}

func CreateAppointment(c *fiber.Ctx) error {
	var dto AppointmentCreateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	db := database.GetDB(c)

	// The patient must resolve before a booking is accepted.
	var patient models.Patient
	if err := db.First(&patient, "id = ?", dto.PatientID).Error; err != nil {
		return err
	}

	appointment := models.Appointment{
		PatientID:    patient.Id,
		Type:         dto.Type,
		Date:         dto.Date,
		StartTime:    dto.StartTime,
		DurationMins: dto.DurationMins,
		Practitioner: dto.Practitioner,
		Notes:        dto.Notes,
	}

	if err := db.Create(&appointment).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create appointment")
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

func GetAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment

	db := database.GetDB(c)
	q := db.Model(&models.Appointment{})
	if patientID := c.Query("patient_id"); patientID != "" {
		q = q.Where("patient_id = ?", patientID)
	}
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}
	if err := q.Order("date, start_time").Find(&appointments).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"message":      "success",
	})
}

func GetAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := database.GetDB(c).First(&appointment, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	return c.JSON(appointment)
}
