package controllers

import (
	"practice-billing-backend/database"
	"practice-billing-backend/middlewares"
	"practice-billing-backend/models"
	"practice-billing-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type PatientCreateDTO struct {
	FirstName   string `json:"first_name" validate:"required,min=1"`
	LastName    string `json:"last_name" validate:"required,min=1"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty"`
	Address     string `json:"address" validate:"omitempty"`
	City        string `json:"city" validate:"omitempty"`
	Zip         string `json:"zip" validate:"omitempty"`
	Insurer     string `json:"insurer" validate:"omitempty"`
}

type PatientUpdateDTO struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=1"`
	LastName    *string `json:"last_name" validate:"omitempty,min=1"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty"`
	Address     *string `json:"address" validate:"omitempty"`
	City        *string `json:"city" validate:"omitempty"`
	Zip         *string `json:"zip" validate:"omitempty"`
	Insurer     *string `json:"insurer" validate:"omitempty"`
}

func CreatePatient(c *fiber.Ctx) error {
	var dto PatientCreateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	patient := models.Patient{
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		DateOfBirth: dto.DateOfBirth,
		Email:       dto.Email,
		PhoneNumber: dto.PhoneNumber,
		Address:     dto.Address,
		City:        dto.City,
		Zip:         dto.Zip,
		Insurer:     dto.Insurer,
		Active:      true,
	}

	db := database.GetDB(c)
	if err := db.Create(&patient).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create patient")
	}

	return c.Status(fiber.StatusCreated).JSON(patient)
}

func GetPatients(c *fiber.Ctx) error {
	var patients []models.Patient

	db := database.GetDB(c)
	q := db.Model(&models.Patient{}).Where("active = ?", true)
	if insurer := c.Query("insurer"); insurer != "" {
		q = q.Where("insurer = ?", insurer)
	}
	if err := q.Order("last_name, first_name").Find(&patients).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"patients": patients,
		"message":  "success",
	})
}

func GetPatient(c *fiber.Ctx) error {
	var patient models.Patient
	if err := database.GetDB(c).First(&patient, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	return c.JSON(patient)
}

func UpdatePatient(c *fiber.Ctx) error {
	var dto PatientUpdateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	db := database.GetDB(c)

	var patient models.Patient
	if err := db.First(&patient, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) > 0 {
		if err := db.Model(&patient).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update patient")
		}
	}

	return c.JSON(patient)
}
