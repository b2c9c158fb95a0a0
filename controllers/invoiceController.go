package controllers

import (
	"encoding/json"
	"os"

	"practice-billing-backend/billing"
	"practice-billing-backend/database"
	"practice-billing-backend/middlewares"
	"practice-billing-backend/models"
	"practice-billing-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// engine holds the billing rules; handlers only load, delegate, persist.
var engine = billing.NewEngine()

func defaultTermsDays() int {
	return utils.ParseIntDefault(os.Getenv("DEFAULT_TERMS_DAYS"), 30)
}

type LineItemDTO struct {
	ID              string  `json:"id"`
	Description     string  `json:"description"`
	Quantity        int     `json:"quantity"`
	Rate            float64 `json:"rate"`
	Amount          float64 `json:"amount"`
	AppointmentID   string  `json:"appointmentId"`
	AppointmentDate string  `json:"appointmentDate" validate:"omitempty,datetime=2006-01-02"`
	ServiceCode     string  `json:"serviceCode"`
}

func (dto LineItemDTO) toModel() models.LineItem {
	return models.LineItem{
		ID:              dto.ID,
		Description:     dto.Description,
		Quantity:        dto.Quantity,
		Rate:            dto.Rate,
		Amount:          dto.Amount,
		AppointmentID:   dto.AppointmentID,
		AppointmentDate: dto.AppointmentDate,
		ServiceCode:     dto.ServiceCode,
	}
}

type InvoiceCreateDTO struct {
	PatientID string        `json:"patientId" validate:"required"`
	Payer     string        `json:"payer" validate:"omitempty"`
	DueDate   string        `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Notes     string        `json:"notes" validate:"omitempty"`
	LineItems []LineItemDTO `json:"lineItems" validate:"omitempty,dive"`
}

type InvoiceUpdateDTO struct {
	Payer     *string        `json:"payer" validate:"omitempty"`
	DueDate   *string        `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Notes     *string        `json:"notes" validate:"omitempty"`
	LineItems *[]LineItemDTO `json:"lineItems" validate:"omitempty,dive"`
}

func CreateInvoice(c *fiber.Ctx) error {
	var dto InvoiceCreateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	db := database.GetDB(c)

	var patient models.Patient
	if err := db.First(&patient, "id = ?", dto.PatientID).Error; err != nil {
		return err
	}

	payer := dto.Payer
	if payer == "" {
		payer = patient.Insurer
	}
	invoice := engine.NewBlank(patient.Id, payer, defaultTermsDays())
	if dto.DueDate != "" {
		invoice.DueDate = dto.DueDate
	}
	invoice.Notes = dto.Notes

	for _, itemDTO := range dto.LineItems {
		item, err := engine.ReviseLineItem(nil, itemDTO.toModel())
		if err != nil {
			return err
		}
		invoice.LineItems = append(invoice.LineItems, item)
	}

	if err := engine.Save(invoice); err != nil {
		return err
	}
	if err := db.Create(invoice).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create invoice")
	}

	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// CreateInvoiceFromAppointment converts a booked appointment into a draft
// invoice with one line item priced from the fee schedule.
func CreateInvoiceFromAppointment(c *fiber.Ctx) error {
	db := database.GetDB(c)

	var appointment models.Appointment
	if err := db.First(&appointment, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	var patient models.Patient
	if err := db.First(&patient, "id = ?", appointment.PatientID).Error; err != nil {
		return err
	}

	invoice := engine.NewFromAppointment(appointment, patient, defaultTermsDays())
	if err := db.Create(invoice).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create invoice")
	}

	return c.Status(fiber.StatusCreated).JSON(invoice)
}

func GetInvoices(c *fiber.Ctx) error {
	var invoices []models.Invoice

	db := database.GetDB(c)
	q := db.Model(&models.Invoice{}).Preload("LineItems").Preload("Payments")
	if status := c.Query("status"); status != "" {
		if !models.InvoiceStatus(status).IsValid() {
			return fiber.NewError(fiber.StatusBadRequest, "unknown invoice status")
		}
		q = q.Where("status = ?", status)
	}
	if patientID := c.Query("patientId"); patientID != "" {
		q = q.Where("patient_id = ?", patientID)
	}
	if err := q.Order("created_date DESC, id").Find(&invoices).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"invoices": invoices,
		"message":  "success",
	})
}

func GetInvoice(c *fiber.Ctx) error {
	invoice, err := loadInvoice(database.GetDB(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

func UpdateInvoice(c *fiber.Ctx) error {
	var dto InvoiceUpdateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	db := database.GetDB(c)
	invoice, err := loadInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}
	if invoice.Status.IsTerminal() {
		return &billing.StateError{Err: billing.ErrInvoiceTerminal, Details: "invoice is " + invoice.Status.String()}
	}

	if dto.Payer != nil {
		invoice.Payer = *dto.Payer
	}
	if dto.DueDate != nil {
		invoice.DueDate = *dto.DueDate
	}
	if dto.Notes != nil {
		invoice.Notes = *dto.Notes
	}

	if dto.LineItems != nil {
		prevByID := make(map[string]models.LineItem, len(invoice.LineItems))
		for _, item := range invoice.LineItems {
			prevByID[item.ID] = item
		}

		revised := make([]models.LineItem, 0, len(*dto.LineItems))
		for _, itemDTO := range *dto.LineItems {
			var prev *models.LineItem
			if existing, ok := prevByID[itemDTO.ID]; ok {
				prev = &existing
			}
			item, err := engine.ReviseLineItem(prev, itemDTO.toModel())
			if err != nil {
				return err
			}
			item.InvoiceID = invoice.ID
			revised = append(revised, item)
		}

		// Full replace: dropped items are removed, survivors re-inserted.
		if err := db.Where("invoice_id = ?", invoice.ID).Delete(&models.LineItem{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update line items")
		}
		invoice.LineItems = revised
	}

	if err := engine.Save(invoice); err != nil {
		return err
	}
	if err := persistInvoice(db, invoice); err != nil {
		return err
	}

	return c.JSON(invoice)
}

func SendInvoice(c *fiber.Ctx) error {
	db := database.GetDB(c)
	invoice, err := loadInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}

	if err := engine.Send(invoice); err != nil {
		return err
	}
	if err := persistInvoice(db, invoice); err != nil {
		return err
	}
	if err := snapshotInvoice(db, invoice, "sent"); err != nil {
		return err
	}

	return c.JSON(invoice)
}

func PayInvoice(c *fiber.Ctx) error {
	db := database.GetDB(c)
	invoice, err := loadInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}

	if err := engine.MarkAsPaid(invoice); err != nil {
		return err
	}
	if err := persistInvoice(db, invoice); err != nil {
		return err
	}

	return c.JSON(invoice)
}

type VoidDTO struct {
	Reason string `json:"reason"`
}

func VoidInvoice(c *fiber.Ctx) error {
	var dto VoidDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	db := database.GetDB(c)
	invoice, err := loadInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}

	if err := engine.Void(invoice, dto.Reason); err != nil {
		return err
	}
	if err := persistInvoice(db, invoice); err != nil {
		return err
	}
	if err := snapshotInvoice(db, invoice, "voided"); err != nil {
		return err
	}

	return c.JSON(invoice)
}

type RefundDTO struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

func RefundInvoice(c *fiber.Ctx) error {
	var dto RefundDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	db := database.GetDB(c)
	invoice, err := loadInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}

	if err := engine.Refund(invoice, dto.Amount, dto.Reason); err != nil {
		return err
	}
	if err := persistInvoice(db, invoice); err != nil {
		return err
	}
	if err := snapshotInvoice(db, invoice, "refunded"); err != nil {
		return err
	}

	return c.JSON(invoice)
}

type PaymentCreateDTO struct {
	Amount    float64 `json:"amount" validate:"required"`
	Method    string  `json:"method" validate:"required"`
	Date      string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Reference string  `json:"reference" validate:"omitempty"`
}

func CreatePayment(c *fiber.Ctx) error {
	var dto PaymentCreateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	db := database.GetDB(c)
	invoice, err := loadInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}

	payment := models.Payment{
		Amount:    dto.Amount,
		Method:    models.PaymentMethod(dto.Method),
		Date:      dto.Date,
		Reference: dto.Reference,
	}
	if err := engine.RecordPayment(invoice, payment); err != nil {
		return err
	}
	if err := persistInvoice(db, invoice); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(invoice)
}

func ListPayments(c *fiber.Ctx) error {
	db := database.GetDB(c)
	invoice, err := loadInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"payments": invoice.Payments,
		"message":  "success",
	})
}

func GetInvoiceSnapshots(c *fiber.Ctx) error {
	var snapshots []models.InvoiceSnapshot

	db := database.GetDB(c)
	if err := db.Where("invoice_id = ?", c.Params("id")).Order("seq").Find(&snapshots).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"snapshots": snapshots,
		"message":   "success",
	})
}

func loadInvoice(db *gorm.DB, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := db.Preload("LineItems").Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("payments.date, payments.created_at")
	}).First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func persistInvoice(db *gorm.DB, invoice *models.Invoice) error {
	err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(invoice).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not persist invoice")
	}
	return nil
}

// snapshotInvoice appends an immutable jsonb copy of the invoice to its
// audit trail.
func snapshotInvoice(db *gorm.DB, invoice *models.Invoice, event string) error {
	blob, err := json.Marshal(invoice)
	if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.InvoiceSnapshot{}).Where("invoice_id = ?", invoice.ID).Count(&count).Error; err != nil {
		return err
	}

	snapshot := models.InvoiceSnapshot{
		InvoiceID: invoice.ID,
		Seq:       int(count) + 1,
		Event:     event,
		Snapshot:  datatypes.JSON(blob),
	}
	if err := db.Create(&snapshot).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not record invoice snapshot")
	}
	return nil
}
