package controllers

import (
	"practice-billing-backend/billing"
	"practice-billing-backend/database"
	"practice-billing-backend/models"

	"github.com/gofiber/fiber/v2"
)

// BillingSummary returns the dashboard rollup across all invoices.
// Voided/refunded invoices keep their figures but are excluded from the
// billed/outstanding sums by the summarizer.
func BillingSummary(c *fiber.Ctx) error {
	var invoices []models.Invoice
	if err := database.GetDB(c).Find(&invoices).Error; err != nil {
		return err
	}

	return c.JSON(billing.Summarize(invoices))
}
