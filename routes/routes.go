package routes

import (
	"github.com/gofiber/fiber/v2"

	"practice-billing-backend/controllers"
	"practice-billing-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request transaction (commits/rolls back around the handler)
	protected.Use(middlewares.Tx())

	// Patients
	protected.Post("/patient", controllers.CreatePatient)
	protected.Get("/patients", controllers.GetPatients)
	protected.Get("/patient/:id", controllers.GetPatient)
	protected.Put("/patient/:id", controllers.UpdatePatient)

	// Appointments
	protected.Post("/appointment", controllers.CreateAppointment)
	protected.Get("/appointments", controllers.GetAppointments)
	protected.Get("/appointment/:id", controllers.GetAppointment)

	// Invoices (lifecycle model with payments and snapshots)
	protected.Post("/invoice", controllers.CreateInvoice)
	protected.Post("/invoices/from-appointment/:id", controllers.CreateInvoiceFromAppointment)
	protected.Get("/invoices", controllers.GetInvoices)
	protected.Get("/invoice/:id", controllers.GetInvoice)
	protected.Put("/invoices/:id", controllers.UpdateInvoice)
	protected.Post("/invoices/:id/send", controllers.SendInvoice)
	protected.Post("/invoices/:id/pay", controllers.PayInvoice)
	protected.Post("/invoices/:id/void", controllers.VoidInvoice)
	protected.Post("/invoices/:id/refund", controllers.RefundInvoice)
	protected.Post("/invoices/:id/payments", controllers.CreatePayment)
	protected.Get("/invoices/:id/payments", controllers.ListPayments)
	protected.Get("/invoices/:id/snapshots", controllers.GetInvoiceSnapshots)

	// Dashboard
	protected.Get("/dashboard/billing", controllers.BillingSummary)
}
