package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/joelgarciajr84/library-backend-go/internal/core/service"
)

// Register mounts every route of the service onto the fiber app.
func Register(
	app *fiber.App,
	catalog *service.CatalogService,
	circulation *service.CirculationService,
	payments *service.PaymentService,
	fees service.FeeQuoter,
) {
	catalogHandler := NewCatalogHandler(catalog)
	circulationHandler := NewCirculationHandler(circulation)
	paymentHandler := NewPaymentHandler(payments, fees)

	app.Post("/books", catalogHandler.AddBook)
	app.Get("/books/search", catalogHandler.Search)

	app.Post("/borrowings", circulationHandler.Borrow)
	app.Post("/returns", circulationHandler.Return)

	app.Get("/patrons/:id/status", circulationHandler.PatronStatus)
	app.Get("/patrons/:id/late-fees/:bookId", paymentHandler.Quote)

	app.Post("/late-fees/payments", paymentHandler.Pay)
	app.Post("/late-fees/refunds", paymentHandler.Refund)
	app.Get("/late-fees/status/:transactionId", paymentHandler.Status)
	app.Get("/late-fees/summary", paymentHandler.Summary)
}
