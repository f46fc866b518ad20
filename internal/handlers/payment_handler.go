package handlers

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"github.com/joelgarciajr84/library-backend-go/internal/core/service"
)

type PaymentHandler struct {
	payments *service.PaymentService
	fees     service.FeeQuoter
}

func NewPaymentHandler(payments *service.PaymentService, fees service.FeeQuoter) *PaymentHandler {
	return &PaymentHandler{payments: payments, fees: fees}
}

type payLateFeesRequest struct {
	PatronID string `json:"patronId"`
	BookID   int64  `json:"bookId"`
}

type refundRequest struct {
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
}

func (h *PaymentHandler) Pay(c *fiber.Ctx) error {
	var req payLateFeesRequest
	if err := sonic.Unmarshal(c.Body(), &req); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	return c.JSON(h.payments.PayLateFees(c.Context(), req.PatronID, req.BookID))
}

func (h *PaymentHandler) Refund(c *fiber.Ctx) error {
	var req refundRequest
	if err := sonic.Unmarshal(c.Body(), &req); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	return c.JSON(h.payments.RefundLateFeePayment(c.Context(), req.TransactionID, req.Amount))
}

func (h *PaymentHandler) Quote(c *fiber.Ctx) error {
	bookID, err := c.ParamsInt("bookId")
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	return c.JSON(h.fees.CalculateLateFeeForBook(c.Context(), c.Params("id"), int64(bookID)))
}

func (h *PaymentHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.payments.VerifyPayment(c.Params("transactionId")))
}

func (h *PaymentHandler) Summary(c *fiber.Ctx) error {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			from = &parsed
		}
	}
	if raw := c.Query("to"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			to = &parsed
		}
	}

	summary, err := h.payments.LedgerSummary(c.Context(), from, to)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(summary)
}
