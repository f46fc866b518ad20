package handlers

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"github.com/joelgarciajr84/library-backend-go/internal/core/service"
)

type CirculationHandler struct {
	circulation *service.CirculationService
}

func NewCirculationHandler(circulation *service.CirculationService) *CirculationHandler {
	return &CirculationHandler{circulation: circulation}
}

type loanRequest struct {
	PatronID string `json:"patronId"`
	BookID   int64  `json:"bookId"`
}

func (h *CirculationHandler) Borrow(c *fiber.Ctx) error {
	var req loanRequest
	if err := sonic.Unmarshal(c.Body(), &req); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	ok, message := h.circulation.BorrowBookByPatron(c.Context(), req.PatronID, req.BookID)
	return c.JSON(operationResponse{Success: ok, Message: message})
}

func (h *CirculationHandler) Return(c *fiber.Ctx) error {
	var req loanRequest
	if err := sonic.Unmarshal(c.Body(), &req); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	ok, message := h.circulation.ReturnBookByPatron(c.Context(), req.PatronID, req.BookID)
	return c.JSON(operationResponse{Success: ok, Message: message})
}

func (h *CirculationHandler) PatronStatus(c *fiber.Ctx) error {
	report, ok := h.circulation.GetPatronStatusReport(c.Context(), c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.JSON(report)
}
