package handlers

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"github.com/joelgarciajr84/library-backend-go/internal/core/service"
)

type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type addBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	TotalCopies int    `json:"totalCopies"`
}

// operationResponse is the wire shape of every (success, message) outcome.
type operationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *CatalogHandler) AddBook(c *fiber.Ctx) error {
	var req addBookRequest
	if err := sonic.Unmarshal(c.Body(), &req); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	ok, message := h.catalog.AddBookToCatalog(c.Context(), req.Title, req.Author, req.ISBN, req.TotalCopies)
	return c.JSON(operationResponse{Success: ok, Message: message})
}

func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	results := h.catalog.SearchBooksInCatalog(c.Context(), c.Query("q"), c.Query("type", "title"))
	return c.JSON(results)
}
