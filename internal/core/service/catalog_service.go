package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joelgarciajr84/library-backend-go/internal/core/domain"
)

const (
	maxTitleLength  = 200
	maxAuthorLength = 100
	isbnLength      = 13
)

// CatalogService validates and persists catalog maintenance requests.
type CatalogService struct {
	books CatalogStore
}

func NewCatalogService(books CatalogStore) *CatalogService {
	return &CatalogService{books: books}
}

// AddBookToCatalog validates every field before touching the store and
// rejects ISBNs that already exist.
func (s *CatalogService) AddBookToCatalog(ctx context.Context, title, author, isbn string, totalCopies int) (bool, string) {
	if strings.TrimSpace(title) == "" {
		return false, "Book title is required"
	}
	if len(title) > maxTitleLength {
		return false, fmt.Sprintf("Book title must be at most %d characters", maxTitleLength)
	}
	if strings.TrimSpace(author) == "" {
		return false, "Author is required"
	}
	if len(author) > maxAuthorLength {
		return false, fmt.Sprintf("Author must be at most %d characters", maxAuthorLength)
	}
	if !validISBN(isbn) {
		return false, fmt.Sprintf("ISBN must be exactly %d digits", isbnLength)
	}
	if totalCopies <= 0 {
		return false, "Total copies must be a positive number"
	}

	existing, err := s.books.GetBookByISBN(ctx, isbn)
	if err != nil && !errors.Is(err, domain.ErrBookNotFound) {
		slog.Error("isbn lookup failed", "err", err, "isbn", isbn)
		return false, "Failed to add book to catalog"
	}
	if existing != nil {
		return false, "A book with this ISBN already exists"
	}

	book := &domain.Book{
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}
	if err := s.books.InsertBook(ctx, book); err != nil {
		if errors.Is(err, domain.ErrDuplicateISBN) {
			return false, "A book with this ISBN already exists"
		}
		slog.Error("book insert failed", "err", err, "isbn", isbn)
		return false, "Failed to add book to catalog"
	}

	return true, fmt.Sprintf("Book %q added successfully", title)
}

// SearchBooksInCatalog matches title and author searches case-insensitively
// on substrings; ISBN searches are exact. Unknown search types and blank
// terms return an empty result, never an error.
func (s *CatalogService) SearchBooksInCatalog(ctx context.Context, term, searchType string) []domain.Book {
	results := []domain.Book{}

	term = strings.TrimSpace(term)
	if term == "" {
		return results
	}

	books, err := s.books.ListBooks(ctx)
	if err != nil {
		slog.Error("catalog listing failed", "err", err)
		return results
	}

	switch searchType {
	case "title":
		for _, book := range books {
			if containsFold(book.Title, term) {
				results = append(results, book)
			}
		}
	case "author":
		for _, book := range books {
			if containsFold(book.Author, term) {
				results = append(results, book)
			}
		}
	case "isbn":
		for _, book := range books {
			if book.ISBN == term {
				results = append(results, book)
			}
		}
	}

	return results
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func validISBN(isbn string) bool {
	if len(isbn) != isbnLength {
		return false
	}
	for i := 0; i < len(isbn); i++ {
		if isbn[i] < '0' || isbn[i] > '9' {
			return false
		}
	}
	return true
}
