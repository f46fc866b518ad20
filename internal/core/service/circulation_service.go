package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joelgarciajr84/library-backend-go/internal/core/domain"
)

const dueDateLayout = "2006-01-02"

// CirculationService handles borrow/return bookkeeping and patron status
// reporting on top of the catalog and borrow stores.
type CirculationService struct {
	books   CatalogStore
	borrows BorrowStore
	fees    FeeQuoter
	now     func() time.Time
}

func NewCirculationService(books CatalogStore, borrows BorrowStore, fees FeeQuoter) *CirculationService {
	return &CirculationService{books: books, borrows: borrows, fees: fees, now: time.Now}
}

// BorrowBookByPatron lends one copy of a book, enforcing the per-patron
// limit of domain.MaxOpenBorrows open loans.
func (s *CirculationService) BorrowBookByPatron(ctx context.Context, patronID string, bookID int64) (bool, string) {
	if !domain.ValidPatronID(patronID) {
		return false, "Invalid patron ID. Must be exactly 6 digits"
	}

	count, err := s.borrows.CountOpenBorrows(ctx, patronID)
	if err != nil {
		slog.Error("borrow count lookup failed", "err", err, "patronId", patronID)
		return false, "Failed to check current borrows"
	}
	if count >= domain.MaxOpenBorrows {
		return false, fmt.Sprintf("Patron has reached the borrowing limit of %d books", domain.MaxOpenBorrows)
	}

	book, err := s.books.GetBookByID(ctx, bookID)
	if errors.Is(err, domain.ErrBookNotFound) {
		return false, "Book not found"
	}
	if err != nil {
		slog.Error("book lookup failed", "err", err, "bookId", bookID)
		return false, "Failed to look up book"
	}
	if book.AvailableCopies <= 0 {
		return false, fmt.Sprintf("Book %q is not available", book.Title)
	}

	now := s.now()
	record := &domain.BorrowRecord{
		ID:         uuid.NewString(),
		PatronID:   patronID,
		BookID:     bookID,
		BorrowedAt: now,
		DueDate:    now.AddDate(0, 0, domain.LoanPeriodDays),
	}
	if err := s.borrows.InsertBorrowRecord(ctx, record); err != nil {
		slog.Error("borrow record insert failed", "err", err, "patronId", patronID, "bookId", bookID)
		return false, "Failed to create borrow record"
	}
	if err := s.books.UpdateBookAvailability(ctx, bookID, -1); err != nil {
		slog.Error("availability update failed", "err", err, "bookId", bookID)
		return false, "Failed to update book availability"
	}

	return true, fmt.Sprintf("Book %q borrowed successfully. Due date: %s", book.Title, record.DueDate.Format(dueDateLayout))
}

// ReturnBookByPatron closes the patron's open loan for the book and puts the
// copy back into circulation.
func (s *CirculationService) ReturnBookByPatron(ctx context.Context, patronID string, bookID int64) (bool, string) {
	if !domain.ValidPatronID(patronID) {
		return false, "Invalid patron ID. Must be exactly 6 digits"
	}

	book, err := s.books.GetBookByID(ctx, bookID)
	if errors.Is(err, domain.ErrBookNotFound) {
		return false, "Book not found"
	}
	if err != nil {
		slog.Error("book lookup failed", "err", err, "bookId", bookID)
		return false, "Failed to look up book"
	}

	returned, err := s.borrows.MarkReturned(ctx, patronID, bookID, s.now())
	if err != nil {
		slog.Error("return update failed", "err", err, "patronId", patronID, "bookId", bookID)
		return false, "Failed to update borrow record"
	}
	if !returned {
		return false, fmt.Sprintf("No active borrow record found for %q", book.Title)
	}

	if err := s.books.UpdateBookAvailability(ctx, bookID, 1); err != nil {
		slog.Error("availability update failed", "err", err, "bookId", bookID)
		return false, "Failed to update book availability"
	}

	return true, fmt.Sprintf("Book %q returned successfully", book.Title)
}

// GetPatronStatusReport lists the patron's open loans with due dates, the
// late fees currently owed and the size of their borrow history. The second
// return value is false when the patron id is malformed or the store fails.
func (s *CirculationService) GetPatronStatusReport(ctx context.Context, patronID string) (domain.PatronStatus, bool) {
	if !domain.ValidPatronID(patronID) {
		return domain.PatronStatus{}, false
	}

	records, err := s.borrows.ListBorrowsForPatron(ctx, patronID)
	if err != nil {
		slog.Error("borrow history lookup failed", "err", err, "patronId", patronID)
		return domain.PatronStatus{}, false
	}

	report := domain.PatronStatus{
		PatronID:      patronID,
		BorrowedBooks: []domain.BorrowedBookStatus{},
	}
	now := s.now()

	for _, record := range records {
		report.HistoryCount++
		if !record.Open() {
			continue
		}

		var title string
		if book, err := s.books.GetBookByID(ctx, record.BookID); err == nil {
			title = book.Title
		}

		report.BorrowedBooks = append(report.BorrowedBooks, domain.BorrowedBookStatus{
			BookID:      record.BookID,
			Title:       title,
			DueDate:     record.DueDate.Format(dueDateLayout),
			DaysOverdue: record.DaysOverdue(now),
		})

		quote := s.fees.CalculateLateFeeForBook(ctx, patronID, record.BookID)
		report.TotalFees += quote.FeeAmount
	}

	return report, true
}
