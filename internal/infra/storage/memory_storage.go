package storage

import (
	"context"
	"sync"
	"time"

	"github.com/joelgarciajr84/library-backend-go/internal/core/domain"
)

// MemoryStorage backs every store port with mutex-guarded maps and slices.
// It is the default backend and the one the test suites run against.
type MemoryStorage struct {
	mu       sync.Mutex
	nextID   int64
	books    map[int64]*domain.Book
	borrows  []*domain.BorrowRecord
	payments []ledgerEntry
	refunds  []ledgerEntry
}

type ledgerEntry struct {
	transactionID string
	patronID      string
	amount        float64
	recordedAt    time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		nextID: 1,
		books:  make(map[int64]*domain.Book),
	}
}

func (m *MemoryStorage) GetBookByID(_ context.Context, id int64) (*domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	book, ok := m.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (m *MemoryStorage) GetBookByISBN(_ context.Context, isbn string) (*domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, book := range m.books {
		if book.ISBN == isbn {
			copied := *book
			return &copied, nil
		}
	}
	return nil, domain.ErrBookNotFound
}

func (m *MemoryStorage) InsertBook(_ context.Context, book *domain.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.books {
		if existing.ISBN == book.ISBN {
			return domain.ErrDuplicateISBN
		}
	}

	book.ID = m.nextID
	m.nextID++

	copied := *book
	m.books[book.ID] = &copied
	return nil
}

func (m *MemoryStorage) ListBooks(_ context.Context) ([]domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	books := make([]domain.Book, 0, len(m.books))
	for _, book := range m.books {
		books = append(books, *book)
	}
	return books, nil
}

func (m *MemoryStorage) UpdateBookAvailability(_ context.Context, id int64, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	book, ok := m.books[id]
	if !ok {
		return domain.ErrBookNotFound
	}
	if book.AvailableCopies+delta < 0 {
		return domain.ErrBookNotFound
	}
	book.AvailableCopies += delta
	return nil
}

func (m *MemoryStorage) InsertBorrowRecord(_ context.Context, record *domain.BorrowRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.borrows = append(m.borrows, &copied)
	return nil
}

func (m *MemoryStorage) OpenBorrowRecord(_ context.Context, patronID string, bookID int64) (*domain.BorrowRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, record := range m.borrows {
		if record.PatronID == patronID && record.BookID == bookID && record.Open() {
			copied := *record
			return &copied, nil
		}
	}
	return nil, domain.ErrNoOpenBorrow
}

func (m *MemoryStorage) MarkReturned(_ context.Context, patronID string, bookID int64, returnedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, record := range m.borrows {
		if record.PatronID == patronID && record.BookID == bookID && record.Open() {
			at := returnedAt
			record.ReturnedAt = &at
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStorage) CountOpenBorrows(_ context.Context, patronID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, record := range m.borrows {
		if record.PatronID == patronID && record.Open() {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStorage) ListBorrowsForPatron(_ context.Context, patronID string) ([]domain.BorrowRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := []domain.BorrowRecord{}
	for _, record := range m.borrows {
		if record.PatronID == patronID {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (m *MemoryStorage) RecordPayment(_ context.Context, transactionID, patronID string, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.payments = append(m.payments, ledgerEntry{
		transactionID: transactionID,
		patronID:      patronID,
		amount:        amount,
		recordedAt:    time.Now().UTC(),
	})
	return nil
}

func (m *MemoryStorage) RecordRefund(_ context.Context, transactionID string, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.refunds = append(m.refunds, ledgerEntry{
		transactionID: transactionID,
		amount:        amount,
		recordedAt:    time.Now().UTC(),
	})
	return nil
}

func (m *MemoryStorage) Summary(_ context.Context, from, to *time.Time) (domain.LedgerSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return domain.LedgerSummary{
		Payments: totalsInWindow(m.payments, from, to),
		Refunds:  totalsInWindow(m.refunds, from, to),
	}, nil
}

func totalsInWindow(entries []ledgerEntry, from, to *time.Time) domain.LedgerTotals {
	totals := domain.LedgerTotals{}
	for _, entry := range entries {
		if from != nil && entry.recordedAt.Before(*from) {
			continue
		}
		if to != nil && entry.recordedAt.After(*to) {
			continue
		}
		totals.Count++
		totals.TotalAmount += entry.amount
	}
	return totals
}
