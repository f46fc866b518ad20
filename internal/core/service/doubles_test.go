package service

import (
	"context"
	"time"

	"github.com/joelgarciajr84/library-backend-go/internal/core/domain"
)

// Hand-rolled collaborator doubles. The port interfaces are small enough
// that a mocking framework would cost more than it saves.

type stubCatalog struct {
	books     map[int64]*domain.Book
	getErr    error
	insertErr error
	listErr   error
	updateErr error

	inserted []domain.Book
	updates  []int
}

func newStubCatalog(books ...domain.Book) *stubCatalog {
	s := &stubCatalog{books: make(map[int64]*domain.Book)}
	for i := range books {
		book := books[i]
		s.books[book.ID] = &book
	}
	return s
}

func (s *stubCatalog) GetBookByID(_ context.Context, id int64) (*domain.Book, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	book, ok := s.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (s *stubCatalog) GetBookByISBN(_ context.Context, isbn string) (*domain.Book, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, book := range s.books {
		if book.ISBN == isbn {
			copied := *book
			return &copied, nil
		}
	}
	return nil, domain.ErrBookNotFound
}

func (s *stubCatalog) InsertBook(_ context.Context, book *domain.Book) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	book.ID = int64(len(s.books) + 1)
	s.inserted = append(s.inserted, *book)
	copied := *book
	s.books[book.ID] = &copied
	return nil
}

func (s *stubCatalog) ListBooks(_ context.Context) ([]domain.Book, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	books := []domain.Book{}
	for _, book := range s.books {
		books = append(books, *book)
	}
	return books, nil
}

func (s *stubCatalog) UpdateBookAvailability(_ context.Context, id int64, delta int) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates = append(s.updates, delta)
	if book, ok := s.books[id]; ok {
		book.AvailableCopies += delta
	}
	return nil
}

type stubBorrows struct {
	records   []*domain.BorrowRecord
	countErr  error
	insertErr error
	openErr   error
	listErr   error
	markErr   error

	inserted []domain.BorrowRecord
}

func (s *stubBorrows) InsertBorrowRecord(_ context.Context, record *domain.BorrowRecord) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, *record)
	copied := *record
	s.records = append(s.records, &copied)
	return nil
}

func (s *stubBorrows) OpenBorrowRecord(_ context.Context, patronID string, bookID int64) (*domain.BorrowRecord, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	for _, record := range s.records {
		if record.PatronID == patronID && record.BookID == bookID && record.Open() {
			copied := *record
			return &copied, nil
		}
	}
	return nil, domain.ErrNoOpenBorrow
}

func (s *stubBorrows) MarkReturned(_ context.Context, patronID string, bookID int64, returnedAt time.Time) (bool, error) {
	if s.markErr != nil {
		return false, s.markErr
	}
	for _, record := range s.records {
		if record.PatronID == patronID && record.BookID == bookID && record.Open() {
			at := returnedAt
			record.ReturnedAt = &at
			return true, nil
		}
	}
	return false, nil
}

func (s *stubBorrows) CountOpenBorrows(_ context.Context, patronID string) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	count := 0
	for _, record := range s.records {
		if record.PatronID == patronID && record.Open() {
			count++
		}
	}
	return count, nil
}

func (s *stubBorrows) ListBorrowsForPatron(_ context.Context, patronID string) ([]domain.BorrowRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	records := []domain.BorrowRecord{}
	for _, record := range s.records {
		if record.PatronID == patronID {
			records = append(records, *record)
		}
	}
	return records, nil
}

type stubFees struct {
	quote domain.FeeQuote
}

func (s *stubFees) CalculateLateFeeForBook(context.Context, string, int64) domain.FeeQuote {
	return s.quote
}

type spyGateway struct {
	processCalls    int
	lastPatronID    string
	lastAmount      float64
	lastDescription string
	processResult   domain.PaymentResult
	processErr      error

	refundCalls       int
	lastTransactionID string
	lastRefundAmount  float64
	refundResult      domain.RefundResult
	refundErr         error
}

func (g *spyGateway) ProcessPayment(patronID string, amount float64, description string) (domain.PaymentResult, error) {
	g.processCalls++
	g.lastPatronID = patronID
	g.lastAmount = amount
	g.lastDescription = description
	return g.processResult, g.processErr
}

func (g *spyGateway) RefundPayment(transactionID string, amount float64) (domain.RefundResult, error) {
	g.refundCalls++
	g.lastTransactionID = transactionID
	g.lastRefundAmount = amount
	return g.refundResult, g.refundErr
}

func (g *spyGateway) VerifyPaymentStatus(transactionID string) domain.StatusResult {
	status := domain.PaymentStatusNotFound
	if domain.KnownTransactionID(transactionID) {
		status = domain.PaymentStatusCompleted
	}
	return domain.StatusResult{Status: status, TransactionID: transactionID}
}

type spyLedger struct {
	payments   []float64
	refunds    []float64
	recordErr  error
	summary    domain.LedgerSummary
	summaryErr error
}

func (l *spyLedger) RecordPayment(_ context.Context, _, _ string, amount float64) error {
	if l.recordErr != nil {
		return l.recordErr
	}
	l.payments = append(l.payments, amount)
	return nil
}

func (l *spyLedger) RecordRefund(_ context.Context, _ string, amount float64) error {
	if l.recordErr != nil {
		return l.recordErr
	}
	l.refunds = append(l.refunds, amount)
	return nil
}

func (l *spyLedger) Summary(context.Context, *time.Time, *time.Time) (domain.LedgerSummary, error) {
	return l.summary, l.summaryErr
}
