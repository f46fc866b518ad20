package service

import (
	"context"
	"time"

	"github.com/joelgarciajr84/library-backend-go/internal/core/domain"
)

// CatalogStore persists books. GetBookByID and GetBookByISBN return
// domain.ErrBookNotFound when no row matches.
type CatalogStore interface {
	GetBookByID(ctx context.Context, id int64) (*domain.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	InsertBook(ctx context.Context, book *domain.Book) error
	ListBooks(ctx context.Context) ([]domain.Book, error)
	UpdateBookAvailability(ctx context.Context, id int64, delta int) error
}

// BorrowStore persists loans. OpenBorrowRecord returns domain.ErrNoOpenBorrow
// when the patron has no open loan for the book.
type BorrowStore interface {
	InsertBorrowRecord(ctx context.Context, record *domain.BorrowRecord) error
	OpenBorrowRecord(ctx context.Context, patronID string, bookID int64) (*domain.BorrowRecord, error)
	MarkReturned(ctx context.Context, patronID string, bookID int64, returnedAt time.Time) (bool, error)
	CountOpenBorrows(ctx context.Context, patronID string) (int, error)
	ListBorrowsForPatron(ctx context.Context, patronID string) ([]domain.BorrowRecord, error)
}

// PaymentLedger records completed gateway transactions for reporting.
// A nil from/to leaves that side of the summary window open.
type PaymentLedger interface {
	RecordPayment(ctx context.Context, transactionID, patronID string, amount float64) error
	RecordRefund(ctx context.Context, transactionID string, amount float64) error
	Summary(ctx context.Context, from, to *time.Time) (domain.LedgerSummary, error)
}

// PaymentGateway is the external payment-processing boundary. Declines are
// ordinary results; the error return carries transport/processor faults only.
type PaymentGateway interface {
	ProcessPayment(patronID string, amount float64, description string) (domain.PaymentResult, error)
	RefundPayment(transactionID string, amount float64) (domain.RefundResult, error)
	VerifyPaymentStatus(transactionID string) domain.StatusResult
}

// FeeQuoter computes the late fee currently owed for one loan.
type FeeQuoter interface {
	CalculateLateFeeForBook(ctx context.Context, patronID string, bookID int64) domain.FeeQuote
}
