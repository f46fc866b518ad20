package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joelgarciajr84/library-backend-go/internal/core/domain"
)

// PaymentService orchestrates the late-fee payment lifecycle: it validates
// the request, consults the fee calculator and invokes the payment gateway.
// Validation failures never touch the gateway; a gateway error is caught
// here and converted into a failed outcome carrying the cause.
type PaymentService struct {
	books   CatalogStore
	fees    FeeQuoter
	gateway PaymentGateway
	ledger  PaymentLedger
}

func NewPaymentService(books CatalogStore, fees FeeQuoter, gateway PaymentGateway, ledger PaymentLedger) *PaymentService {
	return &PaymentService{books: books, fees: fees, gateway: gateway, ledger: ledger}
}

// PayLateFees charges the outstanding late fee for one book. Preconditions,
// in order: valid patron id, existing book, fee greater than zero. Each
// failure is an ordinary outcome and the gateway is never invoked.
func (s *PaymentService) PayLateFees(ctx context.Context, patronID string, bookID int64) domain.PaymentOutcome {
	if !domain.ValidPatronID(patronID) {
		return domain.PaymentOutcome{Message: "Invalid patron ID. Must be exactly 6 digits"}
	}

	book, err := s.books.GetBookByID(ctx, bookID)
	if errors.Is(err, domain.ErrBookNotFound) {
		return domain.PaymentOutcome{Message: "Book not found"}
	}
	if err != nil {
		slog.Error("book lookup failed", "err", err, "bookId", bookID)
		return domain.PaymentOutcome{Message: "Book not found"}
	}

	quote := s.fees.CalculateLateFeeForBook(ctx, patronID, bookID)
	if quote.FeeAmount <= 0 {
		return domain.PaymentOutcome{Message: "No outstanding late fees for this book"}
	}

	description := fmt.Sprintf("Late fees for '%s'", book.Title)

	result, gatewayErr := s.gateway.ProcessPayment(patronID, quote.FeeAmount, description)
	if gatewayErr != nil {
		slog.Error("payment gateway failure", "err", gatewayErr, "patronId", patronID, "bookId", bookID)
		return domain.PaymentOutcome{Message: fmt.Sprintf("Payment failed: %s", gatewayErr)}
	}
	if !result.Approved {
		return domain.PaymentOutcome{Message: result.Message}
	}

	s.recordPayment(ctx, result.TransactionID, patronID, quote.FeeAmount)

	return domain.PaymentOutcome{
		Success:       true,
		TransactionID: result.TransactionID,
		Message:       result.Message,
	}
}

// RefundLateFeePayment refunds a previously charged late fee. The refund
// amount is capped at domain.MaxLateFee since no single fee can exceed it.
func (s *PaymentService) RefundLateFeePayment(ctx context.Context, transactionID string, amount float64) domain.RefundOutcome {
	if !domain.ValidTransactionID(transactionID) {
		return domain.RefundOutcome{Message: "Invalid transaction ID"}
	}
	if amount <= 0 {
		return domain.RefundOutcome{Message: "Refund amount must be greater than zero"}
	}
	if amount > domain.MaxLateFee {
		return domain.RefundOutcome{Message: fmt.Sprintf("Refund amount cannot exceed the maximum late fee of $%.2f", domain.MaxLateFee)}
	}

	result, gatewayErr := s.gateway.RefundPayment(transactionID, amount)
	if gatewayErr != nil {
		slog.Error("refund gateway failure", "err", gatewayErr, "transactionId", transactionID)
		return domain.RefundOutcome{Message: fmt.Sprintf("Refund failed: %s", gatewayErr)}
	}
	if !result.Approved {
		return domain.RefundOutcome{Message: result.Message}
	}

	s.recordRefund(ctx, transactionID, amount)

	return domain.RefundOutcome{Success: true, Message: result.Message}
}

// VerifyPayment looks up the gateway-side status of a transaction.
func (s *PaymentService) VerifyPayment(transactionID string) domain.StatusResult {
	return s.gateway.VerifyPaymentStatus(transactionID)
}

// LedgerSummary aggregates recorded payments and refunds in a time window.
func (s *PaymentService) LedgerSummary(ctx context.Context, from, to *time.Time) (domain.LedgerSummary, error) {
	if s.ledger == nil {
		return domain.LedgerSummary{}, nil
	}
	return s.ledger.Summary(ctx, from, to)
}

// Ledger bookkeeping is best-effort: a recording failure must not turn an
// approved gateway transaction into a failed outcome.
func (s *PaymentService) recordPayment(ctx context.Context, transactionID, patronID string, amount float64) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.RecordPayment(ctx, transactionID, patronID, amount); err != nil {
		slog.Warn("failed to record payment", "err", err, "transactionId", transactionID)
	}
}

func (s *PaymentService) recordRefund(ctx context.Context, transactionID string, amount float64) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.RecordRefund(ctx, transactionID, amount); err != nil {
		slog.Warn("failed to record refund", "err", err, "transactionId", transactionID)
	}
}
