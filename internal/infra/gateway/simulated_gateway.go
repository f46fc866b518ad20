package gateway

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/joelgarciajr84/library-backend-go/internal/core/domain"
)

// SleepFunc is the injectable delay strategy used to model the processor's
// network round-trip. Tests pass a no-op.
type SleepFunc func(time.Duration)

// SimulatedGateway stands in for a remote payment processor. Validation is
// deterministic; the only state shared between calls is the nonce sequence
// that keeps transaction ids unique.
type SimulatedGateway struct {
	latency time.Duration
	sleep   SleepFunc
	nonce   atomic.Uint64
}

func NewSimulatedGateway(latency time.Duration, sleep SleepFunc) *SimulatedGateway {
	if sleep == nil {
		sleep = time.Sleep
	}
	g := &SimulatedGateway{latency: latency, sleep: sleep}
	g.nonce.Store(uint64(time.Now().UnixNano()))
	return g
}

// ProcessPayment validates the charge and synthesizes a transaction id of
// the form txn_<patronId>_<nonce>. Declines are ordinary results; the error
// return is reserved for processor faults, which this simulation never
// produces.
func (g *SimulatedGateway) ProcessPayment(patronID string, amount float64, description string) (domain.PaymentResult, error) {
	g.sleep(g.latency)

	if !domain.ValidPatronID(patronID) {
		return domain.PaymentResult{Message: "Invalid patron ID format"}, nil
	}
	if amount <= 0 {
		return domain.PaymentResult{Message: "Invalid amount: must be greater than zero"}, nil
	}
	if amount > domain.MaxGatewayAmount {
		return domain.PaymentResult{Message: fmt.Sprintf("Amount exceeds limit of $%.2f", domain.MaxGatewayAmount)}, nil
	}

	transactionID := fmt.Sprintf("txn_%s_%d", patronID, g.nonce.Add(1))
	slog.Debug("payment approved", "transactionId", transactionID, "amount", amount, "description", description)

	return domain.PaymentResult{
		Approved:      true,
		TransactionID: transactionID,
		Message:       fmt.Sprintf("Payment of $%.2f processed successfully", amount),
	}, nil
}

// RefundPayment validates the transaction id shape and the amount.
func (g *SimulatedGateway) RefundPayment(transactionID string, amount float64) (domain.RefundResult, error) {
	g.sleep(g.latency)

	if !domain.ValidTransactionID(transactionID) {
		return domain.RefundResult{Message: "Invalid transaction ID"}, nil
	}
	if amount <= 0 {
		return domain.RefundResult{Message: "Invalid refund amount"}, nil
	}

	slog.Debug("refund approved", "transactionId", transactionID, "amount", amount)

	return domain.RefundResult{
		Approved: true,
		Message:  fmt.Sprintf("Refund of $%.2f processed successfully", amount),
	}, nil
}

// VerifyPaymentStatus reports "completed" for anything shaped like a
// gateway-issued id and "not_found" otherwise.
func (g *SimulatedGateway) VerifyPaymentStatus(transactionID string) domain.StatusResult {
	status := domain.PaymentStatusNotFound
	if domain.KnownTransactionID(transactionID) {
		status = domain.PaymentStatusCompleted
	}
	return domain.StatusResult{Status: status, TransactionID: transactionID}
}
