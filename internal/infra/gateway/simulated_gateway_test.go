package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/joelgarciajr84/library-backend-go/internal/core/domain"
)

func noSleep(time.Duration) {}

func TestProcessPaymentApproved(t *testing.T) {
	g := NewSimulatedGateway(0, noSleep)

	result, err := g.ProcessPayment("123456", 12.50, "Late fees for 'Dune'")

	assert.NoError(t, err)
	assert.True(t, result.Approved)
	assert.True(t, domain.ValidTransactionID(result.TransactionID))
	assert.Contains(t, result.TransactionID, "txn_123456_")
	assert.Equal(t, "Payment of $12.50 processed successfully", result.Message)
}

func TestProcessPaymentValidation(t *testing.T) {
	testCases := []struct {
		name     string
		patronID string
		amount   float64
		wantMsg  string
	}{
		{"short patron id", "12345", 10, "Invalid patron ID format"},
		{"non-numeric patron id", "12a456", 10, "Invalid patron ID format"},
		{"zero amount", "123456", 0, "Invalid amount: must be greater than zero"},
		{"negative amount", "123456", -1, "Invalid amount: must be greater than zero"},
		{"amount over limit", "123456", 1000.01, "Amount exceeds limit of $1000.00"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := NewSimulatedGateway(0, noSleep)

			result, err := g.ProcessPayment(tt.patronID, tt.amount, "x")

			assert.NoError(t, err)
			assert.False(t, result.Approved)
			assert.Empty(t, result.TransactionID)
			assert.Equal(t, tt.wantMsg, result.Message)
		})
	}
}

func TestProcessPaymentUniqueTransactionIDs(t *testing.T) {
	g := NewSimulatedGateway(0, noSleep)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		result, err := g.ProcessPayment("123456", 1.00, "x")
		assert.NoError(t, err)
		assert.False(t, seen[result.TransactionID], "duplicate id %s", result.TransactionID)
		seen[result.TransactionID] = true
	}
}

func TestProcessPaymentSleepsForLatency(t *testing.T) {
	var slept time.Duration
	g := NewSimulatedGateway(150*time.Millisecond, func(d time.Duration) { slept = d })

	_, err := g.ProcessPayment("123456", 1.00, "x")

	assert.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, slept)
}

func TestRefundPaymentApproved(t *testing.T) {
	g := NewSimulatedGateway(0, noSleep)

	result, err := g.RefundPayment("txn_123456_42", 5.00)

	assert.NoError(t, err)
	assert.True(t, result.Approved)
	assert.Equal(t, "Refund of $5.00 processed successfully", result.Message)
}

func TestRefundPaymentValidation(t *testing.T) {
	testCases := []struct {
		name          string
		transactionID string
		amount        float64
		wantMsg       string
	}{
		{"empty id", "", 5, "Invalid transaction ID"},
		{"bare prefix", "txn_", 5, "Invalid transaction ID"},
		{"missing nonce", "txn_123456", 5, "Invalid transaction ID"},
		{"non-numeric parts", "txn_abc_123", 5, "Invalid transaction ID"},
		{"zero amount", "txn_123456_42", 0, "Invalid refund amount"},
		{"negative amount", "txn_123456_42", -2, "Invalid refund amount"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := NewSimulatedGateway(0, noSleep)

			result, err := g.RefundPayment(tt.transactionID, tt.amount)

			assert.NoError(t, err)
			assert.False(t, result.Approved)
			assert.Equal(t, tt.wantMsg, result.Message)
		})
	}
}

func TestVerifyPaymentStatus(t *testing.T) {
	g := NewSimulatedGateway(0, noSleep)

	completed := g.VerifyPaymentStatus("txn_001122")
	assert.Equal(t, domain.PaymentStatusCompleted, completed.Status)
	assert.Equal(t, "txn_001122", completed.TransactionID)

	notFound := g.VerifyPaymentStatus("order_001122")
	assert.Equal(t, domain.PaymentStatusNotFound, notFound.Status)

	bare := g.VerifyPaymentStatus("txn_")
	assert.Equal(t, domain.PaymentStatusNotFound, bare.Status)
}

func TestNilSleepDefaultsToRealSleep(t *testing.T) {
	g := NewSimulatedGateway(0, nil)

	result, err := g.ProcessPayment("123456", 1.00, "x")

	assert.NoError(t, err)
	assert.True(t, result.Approved)
}
