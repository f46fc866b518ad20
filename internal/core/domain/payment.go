package domain

const (
	// MaxLateFee is the cap on any single late fee, and therefore on any refund.
	MaxLateFee = 15.00

	// DailyLateFee accrues per whole day a book is overdue.
	DailyLateFee = 0.50

	// MaxGatewayAmount is the largest single charge the payment gateway accepts.
	MaxGatewayAmount = 1000.00
)

const (
	PaymentStatusCompleted = "completed"
	PaymentStatusNotFound  = "not_found"
)

// FeeQuote is the transient result of a late-fee calculation. Never persisted.
type FeeQuote struct {
	FeeAmount   float64 `json:"feeAmount"`
	DaysOverdue int     `json:"daysOverdue"`
}

// PaymentResult is the gateway's answer to a charge attempt. A declined
// charge is an ordinary result with Approved false; transport or processor
// faults surface as errors on the gateway call instead.
type PaymentResult struct {
	Approved      bool
	TransactionID string
	Message       string
}

// RefundResult is the gateway's answer to a refund attempt.
type RefundResult struct {
	Approved bool
	Message  string
}

// StatusResult is the gateway's answer to a status lookup.
type StatusResult struct {
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
}

// PaymentOutcome is the orchestrator-level result handed back to callers.
type PaymentOutcome struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId,omitempty"`
	Message       string `json:"message"`
}

// RefundOutcome is the orchestrator-level result of a refund request.
type RefundOutcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LedgerTotals aggregates recorded ledger entries inside a time window.
type LedgerTotals struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

// LedgerSummary reports payment and refund totals side by side.
type LedgerSummary struct {
	Payments LedgerTotals `json:"payments"`
	Refunds  LedgerTotals `json:"refunds"`
}
