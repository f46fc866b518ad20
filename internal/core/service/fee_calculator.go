package service

import (
	"context"
	"time"

	"github.com/joelgarciajr84/library-backend-go/internal/core/domain"
)

// FeeCalculator derives the late fee owed for a single loan from its open
// borrow record. The fee accrues per whole day overdue and is clamped to
// [0, domain.MaxLateFee].
type FeeCalculator struct {
	borrows BorrowStore
	now     func() time.Time
}

func NewFeeCalculator(borrows BorrowStore) *FeeCalculator {
	return &FeeCalculator{borrows: borrows, now: time.Now}
}

// CalculateLateFeeForBook returns a zero quote when the patron id is
// malformed, the loan does not exist, is not overdue, or the store fails.
func (c *FeeCalculator) CalculateLateFeeForBook(ctx context.Context, patronID string, bookID int64) domain.FeeQuote {
	if !domain.ValidPatronID(patronID) {
		return domain.FeeQuote{}
	}

	record, err := c.borrows.OpenBorrowRecord(ctx, patronID, bookID)
	if err != nil || record == nil {
		return domain.FeeQuote{}
	}

	days := record.DaysOverdue(c.now())
	if days == 0 {
		return domain.FeeQuote{}
	}

	fee := float64(days) * domain.DailyLateFee
	if fee > domain.MaxLateFee {
		fee = domain.MaxLateFee
	}

	return domain.FeeQuote{FeeAmount: fee, DaysOverdue: days}
}
