package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/joelgarciajr84/library-backend-go/internal/core/domain"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func openRecord(patronID string, bookID int64, dueDate time.Time) *domain.BorrowRecord {
	return &domain.BorrowRecord{
		ID:         "rec-1",
		PatronID:   patronID,
		BookID:     bookID,
		BorrowedAt: dueDate.AddDate(0, 0, -domain.LoanPeriodDays),
		DueDate:    dueDate,
	}
}

func TestCalculateLateFeeAccrualAndCap(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		daysLate     int
		expectedFee  float64
		expectedDays int
	}{
		{1, 0.50, 1},
		{3, 1.50, 3},
		{29, 14.50, 29},
		{30, 15.00, 30},
		{100, 15.00, 100},
	}

	for _, tt := range testCases {
		borrows := &stubBorrows{records: []*domain.BorrowRecord{
			openRecord("123456", 1, now.AddDate(0, 0, -tt.daysLate)),
		}}
		calc := &FeeCalculator{borrows: borrows, now: fixedClock(now)}

		quote := calc.CalculateLateFeeForBook(context.Background(), "123456", 1)

		assert.Equal(t, tt.expectedFee, quote.FeeAmount, "fee for %d days late", tt.daysLate)
		assert.Equal(t, tt.expectedDays, quote.DaysOverdue)
	}
}

func TestCalculateLateFeePartialDayRoundsUp(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	borrows := &stubBorrows{records: []*domain.BorrowRecord{
		openRecord("123456", 1, now.Add(-1*time.Hour)),
	}}
	calc := &FeeCalculator{borrows: borrows, now: fixedClock(now)}

	quote := calc.CalculateLateFeeForBook(context.Background(), "123456", 1)

	assert.Equal(t, 1, quote.DaysOverdue)
	assert.Equal(t, 0.50, quote.FeeAmount)
}

func TestCalculateLateFeeNotOverdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	borrows := &stubBorrows{records: []*domain.BorrowRecord{
		openRecord("123456", 1, now.AddDate(0, 0, 7)),
	}}
	calc := &FeeCalculator{borrows: borrows, now: fixedClock(now)}

	quote := calc.CalculateLateFeeForBook(context.Background(), "123456", 1)

	assert.Zero(t, quote.FeeAmount)
	assert.Zero(t, quote.DaysOverdue)
}

func TestCalculateLateFeeNoOpenRecord(t *testing.T) {
	calc := &FeeCalculator{borrows: &stubBorrows{}, now: time.Now}

	quote := calc.CalculateLateFeeForBook(context.Background(), "123456", 1)

	assert.Zero(t, quote.FeeAmount)
	assert.Zero(t, quote.DaysOverdue)
}

func TestCalculateLateFeeInvalidPatronID(t *testing.T) {
	calc := &FeeCalculator{borrows: &stubBorrows{}, now: time.Now}

	quote := calc.CalculateLateFeeForBook(context.Background(), "12", 1)

	assert.Zero(t, quote.FeeAmount)
}

func TestCalculateLateFeeStoreError(t *testing.T) {
	borrows := &stubBorrows{openErr: errors.New("db down")}
	calc := &FeeCalculator{borrows: borrows, now: time.Now}

	quote := calc.CalculateLateFeeForBook(context.Background(), "123456", 1)

	assert.Zero(t, quote.FeeAmount)
	assert.Zero(t, quote.DaysOverdue)
}
