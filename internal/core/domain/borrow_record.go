package domain

import (
	"math"
	"time"
)

// LoanPeriodDays is how long a patron may keep a book before late fees accrue.
const LoanPeriodDays = 14

// MaxOpenBorrows is the number of books a patron may have out at the same time.
const MaxOpenBorrows = 5

// BorrowRecord tracks one loan of one book to one patron.
// A record with a nil ReturnedAt is still open.
type BorrowRecord struct {
	ID         string     `json:"id"`
	PatronID   string     `json:"patronId"`
	BookID     int64      `json:"bookId"`
	BorrowedAt time.Time  `json:"borrowedAt"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
}

func (r BorrowRecord) Open() bool {
	return r.ReturnedAt == nil
}

// DaysOverdue returns the number of whole days the loan is past its due date
// at the given instant, rounding any partial day up. Never negative.
func (r BorrowRecord) DaysOverdue(now time.Time) int {
	late := now.Sub(r.DueDate)
	if late <= 0 {
		return 0
	}
	return int(math.Ceil(late.Hours() / 24))
}
