package domain

// BorrowedBookStatus is one open loan inside a patron status report.
// DueDate is formatted YYYY-MM-DD.
type BorrowedBookStatus struct {
	BookID      int64  `json:"bookId"`
	Title       string `json:"title"`
	DueDate     string `json:"dueDate"`
	DaysOverdue int    `json:"daysOverdue"`
}

// PatronStatus summarizes a patron's open loans, outstanding late fees and
// total borrow history.
type PatronStatus struct {
	PatronID      string               `json:"patronId"`
	BorrowedBooks []BorrowedBookStatus `json:"borrowedBooks"`
	TotalFees     float64              `json:"totalFees"`
	HistoryCount  int                  `json:"historyCount"`
}
