package domain

import "errors"

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrDuplicateISBN = errors.New("a book with this ISBN already exists")
	ErrNoOpenBorrow  = errors.New("no open borrow record")
)
