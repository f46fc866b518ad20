package storage

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/joelgarciajr84/library-backend-go/internal/core/domain"
)

const (
	dialectPostgres = "postgres"
	booksTable      = "books"
	borrowsTable    = "borrow_records"

	pgUniqueViolation = "23505"
)

// PostgresStorage implements the catalog and borrow store ports on a pgx
// connection pool. Queries are built with goqu; see schema.sql for the
// expected tables.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (p *PostgresStorage) GetBookByID(ctx context.Context, id int64) (*domain.Book, error) {
	return p.getBook(ctx, goqu.Ex{"id": id})
}

func (p *PostgresStorage) GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	return p.getBook(ctx, goqu.Ex{"isbn": isbn})
}

func (p *PostgresStorage) getBook(ctx context.Context, where goqu.Ex) (*domain.Book, error) {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		From(booksTable).
		Select("id", "title", "author", "isbn", "total_copies", "available_copies").
		Where(where).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build book select")
	}

	var book domain.Book
	row := p.pool.QueryRow(ctx, sqlQuery)
	if err := row.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.TotalCopies, &book.AvailableCopies); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookNotFound
		}
		return nil, errors.Wrap(err, "scan book row")
	}

	return &book, nil
}

func (p *PostgresStorage) InsertBook(ctx context.Context, book *domain.Book) error {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		Insert(booksTable).
		Rows(goqu.Record{
			"title":            book.Title,
			"author":           book.Author,
			"isbn":             book.ISBN,
			"total_copies":     book.TotalCopies,
			"available_copies": book.AvailableCopies,
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build book insert")
	}

	if err := p.pool.QueryRow(ctx, sqlQuery).Scan(&book.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicateISBN
		}
		return errors.Wrap(err, "insert book")
	}

	return nil
}

func (p *PostgresStorage) ListBooks(ctx context.Context) ([]domain.Book, error) {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		From(booksTable).
		Select("id", "title", "author", "isbn", "total_copies", "available_copies").
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build book list")
	}

	rows, err := p.pool.Query(ctx, sqlQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list books")
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.TotalCopies, &book.AvailableCopies); err != nil {
			return nil, errors.Wrap(err, "scan book row")
		}
		books = append(books, book)
	}

	return books, errors.Wrap(rows.Err(), "iterate book rows")
}

func (p *PostgresStorage) UpdateBookAvailability(ctx context.Context, id int64, delta int) error {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		Update(booksTable).
		Set(goqu.Record{"available_copies": goqu.L("available_copies + ?", delta)}).
		Where(
			goqu.Ex{"id": id},
			goqu.L("available_copies + ? >= 0", delta),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build availability update")
	}

	tag, err := p.pool.Exec(ctx, sqlQuery)
	if err != nil {
		return errors.Wrap(err, "update availability")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookNotFound
	}

	return nil
}

func (p *PostgresStorage) InsertBorrowRecord(ctx context.Context, record *domain.BorrowRecord) error {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		Insert(borrowsTable).
		Rows(goqu.Record{
			"id":          record.ID,
			"patron_id":   record.PatronID,
			"book_id":     record.BookID,
			"borrowed_at": record.BorrowedAt,
			"due_date":    record.DueDate,
		}).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build borrow insert")
	}

	_, err = p.pool.Exec(ctx, sqlQuery)
	return errors.Wrap(err, "insert borrow record")
}

func (p *PostgresStorage) OpenBorrowRecord(ctx context.Context, patronID string, bookID int64) (*domain.BorrowRecord, error) {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		From(borrowsTable).
		Select("id", "patron_id", "book_id", "borrowed_at", "due_date", "returned_at").
		Where(goqu.Ex{
			"patron_id":   patronID,
			"book_id":     bookID,
			"returned_at": nil,
		}).
		Order(goqu.I("due_date").Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build open borrow select")
	}

	var record domain.BorrowRecord
	row := p.pool.QueryRow(ctx, sqlQuery)
	if err := row.Scan(&record.ID, &record.PatronID, &record.BookID, &record.BorrowedAt, &record.DueDate, &record.ReturnedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoOpenBorrow
		}
		return nil, errors.Wrap(err, "scan borrow row")
	}

	return &record, nil
}

func (p *PostgresStorage) MarkReturned(ctx context.Context, patronID string, bookID int64, returnedAt time.Time) (bool, error) {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		Update(borrowsTable).
		Set(goqu.Record{"returned_at": returnedAt}).
		Where(goqu.Ex{
			"patron_id":   patronID,
			"book_id":     bookID,
			"returned_at": nil,
		}).
		ToSQL()
	if err != nil {
		return false, errors.Wrap(err, "build return update")
	}

	tag, err := p.pool.Exec(ctx, sqlQuery)
	if err != nil {
		return false, errors.Wrap(err, "mark returned")
	}

	return tag.RowsAffected() > 0, nil
}

func (p *PostgresStorage) CountOpenBorrows(ctx context.Context, patronID string) (int, error) {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		From(borrowsTable).
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{
			"patron_id":   patronID,
			"returned_at": nil,
		}).
		ToSQL()
	if err != nil {
		return 0, errors.Wrap(err, "build open borrow count")
	}

	var count int
	if err := p.pool.QueryRow(ctx, sqlQuery).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count open borrows")
	}

	return count, nil
}

func (p *PostgresStorage) ListBorrowsForPatron(ctx context.Context, patronID string) ([]domain.BorrowRecord, error) {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		From(borrowsTable).
		Select("id", "patron_id", "book_id", "borrowed_at", "due_date", "returned_at").
		Where(goqu.Ex{"patron_id": patronID}).
		Order(goqu.I("borrowed_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build borrow list")
	}

	rows, err := p.pool.Query(ctx, sqlQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list borrows")
	}
	defer rows.Close()

	records := []domain.BorrowRecord{}
	for rows.Next() {
		var record domain.BorrowRecord
		if err := rows.Scan(&record.ID, &record.PatronID, &record.BookID, &record.BorrowedAt, &record.DueDate, &record.ReturnedAt); err != nil {
			return nil, errors.Wrap(err, "scan borrow row")
		}
		records = append(records, record)
	}

	return records, errors.Wrap(rows.Err(), "iterate borrow rows")
}
