package copyrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ursulinastarry/book-library/model"
)

type Repo interface {
	// ListAvailable returns every copy whose status permits borrowing,
	// across all books, copy_id ascending.
	ListAvailable(ctx context.Context) ([]model.AvailableCopy, error)

	// ListAvailableForBook is the per-book variant.
	ListAvailableForBook(ctx context.Context, bookID int64) ([]model.AvailableCopy, error)

	// BookSummary returns the identity slice of a book, nil when absent.
	BookSummary(ctx context.Context, bookID int64) (*model.BookSummary, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const availableQuery = `
	SELECT bc.copy_id, bc.id, bc.status, bc.condition, bc.location,
	       b.title, b.author
	FROM bookcopies bc
	JOIN books b ON bc.id = b.id
	WHERE bc.status IN ('Available', 'Returned')`

func (r *repo) ListAvailable(ctx context.Context) ([]model.AvailableCopy, error) {
	rows, err := r.db.QueryContext(ctx, availableQuery+`
	ORDER BY bc.copy_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCopies(rows)
}

func (r *repo) ListAvailableForBook(ctx context.Context, bookID int64) ([]model.AvailableCopy, error) {
	rows, err := r.db.QueryContext(ctx, availableQuery+`
	AND bc.id = $1
	ORDER BY bc.copy_id`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCopies(rows)
}

func scanCopies(rows *sql.Rows) ([]model.AvailableCopy, error) {
	var out []model.AvailableCopy
	for rows.Next() {
		var c model.AvailableCopy
		if err := rows.Scan(&c.CopyID, &c.BookID, &c.Status, &c.Condition,
			&c.Location, &c.Title, &c.Author); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) BookSummary(ctx context.Context, bookID int64) (*model.BookSummary, error) {
	var s model.BookSummary
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, author
		FROM books
		WHERE id = $1`, bookID,
	).Scan(&s.ID, &s.Title, &s.Author)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
