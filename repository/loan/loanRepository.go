package loanrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Ursulinastarry/book-library/model"
)

// Sentinel errors surfaced to the loan service.
var (
	// ErrCopyUnavailable: no copy with that id is in a borrowable state.
	ErrCopyUnavailable = errors.New("copy not available")
	// ErrLoanNotFound: no open loan with that id belongs to the user.
	ErrLoanNotFound = errors.New("loan not found or already returned")
)

type BorrowParams struct {
	CopyID             int64
	UserID             int64
	LibrarianID        int64
	BorrowDate         time.Time
	ExpectedReturnDate time.Time
}

type ReturnParams struct {
	BorrowerID  int64
	UserID      int64
	LibrarianID int64
	ReturnedAt  time.Time
}

type ReturnResult struct {
	CopyID     int64
	ReturnedAt time.Time
	LateFee    *float64
}

type HistoryRow struct {
	BorrowerID         int64            `json:"borrower_id"`
	CopyID             int64            `json:"copy_id"`
	Title              string           `json:"title"`
	Author             string           `json:"author"`
	BorrowDate         time.Time        `json:"borrow_date"`
	ExpectedReturnDate time.Time        `json:"expected_return_date"`
	ActualReturnDate   *time.Time       `json:"actual_return_date,omitempty"`
	Status             model.LoanStatus `json:"status"`
	LateFee            *float64         `json:"late_fee,omitempty"`
}

type Repo interface {
	// Borrow claims the copy and opens a loan in one transaction.
	// Returns ErrCopyUnavailable when the copy is absent or not in a
	// borrowable state.
	Borrow(ctx context.Context, p BorrowParams) (borrowerID int64, err error)

	// Return closes the caller's open loan and frees the copy in one
	// transaction. Returns ErrLoanNotFound when no open loan with that
	// id belongs to the user.
	Return(ctx context.Context, p ReturnParams) (*ReturnResult, error)

	// ListByUser returns the user's loans, newest first.
	ListByUser(ctx context.Context, userID int64) ([]HistoryRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Borrow(ctx context.Context, p BorrowParams) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Conditional update is the whole concurrency story: of two racing
	// borrows, exactly one matches the status guard.
	const claim = `
		UPDATE bookcopies
		SET status = 'Borrowed'
		WHERE copy_id = $1
		  AND (status = 'Available' OR status = 'Returned')`
	res, err := tx.ExecContext(ctx, claim, p.CopyID)
	if err != nil {
		return 0, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if aff == 0 {
		err = ErrCopyUnavailable
		return 0, err
	}

	const ins = `
		INSERT INTO borrowers (user_id, copy_id, librarian_id, borrow_date, expected_return_date, status)
		VALUES ($1, $2, $3, $4, $5, 'Borrowed')
		RETURNING borrower_id`
	var borrowerID int64
	if err = tx.QueryRowContext(ctx, ins,
		p.UserID, p.CopyID, p.LibrarianID, p.BorrowDate, p.ExpectedReturnDate,
	).Scan(&borrowerID); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return borrowerID, nil
}

func (r *repo) Return(ctx context.Context, p ReturnParams) (res *ReturnResult, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Row lock so a concurrent return of the same loan blocks here and
	// then misses on the status guard.
	const open = `
		SELECT copy_id, expected_return_date
		FROM borrowers
		WHERE borrower_id = $1 AND user_id = $2 AND status = 'Borrowed'
		FOR UPDATE`
	var (
		copyID   int64
		expected time.Time
	)
	err = tx.QueryRowContext(ctx, open, p.BorrowerID, p.UserID).Scan(&copyID, &expected)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrLoanNotFound
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	fee := model.LateFee(expected, p.ReturnedAt)

	const closeLoan = `
		UPDATE borrowers
		SET status = 'Returned', actual_return_date = $1, librarian_id = $2, late_fee = $3
		WHERE borrower_id = $4`
	if _, err = tx.ExecContext(ctx, closeLoan, p.ReturnedAt, p.LibrarianID, fee, p.BorrowerID); err != nil {
		return nil, err
	}

	const free = `
		UPDATE bookcopies
		SET status = 'Returned'
		WHERE copy_id = $1`
	if _, err = tx.ExecContext(ctx, free, copyID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &ReturnResult{CopyID: copyID, ReturnedAt: p.ReturnedAt, LateFee: fee}, nil
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]HistoryRow, error) {
	const q = `
		SELECT br.borrower_id, br.copy_id, b.title, b.author,
		       br.borrow_date, br.expected_return_date, br.actual_return_date,
		       br.status, br.late_fee
		FROM borrowers br
		JOIN bookcopies bc ON bc.copy_id = br.copy_id
		JOIN books b ON b.id = bc.id
		WHERE br.user_id = $1
		ORDER BY br.borrow_date DESC, br.borrower_id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(&h.BorrowerID, &h.CopyID, &h.Title, &h.Author,
			&h.BorrowDate, &h.ExpectedReturnDate, &h.ActualReturnDate,
			&h.Status, &h.LateFee); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
