package loansvc

import (
	"context"
	"errors"
	"time"

	"github.com/Ursulinastarry/book-library/model"
	loanrepo "github.com/Ursulinastarry/book-library/repository/loan"
)

// errors used by controllers

type ErrCode string

const (
	ErrCopyUnavailable ErrCode = "COPY_UNAVAILABLE"
	ErrLoanNotFound    ErrCode = "LOAN_NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type Borrowed struct {
	BorrowerID         int64
	ExpectedReturnDate time.Time
}

type Returned struct {
	ReturnDate time.Time
	LateFee    *float64
}

// HistoryRow = repository shape
type HistoryRow = loanrepo.HistoryRow

type Service interface {
	// Borrow claims the copy for the user and opens a loan; returns the
	// expected return date.
	Borrow(ctx context.Context, userID, copyID int64, librarianID *int64) (*Borrowed, error)

	// Return closes the user's open loan, frees the copy and settles the
	// late fee.
	Return(ctx context.Context, userID, borrowerID int64, librarianID *int64) (*Returned, error)

	// MyHistory lists the user's loans.
	MyHistory(ctx context.Context, userID int64) ([]HistoryRow, error)
}

type service struct {
	r loanrepo.Repo

	// used when the request names no librarian
	defaultLibrarianID int64
}

func New(r loanrepo.Repo, defaultLibrarianID int64) Service {
	return &service{r: r, defaultLibrarianID: defaultLibrarianID}
}

func (s *service) librarian(librarianID *int64) int64 {
	if librarianID != nil {
		return *librarianID
	}
	return s.defaultLibrarianID
}

func (s *service) Borrow(ctx context.Context, userID, copyID int64, librarianID *int64) (*Borrowed, error) {
	now := time.Now().UTC()
	borrowerID, err := s.r.Borrow(ctx, loanrepo.BorrowParams{
		CopyID:             copyID,
		UserID:             userID,
		LibrarianID:        s.librarian(librarianID),
		BorrowDate:         now,
		ExpectedReturnDate: now.Add(model.LoanPeriod),
	})
	if err != nil {
		if errors.Is(err, loanrepo.ErrCopyUnavailable) {
			return nil, makeErr(ErrCopyUnavailable)
		}
		return nil, err
	}
	return &Borrowed{
		BorrowerID:         borrowerID,
		ExpectedReturnDate: now.Add(model.LoanPeriod),
	}, nil
}

func (s *service) Return(ctx context.Context, userID, borrowerID int64, librarianID *int64) (*Returned, error) {
	res, err := s.r.Return(ctx, loanrepo.ReturnParams{
		BorrowerID:  borrowerID,
		UserID:      userID,
		LibrarianID: s.librarian(librarianID),
		ReturnedAt:  time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, loanrepo.ErrLoanNotFound) {
			return nil, makeErr(ErrLoanNotFound)
		}
		return nil, err
	}
	return &Returned{ReturnDate: res.ReturnedAt, LateFee: res.LateFee}, nil
}

func (s *service) MyHistory(ctx context.Context, userID int64) ([]HistoryRow, error) {
	return s.r.ListByUser(ctx, userID)
}
