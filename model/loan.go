package model

import (
	"math"
	"time"
)

type LoanStatus string

const (
	LoanBorrowed LoanStatus = "Borrowed"
	LoanReturned LoanStatus = "Returned"
)

// LoanPeriod is how long a copy may be kept before fees accrue.
const LoanPeriod = 14 * 24 * time.Hour

// LateFeePerDay is charged per full or partial day past the expected
// return date.
const LateFeePerDay = 0.50

// Loan is one borrowers row: a user holding one copy for a bounded period.
type Loan struct {
	BorrowerID         int64      `json:"borrower_id"`
	UserID             int64      `json:"user_id"`
	CopyID             int64      `json:"copy_id"`
	LibrarianID        int64      `json:"librarian_id"`
	BorrowDate         time.Time  `json:"borrow_date"`
	ExpectedReturnDate time.Time  `json:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date,omitempty"`
	Status             LoanStatus `json:"status"`
	LateFee            *float64   `json:"late_fee,omitempty"`
}

// LateFee computes the fee owed for returning at actual against expected.
// Nil when the return is on time. Partial days count as whole days.
func LateFee(expected, actual time.Time) *float64 {
	if !actual.After(expected) {
		return nil
	}
	daysLate := math.Ceil(actual.Sub(expected).Hours() / 24)
	fee := daysLate * LateFeePerDay
	return &fee
}
