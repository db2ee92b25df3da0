package loan

type BorrowReq struct {
	CopyID      int64  `json:"copy_id" validate:"required,gt=0"`
	LibrarianID *int64 `json:"librarian_id" validate:"omitempty,gt=0"`
}

type ReturnReq struct {
	BorrowerID  int64  `json:"borrower_id" validate:"required,gt=0"`
	LibrarianID *int64 `json:"librarian_id" validate:"omitempty,gt=0"`
}
