package availabilitysvc

import (
	"context"
	"errors"

	"github.com/Ursulinastarry/book-library/model"
	copyrepo "github.com/Ursulinastarry/book-library/repository/copy"
)

var ErrBookNotFound = errors.New("book not found")

// BookAvailability is the per-book projection: book identity plus its
// borrowable copies. Copies may be empty; that is not an error.
type BookAvailability struct {
	Book   model.BookSummary     `json:"book"`
	Count  int                   `json:"count"`
	Copies []model.AvailableCopy `json:"copies"`
}

type Service interface {
	All(ctx context.Context) ([]model.AvailableCopy, error)
	ForBook(ctx context.Context, bookID int64) (*BookAvailability, error)
}

type service struct{ r copyrepo.Repo }

func New(r copyrepo.Repo) Service { return &service{r: r} }

func (s *service) All(ctx context.Context) ([]model.AvailableCopy, error) {
	return s.r.ListAvailable(ctx)
}

func (s *service) ForBook(ctx context.Context, bookID int64) (*BookAvailability, error) {
	copies, err := s.r.ListAvailableForBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if len(copies) > 0 {
		return &BookAvailability{
			Book:   model.BookSummary{ID: copies[0].BookID, Title: copies[0].Title, Author: copies[0].Author},
			Count:  len(copies),
			Copies: copies,
		}, nil
	}

	// No borrowable copies; distinguish "all checked out" from "no such book".
	book, err := s.r.BookSummary(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return &BookAvailability{Book: *book, Count: 0, Copies: []model.AvailableCopy{}}, nil
}
