package availabilitysvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ursulinastarry/book-library/model"
	availabilitysvc "github.com/Ursulinastarry/book-library/service/availability"
)

type repoMock struct {
	listFn        func(ctx context.Context) ([]model.AvailableCopy, error)
	listForBookFn func(ctx context.Context, bookID int64) ([]model.AvailableCopy, error)
	summaryFn     func(ctx context.Context, bookID int64) (*model.BookSummary, error)
}

func (m *repoMock) ListAvailable(ctx context.Context) ([]model.AvailableCopy, error) {
	return m.listFn(ctx)
}
func (m *repoMock) ListAvailableForBook(ctx context.Context, bookID int64) ([]model.AvailableCopy, error) {
	return m.listForBookFn(ctx, bookID)
}
func (m *repoMock) BookSummary(ctx context.Context, bookID int64) (*model.BookSummary, error) {
	return m.summaryFn(ctx, bookID)
}

func TestForBook_WithCopies(t *testing.T) {
	m := &repoMock{
		listForBookFn: func(ctx context.Context, bookID int64) ([]model.AvailableCopy, error) {
			return []model.AvailableCopy{
				{CopyID: 11, BookID: 3, Status: model.CopyAvailable, Title: "Dune", Author: "Herbert"},
				{CopyID: 12, BookID: 3, Status: model.CopyReturned, Title: "Dune", Author: "Herbert"},
			}, nil
		},
	}
	s := availabilitysvc.New(m)

	out, err := s.ForBook(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, int64(3), out.Book.ID)
	require.Equal(t, "Dune", out.Book.Title)
	require.Equal(t, 2, out.Count)
	require.Len(t, out.Copies, 2)
}

func TestForBook_NoCopiesButBookExists(t *testing.T) {
	m := &repoMock{
		listForBookFn: func(ctx context.Context, bookID int64) ([]model.AvailableCopy, error) {
			return nil, nil
		},
		summaryFn: func(ctx context.Context, bookID int64) (*model.BookSummary, error) {
			return &model.BookSummary{ID: bookID, Title: "Dune", Author: "Herbert"}, nil
		},
	}
	s := availabilitysvc.New(m)

	out, err := s.ForBook(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, 0, out.Count)
	require.NotNil(t, out.Copies)
	require.Empty(t, out.Copies)
	require.Equal(t, "Dune", out.Book.Title)
}

func TestForBook_BookAbsent(t *testing.T) {
	m := &repoMock{
		listForBookFn: func(ctx context.Context, bookID int64) ([]model.AvailableCopy, error) {
			return nil, nil
		},
		summaryFn: func(ctx context.Context, bookID int64) (*model.BookSummary, error) {
			return nil, nil
		},
	}
	s := availabilitysvc.New(m)

	_, err := s.ForBook(context.Background(), 404)
	require.ErrorIs(t, err, availabilitysvc.ErrBookNotFound)
}

func TestAll_PassesThrough(t *testing.T) {
	want := []model.AvailableCopy{{CopyID: 1}, {CopyID: 2}}
	m := &repoMock{
		listFn: func(ctx context.Context) ([]model.AvailableCopy, error) { return want, nil },
	}
	s := availabilitysvc.New(m)

	got, err := s.All(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestAll_Error(t *testing.T) {
	m := &repoMock{
		listFn: func(ctx context.Context) ([]model.AvailableCopy, error) {
			return nil, errors.New("db down")
		},
	}
	s := availabilitysvc.New(m)

	_, err := s.All(context.Background())
	require.Error(t, err)
}
