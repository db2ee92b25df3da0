package booksvc

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Ursulinastarry/book-library/model"
	bookrepo "github.com/Ursulinastarry/book-library/repository/book"
)

var (
	ErrNotFound = errors.New("book not found")
	ErrBadInput = errors.New("bad input")
	// ErrBookInUse: copies still reference the book.
	ErrBookInUse = errors.New("book has copies")
)

// ListParams mirror the list query string. Filtering and sorting happen
// after the full table is loaded; fine at this catalog's scale.
type ListParams struct {
	Search string
	Genre  string
	SortBy string
}

type Service interface {
	List(ctx context.Context, p ListParams) ([]model.Book, error)
	Stats(ctx context.Context, p ListParams) (model.BookStats, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, b model.Book) (int64, error)
	Update(ctx context.Context, id int64, b model.Book) error
	Patch(ctx context.Context, id int64, p model.BookPatch) error
	Delete(ctx context.Context, id int64) error
}

type service struct{ r bookrepo.Repo }

func New(r bookrepo.Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context, p ListParams) ([]model.Book, error) {
	books, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(books, p), nil
}

// Filter applies search, genre and sort to an already-loaded catalog.
func Filter(books []model.Book, p ListParams) []model.Book {
	out := make([]model.Book, 0, len(books))

	term := strings.ToLower(strings.TrimSpace(p.Search))
	genre := strings.ToLower(strings.TrimSpace(p.Genre))
	for _, b := range books {
		if term != "" &&
			!strings.Contains(strings.ToLower(b.Title), term) &&
			!strings.Contains(strings.ToLower(b.Author), term) &&
			!strings.Contains(strings.ToLower(b.Description), term) {
			continue
		}
		if genre != "" && strings.ToLower(b.Genre) != genre {
			continue
		}
		out = append(out, b)
	}

	switch p.SortBy {
	case "year":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	case "title":
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	case "author":
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Author) < strings.ToLower(out[j].Author)
		})
	}
	return out
}

func (s *service) Stats(ctx context.Context, p ListParams) (model.BookStats, error) {
	books, err := s.List(ctx, p)
	if err != nil {
		return model.BookStats{}, err
	}
	return Aggregate(books), nil
}

// Aggregate summarizes a filtered catalog view.
func Aggregate(books []model.Book) model.BookStats {
	st := model.BookStats{TotalBooks: len(books)}
	if len(books) == 0 {
		return st
	}
	pages := 0
	oldest := books[0].Year
	genres := map[string]struct{}{}
	for _, b := range books {
		pages += b.Pages
		if b.Year < oldest {
			oldest = b.Year
		}
		genres[b.Genre] = struct{}{}
	}
	st.AvgPages = int(math.Round(float64(pages) / float64(len(books))))
	st.OldestBook = &oldest
	st.UniqueGenres = len(genres)
	return st
}

func (s *service) Get(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) Create(ctx context.Context, b model.Book) (int64, error) {
	if b.Title == "" || b.Author == "" {
		return 0, ErrBadInput
	}
	return s.r.Create(ctx, b)
}

func (s *service) Update(ctx context.Context, id int64, b model.Book) error {
	ok, err := s.r.Update(ctx, id, b)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) Patch(ctx context.Context, id int64, p model.BookPatch) error {
	if p.Empty() {
		return ErrBadInput
	}
	ok, err := s.r.ApplyPatch(ctx, id, p)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrBookInUse
		}
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
