package bookrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Ursulinastarry/book-library/model"
)

type Repo interface {
	List(ctx context.Context) ([]model.Book, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, b model.Book) (int64, error)
	Update(ctx context.Context, id int64, b model.Book) (bool, error)
	ApplyPatch(ctx context.Context, id int64, p model.BookPatch) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const bookColumns = `id, title, author, genre, year, pages, publisher, description, image, price`

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+bookColumns+`
		FROM books
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Year,
			&b.Pages, &b.Publisher, &b.Description, &b.Image, &b.Price); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	err := r.db.QueryRowContext(ctx, `
		SELECT `+bookColumns+`
		FROM books
		WHERE id = $1`, id,
	).Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Year,
		&b.Pages, &b.Publisher, &b.Description, &b.Image, &b.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) Create(ctx context.Context, b model.Book) (int64, error) {
	const q = `
		INSERT INTO books (title, author, genre, year, pages, publisher, description, image, price)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.Genre, b.Year, b.Pages,
		b.Publisher, b.Description, b.Image, b.Price,
	).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) Update(ctx context.Context, id int64, b model.Book) (bool, error) {
	const q = `
		UPDATE books
		SET title = $1, author = $2, genre = $3, year = $4, pages = $5,
		    publisher = $6, description = $7, image = $8, price = $9
		WHERE id = $10`
	res, err := r.db.ExecContext(ctx, q,
		b.Title, b.Author, b.Genre, b.Year, b.Pages,
		b.Publisher, b.Description, b.Image, b.Price, id)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	return aff > 0, err
}

// ApplyPatch updates only the fields set on p. The column list is fixed;
// nothing from the request body reaches the statement as an identifier.
func (r *repo) ApplyPatch(ctx context.Context, id int64, p model.BookPatch) (bool, error) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Author != nil {
		add("author", *p.Author)
	}
	if p.Genre != nil {
		add("genre", *p.Genre)
	}
	if p.Year != nil {
		add("year", *p.Year)
	}
	if p.Pages != nil {
		add("pages", *p.Pages)
	}
	if p.Publisher != nil {
		add("publisher", *p.Publisher)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Image != nil {
		add("image", *p.Image)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if len(sets) == 0 {
		return false, errors.New("empty patch")
	}

	args = append(args, id)
	q := fmt.Sprintf("UPDATE books SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	return aff > 0, err
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	return aff > 0, err
}
