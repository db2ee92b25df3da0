package book

import "github.com/Ursulinastarry/book-library/model"

// BookReq is the create/full-update payload; every field is required so a
// PUT always carries the whole record.
type BookReq struct {
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author" validate:"required"`
	Genre       string  `json:"genre" validate:"required"`
	Year        int     `json:"year" validate:"required"`
	Pages       int     `json:"pages" validate:"required,gt=0"`
	Publisher   string  `json:"publisher" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Image       string  `json:"image" validate:"required"`
	Price       float64 `json:"price" validate:"required,gte=0"`
}

func (r BookReq) toModel() model.Book {
	return model.Book{
		Title:       r.Title,
		Author:      r.Author,
		Genre:       r.Genre,
		Year:        r.Year,
		Pages:       r.Pages,
		Publisher:   r.Publisher,
		Description: r.Description,
		Image:       r.Image,
		Price:       r.Price,
	}
}
