package model

type Book struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Genre       string  `json:"genre"`
	Year        int     `json:"year"`
	Pages       int     `json:"pages"`
	Publisher   string  `json:"publisher"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// BookPatch enumerates the fields a partial update may touch. Unset
// fields stay nil and are left alone.
type BookPatch struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Genre       *string  `json:"genre"`
	Year        *int     `json:"year"`
	Pages       *int     `json:"pages"`
	Publisher   *string  `json:"publisher"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Price       *float64 `json:"price"`
}

// Empty reports whether the patch sets no fields.
func (p BookPatch) Empty() bool {
	return p.Title == nil && p.Author == nil && p.Genre == nil &&
		p.Year == nil && p.Pages == nil && p.Publisher == nil &&
		p.Description == nil && p.Image == nil && p.Price == nil
}

type CopyStatus string

const (
	CopyAvailable CopyStatus = "Available"
	CopyReturned  CopyStatus = "Returned"
	CopyBorrowed  CopyStatus = "Borrowed"
)

type BookCopy struct {
	CopyID    int64      `json:"copy_id"`
	BookID    int64      `json:"id"`
	Status    CopyStatus `json:"status"`
	Condition string     `json:"condition"`
	Location  string     `json:"location"`
}

// AvailableCopy is the availability projection: a borrowable copy joined
// with the identifying fields of its book.
type AvailableCopy struct {
	CopyID    int64      `json:"copy_id"`
	BookID    int64      `json:"id"`
	Status    CopyStatus `json:"status"`
	Condition string     `json:"condition"`
	Location  string     `json:"location"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
}

// BookSummary is the identity slice of a book used by the availability
// responses.
type BookSummary struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// BookStats aggregates the filtered catalog view.
type BookStats struct {
	TotalBooks   int  `json:"total_books"`
	AvgPages     int  `json:"avg_pages"`
	OldestBook   *int `json:"oldest_book"`
	UniqueGenres int  `json:"unique_genres"`
}
