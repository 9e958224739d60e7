package query

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RecentWindowYears  = 10
	DefaultRecentYears = 20
	bookTieBreaker     = "books.id"
	authorNameOfBook   = "(SELECT authors.name FROM authors WHERE authors.id = books.author_id)"
	authorNameMatches  = "books.author_id IN (SELECT authors.id FROM authors WHERE authors.name_key LIKE ? ESCAPE '\\')"
	inLibrary          = "books.id IN (SELECT library_books.book_id FROM library_books WHERE library_books.library_id = ?)"
)

var bookOrderColumns = map[string]string{
	"title":            "books.title",
	"publication_year": "books.publication_year",
	"author":           authorNameOfBook,
	"author_name":      authorNameOfBook,
	"author__name":     authorNameOfBook,
	"isbn":             "books.isbn",
	"created_at":       "books.created_at",
	"updated_at":       "books.updated_at",
}

var defaultBookOrdering = []string{"title"}

// YearRange is an inclusive publication year window.
type YearRange struct {
	Min int
	Max int
}

// BookFilter is the parsed form of the book list parameters. Nil or empty
// fields are not applied.
type BookFilter struct {
	AuthorID   *uuid.UUID
	LibraryID  *uuid.UUID
	YearMin    *int
	YearMax    *int
	Title      string
	AuthorName string
	Years      []int
	Recent     bool
	Decade     *YearRange
	Century    *YearRange
	Search     string
	Ordering   []Order
}

func ParseBookFilter(v url.Values) BookFilter {
	f := BookFilter{
		YearMin:    parseInt(v, "publication_year_min"),
		YearMax:    parseInt(v, "publication_year_max"),
		Title:      strings.TrimSpace(v.Get("title")),
		AuthorName: strings.TrimSpace(v.Get("author_name")),
		Search:     strings.TrimSpace(v.Get("search")),
		Ordering:   parseOrdering(v.Get("ordering"), bookOrderColumns, defaultBookOrdering),
	}

	if s := strings.TrimSpace(v.Get("author")); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.AuthorID = &id
		}
	}

	if s := strings.TrimSpace(v.Get("library")); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.LibraryID = &id
		}
	}

	if raw := v.Get("publication_years"); raw != "" {
		f.Years = parseIntList(raw)
	}

	if b := parseBool(v, "recent"); b != nil {
		f.Recent = *b
	}

	if d := parseInt(v, "decade"); d != nil && *d >= 0 && *d%10 == 0 {
		f.Decade = &YearRange{Min: *d, Max: *d + 9}
	}

	// Century N spans (N-1)*100 .. (N-1)*100+99, so the 20th century is 1900-1999.
	if c := parseInt(v, "century"); c != nil && *c > 0 {
		start := (*c - 1) * 100
		f.Century = &YearRange{Min: start, Max: start + 99}
	}

	return f
}

// ParseSearchFilter reads the advanced search parameters: q, author,
// year_min, year_max and ordering.
func ParseSearchFilter(v url.Values) BookFilter {
	return BookFilter{
		Search:     strings.TrimSpace(v.Get("q")),
		AuthorName: strings.TrimSpace(v.Get("author")),
		YearMin:    parseInt(v, "year_min"),
		YearMax:    parseInt(v, "year_max"),
		Ordering:   parseOrdering(v.Get("ordering"), bookOrderColumns, defaultBookOrdering),
	}
}

// ParseRecentFilter keeps books from the last `years` years, newest first
// unless an ordering is given.
func ParseRecentFilter(v url.Values) BookFilter {
	years := DefaultRecentYears
	if n := parseInt(v, "years"); n != nil && *n > 0 {
		years = *n
	}
	since := Now().Year() - years

	return BookFilter{
		YearMin:  &since,
		Ordering: parseOrdering(v.Get("ordering"), bookOrderColumns, []string{"-publication_year", "title"}),
	}
}

// Where applies every filter. It never joins, so each book appears once.
func (f BookFilter) Where(db *gorm.DB) *gorm.DB {
	if f.AuthorID != nil {
		db = db.Where("books.author_id = ?", *f.AuthorID)
	}
	if f.LibraryID != nil {
		db = db.Where(inLibrary, *f.LibraryID)
	}
	if f.YearMin != nil {
		db = db.Where("books.publication_year >= ?", *f.YearMin)
	}
	if f.YearMax != nil {
		db = db.Where("books.publication_year <= ?", *f.YearMax)
	}
	if f.Title != "" {
		db = db.Where("books.title_key LIKE ? ESCAPE '\\'", contains(f.Title))
	}
	if f.AuthorName != "" {
		db = db.Where(authorNameMatches, contains(f.AuthorName))
	}
	if len(f.Years) > 0 {
		db = db.Where("books.publication_year IN ?", f.Years)
	}
	if f.Recent {
		db = db.Where("books.publication_year >= ?", Now().Year()-RecentWindowYears)
	}
	if f.Decade != nil {
		db = db.Where("books.publication_year BETWEEN ? AND ?", f.Decade.Min, f.Decade.Max)
	}
	if f.Century != nil {
		db = db.Where("books.publication_year BETWEEN ? AND ?", f.Century.Min, f.Century.Max)
	}
	if f.Search != "" {
		p := contains(f.Search)
		db = db.Where("(books.title_key LIKE ? ESCAPE '\\' OR "+authorNameMatches+")", p, p)
	}
	return db
}

// Order applies the requested ordering followed by the primary key.
func (f BookFilter) Order(db *gorm.DB) *gorm.DB {
	orders := f.Ordering
	if len(orders) == 0 {
		orders = parseOrdering("", bookOrderColumns, defaultBookOrdering)
	}
	return orderScope(orders, bookTieBreaker)(db)
}
