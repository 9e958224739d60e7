package query

import (
	"net/url"
	"strings"

	"gorm.io/gorm"
)

const libraryBookCount = "(SELECT COUNT(*) FROM library_books WHERE library_books.library_id = libraries.id)"

var libraryOrderColumns = map[string]string{
	"name":       "libraries.name",
	"created_at": "libraries.created_at",
	"updated_at": "libraries.updated_at",
	"book_count": libraryBookCount,
}

// LibraryFilter narrows the library list. Book matches a title held by the
// library.
type LibraryFilter struct {
	Name     string
	Book     string
	Ordering []Order
}

func ParseLibraryFilter(v url.Values) LibraryFilter {
	return LibraryFilter{
		Name:     strings.TrimSpace(v.Get("name")),
		Book:     strings.TrimSpace(v.Get("book")),
		Ordering: parseOrdering(v.Get("ordering"), libraryOrderColumns, []string{"name"}),
	}
}

func (f LibraryFilter) Where(db *gorm.DB) *gorm.DB {
	if f.Name != "" {
		db = db.Where("libraries.name_key LIKE ? ESCAPE '\\'", contains(f.Name))
	}
	if f.Book != "" {
		db = db.Where(
			"EXISTS (SELECT 1 FROM library_books JOIN books ON books.id = library_books.book_id WHERE library_books.library_id = libraries.id AND books.title_key LIKE ? ESCAPE '\\')",
			contains(f.Book),
		)
	}
	return db
}

func (f LibraryFilter) Order(db *gorm.DB) *gorm.DB {
	orders := f.Ordering
	if len(orders) == 0 {
		orders = parseOrdering("", libraryOrderColumns, []string{"name"})
	}
	return orderScope(orders, "libraries.id")(db)
}

// LibraryBookCountColumn selects the number of books per library alongside
// libraries.*.
func LibraryBookCountColumn() string {
	return libraryBookCount + " AS book_count"
}
