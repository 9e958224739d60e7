package query

import (
	"net/url"
	"strings"

	"gorm.io/gorm"
)

const authorBookCount = "(SELECT COUNT(*) FROM books WHERE books.author_id = authors.id)"

var authorOrderColumns = map[string]string{
	"name":       "authors.name",
	"created_at": "authors.created_at",
	"updated_at": "authors.updated_at",
	"book_count": authorBookCount,
}

type AuthorFilter struct {
	Name     string
	Search   string
	Ordering []Order
}

func ParseAuthorFilter(v url.Values) AuthorFilter {
	return AuthorFilter{
		Name:     strings.TrimSpace(v.Get("name")),
		Search:   strings.TrimSpace(v.Get("search")),
		Ordering: parseOrdering(v.Get("ordering"), authorOrderColumns, []string{"name"}),
	}
}

func (f AuthorFilter) Where(db *gorm.DB) *gorm.DB {
	if f.Name != "" {
		db = db.Where("authors.name_key LIKE ? ESCAPE '\\'", contains(f.Name))
	}
	if f.Search != "" {
		p := contains(f.Search)
		db = db.Where(
			"(authors.name_key LIKE ? ESCAPE '\\' OR EXISTS (SELECT 1 FROM books WHERE books.author_id = authors.id AND books.title_key LIKE ? ESCAPE '\\'))",
			p, p,
		)
	}
	return db
}

func (f AuthorFilter) Order(db *gorm.DB) *gorm.DB {
	orders := f.Ordering
	if len(orders) == 0 {
		orders = parseOrdering("", authorOrderColumns, []string{"name"})
	}
	return orderScope(orders, "authors.id")(db)
}

// BookCountColumn selects the number of books per author alongside authors.*.
func BookCountColumn() string {
	return authorBookCount + " AS book_count"
}
