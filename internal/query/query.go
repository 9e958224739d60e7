// Package query turns query-string parameters into gorm scopes.
//
// Parsing is lenient: a malformed value drops that one filter and leaves the
// rest of the request intact.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/snnyvrz/shelfshare/internal/model"
	"gorm.io/gorm"
)

// Now is replaced in tests that depend on the current year.
var Now = time.Now

type Order struct {
	Key  string
	Expr string
	Desc bool
}

func (o Order) clause() string {
	if o.Desc {
		return o.Expr + " DESC"
	}
	return o.Expr + " ASC"
}

// parseOrdering keeps known keys in request order, drops unknown and repeated
// ones, and falls back to def when nothing usable remains.
func parseOrdering(raw string, columns map[string]string, def []string) []Order {
	var out []Order
	seen := make(map[string]bool)

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		key := strings.TrimPrefix(part, "-")

		expr, ok := columns[key]
		if !ok || seen[expr] {
			continue
		}
		seen[expr] = true
		out = append(out, Order{Key: key, Expr: expr, Desc: desc})
	}

	if len(out) == 0 {
		for _, part := range def {
			desc := strings.HasPrefix(part, "-")
			key := strings.TrimPrefix(part, "-")
			out = append(out, Order{Key: key, Expr: columns[key], Desc: desc})
		}
	}

	return out
}

func orderScope(orders []Order, tieBreaker string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, o := range orders {
			db = db.Order(o.clause())
		}
		return db.Order(tieBreaker + " ASC")
	}
}

func parseInt(v url.Values, key string) *int {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// parseBool returns nil for anything that is not a recognised boolean word.
func parseBool(v url.Values, key string) *bool {
	var b bool
	switch strings.ToLower(strings.TrimSpace(v.Get(key))) {
	case "true", "1", "yes", "on":
		b = true
	case "false", "0", "no", "off":
		b = false
	default:
		return nil
	}
	return &b
}

func parseIntList(raw string) []int {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			out = append(out, n)
		}
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains builds a substring pattern matched against a folded *_key column
// with "LIKE ? ESCAPE '\'".
func contains(s string) string {
	return "%" + likeEscaper.Replace(model.SearchKey(s)) + "%"
}

// Page is a resolved page request.
type Page struct {
	Number int
	Size   int
}

// ParsePage reads page and page_size. Malformed or non-positive values fall
// back to the defaults and the size is capped at max.
func ParsePage(v url.Values, defaultSize, maxSize int) Page {
	p := Page{Number: 1, Size: defaultSize}

	if n := parseInt(v, "page"); n != nil && *n > 0 {
		p.Number = *n
	}
	if n := parseInt(v, "page_size"); n != nil && *n > 0 {
		p.Size = *n
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}

	return p
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) TotalPages(total int64) int {
	if p.Size <= 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}

func (p Page) Scope(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.Size)
}
