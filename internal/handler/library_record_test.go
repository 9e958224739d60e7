package handler

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/testutil"
)

func libraryTitles(l Library) []string {
	return titles(l.Books)
}

func TestCreateLibrary_NestsBooksAndLibrarian(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)
	token := testutil.Token(t, testutil.SeedUser(t, db, "reader@example.com"))

	doe := testutil.SeedAuthor(t, db, "John Doe")
	python := testutil.SeedBook(t, db, doe, "Python 101", 2010)
	django := testutil.SeedBook(t, db, doe, "Django Deep Dive", 2015)
	other := testutil.SeedBook(t, db, testutil.SeedAuthor(t, db, "Ann Leckie"), "Ancillary Justice", 2013)

	w := do(t, router, http.MethodPost, "/api/libraries", CreateLibraryRequest{
		Name:      " Central Library ",
		Librarian: "Alice",
		BookIDs:   []uuid.UUID{python.ID, django.ID, python.ID},
	}, token)
	expectStatus(t, w, http.StatusCreated)

	created := decode[LibraryResponse](t, w).Data
	if created.Name != "Central Library" {
		t.Errorf("expected trimmed name, got %q", created.Name)
	}
	if created.Librarian == nil || created.Librarian.Name != "Alice" {
		t.Fatalf("expected librarian Alice, got %+v", created.Librarian)
	}
	if got := libraryTitles(created); !reflect.DeepEqual(got, []string{"Django Deep Dive", "Python 101"}) {
		t.Fatalf("expected books in title order, got %v", got)
	}
	if created.Books[0].AuthorName != "John Doe" {
		t.Errorf("expected shelved books to carry the author name, got %q", created.Books[0].AuthorName)
	}

	w = do(t, router, http.MethodGet, "/api/libraries/"+created.ID.String(), nil, "")
	expectStatus(t, w, http.StatusOK)
	if got := decode[LibraryResponse](t, w).Data; got.Librarian == nil || len(got.Books) != 2 {
		t.Errorf("expected anonymous detail with librarian and 2 books, got %+v", got)
	}

	w = do(t, router, http.MethodGet, "/api/books?library="+created.ID.String(), nil, "")
	expectStatus(t, w, http.StatusOK)
	if got := titles(decode[ListBooksResponse](t, w).Data); !reflect.DeepEqual(got, []string{"Django Deep Dive", "Python 101"}) {
		t.Errorf("library filter: expected the shelved books, got %v", got)
	}

	w = do(t, router, http.MethodGet, "/api/books?author="+doe.ID.String(), nil, "")
	expectStatus(t, w, http.StatusOK)
	if got := decode[ListBooksResponse](t, w).Pagination.Total; got != 2 {
		t.Errorf("author filter: expected 2, got %d", got)
	}

	w = do(t, router, http.MethodPost, "/api/libraries", CreateLibraryRequest{
		Name:    "Branch",
		BookIDs: []uuid.UUID{other.ID},
	}, token)
	expectStatus(t, w, http.StatusCreated)
	if got := decode[LibraryResponse](t, w).Data.Librarian; got != nil {
		t.Errorf("expected no librarian, got %+v", got)
	}
}

func TestListLibraries_CountsFiltersAndOrdering(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)
	token := testutil.Token(t, testutil.SeedUser(t, db, "reader@example.com"))

	herbert := testutil.SeedAuthor(t, db, "Frank Herbert")
	dune := testutil.SeedBook(t, db, herbert, "Dune", 1965)
	messiah := testutil.SeedBook(t, db, herbert, "Dune Messiah", 1969)

	for _, req := range []CreateLibraryRequest{
		{Name: "Central Library", BookIDs: []uuid.UUID{dune.ID}},
		{Name: "Annex", BookIDs: []uuid.UUID{dune.ID, messiah.ID}},
		{Name: "Bibliothèque Étoile"},
	} {
		expectStatus(t, do(t, router, http.MethodPost, "/api/libraries", req, token), http.StatusCreated)
	}

	w := do(t, router, http.MethodGet, "/api/libraries", nil, "")
	expectStatus(t, w, http.StatusOK)
	resp := decode[ListLibrariesResponse](t, w)
	wantNames := []string{"Annex", "Bibliothèque Étoile", "Central Library"}
	wantCounts := []int64{2, 0, 1}
	if len(resp.Data) != len(wantNames) {
		t.Fatalf("expected %d libraries, got %+v", len(wantNames), resp.Data)
	}
	for i, l := range resp.Data {
		if l.Name != wantNames[i] || l.BookCount != wantCounts[i] {
			t.Errorf("row %d: expected %s/%d, got %s/%d", i, wantNames[i], wantCounts[i], l.Name, l.BookCount)
		}
	}

	cases := []struct {
		query string
		want  []string
	}{
		{"name=CENTRAL", []string{"Central Library"}},
		{"name=%C3%89TOILE", []string{"Bibliothèque Étoile"}},
		{"book=messiah", []string{"Annex"}},
		{"ordering=-book_count", []string{"Annex", "Central Library", "Bibliothèque Étoile"}},
		{"ordering=bogus&name=zzz", []string{}},
	}
	for _, tc := range cases {
		w := do(t, router, http.MethodGet, "/api/libraries?"+tc.query, nil, "")
		expectStatus(t, w, http.StatusOK)
		got := []string{}
		for _, l := range decode[ListLibrariesResponse](t, w).Data {
			got = append(got, l.Name)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.query, tc.want, got)
		}
	}
}

func TestCreateLibrary_Rejections(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)
	token := testutil.Token(t, testutil.SeedUser(t, db, "reader@example.com"))

	w := do(t, router, http.MethodPost, "/api/libraries", CreateLibraryRequest{Name: "Central"}, "")
	expectErrorCode(t, w, http.StatusUnauthorized, "NOT_AUTHENTICATED")

	w = do(t, router, http.MethodPost, "/api/libraries", CreateLibraryRequest{Name: "Central"}, token)
	expectStatus(t, w, http.StatusCreated)

	w = do(t, router, http.MethodPost, "/api/libraries", CreateLibraryRequest{Name: "Central"}, token)
	expectErrorCode(t, w, http.StatusBadRequest, "LIBRARY_EXISTS")

	w = do(t, router, http.MethodPost, "/api/libraries", CreateLibraryRequest{
		Name:      "Ghost Shelf",
		Librarian: "Bob",
		BookIDs:   []uuid.UUID{uuid.New()},
	}, token)
	expectErrorCode(t, w, http.StatusBadRequest, "BOOK_NOT_FOUND")

	var n int64
	db.Model(&model.Library{}).Where("name = ?", "Ghost Shelf").Count(&n)
	if n != 0 {
		t.Errorf("expected the failed create to be rolled back, found %d libraries", n)
	}
	db.Model(&model.Librarian{}).Count(&n)
	if n != 0 {
		t.Errorf("expected no librarian left behind, found %d", n)
	}

	w = do(t, router, http.MethodPost, "/api/libraries", map[string]any{"name": "   "}, token)
	expectErrorCode(t, w, http.StatusBadRequest, "VALIDATION_FAILED")

	w = do(t, router, http.MethodGet, "/api/libraries/not-a-uuid", nil, "")
	expectErrorCode(t, w, http.StatusBadRequest, "INVALID_LIBRARY_ID")

	w = do(t, router, http.MethodGet, "/api/libraries/"+uuid.New().String(), nil, "")
	expectErrorCode(t, w, http.StatusNotFound, "LIBRARY_NOT_FOUND")
}

func TestLibraryShelf_AddRemoveAndBookDeletion(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)
	token := testutil.Token(t, testutil.SeedUser(t, db, "reader@example.com"))
	staff := testutil.Token(t, testutil.SeedUser(t, db, "staff@example.com", testutil.Staff()))

	author := testutil.SeedAuthor(t, db, "Ursula Le Guin")
	earthsea := testutil.SeedBook(t, db, author, "A Wizard of Earthsea", 1968)
	dispossessed := testutil.SeedBook(t, db, author, "The Dispossessed", 1974)

	w := do(t, router, http.MethodPost, "/api/libraries", CreateLibraryRequest{Name: "Central"}, token)
	expectStatus(t, w, http.StatusCreated)
	base := "/api/libraries/" + decode[LibraryResponse](t, w).Data.ID.String()

	w = do(t, router, http.MethodPut, base+"/books/"+earthsea.ID.String(), nil, "")
	expectErrorCode(t, w, http.StatusUnauthorized, "NOT_AUTHENTICATED")

	for i := 0; i < 2; i++ {
		w = do(t, router, http.MethodPut, base+"/books/"+earthsea.ID.String(), nil, token)
		expectStatus(t, w, http.StatusOK)
	}
	w = do(t, router, http.MethodPut, base+"/books/"+dispossessed.ID.String(), nil, token)
	expectStatus(t, w, http.StatusOK)
	if got := libraryTitles(decode[LibraryResponse](t, w).Data); !reflect.DeepEqual(got, []string{"A Wizard of Earthsea", "The Dispossessed"}) {
		t.Fatalf("expected both books shelved once, got %v", got)
	}

	w = do(t, router, http.MethodPut, base+"/books/"+uuid.New().String(), nil, token)
	expectErrorCode(t, w, http.StatusNotFound, "BOOK_NOT_FOUND")

	w = do(t, router, http.MethodPut, base+"/books/nope", nil, token)
	expectErrorCode(t, w, http.StatusBadRequest, "INVALID_BOOK_ID")

	w = do(t, router, http.MethodDelete, base+"/books/"+dispossessed.ID.String(), nil, token)
	expectStatus(t, w, http.StatusNoContent)

	w = do(t, router, http.MethodDelete, base+"/books/"+dispossessed.ID.String(), nil, token)
	expectErrorCode(t, w, http.StatusNotFound, "BOOK_NOT_SHELVED")

	w = do(t, router, http.MethodDelete, "/api/books/"+earthsea.ID.String(), nil, staff)
	expectStatus(t, w, http.StatusNoContent)

	w = do(t, router, http.MethodGet, base, nil, "")
	expectStatus(t, w, http.StatusOK)
	if got := decode[LibraryResponse](t, w).Data.Books; len(got) != 0 {
		t.Errorf("expected a deleted book to leave the shelf, got %v", titles(got))
	}
}

func TestLibrarian_OnePerLibrary(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)
	token := testutil.Token(t, testutil.SeedUser(t, db, "reader@example.com"))

	w := do(t, router, http.MethodPost, "/api/libraries", CreateLibraryRequest{Name: "Central"}, token)
	expectStatus(t, w, http.StatusCreated)
	base := "/api/libraries/" + decode[LibraryResponse](t, w).Data.ID.String()

	w = do(t, router, http.MethodPut, base+"/librarian", LibrarianRequest{Name: "Alice"}, token)
	expectStatus(t, w, http.StatusOK)
	first := decode[LibrarianResponse](t, w).Data

	w = do(t, router, http.MethodPut, base+"/librarian", LibrarianRequest{Name: " Bob "}, token)
	expectStatus(t, w, http.StatusOK)
	second := decode[LibrarianResponse](t, w).Data
	if second.ID != first.ID || second.Name != "Bob" {
		t.Errorf("expected the same librarian renamed to Bob, got %+v (was %+v)", second, first)
	}

	var n int64
	db.Model(&model.Librarian{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected exactly one librarian row, got %d", n)
	}

	w = do(t, router, http.MethodGet, base, nil, "")
	expectStatus(t, w, http.StatusOK)
	if got := decode[LibraryResponse](t, w).Data.Librarian; got == nil || got.Name != "Bob" {
		t.Errorf("expected Bob in the detail view, got %+v", got)
	}

	w = do(t, router, http.MethodPut, base+"/librarian", map[string]any{"name": "   "}, token)
	resp := expectErrorCode(t, w, http.StatusBadRequest, "VALIDATION_FAILED")
	if len(resp.Errors) != 1 || resp.Errors[0].Field != "librarian" {
		t.Errorf("expected a librarian field error, got %+v", resp.Errors)
	}

	w = do(t, router, http.MethodDelete, base+"/librarian", nil, token)
	expectStatus(t, w, http.StatusNoContent)

	w = do(t, router, http.MethodDelete, base+"/librarian", nil, token)
	expectErrorCode(t, w, http.StatusNotFound, "LIBRARIAN_NOT_FOUND")

	w = do(t, router, http.MethodPut, "/api/libraries/"+uuid.New().String()+"/librarian", LibrarianRequest{Name: "Eve"}, token)
	expectErrorCode(t, w, http.StatusNotFound, "LIBRARY_NOT_FOUND")
}

func TestLibraries_RenameAndDeleteTiers(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)
	reader := testutil.Token(t, testutil.SeedUser(t, db, "reader@example.com"))
	staff := testutil.Token(t, testutil.SeedUser(t, db, "staff@example.com", testutil.Staff()))

	book := testutil.SeedBook(t, db, testutil.SeedAuthor(t, db, "Frank Herbert"), "Dune", 1965)

	w := do(t, router, http.MethodPost, "/api/libraries", CreateLibraryRequest{
		Name:      "Central",
		Librarian: "Alice",
		BookIDs:   []uuid.UUID{book.ID},
	}, reader)
	expectStatus(t, w, http.StatusCreated)
	base := "/api/libraries/" + decode[LibraryResponse](t, w).Data.ID.String()

	w = do(t, router, http.MethodPatch, base, map[string]any{}, reader)
	expectErrorCode(t, w, http.StatusBadRequest, "NO_FIELDS_TO_UPDATE")

	w = do(t, router, http.MethodPatch, base, map[string]any{"name": "Main Branch"}, reader)
	expectStatus(t, w, http.StatusOK)
	if got := decode[LibraryResponse](t, w).Data; got.Name != "Main Branch" || len(got.Books) != 1 {
		t.Errorf("expected renamed library keeping its shelf, got %+v", got)
	}

	w = do(t, router, http.MethodDelete, base, nil, reader)
	expectErrorCode(t, w, http.StatusForbidden, "INSUFFICIENT_ROLE")

	w = do(t, router, http.MethodDelete, base, nil, staff)
	expectStatus(t, w, http.StatusNoContent)

	w = do(t, router, http.MethodGet, base, nil, "")
	expectErrorCode(t, w, http.StatusNotFound, "LIBRARY_NOT_FOUND")

	w = do(t, router, http.MethodGet, "/api/books/"+book.ID.String(), nil, "")
	expectStatus(t, w, http.StatusOK)

	var n int64
	db.Model(&model.Librarian{}).Count(&n)
	if n != 0 {
		t.Errorf("expected the librarian to go with the library, got %d", n)
	}
}
