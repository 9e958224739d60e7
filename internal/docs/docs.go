// Package docs holds the OpenAPI document served at /swagger. It is kept by
// hand in step with the @Router annotations in internal/handler.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Sina Niyavarzi",
            "email": "sinaniya@gmail.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List books",
                "parameters": [
                    {"type": "integer", "default": 1, "minimum": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "maximum": 100, "minimum": 1, "description": "Items per page", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "Author ID (UUID)", "name": "author", "in": "query"},
                    {"type": "string", "description": "Library ID (UUID), books shelved in that library", "name": "library", "in": "query"},
                    {"type": "string", "description": "Title contains (case-insensitive)", "name": "title", "in": "query"},
                    {"type": "string", "description": "Author name contains (case-insensitive)", "name": "author_name", "in": "query"},
                    {"type": "integer", "description": "Earliest publication year", "name": "publication_year_min", "in": "query"},
                    {"type": "integer", "description": "Latest publication year", "name": "publication_year_max", "in": "query"},
                    {"type": "string", "description": "Comma separated list of years", "name": "publication_years", "in": "query"},
                    {"type": "boolean", "description": "Published within the last 10 years", "name": "recent", "in": "query"},
                    {"type": "integer", "description": "Decade start, e.g. 1990", "name": "decade", "in": "query"},
                    {"type": "integer", "description": "Century number, e.g. 20", "name": "century", "in": "query"},
                    {"type": "string", "description": "Search title or author name", "name": "search", "in": "query"},
                    {"type": "string", "description": "Comma separated keys, prefix - for descending", "name": "ordering", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListBooksResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Create a book",
                "parameters": [
                    {"description": "Book to create", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateBookRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.BookResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}},
                    "401": {"description": "Not authenticated", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/books/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Search books",
                "parameters": [
                    {"type": "string", "description": "Title or author name contains", "name": "q", "in": "query"},
                    {"type": "string", "description": "Author name contains", "name": "author", "in": "query"},
                    {"type": "integer", "name": "year_min", "in": "query"},
                    {"type": "integer", "name": "year_max", "in": "query"},
                    {"type": "string", "name": "ordering", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListBooksResponse"}}
                }
            }
        },
        "/books/recent": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Recent books",
                "parameters": [
                    {"type": "integer", "default": 20, "description": "Window in years", "name": "years", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListBooksResponse"}}
                }
            }
        },
        "/books/lookup": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Find a book by title",
                "parameters": [
                    {"type": "string", "description": "Exact title", "name": "title", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BookResponse"}},
                    "400": {"description": "Missing title", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}},
                    "404": {"description": "Book not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/books/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Get a book by ID",
                "parameters": [{"type": "string", "description": "Book ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BookResponse"}},
                    "404": {"description": "Book not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["books"],
                "summary": "Replace a book",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateBookRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BookResponse"}},
                    "404": {"description": "Book not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["books"],
                "summary": "Update a book",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateBookRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BookResponse"}},
                    "404": {"description": "Book not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["books"],
                "summary": "Delete a book",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No content"},
                    "403": {"description": "Not an admin", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/authors": {
            "get": {
                "tags": ["authors"],
                "summary": "List authors",
                "parameters": [
                    {"type": "string", "description": "Name contains (case-insensitive)", "name": "name", "in": "query"},
                    {"type": "string", "description": "Name or any book title contains", "name": "search", "in": "query"},
                    {"type": "string", "description": "name, created_at, updated_at or book_count, prefix - for descending", "name": "ordering", "in": "query"},
                    {"type": "integer", "default": 1, "minimum": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "minimum": 1, "maximum": 50, "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListAuthorsResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["authors"],
                "summary": "Create an author",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateAuthorRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.AuthorResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/authors/{id}": {
            "get": {
                "tags": ["authors"],
                "summary": "Get an author",
                "parameters": [{"type": "string", "description": "Author ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthorResponse"}},
                    "404": {"description": "Author not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["authors"],
                "summary": "Replace an author",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateAuthorRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthorResponse"}},
                    "404": {"description": "Author not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["authors"],
                "summary": "Update an author",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateAuthorRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthorResponse"}},
                    "404": {"description": "Author not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["authors"],
                "summary": "Delete an author",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No content"},
                    "400": {"description": "Author has books", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}},
                    "403": {"description": "Not an admin", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/libraries": {
            "get": {
                "tags": ["libraries"],
                "summary": "List libraries",
                "parameters": [
                    {"type": "string", "description": "Name contains (case-insensitive)", "name": "name", "in": "query"},
                    {"type": "string", "description": "Holds a book whose title contains this", "name": "book", "in": "query"},
                    {"type": "string", "description": "name, created_at, updated_at or book_count, prefix - for descending", "name": "ordering", "in": "query"},
                    {"type": "integer", "default": 1, "minimum": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "minimum": 1, "maximum": 50, "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListLibrariesResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["libraries"],
                "summary": "Create a library",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateLibraryRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.LibraryResponse"}},
                    "400": {"description": "Validation error, duplicate name or unknown book", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}},
                    "401": {"description": "Not authenticated", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/libraries/{id}": {
            "get": {
                "tags": ["libraries"],
                "summary": "Get a library",
                "parameters": [{"type": "string", "description": "Library ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LibraryResponse"}},
                    "404": {"description": "Library not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["libraries"],
                "summary": "Rename a library",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateLibraryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LibraryResponse"}},
                    "404": {"description": "Library not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["libraries"],
                "summary": "Delete a library",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No content"},
                    "403": {"description": "Not an admin", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}},
                    "404": {"description": "Library not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/libraries/{id}/books/{book_id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["libraries"],
                "summary": "Shelve a book in a library",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "book_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LibraryResponse"}},
                    "404": {"description": "Library or book not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["libraries"],
                "summary": "Take a book off a library's shelf",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "book_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No content"},
                    "404": {"description": "Library not found or book not shelved", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/libraries/{id}/librarian": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["libraries"],
                "summary": "Assign the librarian",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LibrarianRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LibrarianResponse"}},
                    "404": {"description": "Library not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["libraries"],
                "summary": "Remove the librarian",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No content"},
                    "404": {"description": "Library not found or has no librarian", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/library/books": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["library"],
                "summary": "List books (requires can_view)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListBooksResponse"}},
                    "403": {"description": "Missing capability", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["library"],
                "summary": "Create a book (requires can_create)",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateBookRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.BookResponse"}},
                    "403": {"description": "Missing capability", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/library/books/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["library"],
                "summary": "Get a book (requires can_view)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BookResponse"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["library"],
                "summary": "Update a book (requires can_edit)",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateBookRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BookResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["library"],
                "summary": "Delete a book (requires can_delete)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No content"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a user",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.UserResponse"}},
                    "400": {"description": "Validation error or email taken", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/auth/token": {
            "post": {
                "tags": ["auth"],
                "summary": "Obtain an API token",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CredentialsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TokenResponse"}},
                    "400": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}},
                    "429": {"description": "Locked out", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CredentialsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}},
                    "400": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}},
                    "429": {"description": "Locked out", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Log out", "responses": {"204": {"description": "No content"}}}
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}},
                    "401": {"description": "Not authenticated", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update profile",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateProfileRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/users/me/photo": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["users"],
                "summary": "Upload profile photo",
                "parameters": [{"type": "file", "description": "Image file, at most 5 MB", "name": "photo", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}},
                    "400": {"description": "Missing or invalid file", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}},
                    "503": {"description": "Image storage not configured", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/users/{id}/permissions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Grant a permission",
                "parameters": [
                    {"type": "string", "description": "User ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.GrantPermissionRequest"}}
                ],
                "responses": {
                    "204": {"description": "No content"},
                    "400": {"description": "Unknown permission", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}},
                    "403": {"description": "Not an admin", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/groups": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["groups"],
                "summary": "List groups",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListGroupsResponse"}},
                    "403": {"description": "Not an admin", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/groups/{name}/members": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["groups"],
                "summary": "List group members",
                "parameters": [{"type": "string", "description": "Group name", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListMembersResponse"}},
                    "404": {"description": "Group not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["groups"],
                "summary": "Add a user to a group",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.AddMemberRequest"}}
                ],
                "responses": {
                    "204": {"description": "No content"},
                    "404": {"description": "Group or user not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/groups/{name}/members/{user_id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["groups"],
                "summary": "Remove a user from a group",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true},
                    {"type": "string", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No content"},
                    "404": {"description": "Group or user not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/library/posts": {
            "get": {
                "tags": ["posts"],
                "summary": "List posts",
                "parameters": [
                    {"type": "string", "description": "Author user ID (UUID)", "name": "author", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "maximum": 50, "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListPostsResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Create a post",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreatePostRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.PostResponse"}},
                    "401": {"description": "Not authenticated", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/library/posts/{id}": {
            "get": {
                "tags": ["posts"],
                "summary": "Get a post",
                "parameters": [{"type": "string", "description": "Post ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.PostResponse"}},
                    "404": {"description": "Post not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Update a post",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdatePostRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.PostResponse"}},
                    "403": {"description": "Not the author", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Delete a post",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No content"},
                    "403": {"description": "Not the author", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/library/posts/{id}/comments": {
            "get": {
                "tags": ["posts"],
                "summary": "List comments on a post",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "maximum": 50, "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListCommentsResponse"}},
                    "404": {"description": "Post not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Comment on a post",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.CommentResponse"}},
                    "404": {"description": "Post not found", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        },
        "/library/comments/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Edit a comment",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CommentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CommentResponse"}},
                    "403": {"description": "Not the author", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Delete a comment",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No content"},
                    "403": {"description": "Not the author", "schema": {"$ref": "#/definitions/validation.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.AuthorSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "handler.Book": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "author": {"$ref": "#/definitions/handler.AuthorSummary"},
                "publication_year": {"type": "integer"},
                "isbn": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.BookListItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "author": {"type": "string"},
                "author_name": {"type": "string"},
                "publication_year": {"type": "integer"},
                "isbn": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.BookResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/handler.Book"}}
        },
        "handler.CreateBookRequest": {
            "type": "object",
            "required": ["author_id", "publication_year", "title"],
            "properties": {
                "author_id": {"type": "string", "example": "0b6f1c9e-2d7a-4c4e-9a39-8f0f2b7d5e11"},
                "isbn": {"type": "string", "maxLength": 13},
                "publication_year": {"type": "integer", "minimum": 1000, "example": 1949},
                "title": {"type": "string", "maxLength": 200}
            }
        },
        "handler.UpdateBookRequest": {
            "type": "object",
            "properties": {
                "author_id": {"type": "string"},
                "isbn": {"type": "string", "maxLength": 13},
                "publication_year": {"type": "integer", "minimum": 1000},
                "title": {"type": "string", "maxLength": 200}
            }
        },
        "handler.ListBooksResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.BookListItem"}},
                "pagination": {"$ref": "#/definitions/handler.Pagination"}
            }
        },
        "handler.CreateAuthorRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string", "maxLength": 100}}
        },
        "handler.UpdateAuthorRequest": {
            "type": "object",
            "properties": {"name": {"type": "string", "maxLength": 100}}
        },
        "handler.AuthorBook": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "publication_year": {"type": "integer"},
                "isbn": {"type": "string"}
            }
        },
        "handler.Author": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "books": {"type": "array", "items": {"$ref": "#/definitions/handler.AuthorBook"}},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.AuthorResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/handler.Author"}}
        },
        "handler.AuthorListItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "book_count": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "handler.ListAuthorsResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.AuthorListItem"}},
                "pagination": {"$ref": "#/definitions/handler.Pagination"}
            }
        },
        "handler.CreateLibraryRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 200},
                "librarian": {"type": "string", "maxLength": 150},
                "book_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.UpdateLibraryRequest": {
            "type": "object",
            "properties": {"name": {"type": "string", "maxLength": 200}}
        },
        "handler.LibrarianRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string", "maxLength": 150}}
        },
        "handler.Librarian": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.LibrarianResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/handler.Librarian"}}
        },
        "handler.Library": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "librarian": {"$ref": "#/definitions/handler.Librarian"},
                "books": {"type": "array", "items": {"$ref": "#/definitions/handler.BookListItem"}},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.LibraryResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/handler.Library"}}
        },
        "handler.LibraryListItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "book_count": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "handler.ListLibrariesResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.LibraryListItem"}},
                "pagination": {"$ref": "#/definitions/handler.Pagination"}
            }
        },
        "handler.RegisterRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "maxLength": 254},
                "password": {"type": "string"},
                "first_name": {"type": "string", "maxLength": 150},
                "last_name": {"type": "string", "maxLength": 150},
                "date_of_birth": {"type": "string", "example": "1990-05-17"}
            }
        },
        "handler.CredentialsRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.TokenResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expires_at": {"type": "string"}
            }
        },
        "handler.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string", "maxLength": 150},
                "last_name": {"type": "string", "maxLength": 150},
                "date_of_birth": {"type": "string", "example": "1990-05-17"}
            }
        },
        "handler.GrantPermissionRequest": {
            "type": "object",
            "required": ["codename"],
            "properties": {"codename": {"type": "string", "example": "can_edit"}}
        },
        "handler.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "date_of_birth": {"type": "string", "example": "1990-05-17"},
                "profile_photo": {"type": "string"},
                "is_staff": {"type": "boolean"},
                "is_superuser": {"type": "boolean"},
                "groups": {"type": "array", "items": {"type": "string"}},
                "permissions": {"type": "array", "items": {"type": "string"}},
                "date_joined": {"type": "string"},
                "last_login": {"type": "string"}
            }
        },
        "handler.UserResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/handler.User"}}
        },
        "handler.Group": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "permissions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.ListGroupsResponse": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/handler.Group"}}}
        },
        "handler.AddMemberRequest": {
            "type": "object",
            "required": ["user_id"],
            "properties": {"user_id": {"type": "string"}}
        },
        "handler.Member": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "handler.ListMembersResponse": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/handler.Member"}}}
        },
        "handler.CreatePostRequest": {
            "type": "object",
            "required": ["title", "content"],
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "content": {"type": "string"}
            }
        },
        "handler.UpdatePostRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "content": {"type": "string"}
            }
        },
        "handler.CommentRequest": {
            "type": "object",
            "required": ["content"],
            "properties": {"content": {"type": "string", "maxLength": 5000}}
        },
        "handler.UserSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "handler.Post": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "author": {"$ref": "#/definitions/handler.UserSummary"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.PostResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/handler.Post"}}
        },
        "handler.ListPostsResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.Post"}},
                "pagination": {"$ref": "#/definitions/handler.Pagination"}
            }
        },
        "handler.Comment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "post_id": {"type": "string"},
                "content": {"type": "string"},
                "author": {"$ref": "#/definitions/handler.UserSummary"},
                "created_at": {"type": "string"}
            }
        },
        "handler.CommentResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/handler.Comment"}}
        },
        "handler.ListCommentsResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.Comment"}},
                "pagination": {"$ref": "#/definitions/handler.Pagination"}
            }
        },
        "handler.Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer", "minimum": 1},
                "page_size": {"type": "integer", "minimum": 1},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "validation.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/validation.FieldError"}}
            }
        },
        "validation.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "rule": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Shelfshare Books API",
	Description:      "Books, authors, libraries and a capability-gated catalog for Shelfshare.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
