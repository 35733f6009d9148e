package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/covers"
	"github.com/mrlokans/bookshelf/internal/database/authors"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/categories"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Catalog store implementations
var _ http.AuthorStore = (*authors.Repository)(nil)
var _ http.CategoryStore = (*categories.Repository)(nil)
var _ http.BookStore = (*books.Repository)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

// Cover cleanup implementations
var _ tasks.CoverReferenceSource = (*books.Repository)(nil)
var _ tasks.OrphanCoverRemover = (*covers.Store)(nil)

// Audit retention implementations
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
