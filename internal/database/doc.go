// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── authors/         # Author CRUD operations
//	├── categories/      # Category CRUD operations
//	├── books/           # Book CRUD, filtering and cover bookkeeping
//	└── audit/           # Audit event persistence and retention
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./bookshelf.db")
//
//	// Create domain-specific repositories
//	authorsRepo := authors.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//
//	// Use repositories
//	author, err := authorsRepo.GetByID(123)
//	matches, err := booksRepo.List(books.Filter{Keyword: "stoic", Limit: 100})
//
// # Interface Implementations
//
// Each sub-package implements the store interface consumed by its controller:
//
//   - authors.Repository: implements http.AuthorStore
//   - categories.Repository: implements http.CategoryStore
//   - books.Repository: implements http.BookStore
//   - audit.Repository: consumed by audit.Service
//
// # Adding a New Domain
//
// To add a new domain (e.g., publishers):
//
//  1. Create a new sub-package: internal/database/publishers/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database
