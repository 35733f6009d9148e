// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help code agents understand
// extension points and how to implement new functionality.
//
// # Interface Categories
//
// The application uses several categories of interfaces:
//
// ## Data Access Interfaces
//
//   - AuthorStore: Author persistence (internal/http/authors.go)
//   - CategoryStore: Category persistence (internal/http/categories.go)
//   - BookStore: Book persistence and reference checks (internal/http/books.go)
//
// Store interfaces are declared next to the controllers that consume them,
// so a controller's dependencies are visible in its own file.
//
// ## Background Task Interfaces
//
//   - CoverReferenceSource: Lists cover URLs still referenced by books (internal/tasks/cleanup_covers.go)
//   - OrphanCoverRemover: Deletes unreferenced cover files (internal/tasks/cleanup_covers.go)
//   - AuditEventCleaner: Deletes expired audit events (internal/tasks/cleanup_audit.go)
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., publishers):
//
//  1. Define the entity in internal/entities/
//
//  2. Create a sub-package: internal/database/publishers/
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Register the entity in database.NewDatabase's AutoMigrate call
//
//  4. Declare the store interface next to its controller in internal/http/
//     and add a compile-time check here:
//
//     var _ http.PublisherStore = (*publishers.Repository)(nil)
//
// # Adding a New Background Task
//
// To add a new maintenance task:
//
//  1. Create the task type in internal/tasks/ with a Config() method
//     naming its queue:
//
//     type RebuildSearchIndexTask struct {
//         Force bool `json:"force"`
//     }
//
//     func (t RebuildSearchIndexTask) Config() backlite.QueueConfig
//
//  2. Write a processor factory that accepts its dependencies as
//     interfaces, and a NewRebuildSearchIndexQueue constructor
//
//  3. Register the queue in entrypoint.Run and, if it should run
//     periodically, enqueue it from the maintenance scheduler
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
