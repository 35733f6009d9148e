package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/covers"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// Entity stores
	AuthorStore   AuthorStore
	CategoryStore CategoryStore
	BookStore     BookStore

	// Uploaded cover storage
	CoverStore *covers.Store

	// Audit trail (optional)
	AuditService *audit.Service

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Request logging
	Logger *zap.Logger

	// Static assets root, served under /static
	StaticDir string

	// Application info
	Version string
}
