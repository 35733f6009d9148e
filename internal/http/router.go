package http

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	if cfg.Logger != nil {
		router.Use(ginzap.Ginzap(cfg.Logger, time.RFC3339, true))
		router.Use(ginzap.RecoveryWithZap(cfg.Logger, true))
	} else {
		router.Use(gin.Recovery())
	}

	// Serve uploaded covers and other static assets
	router.Static("/static", cfg.StaticDir)

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Version)
	authorsController := NewAuthorsController(cfg.AuthorStore, cfg.AuditService)
	categoriesController := NewCategoriesController(cfg.CategoryStore, cfg.AuditService)
	booksController := NewBooksController(cfg.BookStore, cfg.CoverStore, cfg.AuditService)

	// Health endpoints
	router.GET("/", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Author endpoints
	router.GET("/authors", authorsController.ListAuthors)
	router.POST("/authors", authorsController.CreateAuthor)
	router.GET("/authors/:id", authorsController.GetAuthor)
	router.PUT("/authors/:id", authorsController.UpdateAuthor)
	router.DELETE("/authors/:id", authorsController.DeleteAuthor)

	// Category endpoints
	router.GET("/categories", categoriesController.ListCategories)
	router.POST("/categories", categoriesController.CreateCategory)
	router.GET("/categories/:id", categoriesController.GetCategory)
	router.PUT("/categories/:id", categoriesController.UpdateCategory)
	router.DELETE("/categories/:id", categoriesController.DeleteCategory)

	// Book endpoints
	router.GET("/books", booksController.ListBooks)
	router.POST("/books", booksController.CreateBook)
	router.GET("/books/:id", booksController.GetBook)
	router.PUT("/books/:id", booksController.UpdateBook)
	router.DELETE("/books/:id", booksController.DeleteBook)
	router.POST("/books/:id/cover", booksController.UploadCover)

	// Admin endpoints
	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg.AuditService)
		router.GET("/admin/audit", auditController.GetAuditEvents)
	}
	tasksController := NewTasksController(cfg.TaskClient)
	router.POST("/admin/covers/cleanup", tasksController.CleanupOrphanCovers)
	router.GET("/admin/tasks/:id", tasksController.GetTaskStatus)

	return router
}
