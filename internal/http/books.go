package http

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/covers"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// maxCoverSize caps uploaded cover images at 2 MiB.
const maxCoverSize = 2 * 1024 * 1024

var (
	allowedCoverTypes = map[string]struct{}{
		"image/jpeg": {},
		"image/png":  {},
	}
	allowedCoverExts = map[string]struct{}{
		".jpg":  {},
		".jpeg": {},
		".png":  {},
	}
)

// BookStore defines the database operations needed for book management.
// The existence checks back the application-level reference validation;
// there is no database-enforced foreign key.
type BookStore interface {
	List(filter books.Filter) ([]entities.Book, error)
	GetByID(id uint) (*entities.Book, error)
	Create(book *entities.Book) error
	Update(book *entities.Book) error
	Delete(id uint) error
	AuthorExists(id uint) (bool, error)
	CategoryExists(id uint) (bool, error)
}

// BookCreateRequest is the payload for creating a book.
type BookCreateRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	PublishedYear int    `json:"published_year"`
	AuthorID      uint   `json:"author_id" binding:"required"`
	CategoryID    uint   `json:"category_id" binding:"required"`
}

// BookUpdateRequest is the payload for partially updating a book.
// Nil fields keep their stored values; cover_image is never updated here.
type BookUpdateRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	PublishedYear *int    `json:"published_year"`
	AuthorID      *uint   `json:"author_id"`
	CategoryID    *uint   `json:"category_id"`
}

type BooksController struct {
	store  BookStore
	covers *covers.Store
	audit  *audit.Service
}

func NewBooksController(store BookStore, coverStore *covers.Store, auditService *audit.Service) *BooksController {
	return &BooksController{store: store, covers: coverStore, audit: auditService}
}

// ListBooks returns a page of books matching the query filters.
// GET /books?skip&limit&author_id&category_id&year&keyword
func (bc *BooksController) ListBooks(c *gin.Context) {
	skip, limit := parsePagination(c)

	filter := books.Filter{
		AuthorID:   parseQueryUint(c, "author_id"),
		CategoryID: parseQueryUint(c, "category_id"),
		Year:       parseQueryInt(c, "year"),
		Keyword:    c.Query("keyword"),
		Skip:       skip,
		Limit:      limit,
	}

	result, err := bc.store.List(filter)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBook returns a single book by ID.
// GET /books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// CreateBook creates a new book after validating its references.
// POST /books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req BookCreateRequest
	if !bindAndValidateJSON(c, &req) {
		return
	}

	exists, err := bc.store.AuthorExists(req.AuthorID)
	if err != nil {
		respondInternalError(c, err, "check author")
		return
	}
	if !exists {
		respondBadRequest(c, "Author does not exist")
		return
	}

	exists, err = bc.store.CategoryExists(req.CategoryID)
	if err != nil {
		respondInternalError(c, err, "check category")
		return
	}
	if !exists {
		respondBadRequest(c, "Category does not exist")
		return
	}

	book := &entities.Book{
		Title:         req.Title,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
		AuthorID:      req.AuthorID,
		CategoryID:    req.CategoryID,
	}
	if err := bc.store.Create(book); err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	if bc.audit != nil {
		bc.audit.LogCreate("book", book.ID, book.Title, c.ClientIP())
	}

	respondCreated(c, book)
}

// UpdateBook applies a partial update to a book. Reference changes are
// only validated when the target actually changes.
// PUT /books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	var req BookUpdateRequest
	if !bindAndValidateJSON(c, &req) {
		return
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.PublishedYear != nil {
		book.PublishedYear = *req.PublishedYear
	}

	if req.AuthorID != nil && *req.AuthorID != book.AuthorID {
		exists, err := bc.store.AuthorExists(*req.AuthorID)
		if err != nil {
			respondInternalError(c, err, "check author")
			return
		}
		if !exists {
			respondBadRequest(c, "New author does not exist")
			return
		}
		book.AuthorID = *req.AuthorID
	}

	if req.CategoryID != nil && *req.CategoryID != book.CategoryID {
		exists, err := bc.store.CategoryExists(*req.CategoryID)
		if err != nil {
			respondInternalError(c, err, "check category")
			return
		}
		if !exists {
			respondBadRequest(c, "New category does not exist")
			return
		}
		book.CategoryID = *req.CategoryID
	}

	if err := bc.store.Update(book); err != nil {
		respondInternalError(c, err, "update book")
		return
	}

	if bc.audit != nil {
		bc.audit.LogUpdate("book", book.ID, book.Title, c.ClientIP())
	}

	c.JSON(http.StatusOK, book)
}

// DeleteBook removes a book permanently. Cover files are reclaimed later
// by the orphan sweep, not on the request path.
// DELETE /books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	if err := bc.store.Delete(book.ID); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	if bc.audit != nil {
		bc.audit.LogDelete("book", book.ID, book.Title, c.ClientIP())
	}

	c.Status(http.StatusNoContent)
}

// UploadCover validates and stores a cover image for a book, then records
// its public URL on the record.
// POST /books/:id/cover (multipart, field "file")
func (bc *BooksController) UploadCover(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if _, ok := allowedCoverTypes[contentType]; !ok {
		respondBadRequest(c, "Invalid image type. Only JPEG and PNG are allowed.")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedCoverExts[ext]; !ok {
		respondBadRequest(c, "Invalid image type. Only .jpg, .jpeg, .png are allowed.")
		return
	}

	if header.Size > maxCoverSize {
		respondBadRequest(c, "File too large. Max size is 2MB")
		return
	}

	// The multipart header size is client-declared; re-check the actual bytes.
	data, err := io.ReadAll(io.LimitReader(file, maxCoverSize+1))
	if err != nil {
		respondInternalError(c, err, "read cover upload")
		return
	}
	if len(data) > maxCoverSize {
		respondBadRequest(c, "File too large. Max size is 2MB")
		return
	}

	filename, err := bc.covers.Save(book.ID, ext, data)
	if err != nil {
		respondInternalError(c, err, "save cover")
		return
	}

	book.CoverImage = bc.covers.PublicPath(filename)
	if err := bc.store.Update(book); err != nil {
		respondInternalError(c, err, "update book cover")
		return
	}

	if bc.audit != nil {
		bc.audit.LogCoverUpload(book.ID, book.Title, filename, int64(len(data)), c.ClientIP())
	}

	c.JSON(http.StatusOK, book)
}
