package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// AuthorStore defines the database operations needed for author management.
type AuthorStore interface {
	List(skip, limit int) ([]entities.Author, error)
	GetByID(id uint) (*entities.Author, error)
	Create(author *entities.Author) error
	Update(author *entities.Author) error
	Delete(id uint) error
}

// AuthorCreateRequest is the payload for creating an author.
type AuthorCreateRequest struct {
	Name string `json:"name" binding:"required"`
	Bio  string `json:"bio"`
}

// AuthorUpdateRequest is the payload for partially updating an author.
// Nil fields keep their stored values.
type AuthorUpdateRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

type AuthorsController struct {
	store AuthorStore
	audit *audit.Service
}

func NewAuthorsController(store AuthorStore, auditService *audit.Service) *AuthorsController {
	return &AuthorsController{store: store, audit: auditService}
}

// ListAuthors returns a page of authors.
// GET /authors?skip&limit
func (ac *AuthorsController) ListAuthors(c *gin.Context) {
	skip, limit := parsePagination(c)

	authors, err := ac.store.List(skip, limit)
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}

	c.JSON(http.StatusOK, authors)
}

// GetAuthor returns a single author by ID.
// GET /authors/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	c.JSON(http.StatusOK, author)
}

// CreateAuthor creates a new author.
// POST /authors
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var req AuthorCreateRequest
	if !bindAndValidateJSON(c, &req) {
		return
	}

	author := &entities.Author{
		Name: req.Name,
		Bio:  req.Bio,
	}
	if err := ac.store.Create(author); err != nil {
		respondInternalError(c, err, "create author")
		return
	}

	if ac.audit != nil {
		ac.audit.LogCreate("author", author.ID, author.Name, c.ClientIP())
	}

	respondCreated(c, author)
}

// UpdateAuthor applies a partial update to an author.
// PUT /authors/:id
func (ac *AuthorsController) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	var req AuthorUpdateRequest
	if !bindAndValidateJSON(c, &req) {
		return
	}

	if req.Name != nil {
		author.Name = *req.Name
	}
	if req.Bio != nil {
		author.Bio = *req.Bio
	}

	if err := ac.store.Update(author); err != nil {
		respondInternalError(c, err, "update author")
		return
	}

	if ac.audit != nil {
		ac.audit.LogUpdate("author", author.ID, author.Name, c.ClientIP())
	}

	c.JSON(http.StatusOK, author)
}

// DeleteAuthor removes an author permanently.
// DELETE /authors/:id
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	if err := ac.store.Delete(author.ID); err != nil {
		respondInternalError(c, err, "delete author")
		return
	}

	if ac.audit != nil {
		ac.audit.LogDelete("author", author.ID, author.Name, c.ClientIP())
	}

	c.Status(http.StatusNoContent)
}
