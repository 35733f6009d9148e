// Package books provides database operations for book management.
//
// This package implements the BookStore interface defined in internal/http/books.go.
//
// # Interface Implementation
//
//	var _ http.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	matches, err := repo.List(books.Filter{Keyword: "whale", Limit: 100})
package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Filter narrows down a book listing. Nil pointers and the empty
// keyword mean "no constraint" for their field.
type Filter struct {
	AuthorID   *uint
	CategoryID *uint
	Year       *int
	Keyword    string
	Skip       int
	Limit      int
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List retrieves books matching the filter with offset/limit pagination,
// ordered by ID. The keyword matches title or description case-insensitively.
func (r *Repository) List(filter Filter) ([]entities.Book, error) {
	var books []entities.Book
	query := r.db.Model(&entities.Book{})

	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Year != nil {
		query = query.Where("published_year = ?", *filter.Year)
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	err := query.Order("id").Offset(filter.Skip).Limit(filter.Limit).Find(&books).Error
	return books, err
}

// GetByID retrieves a book by ID.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// Create persists a new book.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

// Update persists all fields of an existing book.
func (r *Repository) Update(book *entities.Book) error {
	return r.db.Save(book).Error
}

// Delete removes a book permanently.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Book{}, id).Error
}

// AuthorExists reports whether an author row with the given ID exists.
func (r *Repository) AuthorExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Author{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CategoryExists reports whether a category row with the given ID exists.
func (r *Repository) CategoryExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CoverImagePaths returns the distinct non-empty cover image URLs
// referenced by any book. Used by the orphan cover sweep.
func (r *Repository) CoverImagePaths() ([]string, error) {
	var paths []string
	err := r.db.Model(&entities.Book{}).
		Where("cover_image <> ''").
		Distinct().
		Pluck("cover_image", &paths).Error
	return paths, err
}
