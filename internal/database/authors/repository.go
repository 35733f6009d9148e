// Package authors provides database operations for author management.
//
// This package implements the AuthorStore interface defined in internal/http/authors.go.
//
// # Interface Implementation
//
//	var _ http.AuthorStore = (*Repository)(nil)
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	author, err := repo.GetByID(42)
package authors

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List retrieves authors with offset/limit pagination, ordered by ID.
func (r *Repository) List(skip, limit int) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("id").Offset(skip).Limit(limit).Find(&authors).Error
	return authors, err
}

// GetByID retrieves an author by ID.
func (r *Repository) GetByID(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// Create persists a new author.
func (r *Repository) Create(author *entities.Author) error {
	return r.db.Create(author).Error
}

// Update persists all fields of an existing author.
func (r *Repository) Update(author *entities.Author) error {
	return r.db.Save(author).Error
}

// Delete removes an author permanently.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Author{}, id).Error
}
