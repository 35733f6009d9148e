// Package categories provides database operations for category management.
//
// This package implements the CategoryStore interface defined in
// internal/http/categories.go.
package categories

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List retrieves categories with offset/limit pagination, ordered by ID.
func (r *Repository) List(skip, limit int) ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("id").Offset(skip).Limit(limit).Find(&categories).Error
	return categories, err
}

// GetByID retrieves a category by ID.
func (r *Repository) GetByID(id uint) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Create persists a new category.
func (r *Repository) Create(category *entities.Category) error {
	return r.db.Create(category).Error
}

// Update persists all fields of an existing category.
func (r *Repository) Update(category *entities.Category) error {
	return r.db.Save(category).Error
}

// Delete removes a category permanently.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Category{}, id).Error
}
