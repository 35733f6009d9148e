package entities

import "time"

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:256" json:"name"`
	Bio       string    `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"index;size:256" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Book struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Title         string `gorm:"index;size:512" json:"title"`
	Description   string `gorm:"type:text" json:"description,omitempty"`
	PublishedYear int    `json:"published_year,omitempty"`
	AuthorID      uint   `gorm:"index" json:"author_id"`
	CategoryID    uint   `gorm:"index" json:"category_id"`

	// Relative URL under /static/covers, set only by the cover upload endpoint.
	CoverImage string `gorm:"size:512" json:"cover_image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

func (Category) TableName() string {
	return "categories"
}

func (Book) TableName() string {
	return "books"
}
