package model

import (
	"time"
)

// Category represents the database model for categories
type Category struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"not null;index;size:36"`
	Name      string    `gorm:"not null;size:120"`
	Type      string    `gorm:"not null;size:10"`
	Color     string    `gorm:"size:20"`
	Icon      string    `gorm:"size:50"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}
