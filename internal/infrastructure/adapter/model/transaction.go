package model

import (
	"time"
)

// Transaction represents the database model for transactions
type Transaction struct {
	ID              string    `gorm:"primaryKey;size:36"`
	UserID          string    `gorm:"not null;index;size:36"`
	Type            string    `gorm:"not null;size:10"`
	AmountInCents   int64     `gorm:"not null"`
	CategoryID      *string   `gorm:"index;size:36"`
	Description     string    `gorm:"type:text"`
	TransactionDate string    `gorm:"not null;index;size:10"`
	CreatedAt       time.Time `gorm:"not null"`

	// Weak reference: no foreign key constraint so deleting a category
	// leaves existing transactions untouched
	Category *Category `gorm:"foreignKey:CategoryID;references:ID;constraint:-"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
