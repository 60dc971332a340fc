package store

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:191;not null;uniqueIndex"`
	Phone        string `gorm:"size:20"`
	PasswordHash string `gorm:"size:100"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// CategorySchema represents the database schema for the categories table.
type CategorySchema struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:100;not null;uniqueIndex"`
}

// TableName specifies the table name for the CategorySchema model.
func (CategorySchema) TableName() string {
	return "categories"
}

// OrderSchema represents the database schema for the orders table.
// Orders keep their client alive: deleting a referenced user is rejected.
type OrderSchema struct {
	ID       int64      `gorm:"primaryKey;autoIncrement"`
	Moment   time.Time  `gorm:"not null"`
	Status   string     `gorm:"size:32;not null"`
	ClientID int64      `gorm:"not null;index"`
	Client   UserSchema `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName specifies the table name for the OrderSchema model.
func (OrderSchema) TableName() string {
	return "orders"
}

// Migrate creates or updates the tables, indexes and foreign keys.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&UserSchema{}, &CategorySchema{}, &OrderSchema{})
}
