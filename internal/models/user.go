package models

import "time"

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string    `gorm:"size:120" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
}

// All returns every model the schema is migrated from, in dependency order.
func All() []interface{} {
	return []interface{}{&User{}, &Category{}, &Prompt{}}
}
