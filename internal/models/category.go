package models

import "time"

const (
	DefaultCategoryName        = "General"
	DefaultCategoryDescription = "General purpose prompts"
)

// Category groups prompts. Deleting a category through the API is refused while
// it still owns prompts; the cascade on the foreign key only covers direct
// deletes.
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Prompts     []Prompt  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// CategoryWithCount is a Category row joined with the number of prompts it owns.
type CategoryWithCount struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	PromptCount int64     `json:"prompt_count"`
}

// WithCount pairs c with a prompt count.
func (c Category) WithCount(count int64) CategoryWithCount {
	return CategoryWithCount{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		PromptCount: count,
	}
}
