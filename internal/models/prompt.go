package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Prompt is a reusable template. Variables caches the placeholder names found
// in Content and is rewritten whenever Content changes.
type Prompt struct {
	ID         uint                        `gorm:"primarykey" json:"id"`
	Title      string                      `gorm:"size:200;not null" json:"title"`
	Content    string                      `gorm:"type:text;not null" json:"content"`
	Variables  datatypes.JSONSlice[string] `json:"variables" swaggertype:"array,string"`
	CategoryID uint                        `gorm:"index;not null" json:"category_id"`
	Category   *Category                   `json:"-"`
	CreatedAt  time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time                   `gorm:"index" json:"updated_at"`
	UsageCount int64                       `gorm:"not null;default:0;index" json:"usage_count"`
}

// CategoryName returns the name of the preloaded category, or "" when it was
// not loaded.
func (p *Prompt) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// MarshalJSON adds the category name next to category_id.
func (p Prompt) MarshalJSON() ([]byte, error) {
	type plain Prompt
	return json.Marshal(struct {
		plain
		CategoryName string `json:"category_name"`
	}{plain(p), p.CategoryName()})
}
