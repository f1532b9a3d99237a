package category

// CreateCategoryRequest defines the body for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// UpdateCategoryRequest defines the body for updating a category. Omitted
// fields keep their current value.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

// DeleteCategoryResponse confirms a deletion.
type DeleteCategoryResponse struct {
	ID uint `json:"id"`
}
