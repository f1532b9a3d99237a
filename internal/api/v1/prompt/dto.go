package prompt

// CreatePromptRequest defines the body for creating a prompt. Without a
// category_id the prompt goes to the default category.
type CreatePromptRequest struct {
	Title      string `json:"title" binding:"required,max=200"`
	Content    string `json:"content" binding:"required"`
	CategoryID uint   `json:"category_id"`
}

// UpdatePromptRequest defines a partial prompt update.
type UpdatePromptRequest struct {
	Title      *string `json:"title" binding:"omitempty,max=200"`
	Content    *string `json:"content"`
	CategoryID *uint   `json:"category_id"`
}

// UsePromptRequest carries the placeholder values. The body may be omitted.
// Values of any JSON type are accepted and substituted as text.
type UsePromptRequest struct {
	Variables map[string]interface{} `json:"variables"`
}

// GeneratePromptRequest asks the model to write a prompt for a goal.
type GeneratePromptRequest struct {
	UserContext string                 `json:"user_context" binding:"required"`
	UserInfo    map[string]interface{} `json:"user_info"`
}

type GeneratePromptResponse struct {
	GeneratedPrompt string `json:"generated_prompt"`
}

type DeletePromptResponse struct {
	ID uint `json:"id"`
}
