package promptgen

type GenerateRequest struct {
	Context string `json:"context" binding:"required"`
}

type GenerateResponse struct {
	Prompt string `json:"prompt"`
}
