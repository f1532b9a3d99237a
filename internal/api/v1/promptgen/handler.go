package promptgen

import (
	"net/http"
	"promptbuilder-backend/internal/services"
	"promptbuilder-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	generator services.Generator
}

func NewHandler(generator services.Generator) *Handler {
	return &Handler{generator: generator}
}

// Generate godoc
// @Summary Generate a prompt from a context
// @Description Provider failures are returned inside the prompt text as an "[Error: ...]" marker
// @Tags generation
// @Accept  json
// @Produce  json
// @Param   input body GenerateRequest true "Context"
// @Success 200 {object} utils.Response{data=GenerateResponse}
// @Failure 400 {object} utils.Response
// @Failure 429 {object} utils.Response
// @Router /api/generate-prompt [post]
func (h *Handler) Generate(c *gin.Context) {
	var input GenerateRequest
	if !utils.BindAndValidate(c, &input) {
		return
	}

	prompt := h.generator.Generate(c.Request.Context(), input.Context, nil)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt generated", GenerateResponse{Prompt: prompt}))
}
