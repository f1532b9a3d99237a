package prompt

import (
	"net/http"
	"promptbuilder-backend/internal/services"
	"promptbuilder-backend/internal/utils"
	"promptbuilder-backend/internal/variables"

	"github.com/gin-gonic/gin"
)

const (
	defaultSearchLimit = 50
	defaultRankLimit   = 10
)

type Handler struct {
	prompts   *services.PromptService
	generator services.Generator
}

func NewHandler(prompts *services.PromptService, generator services.Generator) *Handler {
	return &Handler{prompts: prompts, generator: generator}
}

// List godoc
// @Summary List prompts
// @Tags prompts
// @Produce  json
// @Param   category_id query int    false "Only prompts of this category"
// @Param   search      query string false "Case-insensitive match on title or content"
// @Success 200 {object} utils.Response{data=[]models.Prompt}
// @Failure 400 {object} utils.Response
// @Router /api/prompts [get]
func (h *Handler) List(c *gin.Context) {
	categoryID, ok := utils.QueryUint(c, "category_id")
	if !ok {
		return
	}

	prompts, err := h.prompts.List(c.Request.Context(), services.PromptFilter{
		CategoryID: categoryID,
		Search:     c.Query("search"),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompts retrieved successfully", prompts))
}

// Create godoc
// @Summary Create a prompt
// @Description Placeholders written as {name} in the content are detected and stored as variables
// @Tags prompts
// @Accept  json
// @Produce  json
// @Param   input body CreatePromptRequest true "Prompt"
// @Success 201 {object} utils.Response{data=models.Prompt}
// @Failure 400 {object} utils.Response
// @Router /api/prompts [post]
func (h *Handler) Create(c *gin.Context) {
	var input CreatePromptRequest
	if !utils.BindAndValidate(c, &input) {
		return
	}

	prompt, err := h.prompts.Create(c.Request.Context(), services.PromptInput{
		Title:      input.Title,
		Content:    input.Content,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Prompt created successfully", prompt))
}

// Get godoc
// @Summary Get a prompt
// @Tags prompts
// @Produce  json
// @Param   id path int true "Prompt ID"
// @Success 200 {object} utils.Response{data=models.Prompt}
// @Failure 404 {object} utils.Response
// @Router /api/prompts/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	prompt, err := h.prompts.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt retrieved successfully", prompt))
}

// Update godoc
// @Summary Update a prompt
// @Description Changing the content recomputes the variables
// @Tags prompts
// @Accept  json
// @Produce  json
// @Param   id    path int                 true "Prompt ID"
// @Param   input body UpdatePromptRequest true "Fields to change"
// @Success 200 {object} utils.Response{data=models.Prompt}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/prompts/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}
	var input UpdatePromptRequest
	if !utils.BindAndValidate(c, &input) {
		return
	}

	prompt, err := h.prompts.Update(c.Request.Context(), id, services.PromptUpdate{
		Title:      input.Title,
		Content:    input.Content,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt updated successfully", prompt))
}

// Delete godoc
// @Summary Delete a prompt
// @Tags prompts
// @Produce  json
// @Param   id path int true "Prompt ID"
// @Success 200 {object} utils.Response{data=DeletePromptResponse}
// @Failure 404 {object} utils.Response
// @Router /api/prompts/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.prompts.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt deleted successfully", DeletePromptResponse{ID: id}))
}

// Use godoc
// @Summary Use a prompt
// @Description Fill the placeholders with the given values and count the use. Placeholders without a value are left as written.
// @Tags prompts
// @Accept  json
// @Produce  json
// @Param   id    path int              true  "Prompt ID"
// @Param   input body UsePromptRequest false "Placeholder values"
// @Success 200 {object} utils.Response{data=services.UseResult}
// @Failure 404 {object} utils.Response
// @Router /api/prompts/{id}/use [post]
func (h *Handler) Use(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}
	var input UsePromptRequest
	if !utils.BindOptionalJSON(c, &input) {
		return
	}

	result, err := h.prompts.Use(c.Request.Context(), id, variables.Stringify(input.Variables))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt used successfully", result))
}

// Search godoc
// @Summary Search prompts
// @Tags prompts
// @Produce  json
// @Param   q           query string false "Case-insensitive match on title or content"
// @Param   category_id query int    false "Only prompts of this category"
// @Param   limit       query int    false "Maximum results" default(50)
// @Success 200 {object} utils.Response{data=[]models.Prompt}
// @Failure 400 {object} utils.Response
// @Router /api/prompts/search [get]
func (h *Handler) Search(c *gin.Context) {
	categoryID, ok := utils.QueryUint(c, "category_id")
	if !ok {
		return
	}
	limit, ok := utils.QueryLimit(c, defaultSearchLimit)
	if !ok {
		return
	}

	prompts, err := h.prompts.Search(c.Request.Context(), c.Query("q"), categoryID, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Search completed", prompts))
}

// MostUsed godoc
// @Summary Most used prompts
// @Tags prompts
// @Produce  json
// @Param   limit query int false "Maximum results" default(10)
// @Success 200 {object} utils.Response{data=[]models.Prompt}
// @Router /api/prompts/most-used [get]
func (h *Handler) MostUsed(c *gin.Context) {
	limit, ok := utils.QueryLimit(c, defaultRankLimit)
	if !ok {
		return
	}

	prompts, err := h.prompts.MostUsed(c.Request.Context(), limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Most used prompts retrieved successfully", prompts))
}

// Recent godoc
// @Summary Recently created prompts
// @Tags prompts
// @Produce  json
// @Param   limit query int false "Maximum results" default(10)
// @Success 200 {object} utils.Response{data=[]models.Prompt}
// @Router /api/prompts/recent [get]
func (h *Handler) Recent(c *gin.Context) {
	limit, ok := utils.QueryLimit(c, defaultRankLimit)
	if !ok {
		return
	}

	prompts, err := h.prompts.Recent(c.Request.Context(), limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Recent prompts retrieved successfully", prompts))
}

// Generate godoc
// @Summary Generate a prompt
// @Description Ask the language model to write a prompt for the described goal. Provider failures are reported inside generated_prompt.
// @Tags prompts
// @Accept  json
// @Produce  json
// @Param   input body GeneratePromptRequest true "Goal and optional user details"
// @Success 200 {object} utils.Response{data=GeneratePromptResponse}
// @Failure 400 {object} utils.Response
// @Failure 429 {object} utils.Response
// @Router /api/prompts/generate [post]
func (h *Handler) Generate(c *gin.Context) {
	var input GeneratePromptRequest
	if !utils.BindAndValidate(c, &input) {
		return
	}

	text := h.generator.Generate(c.Request.Context(), input.UserContext, input.UserInfo)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt generated", GeneratePromptResponse{GeneratedPrompt: text}))
}
