package category

import (
	"net/http"
	"promptbuilder-backend/internal/services"
	"promptbuilder-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	categories *services.CategoryService
	prompts    *services.PromptService
}

func NewHandler(categories *services.CategoryService, prompts *services.PromptService) *Handler {
	return &Handler{categories: categories, prompts: prompts}
}

// List godoc
// @Summary List categories
// @Description List every category with the number of prompts it holds
// @Tags categories
// @Produce  json
// @Success 200 {object} utils.Response{data=[]models.CategoryWithCount}
// @Failure 500 {object} utils.Response
// @Router /api/categories [get]
func (h *Handler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Categories retrieved successfully", categories))
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   input body CreateCategoryRequest true "Category"
// @Success 201 {object} utils.Response{data=models.CategoryWithCount}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /api/categories [post]
func (h *Handler) Create(c *gin.Context) {
	var input CreateCategoryRequest
	if !utils.BindAndValidate(c, &input) {
		return
	}

	category, err := h.categories.Create(c.Request.Context(), input.Name, input.Description)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Category created successfully", category))
}

// Get godoc
// @Summary Get a category
// @Tags categories
// @Produce  json
// @Param   id path int true "Category ID"
// @Success 200 {object} utils.Response{data=models.CategoryWithCount}
// @Failure 404 {object} utils.Response
// @Router /api/categories/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Category retrieved successfully", category))
}

// Update godoc
// @Summary Update a category
// @Description Rename a category and/or change its description
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   id    path int                   true "Category ID"
// @Param   input body UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} utils.Response{data=models.CategoryWithCount}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /api/categories/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}
	var input UpdateCategoryRequest
	if !utils.BindAndValidate(c, &input) {
		return
	}

	category, err := h.categories.Update(c.Request.Context(), id, services.CategoryUpdate{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Category updated successfully", category))
}

// Delete godoc
// @Summary Delete a category
// @Description Only categories without prompts can be deleted
// @Tags categories
// @Produce  json
// @Param   id path int true "Category ID"
// @Success 200 {object} utils.Response{data=DeleteCategoryResponse}
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /api/categories/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Category deleted successfully", DeleteCategoryResponse{ID: id}))
}

// ListPrompts godoc
// @Summary List the prompts of a category
// @Tags categories
// @Produce  json
// @Param   id path int true "Category ID"
// @Success 200 {object} utils.Response{data=[]models.Prompt}
// @Failure 404 {object} utils.Response
// @Router /api/categories/{id}/prompts [get]
func (h *Handler) ListPrompts(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		return
	}

	prompts, err := h.prompts.ListByCategory(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompts retrieved successfully", prompts))
}
