package stats

import (
	"net/http"
	"promptbuilder-backend/internal/services"
	"promptbuilder-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

const defaultTrendingLimit = 10

type Handler struct {
	stats *services.StatsService
}

func NewHandler(stats *services.StatsService) *Handler {
	return &Handler{stats: stats}
}

// Dashboard godoc
// @Summary Dashboard statistics
// @Description Totals, the newest and most used prompts, and a per-category breakdown
// @Tags stats
// @Produce  json
// @Success 200 {object} utils.Response{data=services.Dashboard}
// @Failure 500 {object} utils.Response
// @Router /api/stats [get]
func (h *Handler) Dashboard(c *gin.Context) {
	dashboard, err := h.stats.Dashboard(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Statistics retrieved successfully", dashboard))
}

// Usage godoc
// @Summary Usage statistics
// @Description Daily usage over the last 30 days and usage per category
// @Tags stats
// @Produce  json
// @Success 200 {object} utils.Response{data=services.UsageReport}
// @Failure 500 {object} utils.Response
// @Router /api/stats/usage [get]
func (h *Handler) Usage(c *gin.Context) {
	report, err := h.stats.Usage(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Usage statistics retrieved successfully", report))
}

// Trending godoc
// @Summary Trending prompts
// @Description Prompts used in the last 7 days, most used first
// @Tags stats
// @Produce  json
// @Param   limit query int false "Maximum results" default(10)
// @Success 200 {object} utils.Response{data=[]models.Prompt}
// @Failure 400 {object} utils.Response
// @Router /api/stats/prompts/trending [get]
func (h *Handler) Trending(c *gin.Context) {
	limit, ok := utils.QueryLimit(c, defaultTrendingLimit)
	if !ok {
		return
	}

	prompts, err := h.stats.Trending(c.Request.Context(), limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Trending prompts retrieved successfully", prompts))
}
