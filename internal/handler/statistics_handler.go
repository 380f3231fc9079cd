package handler

import (
	"net/http"

	"invoicedesk/internal/middleware"
	"invoicedesk/internal/service"
	"invoicedesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewStatisticsHandler(analyticsService service.AnalyticsService) *StatisticsHandler {
	return &StatisticsHandler{analyticsService: analyticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/analytics/dashboard", h.GetDashboard)
}

// GetDashboard aggregates the caller's invoices and recent activity
// @Summary      Invoice dashboard
// @Description  Status counts and revenue, the last 12 months of revenue by issue date and the 10 newest analytics events
// @Tags         analytics
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.Dashboard}
// @Failure      401  {object}  response.Response
// @Router       /api/analytics/dashboard [get]
func (h *StatisticsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.analyticsService.Dashboard(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}
