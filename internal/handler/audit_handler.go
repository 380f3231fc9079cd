package handler

import (
	"net/http"

	"invoicedesk/internal/middleware"
	"invoicedesk/internal/service"
	"invoicedesk/pkg/pagination"
	"invoicedesk/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuditHandler pages through the invoice analytics event log
type AuditHandler struct {
	analyticsService service.AnalyticsService
}

func NewAuditHandler(analyticsService service.AnalyticsService) *AuditHandler {
	return &AuditHandler{analyticsService: analyticsService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/analytics/events", h.ListEvents)
}

// ListEvents returns the caller's analytics events newest first
// @Summary      List analytics events
// @Tags         analytics
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=[]model.AnalyticsEvent,meta=pagination.Meta}
// @Failure      401    {object}  response.Response
// @Router       /api/analytics/events [get]
func (h *AuditHandler) ListEvents(c *gin.Context) {
	p := pagination.Parse(c)

	events, total, err := h.analyticsService.ListEvents(c.Request.Context(), middleware.SessionFrom(c), p.Page, p.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paged(http.StatusOK, events, p.Meta(total)))
}
