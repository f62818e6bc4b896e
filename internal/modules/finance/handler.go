package finance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studiodesk/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/finance", h.GetReport)
}

func (h *Handler) GetReport(c *gin.Context) {
	from, to, err := h.service.ResolveRange(
		c.Query("filter"),
		c.Query("startDate"),
		c.Query("endDate"),
	)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	report, err := h.service.Report(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build finance report")
		return
	}

	response.Success(c, http.StatusOK, report)
}
