package pricing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studiodesk/internal/domain"
	"studiodesk/internal/pkg/response"
)

type UpdateSettingsRequest struct {
	HourlyRate             int64 `json:"hourlyRate" binding:"required,gt=0"`
	ExtraPersonRatePerHour int64 `json:"extraPersonRatePerHour" binding:"required,gt=0"`
	HalfDay                struct {
		Hours          int   `json:"hours" binding:"required,gt=0"`
		Price          int64 `json:"price" binding:"required,gt=0"`
		AllowedPersons int   `json:"allowedPersons" binding:"omitempty,gt=0"`
	} `json:"halfDay" binding:"required"`
	FullDay struct {
		Hours          int   `json:"hours" binding:"required,gt=0"`
		Price          int64 `json:"price" binding:"required,gt=0"`
		AllowedPersons int   `json:"allowedPersons" binding:"omitempty,gt=0"`
	} `json:"fullDay" binding:"required"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pricing/settings", h.GetSettings)
	rg.PUT("/pricing/settings", h.UpdateSettings)
}

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load pricing settings")
		return
	}

	response.Success(c, http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	settings, err := h.service.Update(c.Request.Context(), UpdateInput{
		HourlyRate:             req.HourlyRate,
		ExtraPersonRatePerHour: req.ExtraPersonRatePerHour,
		HalfDay: domain.DayPackage{
			Hours:          req.HalfDay.Hours,
			Price:          req.HalfDay.Price,
			AllowedPersons: req.HalfDay.AllowedPersons,
		},
		FullDay: domain.DayPackage{
			Hours:          req.FullDay.Hours,
			Price:          req.FullDay.Price,
			AllowedPersons: req.FullDay.AllowedPersons,
		},
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update pricing settings")
		return
	}

	response.Success(c, http.StatusOK, settings)
}
