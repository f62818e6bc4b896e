package expense

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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
	rg.POST("/expenses", h.CreateExpense)
	rg.GET("/expenses", h.ListExpenses)
	rg.DELETE("/expenses/:id", h.DeleteExpense)
}

func (h *Handler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actorID := int64(0)
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(int64); ok {
			actorID = id
		}
	}

	e, err := h.service.Create(c.Request.Context(), CreateInput{
		Amount:   req.Amount,
		Note:     req.Note,
		Category: req.Category,
		Date:     req.Date,
		ActorID:  actorID,
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create expense")
		return
	}

	response.Success(c, http.StatusCreated, e)
}

func (h *Handler) ListExpenses(c *gin.Context) {
	var from, to *time.Time
	if s := c.Query("startDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid startDate")
			return
		}
		from = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid endDate")
			return
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := h.service.List(c.Request.Context(), from, to, page, pageSize)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load expenses")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) DeleteExpense(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid expense id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete expense")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
