package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studiodesk/internal/domain"
	"studiodesk/internal/pkg/response"
	"studiodesk/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListBookings)
	rg.GET("/bookings/today", h.TodayBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.GET("/bookings/:id/payments", h.ListPayments)
	rg.POST("/bookings/:id/check-in", h.CheckIn)
	rg.POST("/bookings/:id/end-session", h.EndSession)
	rg.PATCH("/bookings/:id", h.UpdateBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if failures := validator.Validate(req); failures != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", failures)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), req.toInput(actorID(c)))
	if err != nil {
		writeError(c, err, "Failed to create booking")
		return
	}

	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) CheckIn(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CheckIn(c.Request.Context(), id, CheckInInput{
		CollectedRent:   req.CollectedRent,
		SecurityDeposit: req.SecurityDeposit,
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
		ActorID:         actorID(c),
	})
	if err != nil {
		writeError(c, err, "Failed to check in booking")
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) EndSession(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req EndSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, ot, err := h.service.EndSession(c.Request.Context(), id, EndSessionInput{
		ExitTime:             req.ExitTime,
		ExtraRentPayment:     req.ExtraRentPayment,
		DepositReturnAmount:  req.DepositReturnAmount,
		ManualOvertimeAmount: req.ManualOvertimeAmount,
		DiscountAmount:       req.DiscountAmount,
		DiscountReference:    req.DiscountReference,
		PaymentMethod:        domain.PaymentMethod(req.PaymentMethod),
		FromDeposit:          req.FromDeposit,
		ActorID:              actorID(c),
	})
	if err != nil {
		writeError(c, err, "Failed to end session")
		return
	}

	response.SuccessWithExtra(c, http.StatusOK, b, gin.H{"overtime": ot})
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		writeError(c, err, "Failed to update booking")
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to load booking")
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ListPayments(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	payments, err := h.service.ListPayments(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to load payments")
		return
	}

	response.Success(c, http.StatusOK, payments)
}

func (h *Handler) TodayBookings(c *gin.Context) {
	bookings, err := h.service.TodayBookings(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to load bookings")
		return
	}

	response.SuccessWithExtra(c, http.StatusOK, bookings, gin.H{"count": len(bookings)})
}

func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.service.AllBookings(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to load bookings")
		return
	}

	response.SuccessWithExtra(c, http.StatusOK, bookings, gin.H{"count": len(bookings)})
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return 0, false
	}
	return id, true
}

func actorID(c *gin.Context) int64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusBadRequest, "INVALID_STATE", err.Error())
	case errors.Is(err, ErrInvalidBookingType):
		response.Error(c, http.StatusBadRequest, "INVALID_BOOKING_TYPE", err.Error())
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
