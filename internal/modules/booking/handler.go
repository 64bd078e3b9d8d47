package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"silab/internal/domain"
	"silab/internal/middleware"
	"silab/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts requester endpoints on rg and staff endpoints on
// staff (already gated by the approve-bookings capability).
func (h *Handler) RegisterRoutes(rg, staff *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings/my", h.My)
	rg.DELETE("/bookings/:id", h.Cancel)
	rg.GET("/rooms/:id/availability", h.Availability)

	staff.GET("/bookings", h.List)
	staff.PATCH("/bookings/:id/status", h.Decide)
	staff.PATCH("/bookings/:id/schedule", h.Reschedule)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		var conflict *ConflictError
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking time range")
		case errors.Is(err, ErrRoomNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
		case errors.As(err, &conflict):
			response.ErrorWithDetails(c, http.StatusConflict, "BOOKING_CONFLICT",
				"Room is not available for the selected time", gin.H{
					"session":        conflict.Session,
					"conflict_start": conflict.Start,
					"conflict_end":   conflict.End,
				})
		case errors.Is(err, ErrCalendarUnavailable):
			response.Error(c, http.StatusBadGateway, "CALENDAR_UNAVAILABLE",
				"Could not verify room availability, please try again")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"bookings": created})
}

func (h *Handler) My(c *gin.Context) {
	rows, err := h.service.MyBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}

	counts := make(map[string]int, 3)
	for _, b := range rows {
		counts[b.Status]++
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": rows, "counts": counts})
}

func (h *Handler) List(c *gin.Context) {
	status := domain.BookingStatus(c.Query("status"))
	rows, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) Decide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status must be approved or rejected")
		return
	}

	b, err := h.service.Decide(c.Request.Context(), id, middleware.UserID(c), domain.BookingStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrInvalidStatusTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking was already decided")
		case errors.Is(err, ErrCalendarUnavailable):
			response.Error(c, http.StatusBadGateway, "CALENDAR_UNAVAILABLE",
				"Could not publish the booking to the room calendar")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Reschedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Reschedule(c.Request.Context(), id, req)
	if err != nil {
		var conflict *ConflictError
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking time range")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrRoomNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
		case errors.As(err, &conflict):
			response.ErrorWithDetails(c, http.StatusConflict, "BOOKING_CONFLICT",
				"Room is not available for the selected time", gin.H{
					"conflict_start": conflict.Start,
					"conflict_end":   conflict.End,
				})
		case errors.Is(err, ErrCalendarUnavailable):
			response.Error(c, http.StatusBadGateway, "CALENDAR_UNAVAILABLE",
				"Could not verify room availability, please try again")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reschedule booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	asStaff := middleware.RoleOf(c).CanApproveBookings()
	if err := h.service.Cancel(c.Request.Context(), id, middleware.UserID(c), asStaff); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No pending booking to cancel")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel booking")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cancelled": id})
}

func (h *Handler) Availability(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	date := c.Query("date")
	windows, err := h.service.Availability(c.Request.Context(), roomID, date)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		case errors.Is(err, ErrRoomNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
		case errors.Is(err, ErrCalendarUnavailable):
			response.Error(c, http.StatusBadGateway, "CALENDAR_UNAVAILABLE",
				"Could not query the room calendar")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"busy": windows})
}
