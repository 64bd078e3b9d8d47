package loan

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"silab/internal/domain"
	"silab/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/loans", h.Open)
	rg.GET("/loans", h.List)
	rg.GET("/loans/:id", h.Get)
	rg.POST("/loans/items/:id/return", h.Return)
	rg.DELETE("/loans/items/:id", h.DeleteItem)
}

func (h *Handler) Open(c *gin.Context) {
	var req OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	lt, err := h.service.Open(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid loan request")
		case errors.Is(err, ErrEquipmentNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
		case errors.Is(err, ErrUnavailable):
			response.Error(c, http.StatusConflict, "EQUIPMENT_UNAVAILABLE", "Equipment is already on loan")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to open loan")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"loan": lt})
}

func (h *Handler) Return(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	item, err := h.service.Return(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Loan item not found")
		case errors.Is(err, ErrAlreadyReturned):
			response.Error(c, http.StatusConflict, "ALREADY_RETURNED", "Item is not outstanding")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to return item")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item": item})
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Loan item not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete item")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid loan ID")
		return
	}

	lt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Loan not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load loan")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loan": lt})
}

func (h *Handler) List(c *gin.Context) {
	status := domain.LoanItemStatus(c.Query("status"))
	search := c.Query("search")

	rows, err := h.service.List(c.Request.Context(), status, search)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list loans")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loans": rows})
}
