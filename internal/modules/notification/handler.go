package notification

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"silab/internal/middleware"
	jwtsvc "silab/internal/pkg/jwt"
	"silab/internal/pkg/response"
	"silab/internal/repository"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins before exposing this outside the campus network
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	service *Service
	jwt     *jwtsvc.Service
}

func NewHandler(service *Service, jwt *jwtsvc.Service) *Handler {
	return &Handler{service: service, jwt: jwt}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, engine *gin.Engine) {
	rg.GET("/notifications", h.List)
	rg.GET("/notifications/unread", h.CountUnread)
	rg.POST("/notifications/:id/read", h.MarkRead)
	rg.POST("/notifications/read-all", h.MarkAllRead)

	// Browsers cannot set Authorization headers on websocket requests, so
	// the token rides in the query string.
	engine.GET("/ws/notifications", h.Connect)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	rows, err := h.service.List(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notifications": rows})
}

func (h *Handler) CountUnread(c *gin.Context) {
	n, err := h.service.CountUnread(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to count notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread": n})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notification")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": id})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Request.Context(), middleware.UserID(c)); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": "all"})
}

// Connect upgrades to a websocket that pushes notifications as they are
// created. The connection stays open until the client leaves or stops
// answering pings.
func (h *Handler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("notification: websocket upgrade: %v", err)
		return
	}

	h.service.hub.Register(claims.UserID, conn)
	defer h.service.hub.Unregister(claims.UserID)

	// A peer that stops answering pings times out on the read side.
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	go h.pingLoop(claims.UserID)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// pingLoop keeps the connection alive through the hub, which serializes
// pings with notification pushes. It stops once the user drops off the hub.
func (h *Handler) pingLoop(userID int64) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if !h.service.hub.Ping(userID) {
			return
		}
	}
}
