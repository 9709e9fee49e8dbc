package v1

import (
	"net/http"

	"go-jobmatch-backend/internal/delivery/http/response"
	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/internal/usecase"
	"go-jobmatch-backend/pkg/apperror"
	"go-jobmatch-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
	redisClient    *redis.Client
	upgrader       websocket.Upgrader
}

// NewNotificationHandler registers notification routes, including the
// websocket live feed.
func NewNotificationHandler(r *gin.RouterGroup, notificationUC domain.NotificationUsecase, redisClient *redis.Client, frontendURL string) {
	handler := &NotificationHandler{
		notificationUC: notificationUC,
		redisClient:    redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(req *http.Request) bool {
				origin := req.Header.Get("Origin")
				return origin == "" || origin == frontendURL
			},
		},
	}

	notifications := r.Group("/notifications")
	{
		notifications.GET("", handler.List)
		notifications.GET("/unread-count", handler.UnreadCount)
		notifications.PATCH("/:id/read", handler.MarkRead)
		notifications.PATCH("/read", handler.MarkMultipleRead)
		notifications.PATCH("/read-all", handler.MarkAllRead)
		notifications.GET("/ws", handler.LiveFeed)
	}
}

// List godoc
// @Summary      List my notifications
// @Tags         notifications
// @Produce      json
// @Param        page       query     int  false  "Page (1-based)"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response{data=response.Paginated}
// @Router       /notifications [get]
// @Security     BearerAuth
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	page, pageSize := pageParams(c)

	items, total, err := h.notificationUC.List(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notifications retrieved", response.Paginated{
		Items: items, Total: total, Page: page,
	})
}

// UnreadCount godoc
// @Summary      Count my unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /notifications/unread-count [get]
// @Security     BearerAuth
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	count, err := h.notificationUC.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Unread count retrieved", gin.H{"count": count})
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        id  path      string  true  "Notification ID"
// @Success      200 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /notifications/{id}/read [patch]
// @Security     BearerAuth
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.notificationUC.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkMultipleReadRequest is the request payload for a bulk read toggle
type MarkMultipleReadRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// MarkMultipleRead godoc
// @Summary      Mark several notifications as read
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body      MarkMultipleReadRequest  true  "Notification IDs"
// @Success      200   {object}  response.Response
// @Router       /notifications/read [patch]
// @Security     BearerAuth
func (h *NotificationHandler) MarkMultipleRead(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req MarkMultipleReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.notificationUC.MarkMultipleRead(c.Request.Context(), userID, req.IDs); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notifications marked as read", nil)
}

// MarkAllRead godoc
// @Summary      Mark all my notifications as read
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /notifications/read-all [patch]
// @Security     BearerAuth
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.notificationUC.MarkAllRead(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "All notifications marked as read", nil)
}

// LiveFeed upgrades to a websocket and forwards the user's notification
// channel. Delivery is at-most-once and best effort: a message published
// while no socket is connected is simply missed; the persisted rows are
// fetched on the next poll.
func (h *NotificationHandler) LiveFeed(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	log := logger.With("notification_feed")

	if h.redisClient == nil {
		c.Error(apperror.New(http.StatusServiceUnavailable, "Live notifications are not available", nil))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	pubsub := h.redisClient.Subscribe(c.Request.Context(), usecase.NotificationChannel(userID))
	defer pubsub.Close()

	if _, err := pubsub.Receive(c.Request.Context()); err != nil {
		log.Warn("redis subscribe failed", "user", userID, "error", err)
		return
	}
	ch := pubsub.Channel()

	// Reader goroutine only detects client disconnect; inbound frames
	// are ignored.
	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			// Payload is the JSON-marshalled notification; forward as is
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-clientClosed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
