package v1

import (
	"net/http"

	"go-jobmatch-backend/internal/delivery/http/response"
	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatUC domain.ChatUsecase
}

// NewChatHandler registers chat routes
func NewChatHandler(r *gin.RouterGroup, chatUC domain.ChatUsecase) {
	handler := &ChatHandler{chatUC: chatUC}

	chats := r.Group("/chats")
	{
		chats.POST("/messages", handler.SendMessage)
		chats.GET("/:userId/messages", handler.ListConversation)
		chats.PATCH("/:userId/read", handler.MarkConversationRead)
	}
}

// SendMessage godoc
// @Summary      Send a direct message
// @Description  Persists the message and notifies the receiver; denied for blocked pairs
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        body  body      domain.SendMessageInput  true  "Message"
// @Success      201   {object}  response.Response{data=domain.ChatMessage}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /chats/messages [post]
// @Security     BearerAuth
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var input domain.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	msg, err := h.chatUC.SendMessage(c.Request.Context(), userID, &input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Message sent", msg)
}

// ListConversation godoc
// @Summary      List messages with another user
// @Tags         chats
// @Produce      json
// @Param        userId     path      string  true   "Other user ID"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response{data=response.Paginated}
// @Router       /chats/{userId}/messages [get]
// @Security     BearerAuth
func (h *ChatHandler) ListConversation(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	page, pageSize := pageParams(c)

	items, total, err := h.chatUC.ListConversation(c.Request.Context(), userID, c.Param("userId"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Messages retrieved", response.Paginated{
		Items: items, Total: total, Page: page,
	})
}

// MarkConversationRead godoc
// @Summary      Mark a conversation as read
// @Tags         chats
// @Produce      json
// @Param        userId  path      string  true  "Other user ID"
// @Success      200     {object}  response.Response
// @Router       /chats/{userId}/read [patch]
// @Security     BearerAuth
func (h *ChatHandler) MarkConversationRead(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.chatUC.MarkConversationRead(c.Request.Context(), userID, c.Param("userId")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Conversation marked as read", nil)
}
