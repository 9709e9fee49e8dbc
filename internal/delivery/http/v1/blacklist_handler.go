package v1

import (
	"net/http"

	"go-jobmatch-backend/internal/delivery/http/response"
	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type BlackListHandler struct {
	gateUC domain.GateUsecase
}

// NewBlackListHandler registers block-list routes
func NewBlackListHandler(r *gin.RouterGroup, gateUC domain.GateUsecase) {
	handler := &BlackListHandler{gateUC: gateUC}

	blacklist := r.Group("/blacklist")
	{
		blacklist.PUT("/:userId", handler.Toggle)
		blacklist.GET("", handler.ListBlocked)
	}
}

// ToggleBlockRequest is the request payload for blocking or unblocking
type ToggleBlockRequest struct {
	Blocked bool `json:"blocked"`
}

// Toggle godoc
// @Summary      Block or unblock a user
// @Description  Blocking removes shared favorites and rejects open invitations between the pair; unblocking restores nothing
// @Tags         blacklist
// @Accept       json
// @Produce      json
// @Param        userId  path      string              true  "User to block or unblock"
// @Param        body    body      ToggleBlockRequest  true  "Desired block state"
// @Success      200     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /blacklist/{userId} [put]
// @Security     BearerAuth
func (h *BlackListHandler) Toggle(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	targetID := c.Param("userId")

	var req ToggleBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.gateUC.ToggleBlock(c.Request.Context(), userID, targetID, req.Blocked); err != nil {
		c.Error(err)
		return
	}

	msg := "User unblocked"
	if req.Blocked {
		msg = "User blocked"
	}
	response.Success(c, http.StatusOK, msg, nil)
}

// ListBlocked godoc
// @Summary      List my blocked users
// @Tags         blacklist
// @Produce      json
// @Param        page       query     int  false  "Page (1-based)"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response{data=response.Paginated}
// @Router       /blacklist [get]
// @Security     BearerAuth
func (h *BlackListHandler) ListBlocked(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	page, pageSize := pageParams(c)

	items, total, err := h.gateUC.ListBlocked(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Blocked users retrieved", response.Paginated{
		Items: items, Total: total, Page: page,
	})
}
