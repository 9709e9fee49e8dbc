package v1

import (
	"net/http"
	"strconv"

	"go-jobmatch-backend/internal/delivery/http/response"
	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	invitationUC domain.InvitationUsecase
}

// NewInvitationHandler registers invitation routes
func NewInvitationHandler(r *gin.RouterGroup, invitationUC domain.InvitationUsecase) {
	handler := &InvitationHandler{invitationUC: invitationUC}

	invitations := r.Group("/invitations")
	{
		invitations.POST("", handler.Create)
		invitations.GET("", handler.ListMine)
		invitations.GET("/:id", handler.GetByID)
		invitations.PATCH("/:id/status", handler.ChangeStatus)
	}
}

// Create godoc
// @Summary      Send an invitation
// @Description  Create a response (student → employer) or offer (employer → student)
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CreateInvitationInput  true  "Invitation data"
// @Success      201   {object}  response.Response{data=domain.Invitation}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /invitations [post]
// @Security     BearerAuth
func (h *InvitationHandler) Create(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var input domain.CreateInvitationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	inv, err := h.invitationUC.Create(c.Request.Context(), userID, &input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Invitation sent", inv)
}

// ChangeStatusRequest is the request payload for a status transition
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeStatus godoc
// @Summary      Accept, reject or cancel an invitation
// @Description  Accept/reject is allowed for the receiver, cancel for the sender; only Sent invitations can transition
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Invitation ID"
// @Param        body  body      ChangeStatusRequest  true  "New status"
// @Success      200   {object}  response.Response{data=domain.Invitation}
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /invitations/{id}/status [patch]
// @Security     BearerAuth
func (h *InvitationHandler) ChangeStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	invitationID := c.Param("id")

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	inv, err := h.invitationUC.ChangeStatus(c.Request.Context(), userID, invitationID, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Invitation updated", inv)
}

// GetByID godoc
// @Summary      Get an invitation
// @Tags         invitations
// @Produce      json
// @Param        id  path      string  true  "Invitation ID"
// @Success      200 {object}  response.Response{data=domain.Invitation}
// @Failure      404 {object}  response.Response
// @Router       /invitations/{id} [get]
// @Security     BearerAuth
func (h *InvitationHandler) GetByID(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	inv, err := h.invitationUC.GetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Invitation retrieved", inv)
}

// ListMine godoc
// @Summary      List my invitations
// @Description  Invitations where the current user is a party, filterable by direction, status and type
// @Tags         invitations
// @Produce      json
// @Param        direction  query     string  false  "incoming or outgoing"
// @Param        status     query     string  false  "Invitation status"
// @Param        type       query     string  false  "response or offer"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response{data=response.Paginated}
// @Router       /invitations [get]
// @Security     BearerAuth
func (h *InvitationHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	filter := domain.InvitationFilter{
		Direction: c.Query("direction"),
		Status:    c.Query("status"),
		Type:      c.Query("type"),
	}
	page, pageSize := pageParams(c)

	items, total, err := h.invitationUC.ListMine(c.Request.Context(), userID, filter, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Invitations retrieved", response.Paginated{
		Items: items, Total: total, Page: page,
	})
}

// pageParams parses the shared pagination query parameters.
func pageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}
