package v1

import (
	"net/http"

	"go-jobmatch-backend/internal/delivery/http/response"
	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	authUC domain.AuthUsecase
}

// NewProfileHandler registers the thin profile surface
func NewProfileHandler(r *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &ProfileHandler{authUC: authUC}

	me := r.Group("/me")
	{
		me.GET("", handler.GetMe)
		me.PATCH("", handler.UpdateMe)
		me.DELETE("", handler.DeleteMe)
	}
}

// GetMe godoc
// @Summary      Get my profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Router       /me [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", user)
}

// UpdateMe godoc
// @Summary      Update my profile
// @Description  Applies the changed fields and recalculates the registration stage
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ProfileUpdate  true  "Profile fields"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Router       /me [patch]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var upd domain.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.authUC.UpdateProfile(c.Request.Context(), userID, &upd)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", user)
}

// DeleteMe godoc
// @Summary      Delete my account
// @Description  Soft delete; the account is excluded from communication but kept for invitation snapshots
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /me [delete]
// @Security     BearerAuth
func (h *ProfileHandler) DeleteMe(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.authUC.DeleteAccount(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Account deleted", nil)
}
