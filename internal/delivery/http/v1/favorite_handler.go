package v1

import (
	"net/http"

	"go-jobmatch-backend/internal/delivery/http/response"
	"go-jobmatch-backend/internal/domain"
	"go-jobmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favoriteUC domain.FavoriteUsecase
}

// NewFavoriteHandler registers favorite routes
func NewFavoriteHandler(r *gin.RouterGroup, favoriteUC domain.FavoriteUsecase) {
	handler := &FavoriteHandler{favoriteUC: favoriteUC}

	favorites := r.Group("/favorites")
	{
		favorites.POST("", handler.Add)
		favorites.GET("", handler.ListMine)
		favorites.DELETE("/:id", handler.Remove)
	}
}

// AddFavoriteRequest targets either a user profile or a vacancy
type AddFavoriteRequest struct {
	TargetUserID *string `json:"target_user_id"`
	VacancyID    *string `json:"vacancy_id"`
}

// Add godoc
// @Summary      Add a favorite
// @Description  Favorite a user profile or a vacancy; exactly one target must be set
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Param        body  body      AddFavoriteRequest  true  "Favorite target"
// @Success      201   {object}  response.Response{data=domain.Favorite}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /favorites [post]
// @Security     BearerAuth
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	if (req.TargetUserID == nil) == (req.VacancyID == nil) {
		c.Error(apperror.BadRequest("Provide exactly one of target_user_id or vacancy_id"))
		return
	}

	var fav *domain.Favorite
	var err error
	if req.TargetUserID != nil {
		fav, err = h.favoriteUC.AddProfile(c.Request.Context(), userID, *req.TargetUserID)
	} else {
		fav, err = h.favoriteUC.AddVacancy(c.Request.Context(), userID, *req.VacancyID)
	}
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Favorite added", fav)
}

// ListMine godoc
// @Summary      List my favorites
// @Tags         favorites
// @Produce      json
// @Param        page       query     int  false  "Page (1-based)"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response{data=response.Paginated}
// @Router       /favorites [get]
// @Security     BearerAuth
func (h *FavoriteHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	page, pageSize := pageParams(c)

	items, total, err := h.favoriteUC.ListMine(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Favorites retrieved", response.Paginated{
		Items: items, Total: total, Page: page,
	})
}

// Remove godoc
// @Summary      Remove a favorite
// @Tags         favorites
// @Produce      json
// @Param        id  path      string  true  "Favorite ID"
// @Success      200 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /favorites/{id} [delete]
// @Security     BearerAuth
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.favoriteUC.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Favorite removed", nil)
}
