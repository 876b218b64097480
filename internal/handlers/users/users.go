package users

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/dto"
	"github.com/GlebRadaev/cardstore/internal/service/userservice"
	"github.com/GlebRadaev/cardstore/pkg/utils"
)

type Service interface {
	Block(ctx context.Context, userID int64, reason string) error
	Unblock(ctx context.Context, userID int64) error
	Blacklist(ctx context.Context) ([]domain.BlacklistEntry, error)
}

type UserHandler struct {
	userService Service
}

func New(userService Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func userIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, userservice.ErrAlreadyBlocked),
		errors.Is(err, userservice.ErrNotBlocked):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, userservice.ErrInvalidUser):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		zap.L().Error("user request failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// BlockUser godoc
//
//	@Summary	Block a user from buying
//	@Tags		Admin
//	@Accept		json
//	@Param		id		path	int					true	"User ID"
//	@Param		request	body	dto.BlockRequestDTO	false	"Reason"
//	@Security	BearerAuth
//	@Success	204
//	@Failure	400	{object}	utils.Response	"Bad request"
//	@Failure	409	{object}	utils.Response	"Already blocked"
//	@Router		/api/admin/users/{id}/block [post]
func (h *UserHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req dto.BlockRequestDTO
	if r.ContentLength != 0 {
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	if err := h.userService.Block(r.Context(), userID, req.Reason); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnblockUser godoc
//
//	@Summary	Lift a block
//	@Tags		Admin
//	@Param		id	path	int	true	"User ID"
//	@Security	BearerAuth
//	@Success	204
//	@Failure	409	{object}	utils.Response	"Not blocked"
//	@Router		/api/admin/users/{id}/block [delete]
func (h *UserHandler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.userService.Unblock(r.Context(), userID); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBlacklist godoc
//
//	@Summary	Blocked users
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	dto.BlacklistEntryDTO
//	@Router		/api/admin/users/blacklist [get]
func (h *UserHandler) GetBlacklist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.userService.Blacklist(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	response := make([]dto.BlacklistEntryDTO, 0, len(entries))
	for _, e := range entries {
		response = append(response, dto.BlacklistEntryDTO{UserID: e.UserID, Reason: e.Reason, AddedAt: e.AddedAt})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
