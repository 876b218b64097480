package cards

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/cardstore/internal/chat/command"
	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/dto"
	"github.com/GlebRadaev/cardstore/internal/service/inventoryservice"
	"github.com/GlebRadaev/cardstore/pkg/utils"
)

type Service interface {
	ListGroups(ctx context.Context, filter domain.CardFilter) ([]domain.CardGroup, error)
	BulkAdd(ctx context.Context, spec domain.CardSpec, quantity int) (*domain.Card, error)
	SoftDelete(ctx context.Context, cardID string) error
	SoftDeleteGroup(ctx context.Context, key domain.GroupKey) (int64, error)
	Restore(ctx context.Context, cardID string) error
}

type CardHandler struct {
	cardService Service
}

func New(cardService Service) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inventoryservice.ErrCardNotFound),
		errors.Is(err, inventoryservice.ErrGroupNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, inventoryservice.ErrRestoreConflict):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, inventoryservice.ErrInvalidSpec),
		errors.Is(err, inventoryservice.ErrInvalidQuantity),
		errors.Is(err, inventoryservice.ErrInvalidGroupKey):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		zap.L().Error("card request failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// GetCards godoc
//
//	@Summary		Browse cards on sale
//	@Description	Interchangeable cards are grouped by country, type and price.
//	@Tags			Cards
//	@Produce		json
//	@Param			country	query	string	false	"Country code filter"
//	@Param			type	query	string	false	"Card type filter"
//	@Security		BearerAuth
//	@Success		200	{array}	dto.CardGroupResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/cards [get]
func (h *CardHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	groups, err := h.cardService.ListGroups(r.Context(), domain.CardFilter{
		CountryCode: r.URL.Query().Get("country"),
		CardType:    r.URL.Query().Get("type"),
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	response := make([]dto.CardGroupResponseDTO, 0, len(groups))
	for _, g := range groups {
		response = append(response, dto.CardGroupResponseDTO{
			CountryCode: g.CountryCode,
			CountryName: g.CountryName,
			CardType:    g.CardType,
			Price:       g.Price,
			Available:   g.Count,
			GroupKey:    command.EncodeGroupKey(g.GroupKey),
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// AddCards godoc
//
//	@Summary		Add stock
//	@Description	Increments the live record with the same country, type, price and value, or creates one.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.AddCardsRequestDTO	true	"Card description and quantity"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.CardResponseDTO
//	@Failure		400	{object}	utils.Response	"Bad request"
//	@Failure		422	{object}	utils.Response	"Invalid card description"
//	@Router			/api/admin/cards [post]
func (h *CardHandler) AddCards(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCardsRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	card, err := h.cardService.BulkAdd(r.Context(), domain.CardSpec{
		CardType:    req.CardType,
		CountryCode: req.CountryCode,
		CountryName: req.CountryName,
		Price:       req.Price,
		Value:       req.Value,
	}, req.Quantity)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewCardResponse(*card))
}

// DeleteCard godoc
//
//	@Summary	Withdraw a card record from sale
//	@Tags		Admin
//	@Param		id	path	string	true	"Card ID"
//	@Security	BearerAuth
//	@Success	204
//	@Failure	404	{object}	utils.Response	"Card not found"
//	@Router		/api/admin/cards/{id} [delete]
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := h.cardService.SoftDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RestoreCard godoc
//
//	@Summary	Put a withdrawn card record back on sale
//	@Tags		Admin
//	@Param		id	path	string	true	"Card ID"
//	@Security	BearerAuth
//	@Success	204
//	@Failure	404	{object}	utils.Response	"Card not found"
//	@Failure	409	{object}	utils.Response	"A live record with the same description exists"
//	@Router		/api/admin/cards/{id}/restore [post]
func (h *CardHandler) RestoreCard(w http.ResponseWriter, r *http.Request) {
	if err := h.cardService.Restore(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteGroup godoc
//
//	@Summary	Withdraw every record of a group
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body	dto.DeleteGroupRequestDTO	true	"Group"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.DeleteGroupResponseDTO
//	@Failure	400	{object}	utils.Response	"Bad request"
//	@Failure	404	{object}	utils.Response	"Group not found"
//	@Router		/api/admin/cards/groups/delete [post]
func (h *CardHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteGroupRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	key, err := command.DecodeGroupKey(req.GroupKey)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.cardService.SoftDeleteGroup(r.Context(), key)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DeleteGroupResponseDTO{Deleted: n})
}
