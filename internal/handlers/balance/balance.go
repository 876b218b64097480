package balance

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/dto"
	"github.com/GlebRadaev/cardstore/internal/service/ledgerservice"
	"github.com/GlebRadaev/cardstore/internal/service/userservice"
	"github.com/GlebRadaev/cardstore/pkg/auth"
	"github.com/GlebRadaev/cardstore/pkg/utils"
)

type Service interface {
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	History(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error)
}

type Charger interface {
	Charge(ctx context.Context, userID int64, amount decimal.Decimal, note string) (decimal.Decimal, error)
}

type BalanceHandler struct {
	balanceService Service
	charger        Charger
}

func New(balanceService Service, charger Charger) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
		charger:        charger,
	}
}

// GetBalance godoc
//
//	@Summary	Get current user balance
//	@Tags		Balance
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.BalanceResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	balance, err := h.balanceService.GetBalance(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{Balance: balance})
}

// GetTransactions godoc
//
//	@Summary	Recent balance movements of the current user
//	@Tags		Balance
//	@Security	BearerAuth
//	@Produce	json
//	@Param		limit	query	int	false	"Maximum number of entries"
//	@Success	200	{array}		dto.TransactionResponseDTO
//	@Success	204	{object}	utils.Response	"No data available"
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/user/transactions [get]
func (h *BalanceHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	history, err := h.balanceService.History(r.Context(), userID, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(history) == 0 {
		utils.RespondWithJSON(w, http.StatusNoContent, nil)
		return
	}

	response := make([]dto.TransactionResponseDTO, 0, len(history))
	for _, t := range history {
		response = append(response, dto.TransactionResponseDTO{
			Type:        string(t.Type),
			Amount:      t.Amount,
			Description: t.Description,
			Timestamp:   t.Timestamp,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ChargeUser godoc
//
//	@Summary		Credit or debit a user balance
//	@Description	Positive amounts top up, negative amounts correct down to zero. The user is notified.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int						true	"User ID"
//	@Param			request	body	dto.ChargeRequestDTO	true	"Amount"
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		400	{object}	utils.Response	"Bad request"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Failure		422	{object}	utils.Response	"Invalid amount or correction exceeds the balance"
//	@Router			/api/admin/users/{id}/charge [post]
func (h *BalanceHandler) ChargeUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || userID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req dto.ChargeRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	balance, err := h.charger.Charge(r.Context(), userID, req.Amount, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrUserNotFound), errors.Is(err, ledgerservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ledgerservice.ErrInvalidAmount), errors.Is(err, userservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			zap.L().Error("charge failed", zap.Int64("user_id", userID), zap.Error(err))
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{Balance: balance})
}
