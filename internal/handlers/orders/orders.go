package orders

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/cardstore/internal/chat/command"
	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/dto"
	"github.com/GlebRadaev/cardstore/internal/service/orderservice"
	"github.com/GlebRadaev/cardstore/pkg/auth"
	"github.com/GlebRadaev/cardstore/pkg/utils"
)

type Service interface {
	Place(ctx context.Context, userID int64, key domain.GroupKey) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error)
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	Complete(ctx context.Context, orderID string) (*domain.Order, error)
	Cancel(ctx context.Context, orderID, reason string) (*domain.Order, error)
	Fulfill(ctx context.Context, orderID string, delivery domain.Delivery) (*domain.Order, error)
	Stats(ctx context.Context) ([]domain.OrderStats, error)
}

type OrderHandler struct {
	orderService Service
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orderservice.ErrUserBlocked):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, orderservice.ErrInsufficientBalance):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, orderservice.ErrCardUnavailable),
		errors.Is(err, orderservice.ErrOrderTerminal):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, orderservice.ErrOrderNotFound),
		errors.Is(err, orderservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orderservice.ErrEmptyDelivery),
		errors.Is(err, orderservice.ErrInvalidStatus):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		zap.L().Error("order request failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func limitParam(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return 0
	}
	return limit
}

// PlaceOrder godoc
//
//	@Summary		Buy a card
//	@Description	Reserve one card from the group, debit the balance and create a pending order.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.PlaceOrderRequestDTO	true	"Card group to buy from"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.OrderResponseDTO
//	@Failure		400	{object}	utils.Response	"Bad request"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		402	{object}	utils.Response	"Insufficient balance"
//	@Failure		403	{object}	utils.Response	"User is blocked"
//	@Failure		409	{object}	utils.Response	"Card is not available"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/orders [post]
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req dto.PlaceOrderRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	key, err := command.DecodeGroupKey(req.GroupKey)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orderService.Place(r.Context(), userID, key)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewOrderResponse(*order))
}

// GetUserOrders godoc
//
//	@Summary		Get orders of the current user
//	@Tags			Orders
//	@Produce		json
//	@Param			limit	query	int	false	"Maximum number of orders"
//	@Security		BearerAuth
//	@Success		200	{array}		dto.OrderResponseDTO
//	@Success		204	{object}	utils.Response	"No data available"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/orders [get]
func (h *OrderHandler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	orders, err := h.orderService.ListByUser(r.Context(), userID, limitParam(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	if len(orders) == 0 {
		utils.RespondWithJSON(w, http.StatusNoContent, nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrdersResponse(orders))
}

// ListOrders godoc
//
//	@Summary		List orders by status
//	@Description	Oldest first. Defaults to pending orders.
//	@Tags			Admin
//	@Produce		json
//	@Param			status	query	string	false	"pending, completed or cancelled"
//	@Param			limit	query	int		false	"Maximum number of orders"
//	@Security		BearerAuth
//	@Success		200	{array}		dto.OrderResponseDTO
//	@Failure		403	{object}	utils.Response	"Not an operator"
//	@Failure		422	{object}	utils.Response	"Invalid status"
//	@Router			/api/admin/orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	status := domain.OrderStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.OrderPending
	}

	orders, err := h.orderService.ListByStatus(r.Context(), status, limitParam(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrdersResponse(orders))
}

// GetOrder godoc
//
//	@Summary	Order details
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path	string	true	"Order ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	404	{object}	utils.Response	"Order not found"
//	@Router		/api/admin/orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(*order))
}

// CompleteOrder godoc
//
//	@Summary	Mark a pending order as sent
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path	string	true	"Order ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	404	{object}	utils.Response	"Order not found"
//	@Failure	409	{object}	utils.Response	"Order already closed"
//	@Router		/api/admin/orders/{id}/complete [post]
func (h *OrderHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(*order))
}

// CancelOrder godoc
//
//	@Summary		Cancel a pending order
//	@Description	Refunds the buyer and returns the card to stock.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Order ID"
//	@Param			request	body	dto.CancelOrderRequestDTO	false	"Reason"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Order already closed"
//	@Router			/api/admin/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CancelOrderRequestDTO
	if r.ContentLength != 0 {
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	order, err := h.orderService.Cancel(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(*order))
}

// DeliverOrder godoc
//
//	@Summary		Deliver card details and complete the order
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Order ID"
//	@Param			request	body	dto.DeliverOrderRequestDTO	true	"Card details or image"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Order already closed"
//	@Failure		422	{object}	utils.Response	"Empty delivery"
//	@Router			/api/admin/orders/{id}/deliver [post]
func (h *OrderHandler) DeliverOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.DeliverOrderRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.Fulfill(r.Context(), chi.URLParam(r, "id"), domain.Delivery{
		Text:    req.Text,
		Image:   req.Image,
		Caption: req.Caption,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(*order))
}

// GetStats godoc
//
//	@Summary	Order counts and totals per status
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	dto.OrderStatsResponseDTO
//	@Router		/api/admin/stats [get]
func (h *OrderHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orderService.Stats(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	response := make([]dto.OrderStatsResponseDTO, 0, len(stats))
	for _, s := range stats {
		response = append(response, dto.OrderStatsResponseDTO{
			Status: string(s.Status),
			Count:  s.Count,
			Total:  s.Total,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
