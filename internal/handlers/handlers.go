package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/cardstore/docs"
	"github.com/GlebRadaev/cardstore/internal/config"
	balancehandlers "github.com/GlebRadaev/cardstore/internal/handlers/balance"
	cardshandlers "github.com/GlebRadaev/cardstore/internal/handlers/cards"
	ordershandlers "github.com/GlebRadaev/cardstore/internal/handlers/orders"
	usershandlers "github.com/GlebRadaev/cardstore/internal/handlers/users"
	"github.com/GlebRadaev/cardstore/internal/service"
	"github.com/GlebRadaev/cardstore/pkg/auth"
)

type OrderHandler interface {
	PlaceOrder(w http.ResponseWriter, r *http.Request)
	GetUserOrders(w http.ResponseWriter, r *http.Request)
	ListOrders(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
	CompleteOrder(w http.ResponseWriter, r *http.Request)
	CancelOrder(w http.ResponseWriter, r *http.Request)
	DeliverOrder(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	ChargeUser(w http.ResponseWriter, r *http.Request)
}

type CardHandler interface {
	GetCards(w http.ResponseWriter, r *http.Request)
	AddCards(w http.ResponseWriter, r *http.Request)
	DeleteCard(w http.ResponseWriter, r *http.Request)
	RestoreCard(w http.ResponseWriter, r *http.Request)
	DeleteGroup(w http.ResponseWriter, r *http.Request)
}

type UserHandler interface {
	BlockUser(w http.ResponseWriter, r *http.Request)
	UnblockUser(w http.ResponseWriter, r *http.Request)
	GetBlacklist(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	OrderHandler   OrderHandler
	BalanceHandler BalanceHandler
	CardHandler    CardHandler
	UserHandler    UserHandler
	// Webhook receives bot updates when the process runs in webhook mode.
	Webhook http.Handler

	process string
	adminID int64
	jwt     auth.JWTServiceInterface
}

func New(cfg *config.Config, s *service.Services, jwt auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		OrderHandler:   ordershandlers.New(s.OrderService),
		BalanceHandler: balancehandlers.New(s.LedgerService, s.UserService),
		CardHandler:    cardshandlers.New(s.InventoryService),
		UserHandler:    usershandlers.New(s.UserService),
		process:        cfg.Process,
		adminID:        cfg.AdminUserID,
		jwt:            jwt,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())
	if h.Webhook != nil {
		r.Method(http.MethodPost, "/bot/webhook", h.Webhook)
	}

	switch h.process {
	case config.ProcessOperator:
		h.adminRoutes(r)
	default:
		h.userRoutes(r)
	}

	return r
}

func (h *Handlers) userRoutes(r chi.Router) {
	r.Route("/api/user", func(r chi.Router) {
		r.Use(auth.Middleware(h.jwt))
		r.Get("/cards", h.CardHandler.GetCards)
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.OrderHandler.PlaceOrder)
			r.Get("/", h.OrderHandler.GetUserOrders)
		})
		r.Get("/balance", h.BalanceHandler.GetBalance)
		r.Get("/transactions", h.BalanceHandler.GetTransactions)
	})
}

func (h *Handlers) adminRoutes(r chi.Router) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.Middleware(h.jwt), auth.AdminOnly(h.adminID))
		r.Get("/stats", h.OrderHandler.GetStats)
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.OrderHandler.ListOrders)
			r.Get("/{id}", h.OrderHandler.GetOrder)
			r.Post("/{id}/complete", h.OrderHandler.CompleteOrder)
			r.Post("/{id}/cancel", h.OrderHandler.CancelOrder)
			r.Post("/{id}/deliver", h.OrderHandler.DeliverOrder)
		})
		r.Route("/cards", func(r chi.Router) {
			r.Post("/", h.CardHandler.AddCards)
			r.Post("/groups/delete", h.CardHandler.DeleteGroup)
			r.Delete("/{id}", h.CardHandler.DeleteCard)
			r.Post("/{id}/restore", h.CardHandler.RestoreCard)
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/blacklist", h.UserHandler.GetBlacklist)
			r.Post("/{id}/block", h.UserHandler.BlockUser)
			r.Delete("/{id}/block", h.UserHandler.UnblockUser)
			r.Post("/{id}/charge", h.BalanceHandler.ChargeUser)
		})
	})
}
