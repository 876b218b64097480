package service

import (
	"github.com/GlebRadaev/cardstore/internal/pg"
	"github.com/GlebRadaev/cardstore/internal/repo"
	"github.com/GlebRadaev/cardstore/internal/service/inventoryservice"
	"github.com/GlebRadaev/cardstore/internal/service/ledgerservice"
	"github.com/GlebRadaev/cardstore/internal/service/orderservice"
	"github.com/GlebRadaev/cardstore/internal/service/queueservice"
	"github.com/GlebRadaev/cardstore/internal/service/userservice"
)

type Services struct {
	InventoryService *inventoryservice.Service
	LedgerService    *ledgerservice.Service
	QueueService     *queueservice.Service
	UserService      *userservice.Service
	OrderService     *orderservice.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager) *Services {
	inventoryService := inventoryservice.New(repo.CardRepo)
	ledgerService := ledgerservice.New(repo.LedgerRepo)
	queueService := queueservice.New(repo.NotificationRepo)
	userService := userservice.New(repo.UserRepo, repo.BlacklistRepo, ledgerService, queueService, txManager)
	orderService := orderservice.New(repo.OrderRepo, inventoryService, ledgerService, userService, queueService, txManager)

	return &Services{
		InventoryService: inventoryService,
		LedgerService:    ledgerService,
		QueueService:     queueService,
		UserService:      userService,
		OrderService:     orderService,
	}
}
