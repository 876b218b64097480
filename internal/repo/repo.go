package repo

import (
	"github.com/GlebRadaev/cardstore/internal/pg"
	blacklistrepo "github.com/GlebRadaev/cardstore/internal/repo/blacklist-repo"
	cardrepo "github.com/GlebRadaev/cardstore/internal/repo/card-repo"
	ledgerrepo "github.com/GlebRadaev/cardstore/internal/repo/ledger-repo"
	notificationrepo "github.com/GlebRadaev/cardstore/internal/repo/notification-repo"
	orderrepo "github.com/GlebRadaev/cardstore/internal/repo/order-repo"
	userrepo "github.com/GlebRadaev/cardstore/internal/repo/user-repo"
	"github.com/GlebRadaev/cardstore/internal/service/inventoryservice"
	"github.com/GlebRadaev/cardstore/internal/service/ledgerservice"
	"github.com/GlebRadaev/cardstore/internal/service/orderservice"
	"github.com/GlebRadaev/cardstore/internal/service/queueservice"
	"github.com/GlebRadaev/cardstore/internal/service/userservice"
)

type Repositories struct {
	CardRepo         inventoryservice.Repo
	UserRepo         userservice.Repo
	BlacklistRepo    userservice.BlacklistRepo
	LedgerRepo       ledgerservice.Repo
	OrderRepo        orderservice.Repo
	NotificationRepo queueservice.Repo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		CardRepo:         cardrepo.New(conn),
		UserRepo:         userrepo.New(conn),
		BlacklistRepo:    blacklistrepo.New(conn),
		LedgerRepo:       ledgerrepo.New(conn, txManager),
		OrderRepo:        orderrepo.New(conn),
		NotificationRepo: notificationrepo.New(conn),
	}
}
