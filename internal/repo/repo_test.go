package repo

import (
	"testing"

	"github.com/GlebRadaev/cardstore/internal/pg"
	blacklistrepo "github.com/GlebRadaev/cardstore/internal/repo/blacklist-repo"
	cardrepo "github.com/GlebRadaev/cardstore/internal/repo/card-repo"
	ledgerrepo "github.com/GlebRadaev/cardstore/internal/repo/ledger-repo"
	notificationrepo "github.com/GlebRadaev/cardstore/internal/repo/notification-repo"
	orderrepo "github.com/GlebRadaev/cardstore/internal/repo/order-repo"
	userrepo "github.com/GlebRadaev/cardstore/internal/repo/user-repo"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB, pg.NewMockTXManager(ctrl)), mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.IsType(t, &cardrepo.Repository{}, repo.CardRepo)
	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &blacklistrepo.Repository{}, repo.BlacklistRepo)
	assert.IsType(t, &ledgerrepo.Repository{}, repo.LedgerRepo)
	assert.IsType(t, &orderrepo.Repository{}, repo.OrderRepo)
	assert.IsType(t, &notificationrepo.Repository{}, repo.NotificationRepo)

	assert.NoError(t, mock.ExpectationsWereMet())
}
