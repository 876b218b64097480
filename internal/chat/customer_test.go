package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/cardstore/internal/chat/command"
	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/service/orderservice"
	"github.com/GlebRadaev/cardstore/internal/transport/telegram"
)

type customerMocks struct {
	sender    *MockSender
	users     *MockCustomerUsers
	ledger    *MockCustomerLedger
	inventory *MockCustomerInventory
	orders    *MockCustomerOrders
}

func NewCustomerMock(t *testing.T) (*CustomerBot, customerMocks) {
	ctrl := gomock.NewController(t)
	m := customerMocks{
		sender:    NewMockSender(ctrl),
		users:     NewMockCustomerUsers(ctrl),
		ledger:    NewMockCustomerLedger(ctrl),
		inventory: NewMockCustomerInventory(ctrl),
		orders:    NewMockCustomerOrders(ctrl),
	}
	return NewCustomerBot(m.sender, m.users, m.ledger, m.inventory, m.orders), m
}

var visa20 = domain.GroupKey{CountryCode: "US", CardType: "VISA", Price: decimal.NewFromInt(20)}

func press(userID int64, data string) telegram.Update {
	return telegram.Update{CallbackQuery: &telegram.CallbackQuery{
		ID:      "cb-1",
		From:    telegram.User{ID: userID},
		Message: &telegram.Message{MessageID: 100, Chat: telegram.Chat{ID: userID}},
		Data:    data,
	}}
}

func text(userID int64, body string) telegram.Update {
	return telegram.Update{Message: &telegram.Message{
		MessageID: 1,
		From:      &telegram.User{ID: userID, Username: "buyer", FirstName: "Ann"},
		Chat:      telegram.Chat{ID: userID},
		Text:      body,
	}}
}

func TestCustomerBot_Start(t *testing.T) {
	bot, m := NewCustomerMock(t)
	ctx := context.Background()

	m.users.EXPECT().Register(gomock.Any(), &domain.User{UserID: 7, Username: "buyer", FirstName: "Ann"}).
		Return(&domain.User{UserID: 7}, nil)
	m.users.EXPECT().IsBlocked(gomock.Any(), int64(7)).Return(false, nil)
	m.sender.EXPECT().SendMessage(gomock.Any(), int64(7), customerMenuText, customerMenu).Return(int64(1), nil)
	bot.HandleUpdate(ctx, text(7, "/start"))

	m.users.EXPECT().Register(gomock.Any(), gomock.Any()).Return(&domain.User{UserID: 8}, nil)
	m.users.EXPECT().IsBlocked(gomock.Any(), int64(8)).Return(true, nil)
	m.sender.EXPECT().SendMessage(gomock.Any(), int64(8), blockedText, gomock.Nil()).Return(int64(2), nil)
	bot.HandleUpdate(ctx, text(8, "/start"))

	m.sender.EXPECT().SendMessage(gomock.Any(), int64(7), "Use /start to open the menu.", gomock.Nil()).Return(int64(3), nil)
	bot.HandleUpdate(ctx, text(7, "hello"))
}

func TestCustomerBot_BlockedUserIsRefused(t *testing.T) {
	bot, m := NewCustomerMock(t)

	m.sender.EXPECT().AnswerCallback(gomock.Any(), "cb-1", "").Return(nil)
	m.users.EXPECT().IsBlocked(gomock.Any(), int64(7)).Return(true, nil)
	m.sender.EXPECT().EditMessage(gomock.Any(), int64(7), int64(100), blockedText, gomock.Nil()).Return(nil)

	bot.HandleUpdate(context.Background(), press(7, command.New(command.Cards, "").MustData()))
}

func TestCustomerBot_ShowGroups(t *testing.T) {
	bot, m := NewCustomerMock(t)

	m.sender.EXPECT().AnswerCallback(gomock.Any(), "cb-1", "").Return(nil)
	m.users.EXPECT().IsBlocked(gomock.Any(), int64(7)).Return(false, nil)
	m.inventory.EXPECT().ListGroups(gomock.Any(), domain.CardFilter{}).
		Return([]domain.CardGroup{{GroupKey: visa20, CountryName: "United States", Count: 3}}, nil)
	m.sender.EXPECT().EditMessage(gomock.Any(), int64(7), int64(100), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ int64, _ string, keyboard telegram.Keyboard) error {
			assert.Len(t, keyboard, 2)
			assert.Equal(t, "US United States VISA · 20.00 USDT (3)", keyboard[0][0].Text)
			assert.Equal(t, "buy:US|VISA|20", keyboard[0][0].Data)
			return nil
		})

	bot.HandleUpdate(context.Background(), press(7, "cards"))
}

func TestCustomerBot_ConfirmPurchase(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		confirmable bool
	}{
		{name: "Enough balance", balance: decimal.NewFromInt(50), confirmable: true},
		{name: "Not enough balance", balance: decimal.NewFromInt(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot, m := NewCustomerMock(t)

			m.sender.EXPECT().AnswerCallback(gomock.Any(), "cb-1", "").Return(nil)
			m.users.EXPECT().IsBlocked(gomock.Any(), int64(7)).Return(false, nil)
			m.ledger.EXPECT().GetBalance(gomock.Any(), int64(7)).Return(tt.balance, nil)
			m.sender.EXPECT().EditMessage(gomock.Any(), int64(7), int64(100), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _, _ int64, body string, keyboard telegram.Keyboard) error {
					assert.Contains(t, body, "Buy a US VISA card for 20.00 USDT?")
					if tt.confirmable {
						assert.Equal(t, "confirm_buy:US|VISA|20", keyboard[0][0].Data)
					} else {
						assert.Len(t, keyboard, 1)
						assert.Contains(t, body, "not enough")
					}
					return nil
				})

			bot.HandleUpdate(context.Background(), press(7, "buy:US|VISA|20"))
		})
	}
}

func TestCustomerBot_Purchase(t *testing.T) {
	tests := []struct {
		name     string
		order    *domain.Order
		err      error
		expected string
	}{
		{
			name:     "Order placed",
			order:    &domain.Order{OrderID: "o-1", Amount: decimal.NewFromInt(20)},
			expected: "✅ Order o-1 placed.\n20.00 USDT was charged. The card will be delivered shortly.",
		},
		{
			name:     "Sold out",
			err:      orderservice.ErrCardUnavailable,
			expected: "😔 Sorry, this card has just sold out.",
		},
		{
			name:     "Insufficient balance",
			err:      orderservice.ErrInsufficientBalance,
			expected: "⚠️ Insufficient balance. Please top up and try again.",
		},
		{
			name:     "Store failure",
			err:      errors.New("database error"),
			expected: failureText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot, m := NewCustomerMock(t)

			m.sender.EXPECT().AnswerCallback(gomock.Any(), "cb-1", "").Return(nil)
			m.users.EXPECT().IsBlocked(gomock.Any(), int64(7)).Return(false, nil)
			m.orders.EXPECT().Place(gomock.Any(), int64(7), visa20).Return(tt.order, tt.err)
			m.sender.EXPECT().EditMessage(gomock.Any(), int64(7), int64(100), tt.expected, backToMenu).Return(nil)

			bot.HandleUpdate(context.Background(), press(7, "confirm_buy:US|VISA|20"))
		})
	}
}

func TestCustomerBot_BalanceHistoryOrders(t *testing.T) {
	bot, m := NewCustomerMock(t)
	ctx := context.Background()
	at := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)

	m.sender.EXPECT().AnswerCallback(gomock.Any(), "cb-1", "").Return(nil).Times(3)
	m.users.EXPECT().IsBlocked(gomock.Any(), int64(7)).Return(false, nil).Times(3)

	m.ledger.EXPECT().GetBalance(gomock.Any(), int64(7)).Return(decimal.RequireFromString("80.5"), nil)
	m.sender.EXPECT().EditMessage(gomock.Any(), int64(7), int64(100), "💰 Your balance: 80.50 USDT", backToMenu).Return(nil)
	bot.HandleUpdate(ctx, press(7, "balance"))

	m.ledger.EXPECT().History(gomock.Any(), int64(7), historyLimit).Return([]domain.Transaction{
		{Amount: decimal.NewFromInt(-20), Description: "US VISA card", Timestamp: at},
	}, nil)
	m.sender.EXPECT().EditMessage(gomock.Any(), int64(7), int64(100),
		"📜 Recent transactions:\n\n2026-01-02 03:04  -20.00 USDT  US VISA card", backToMenu).Return(nil)
	bot.HandleUpdate(ctx, press(7, "history"))

	m.orders.EXPECT().ListByUser(gomock.Any(), int64(7), orderservice.DefaultListLimit).Return([]domain.Order{
		{OrderID: "0190c1a2-7b2e-7000-8000-000000000001", CardType: "VISA", Amount: decimal.NewFromInt(20), Status: domain.OrderPending},
	}, nil)
	m.sender.EXPECT().EditMessage(gomock.Any(), int64(7), int64(100),
		"📦 Your orders:\n\n⏳ #00000001 VISA 20.00 USDT  pending", backToMenu).Return(nil)
	bot.HandleUpdate(ctx, press(7, "orders"))
}

func TestCustomerBot_OperatorButtonsAreIgnored(t *testing.T) {
	bot, m := NewCustomerMock(t)

	m.sender.EXPECT().AnswerCallback(gomock.Any(), "cb-1", "").Return(nil)
	m.users.EXPECT().IsBlocked(gomock.Any(), int64(7)).Return(false, nil)
	m.sender.EXPECT().EditMessage(gomock.Any(), int64(7), int64(100), "This action is not available here.", backToMenu).Return(nil)

	bot.HandleUpdate(context.Background(), press(7, "complete:o-1"))
}
