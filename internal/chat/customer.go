package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/cardstore/internal/chat/command"
	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/service/orderservice"
	"github.com/GlebRadaev/cardstore/internal/transport/telegram"
)

type CustomerUsers interface {
	Register(ctx context.Context, user *domain.User) (*domain.User, error)
	IsBlocked(ctx context.Context, userID int64) (bool, error)
}

type CustomerLedger interface {
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	History(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error)
}

type CustomerInventory interface {
	ListGroups(ctx context.Context, filter domain.CardFilter) ([]domain.CardGroup, error)
}

type CustomerOrders interface {
	Place(ctx context.Context, userID int64, key domain.GroupKey) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Order, error)
}

const (
	customerMenuText = "Welcome! Choose an option from the menu:"
	blockedText      = "🚫 Your access to the store has been suspended."
	failureText      = "Something went wrong, please try again later."
	historyLimit     = 10
)

var customerMenu = telegram.Keyboard{
	{{Text: "🛒 Buy a card", Data: command.New(command.Cards, "").MustData()}},
	{
		{Text: "💰 Balance", Data: command.New(command.Balance, "").MustData()},
		{Text: "📜 History", Data: command.New(command.History, "").MustData()},
	},
	{{Text: "📦 My orders", Data: command.New(command.MyOrders, "").MustData()}},
}

var backToMenu = telegram.Keyboard{{{Text: "🔙 Back to menu", Data: command.New(command.Menu, "").MustData()}}}

// CustomerBot serves buyers in the storefront bot.
type CustomerBot struct {
	sender    Sender
	users     CustomerUsers
	ledger    CustomerLedger
	inventory CustomerInventory
	orders    CustomerOrders
}

func NewCustomerBot(sender Sender, users CustomerUsers, ledger CustomerLedger, inventory CustomerInventory, orders CustomerOrders) *CustomerBot {
	return &CustomerBot{
		sender:    sender,
		users:     users,
		ledger:    ledger,
		inventory: inventory,
		orders:    orders,
	}
}

func (b *CustomerBot) HandleUpdate(ctx context.Context, update telegram.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *CustomerBot) handleMessage(ctx context.Context, msg *telegram.Message) {
	name, _ := splitCommand(msg.Text)
	if name != "/start" {
		send(ctx, b.sender, msg.Chat.ID, "Use /start to open the menu.", nil)
		return
	}

	from := msg.From
	_, err := b.users.Register(ctx, &domain.User{
		UserID:    from.ID,
		Username:  from.Username,
		FirstName: from.FirstName,
		LastName:  from.LastName,
	})
	if err != nil {
		send(ctx, b.sender, msg.Chat.ID, failureText, nil)
		return
	}
	if b.blocked(ctx, from.ID) {
		send(ctx, b.sender, msg.Chat.ID, blockedText, nil)
		return
	}
	send(ctx, b.sender, msg.Chat.ID, customerMenuText, customerMenu)
}

func (b *CustomerBot) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	answer(ctx, b.sender, cb, "")

	if b.blocked(ctx, cb.From.ID) {
		respond(ctx, b.sender, cb, blockedText, nil)
		return
	}

	cmd, err := command.ParseCallback(cb.Data)
	if err != nil {
		zap.L().Warn("unknown button", zap.String("data", cb.Data), zap.Error(err))
		respond(ctx, b.sender, cb, customerMenuText, customerMenu)
		return
	}

	userID := cb.From.ID
	switch cmd.Kind {
	case command.Menu:
		respond(ctx, b.sender, cb, customerMenuText, customerMenu)
	case command.Cards:
		b.showGroups(ctx, cb)
	case command.Buy:
		b.confirmPurchase(ctx, cb, cmd.Arg)
	case command.ConfirmBuy:
		b.purchase(ctx, cb, cmd.Arg)
	case command.Balance:
		balance, err := b.ledger.GetBalance(ctx, userID)
		if err != nil {
			respond(ctx, b.sender, cb, failureText, backToMenu)
			return
		}
		respond(ctx, b.sender, cb, fmt.Sprintf("💰 Your balance: %s USDT", balance.StringFixed(2)), backToMenu)
	case command.History:
		b.showHistory(ctx, cb)
	case command.MyOrders:
		b.showOrders(ctx, cb)
	case command.PendingOrders, command.OrderDetails, command.Deliver, command.Complete,
		command.Cancel, command.Stats, command.Blacklist:
		respond(ctx, b.sender, cb, "This action is not available here.", backToMenu)
	}
}

func (b *CustomerBot) blocked(ctx context.Context, userID int64) bool {
	blocked, err := b.users.IsBlocked(ctx, userID)
	if err != nil {
		zap.L().Error("can't check blacklist", zap.Int64("user_id", userID), zap.Error(err))
		return true
	}
	return blocked
}

func (b *CustomerBot) showGroups(ctx context.Context, cb *telegram.CallbackQuery) {
	groups, err := b.inventory.ListGroups(ctx, domain.CardFilter{})
	if err != nil {
		respond(ctx, b.sender, cb, failureText, backToMenu)
		return
	}
	if len(groups) == 0 {
		respond(ctx, b.sender, cb, "😔 No cards are available right now. Please check back later.", backToMenu)
		return
	}

	keyboard := make(telegram.Keyboard, 0, len(groups)+1)
	for _, g := range groups {
		data, err := command.New(command.Buy, command.EncodeGroupKey(g.GroupKey)).Data()
		if err != nil {
			zap.L().Warn("card group does not fit a button", zap.Error(err))
			continue
		}
		label := fmt.Sprintf("%s %s %s · %s USDT (%d)", g.CountryCode, g.CountryName, g.CardType, g.Price.StringFixed(2), g.Count)
		keyboard = append(keyboard, []telegram.Button{{Text: strings.Join(strings.Fields(label), " "), Data: data}})
	}
	keyboard = append(keyboard, backToMenu[0])
	respond(ctx, b.sender, cb, "🛒 Available cards. Choose one:", keyboard)
}

func (b *CustomerBot) confirmPurchase(ctx context.Context, cb *telegram.CallbackQuery, arg string) {
	key, err := command.DecodeGroupKey(arg)
	if err != nil {
		respond(ctx, b.sender, cb, customerMenuText, customerMenu)
		return
	}
	balance, err := b.ledger.GetBalance(ctx, cb.From.ID)
	if err != nil {
		respond(ctx, b.sender, cb, failureText, backToMenu)
		return
	}

	text := fmt.Sprintf("Buy a %s %s card for %s USDT?\nYour balance: %s USDT",
		key.CountryCode, key.CardType, key.Price.StringFixed(2), balance.StringFixed(2))
	keyboard := telegram.Keyboard{
		{{Text: "✅ Confirm", Data: command.New(command.ConfirmBuy, arg).MustData()}},
		{{Text: "🔙 Back", Data: command.New(command.Cards, "").MustData()}},
	}
	if balance.LessThan(key.Price) {
		text += "\n\n⚠️ Your balance is not enough for this card."
		keyboard = keyboard[1:]
	}
	respond(ctx, b.sender, cb, text, keyboard)
}

func (b *CustomerBot) purchase(ctx context.Context, cb *telegram.CallbackQuery, arg string) {
	key, err := command.DecodeGroupKey(arg)
	if err != nil {
		respond(ctx, b.sender, cb, customerMenuText, customerMenu)
		return
	}

	order, err := b.orders.Place(ctx, cb.From.ID, key)
	switch {
	case err == nil:
		respond(ctx, b.sender, cb, fmt.Sprintf("✅ Order %s placed.\n%s USDT was charged. The card will be delivered shortly.",
			order.OrderID, order.Amount.StringFixed(2)), backToMenu)
	case errors.Is(err, orderservice.ErrUserBlocked):
		respond(ctx, b.sender, cb, blockedText, nil)
	case errors.Is(err, orderservice.ErrInsufficientBalance):
		respond(ctx, b.sender, cb, "⚠️ Insufficient balance. Please top up and try again.", backToMenu)
	case errors.Is(err, orderservice.ErrCardUnavailable):
		respond(ctx, b.sender, cb, "😔 Sorry, this card has just sold out.", backToMenu)
	case errors.Is(err, orderservice.ErrUserNotFound):
		respond(ctx, b.sender, cb, "Please send /start first.", nil)
	default:
		zap.L().Error("purchase failed", zap.Int64("user_id", cb.From.ID), zap.Error(err))
		respond(ctx, b.sender, cb, failureText, backToMenu)
	}
}

func (b *CustomerBot) showHistory(ctx context.Context, cb *telegram.CallbackQuery) {
	history, err := b.ledger.History(ctx, cb.From.ID, historyLimit)
	if err != nil {
		respond(ctx, b.sender, cb, failureText, backToMenu)
		return
	}
	if len(history) == 0 {
		respond(ctx, b.sender, cb, "📜 No transactions yet.", backToMenu)
		return
	}

	var text strings.Builder
	text.WriteString("📜 Recent transactions:\n")
	for _, tx := range history {
		fmt.Fprintf(&text, "\n%s  %s USDT  %s", tx.Timestamp.UTC().Format("2006-01-02 15:04"), tx.Amount.StringFixed(2), tx.Description)
	}
	respond(ctx, b.sender, cb, text.String(), backToMenu)
}

func (b *CustomerBot) showOrders(ctx context.Context, cb *telegram.CallbackQuery) {
	orders, err := b.orders.ListByUser(ctx, cb.From.ID, orderservice.DefaultListLimit)
	if err != nil {
		respond(ctx, b.sender, cb, failureText, backToMenu)
		return
	}
	if len(orders) == 0 {
		respond(ctx, b.sender, cb, "📦 You have no orders yet.", backToMenu)
		return
	}

	var text strings.Builder
	text.WriteString("📦 Your orders:\n")
	for _, o := range orders {
		fmt.Fprintf(&text, "\n%s %s %s %s USDT  %s", statusIcon(o.Status), shortID(o.OrderID), o.CardType, o.Amount.StringFixed(2), o.Status)
	}
	respond(ctx, b.sender, cb, text.String(), backToMenu)
}

func statusIcon(status domain.OrderStatus) string {
	switch status {
	case domain.OrderCompleted:
		return "✅"
	case domain.OrderCancelled:
		return "❌"
	default:
		return "⏳"
	}
}

// shortID keeps the tail of a uuid v7, the head is mostly timestamp.
func shortID(id string) string {
	if len(id) <= 8 {
		return "#" + id
	}
	return "#" + id[len(id)-8:]
}
