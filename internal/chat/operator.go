package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/cardstore/internal/chat/command"
	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/notifier"
	"github.com/GlebRadaev/cardstore/internal/service/inventoryservice"
	"github.com/GlebRadaev/cardstore/internal/service/orderservice"
	"github.com/GlebRadaev/cardstore/internal/service/userservice"
	"github.com/GlebRadaev/cardstore/internal/transport/telegram"
)

type OperatorOrders interface {
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ListPending(ctx context.Context, limit int) ([]domain.Order, error)
	Complete(ctx context.Context, orderID string) (*domain.Order, error)
	Cancel(ctx context.Context, orderID, reason string) (*domain.Order, error)
	Fulfill(ctx context.Context, orderID string, delivery domain.Delivery) (*domain.Order, error)
	Stats(ctx context.Context) ([]domain.OrderStats, error)
}

type OperatorInventory interface {
	BulkAdd(ctx context.Context, spec domain.CardSpec, quantity int) (*domain.Card, error)
	SoftDelete(ctx context.Context, cardID string) error
	SoftDeleteGroup(ctx context.Context, key domain.GroupKey) (int64, error)
	Restore(ctx context.Context, cardID string) error
}

type OperatorUsers interface {
	Count(ctx context.Context) (int64, error)
	Block(ctx context.Context, userID int64, reason string) error
	Unblock(ctx context.Context, userID int64) error
	Blacklist(ctx context.Context) ([]domain.BlacklistEntry, error)
	Charge(ctx context.Context, userID int64, amount decimal.Decimal, note string) (decimal.Decimal, error)
}

const (
	adminOnlyText  = "Sorry, this bot is for administrators only."
	operatorCancel = "cancelled by operator"
)

const operatorHelp = "Text commands:\n/add " + addFormat + "\n/charge " + chargeFormat + "\n/block " + blockFormat +
	"\n/unblock USER_ID\n/delete CARD_ID or COUNTRY|TYPE|PRICE\n/restore CARD_ID\n/cancel"

var operatorMenu = telegram.Keyboard{
	{{Text: "📋 Pending orders", Data: command.New(command.PendingOrders, "").MustData()}},
	{{Text: "📊 Statistics", Data: command.New(command.Stats, "").MustData()}},
	{{Text: "👥 Blacklist", Data: command.New(command.Blacklist, "").MustData()}},
}

// OperatorBot is the admin panel. Only the configured operator may use it.
type OperatorBot struct {
	sender    Sender
	orders    OperatorOrders
	inventory OperatorInventory
	users     OperatorUsers
	sessions  *Sessions
	adminID   int64
	now       func() time.Time
}

func NewOperatorBot(sender Sender, orders OperatorOrders, inventory OperatorInventory, users OperatorUsers, sessions *Sessions, adminID int64) *OperatorBot {
	return &OperatorBot{
		sender:    sender,
		orders:    orders,
		inventory: inventory,
		users:     users,
		sessions:  sessions,
		adminID:   adminID,
		now:       time.Now,
	}
}

func (b *OperatorBot) isAdmin(userID int64) bool {
	return b.adminID != 0 && userID == b.adminID
}

func (b *OperatorBot) HandleUpdate(ctx context.Context, update telegram.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *OperatorBot) menuText() string {
	return fmt.Sprintf("Welcome to the admin panel!\n\n🕐 Last update: %s\n\n%s", b.now().Format("15:04"), operatorHelp)
}

func (b *OperatorBot) handleMessage(ctx context.Context, msg *telegram.Message) {
	if !b.isAdmin(msg.From.ID) {
		send(ctx, b.sender, msg.Chat.ID, adminOnlyText, nil)
		return
	}

	operatorID := msg.From.ID
	name, args := splitCommand(msg.Text)
	switch name {
	case "/start", "/menu":
		b.sessions.Clear(operatorID)
		send(ctx, b.sender, msg.Chat.ID, b.menuText(), operatorMenu)
		return
	case "/cancel":
		b.sessions.Clear(operatorID)
		send(ctx, b.sender, msg.Chat.ID, "Cancelled.", operatorMenu)
		return
	case "/add":
		b.runOrAwait(ctx, msg, args, StepAwaitingBulkAdd, "Send the cards as "+addFormat+".", b.addCards)
		return
	case "/charge":
		b.runOrAwait(ctx, msg, args, StepAwaitingCharge, "Send the charge as "+chargeFormat+".", b.charge)
		return
	case "/block":
		b.runOrAwait(ctx, msg, args, StepAwaitingBlock, "Send the user to block as "+blockFormat+".", b.block)
		return
	case "/unblock":
		send(ctx, b.sender, msg.Chat.ID, b.unblock(ctx, args), nil)
		return
	case "/delete":
		send(ctx, b.sender, msg.Chat.ID, b.deleteCards(ctx, args), nil)
		return
	case "/restore":
		send(ctx, b.sender, msg.Chat.ID, b.restore(ctx, args), nil)
		return
	case "":
	default:
		send(ctx, b.sender, msg.Chat.ID, "Unknown command.\n\n"+operatorHelp, nil)
		return
	}

	session := b.sessions.Get(operatorID)
	switch session.Step {
	case StepAwaitingDelivery:
		b.deliver(ctx, msg, session.OrderID)
	case StepAwaitingBulkAdd:
		b.finishStep(ctx, msg, b.addCards)
	case StepAwaitingCharge:
		b.finishStep(ctx, msg, b.charge)
	case StepAwaitingBlock:
		b.finishStep(ctx, msg, b.block)
	case StepIdle:
		send(ctx, b.sender, msg.Chat.ID, "Use /start to open the admin panel.", nil)
	}
}

// runOrAwait runs action on inline arguments, or asks for them and waits.
func (b *OperatorBot) runOrAwait(ctx context.Context, msg *telegram.Message, args string, step Step, prompt string,
	action func(context.Context, string) (string, bool)) {
	if args == "" {
		b.sessions.Await(msg.From.ID, step, "")
		send(ctx, b.sender, msg.Chat.ID, prompt+"\n/cancel to abort.", nil)
		return
	}
	b.sessions.Clear(msg.From.ID)
	reply, _ := action(ctx, args)
	send(ctx, b.sender, msg.Chat.ID, reply, nil)
}

// finishStep keeps the session open when the input could not be parsed so
// the operator can correct it.
func (b *OperatorBot) finishStep(ctx context.Context, msg *telegram.Message, action func(context.Context, string) (string, bool)) {
	reply, done := action(ctx, msg.Text)
	if done {
		b.sessions.Clear(msg.From.ID)
	}
	send(ctx, b.sender, msg.Chat.ID, reply, nil)
}

func (b *OperatorBot) addCards(ctx context.Context, args string) (string, bool) {
	spec, quantity, err := parseCardSpec(args)
	if err != nil {
		return "⚠️ " + err.Error(), false
	}
	card, err := b.inventory.BulkAdd(ctx, spec, quantity)
	switch {
	case err == nil:
		return fmt.Sprintf("✅ %s %s %s USDT: %d in stock (card %s).",
			card.CountryCode, card.CardType, card.Price.StringFixed(2), card.AvailableCount, card.CardID), true
	case errors.Is(err, inventoryservice.ErrInvalidSpec), errors.Is(err, inventoryservice.ErrInvalidQuantity):
		return "⚠️ " + err.Error(), false
	default:
		return failureText, true
	}
}

func (b *OperatorBot) charge(ctx context.Context, args string) (string, bool) {
	userID, amount, note, err := parseCharge(args)
	if err != nil {
		return "⚠️ " + err.Error(), false
	}
	balance, err := b.users.Charge(ctx, userID, amount, note)
	switch {
	case err == nil:
		return fmt.Sprintf("✅ User %d charged %s USDT. New balance: %s USDT.", userID, amount.StringFixed(2), balance.StringFixed(2)), true
	case errors.Is(err, userservice.ErrUserNotFound):
		return fmt.Sprintf("⚠️ User %d has never started the store bot.", userID), false
	case errors.Is(err, userservice.ErrInsufficientBalance):
		return fmt.Sprintf("⚠️ User %d does not have %s USDT to take back.", userID, amount.Neg().StringFixed(2)), false
	default:
		return failureText, true
	}
}

func (b *OperatorBot) block(ctx context.Context, args string) (string, bool) {
	userID, reason, err := parseBlock(args)
	if err != nil {
		return "⚠️ " + err.Error(), false
	}
	switch err := b.users.Block(ctx, userID, reason); {
	case err == nil:
		return fmt.Sprintf("🚫 User %d blocked.", userID), true
	case errors.Is(err, userservice.ErrAlreadyBlocked):
		return fmt.Sprintf("User %d is already blocked.", userID), true
	default:
		return failureText, true
	}
}

func (b *OperatorBot) unblock(ctx context.Context, args string) string {
	userID, err := parseUserID(args)
	if err != nil {
		return "⚠️ Usage: /unblock USER_ID"
	}
	switch err := b.users.Unblock(ctx, userID); {
	case err == nil:
		return fmt.Sprintf("✅ User %d unblocked.", userID)
	case errors.Is(err, userservice.ErrNotBlocked):
		return fmt.Sprintf("User %d is not blocked.", userID)
	default:
		return failureText
	}
}

func (b *OperatorBot) deleteCards(ctx context.Context, args string) string {
	if args == "" {
		return "⚠️ Usage: /delete CARD_ID or COUNTRY|TYPE|PRICE"
	}
	if strings.Contains(args, "|") {
		key, err := command.DecodeGroupKey(args)
		if err != nil {
			return "⚠️ " + err.Error()
		}
		n, err := b.inventory.SoftDeleteGroup(ctx, key)
		switch {
		case err == nil:
			return fmt.Sprintf("🗑️ %d card records withdrawn.", n)
		case errors.Is(err, inventoryservice.ErrGroupNotFound):
			return "No card records in that group."
		default:
			return failureText
		}
	}

	switch err := b.inventory.SoftDelete(ctx, args); {
	case err == nil:
		return fmt.Sprintf("🗑️ Card %s withdrawn.", args)
	case errors.Is(err, inventoryservice.ErrCardNotFound):
		return fmt.Sprintf("Card %s not found.", args)
	default:
		return failureText
	}
}

func (b *OperatorBot) restore(ctx context.Context, args string) string {
	if args == "" {
		return "⚠️ Usage: /restore CARD_ID"
	}
	switch err := b.inventory.Restore(ctx, args); {
	case err == nil:
		return fmt.Sprintf("♻️ Card %s is back on sale.", args)
	case errors.Is(err, inventoryservice.ErrCardNotFound):
		return fmt.Sprintf("Card %s not found among withdrawn cards.", args)
	case errors.Is(err, inventoryservice.ErrRestoreConflict):
		return "A live record with the same description exists. Use /add to top it up instead."
	default:
		return failureText
	}
}

func (b *OperatorBot) deliver(ctx context.Context, msg *telegram.Message, orderID string) {
	delivery := domain.Delivery{Text: strings.TrimSpace(msg.Text)}
	if fileID := msg.LargestPhoto(); fileID != "" {
		image, err := b.sender.DownloadFile(ctx, fileID)
		if err != nil {
			zap.L().Error("can't download delivery photo", zap.String("order_id", orderID), zap.Error(err))
			send(ctx, b.sender, msg.Chat.ID, "⚠️ Could not fetch the photo, please send it again.", nil)
			return
		}
		delivery = domain.Delivery{Image: image, Caption: msg.Caption}
	}

	_, err := b.orders.Fulfill(ctx, orderID, delivery)
	if errors.Is(err, orderservice.ErrEmptyDelivery) {
		send(ctx, b.sender, msg.Chat.ID, "⚠️ Send the card details as text or a photo.", nil)
		return
	}
	b.sessions.Clear(msg.From.ID)
	if err != nil {
		send(ctx, b.sender, msg.Chat.ID, orderErrorText(orderID, err), operatorMenu)
		return
	}
	send(ctx, b.sender, msg.Chat.ID, fmt.Sprintf("✅ Card delivered, order %s completed.", orderID), operatorMenu)
}

func (b *OperatorBot) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		answer(ctx, b.sender, cb, adminOnlyText)
		return
	}
	answer(ctx, b.sender, cb, "")

	cmd, err := command.ParseCallback(cb.Data)
	if err != nil {
		zap.L().Warn("unknown button", zap.String("data", cb.Data), zap.Error(err))
		respond(ctx, b.sender, cb, b.menuText(), operatorMenu)
		return
	}

	switch cmd.Kind {
	case command.Menu:
		b.sessions.Clear(cb.From.ID)
		respond(ctx, b.sender, cb, b.menuText(), operatorMenu)
	case command.PendingOrders:
		b.showPending(ctx, cb)
	case command.OrderDetails:
		b.showOrder(ctx, cb, cmd.Arg)
	case command.Deliver:
		order, err := b.orders.Get(ctx, cmd.Arg)
		if err == nil && order.Status != domain.OrderPending {
			err = orderservice.ErrOrderTerminal
		}
		if err != nil {
			respond(ctx, b.sender, cb, orderErrorText(cmd.Arg, err), backToMenu)
			return
		}
		b.sessions.Await(cb.From.ID, StepAwaitingDelivery, cmd.Arg)
		send(ctx, b.sender, cb.From.ID, fmt.Sprintf("📤 Send the card for order %s as text or a photo.\n/cancel to abort.", cmd.Arg), nil)
	case command.Complete:
		if _, err := b.orders.Complete(ctx, cmd.Arg); err != nil {
			respond(ctx, b.sender, cb, orderErrorText(cmd.Arg, err), backToMenu)
			return
		}
		respond(ctx, b.sender, cb, fmt.Sprintf("✅ Card sent for order %s.", cmd.Arg), backToMenu)
	case command.Cancel:
		order, err := b.orders.Cancel(ctx, cmd.Arg, operatorCancel)
		if err != nil {
			respond(ctx, b.sender, cb, orderErrorText(cmd.Arg, err), backToMenu)
			return
		}
		respond(ctx, b.sender, cb, fmt.Sprintf("❌ Order %s cancelled, %s USDT refunded.", cmd.Arg, order.Amount.StringFixed(2)), backToMenu)
	case command.Stats:
		b.showStats(ctx, cb)
	case command.Blacklist:
		b.showBlacklist(ctx, cb)
	case command.Cards, command.Buy, command.ConfirmBuy, command.Balance, command.History, command.MyOrders:
		respond(ctx, b.sender, cb, "This action is not available here.", backToMenu)
	}
}

func (b *OperatorBot) showPending(ctx context.Context, cb *telegram.CallbackQuery) {
	orders, err := b.orders.ListPending(ctx, orderservice.DefaultListLimit)
	if err != nil {
		respond(ctx, b.sender, cb, failureText, backToMenu)
		return
	}
	if len(orders) == 0 {
		respond(ctx, b.sender, cb, "✅ No pending orders right now.", backToMenu)
		return
	}

	keyboard := make(telegram.Keyboard, 0, len(orders)+1)
	for _, o := range orders {
		keyboard = append(keyboard, []telegram.Button{{
			Text: fmt.Sprintf("Order %s · %s %s", shortID(o.OrderID), o.CountryCode, o.CardType),
			Data: command.New(command.OrderDetails, o.OrderID).MustData(),
		}})
	}
	keyboard = append(keyboard, backToMenu[0])
	respond(ctx, b.sender, cb, fmt.Sprintf("📋 Pending orders (%d):\n\nChoose an order to see the details:", len(orders)), keyboard)
}

func (b *OperatorBot) showOrder(ctx context.Context, cb *telegram.CallbackQuery, orderID string) {
	order, err := b.orders.Get(ctx, orderID)
	if err != nil {
		respond(ctx, b.sender, cb, orderErrorText(orderID, err), backToMenu)
		return
	}

	var text strings.Builder
	fmt.Fprintf(&text, "📋 Order %s\n\n", order.OrderID)
	fmt.Fprintf(&text, "👤 User: %d\n", order.UserID)
	fmt.Fprintf(&text, "🏷️ Card: %s (%s)\n", order.CardID, order.CardType)
	fmt.Fprintf(&text, "🌍 Country: %s\n", order.CountryCode)
	fmt.Fprintf(&text, "💰 Amount: %s USDT\n", order.Amount.StringFixed(2))
	fmt.Fprintf(&text, "📊 Status: %s\n", order.Status)
	fmt.Fprintf(&text, "📅 Created: %s", order.CreatedAt.UTC().Format(time.DateTime))

	keyboard := backToMenu
	if order.Status == domain.OrderPending {
		keyboard = append(notifier.OrderKeyboard(order.OrderID), backToMenu[0])
	}
	respond(ctx, b.sender, cb, text.String(), keyboard)
}

func (b *OperatorBot) showStats(ctx context.Context, cb *telegram.CallbackQuery) {
	var (
		stats []domain.OrderStats
		users int64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = b.orders.Stats(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = b.users.Count(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("can't load statistics", zap.Error(err))
		respond(ctx, b.sender, cb, failureText, backToMenu)
		return
	}

	var text strings.Builder
	fmt.Fprintf(&text, "📊 Statistics\n\n👥 Users: %d\n", users)
	for _, s := range stats {
		fmt.Fprintf(&text, "%s %s: %d orders, %s USDT\n", statusIcon(s.Status), s.Status, s.Count, s.Total.StringFixed(2))
	}
	respond(ctx, b.sender, cb, strings.TrimRight(text.String(), "\n"), backToMenu)
}

func (b *OperatorBot) showBlacklist(ctx context.Context, cb *telegram.CallbackQuery) {
	entries, err := b.users.Blacklist(ctx)
	if err != nil {
		respond(ctx, b.sender, cb, failureText, backToMenu)
		return
	}
	if len(entries) == 0 {
		respond(ctx, b.sender, cb, "👥 Nobody is blocked.", backToMenu)
		return
	}

	var text strings.Builder
	text.WriteString("👥 Blocked users:\n")
	for _, e := range entries {
		fmt.Fprintf(&text, "\n%d  %s", e.UserID, e.AddedAt.UTC().Format("2006-01-02"))
		if e.Reason != "" {
			fmt.Fprintf(&text, "  %s", e.Reason)
		}
	}
	respond(ctx, b.sender, cb, text.String(), backToMenu)
}

func orderErrorText(orderID string, err error) string {
	switch {
	case errors.Is(err, orderservice.ErrOrderNotFound):
		return fmt.Sprintf("❌ Order %s not found.", orderID)
	case errors.Is(err, orderservice.ErrOrderTerminal):
		return fmt.Sprintf("Order %s is already completed or cancelled.", orderID)
	default:
		zap.L().Error("order action failed", zap.String("order_id", orderID), zap.Error(err))
		return failureText
	}
}
