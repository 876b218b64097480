package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/GlebRadaev/cardstore/internal/chat/command"
	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/transport/telegram"
)

type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, keyboard telegram.Keyboard) (int64, error)
	SendImage(ctx context.Context, chatID int64, image []byte, caption string) error
}

var menuKeyboard = telegram.Keyboard{{{Text: "🏠 Main menu", Data: command.New(command.Menu, "").MustData()}}}

// CustomerHandlers covers everything the storefront bot tells buyers.
func CustomerHandlers(sender Sender) map[domain.NotificationType]Handler {
	send := func(ctx context.Context, userID int64, text string) error {
		_, err := sender.SendMessage(ctx, userID, text, menuKeyboard)
		return err
	}

	return map[domain.NotificationType]Handler{
		domain.NotificationDeliverCard: typed(func(ctx context.Context, p domain.DeliverCardPayload) error {
			return send(ctx, p.UserID, fmt.Sprintf("🎁 Your card for order %s:\n\n%s", p.OrderID, p.CardDetails))
		}),
		domain.NotificationDeliverCardImage: typed(func(ctx context.Context, p domain.DeliverCardImagePayload) error {
			caption := p.Caption
			if caption == "" {
				caption = fmt.Sprintf("🎁 Your card for order %s", p.OrderID)
			}
			return sender.SendImage(ctx, p.UserID, p.Image, caption)
		}),
		domain.NotificationOrderCompleted: typed(func(ctx context.Context, p domain.OrderCompletedPayload) error {
			return send(ctx, p.UserID, "✅ "+p.Message)
		}),
		domain.NotificationOrderCancelled: typed(func(ctx context.Context, p domain.OrderCancelledPayload) error {
			text := p.Message
			if text == "" {
				text = fmt.Sprintf("Your order %s was cancelled and %s USDT returned to your balance.", p.OrderID, p.Refunded.StringFixed(2))
			}
			return send(ctx, p.UserID, "❌ "+text)
		}),
		domain.NotificationBalanceUpdated: typed(func(ctx context.Context, p domain.BalanceUpdatedPayload) error {
			text := p.Message
			if text == "" {
				text = fmt.Sprintf("Your balance was updated. Current balance: %s USDT.", p.Balance.StringFixed(2))
			}
			return send(ctx, p.UserID, "💰 "+text)
		}),
		domain.NotificationUserBlocked: typed(func(ctx context.Context, p domain.UserBlockedPayload) error {
			text := "🚫 Your access to the store has been suspended."
			if p.Reason != "" {
				text += "\nReason: " + p.Reason
			}
			_, err := sender.SendMessage(ctx, p.UserID, text, nil)
			return err
		}),
		domain.NotificationUserUnblocked: typed(func(ctx context.Context, p domain.UserUnblockedPayload) error {
			return send(ctx, p.UserID, "✅ Your access to the store has been restored.")
		}),
	}
}

// OperatorHandlers announces new orders in the operator chat.
func OperatorHandlers(sender Sender, adminID int64) map[domain.NotificationType]Handler {
	return map[domain.NotificationType]Handler{
		domain.NotificationNewOrder: typed(func(ctx context.Context, p domain.NewOrderPayload) error {
			if adminID == 0 {
				return fmt.Errorf("%w: operator chat is not configured", domain.ErrRecipientUnreachable)
			}
			_, err := sender.SendMessage(ctx, adminID, NewOrderText(p), OrderKeyboard(p.OrderID))
			return err
		}),
	}
}

func NewOrderText(p domain.NewOrderPayload) string {
	var b strings.Builder
	b.WriteString("🔔 New order!\n\n")
	fmt.Fprintf(&b, "👤 Buyer: %s (ID %d)\n", orUnknown(p.User.FirstName), p.User.ID)
	if p.User.Username != "" {
		fmt.Fprintf(&b, "📧 @%s\n", p.User.Username)
	}
	fmt.Fprintf(&b, "\n🆔 Order: %s\n", p.OrderID)
	fmt.Fprintf(&b, "🏷️ Card: %s\n", p.Card.CardType)
	fmt.Fprintf(&b, "🌍 Country: %s\n", orUnknown(p.Card.CountryName))
	fmt.Fprintf(&b, "💰 Amount: %s USDT\n", p.Card.Price.StringFixed(2))
	if !p.Timestamp.IsZero() {
		fmt.Fprintf(&b, "⏰ %s\n", p.Timestamp.UTC().Format(time.DateTime))
	}
	b.WriteString("\nPlease send the card details to the buyer.")
	return b.String()
}

func OrderKeyboard(orderID string) telegram.Keyboard {
	return telegram.Keyboard{
		{{Text: "📤 Deliver", Data: command.New(command.Deliver, orderID).MustData()}},
		{
			{Text: "✅ Sent", Data: command.New(command.Complete, orderID).MustData()},
			{Text: "❌ Cancel", Data: command.New(command.Cancel, orderID).MustData()},
		},
		{{Text: "📋 Details", Data: command.New(command.OrderDetails, orderID).MustData()}},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
