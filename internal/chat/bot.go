// Package chat turns Bot API updates into storefront and operator actions.
package chat

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/GlebRadaev/cardstore/internal/transport/telegram"
)

const (
	secretHeader    = "X-Telegram-Bot-Api-Secret-Token"
	longPollTimeout = 10 * time.Second
)

type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, keyboard telegram.Keyboard) (int64, error)
	EditMessage(ctx context.Context, chatID, messageID int64, text string, keyboard telegram.Keyboard) error
	SendImage(ctx context.Context, chatID int64, image []byte, caption string) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update telegram.Update)
}

type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]telegram.Update, error)
}

// Webhook accepts updates pushed by the Bot API.
type Webhook struct {
	secret  string
	handler UpdateHandler
}

func NewWebhook(secret string, handler UpdateHandler) *Webhook {
	return &Webhook{secret: secret, handler: handler}
}

func (wh *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if wh.secret != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(secretHeader)), []byte(wh.secret)) != 1 {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		zap.L().Warn("malformed webhook update", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Anything but 2xx makes the Bot API redeliver the update.
	wh.handler.HandleUpdate(r.Context(), update)
	w.WriteHeader(http.StatusOK)
}

// Poller long-polls the Bot API when no webhook is configured.
type Poller struct {
	source  UpdateSource
	handler UpdateHandler
	backoff time.Duration
}

func NewPoller(source UpdateSource, handler UpdateHandler, backoff time.Duration) *Poller {
	return &Poller{source: source, handler: handler, backoff: backoff}
}

func (p *Poller) Run(ctx context.Context) {
	zap.L().Info("bot update polling started")
	var offset int64

	for {
		updates, err := p.source.GetUpdates(ctx, offset, longPollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				zap.L().Info("bot update polling stopped")
				return
			}
			zap.L().Error("can't fetch bot updates", zap.Error(err))
			select {
			case <-ctx.Done():
				zap.L().Info("bot update polling stopped")
				return
			case <-time.After(p.backoff):
			}
			continue
		}

		for _, update := range updates {
			p.handler.HandleUpdate(ctx, update)
			offset = update.UpdateID + 1
		}
		if ctx.Err() != nil {
			zap.L().Info("bot update polling stopped")
			return
		}
	}
}

// respond edits the message a button belongs to, or sends a new one when
// the callback carries no message.
func respond(ctx context.Context, sender Sender, cb *telegram.CallbackQuery, text string, keyboard telegram.Keyboard) {
	var err error
	if cb.Message != nil {
		err = sender.EditMessage(ctx, cb.Message.Chat.ID, cb.Message.MessageID, text, keyboard)
	} else {
		_, err = sender.SendMessage(ctx, cb.From.ID, text, keyboard)
	}
	if err != nil {
		zap.L().Error("can't answer button press", zap.Int64("user_id", cb.From.ID), zap.Error(err))
	}
}

func send(ctx context.Context, sender Sender, chatID int64, text string, keyboard telegram.Keyboard) {
	if _, err := sender.SendMessage(ctx, chatID, text, keyboard); err != nil {
		zap.L().Error("can't send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func answer(ctx context.Context, sender Sender, cb *telegram.CallbackQuery, text string) {
	if err := sender.AnswerCallback(ctx, cb.ID, text); err != nil {
		zap.L().Warn("can't answer callback", zap.String("callback_id", cb.ID), zap.Error(err))
	}
}
