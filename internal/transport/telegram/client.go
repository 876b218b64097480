package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GlebRadaev/cardstore/internal/config"
	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/metrics"
	"github.com/GlebRadaev/cardstore/pkg/clients"
)

var (
	// ErrTooManyRequests is returned on 429; the call may be repeated later.
	ErrTooManyRequests = errors.New("bot api rate limit")
	// ErrUnavailable covers 5xx answers and bodies that are not Bot API envelopes.
	ErrUnavailable = errors.New("bot api unavailable")
)

const breakerFailures = 5

var allowedUpdates = []string{"message", "callback_query"}

type Client struct {
	apiURL  string
	fileURL string
	http    clients.HTTPClientI
	breaker *gobreaker.CircuitBreaker[[]byte]
	limiter *rate.Limiter
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	limit, burst := rate.Limit(cfg.SendRate), int(cfg.SendRate)
	if cfg.SendRate <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}

	return &Client{
		apiURL:  cfg.BotAPIURL + "/bot" + cfg.BotToken,
		fileURL: cfg.BotAPIURL + "/file/bot" + cfg.BotToken,
		http:    client,
		limiter: rate.NewLimiter(limit, burst),
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:    "telegram-" + cfg.Process,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerFailures
			},
			// A refused recipient is an answer, not an outage.
			IsSuccessful: func(err error) bool {
				return err == nil ||
					errors.Is(err, domain.ErrRecipientUnreachable) ||
					errors.Is(err, domain.ErrDeliveryRejected)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				zap.L().Warn("bot api circuit breaker state changed",
					zap.String("name", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		}),
	}
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, keyboard Keyboard) (int64, error) {
	result, err := c.callJSON(ctx, "sendMessage", sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup(keyboard),
	})
	if err != nil {
		return 0, err
	}

	var msg Message
	if err := json.Unmarshal(result, &msg); err != nil {
		return 0, fmt.Errorf("%w: decode sendMessage result: %v", ErrUnavailable, err)
	}
	return msg.MessageID, nil
}

// EditMessage replaces the text and keyboard of a sent message. Editing to
// identical content is not an error.
func (c *Client) EditMessage(ctx context.Context, chatID, messageID int64, text string, keyboard Keyboard) error {
	_, err := c.callJSON(ctx, "editMessageText", editMessageRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ReplyMarkup: markup(keyboard),
	})
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}

func (c *Client) SendImage(ctx context.Context, chatID int64, image []byte, caption string) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return err
	}
	if caption != "" {
		if err := w.WriteField("caption", caption); err != nil {
			return err
		}
	}
	part, err := w.CreateFormFile("photo", "card.jpg")
	if err != nil {
		return err
	}
	if _, err := part.Write(image); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	_, err = c.call(ctx, "sendPhoto", w.FormDataContentType(), body.Bytes())
	return err
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string) error {
	_, err := c.callJSON(ctx, "answerCallbackQuery", answerCallbackRequest{
		CallbackQueryID: callbackID,
		Text:            text,
	})
	return err
}

// DownloadFile fetches a file the bot received, e.g. an operator photo.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	result, err := c.callJSON(ctx, "getFile", getFileRequest{FileID: fileID})
	if err != nil {
		return nil, err
	}

	var f file
	if err := json.Unmarshal(result, &f); err != nil || f.FilePath == "" {
		return nil, fmt.Errorf("%w: getFile returned no path", ErrUnavailable)
	}

	statusCode, body, _, err := c.http.Get(ctx, c.fileURL+"/"+f.FilePath, nil)
	if err != nil {
		return nil, err
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: file download status %d", ErrUnavailable, statusCode)
	}
	return body, nil
}

// GetUpdates long-polls for updates with ids of at least offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	result, err := c.callJSON(ctx, "getUpdates", getUpdatesRequest{
		Offset:         offset,
		Timeout:        int(timeout.Seconds()),
		AllowedUpdates: allowedUpdates,
	})
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("%w: decode getUpdates result: %v", ErrUnavailable, err)
	}
	return updates, nil
}

func (c *Client) SetWebhook(ctx context.Context, url, secret string) error {
	_, err := c.callJSON(ctx, "setWebhook", setWebhookRequest{
		URL:            url,
		SecretToken:    secret,
		AllowedUpdates: allowedUpdates,
	})
	return err
}

func (c *Client) callJSON(ctx context.Context, method string, params any) (json.RawMessage, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", method, err)
	}
	return c.call(ctx, method, "application/json", body)
}

func (c *Client) call(ctx context.Context, method, contentType string, body []byte) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := c.breaker.Execute(func() ([]byte, error) {
		headers := http.Header{}
		headers.Set("Content-Type", contentType)

		statusCode, respBody, _, err := c.http.Post(ctx, c.apiURL+"/"+method, headers, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		return decode(statusCode, respBody)
	})
	if err != nil {
		metrics.ChatRequests.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	metrics.ChatRequests.WithLabelValues(method, "ok").Inc()
	return result, nil
}

func decode(statusCode int, body []byte) ([]byte, error) {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, statusCode)
	}
	if resp.OK {
		return resp.Result, nil
	}

	code := resp.ErrorCode
	if code == 0 {
		code = statusCode
	}
	desc := resp.Description

	switch {
	case code == http.StatusForbidden, unreachable(desc):
		return nil, fmt.Errorf("%w: %s", domain.ErrRecipientUnreachable, desc)
	case code == http.StatusTooManyRequests:
		retryAfter := 0
		if resp.Parameters != nil {
			retryAfter = resp.Parameters.RetryAfter
		}
		return nil, fmt.Errorf("%w: retry after %ds", ErrTooManyRequests, retryAfter)
	case code >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: %d %s", ErrUnavailable, code, desc)
	default:
		return nil, fmt.Errorf("%w: %d %s", domain.ErrDeliveryRejected, code, desc)
	}
}

func unreachable(desc string) bool {
	desc = strings.ToLower(desc)
	return strings.Contains(desc, "chat not found") ||
		strings.Contains(desc, "user is deactivated") ||
		strings.Contains(desc, "bot was blocked")
}
