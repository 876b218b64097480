package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/cardstore/internal/chat"
	"github.com/GlebRadaev/cardstore/internal/config"
	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/handlers"
	"github.com/GlebRadaev/cardstore/internal/notifier"
	"github.com/GlebRadaev/cardstore/internal/pg"
	"github.com/GlebRadaev/cardstore/internal/repo"
	"github.com/GlebRadaev/cardstore/internal/service"
	"github.com/GlebRadaev/cardstore/internal/transport/telegram"
	"github.com/GlebRadaev/cardstore/pkg/auth"
	"github.com/GlebRadaev/cardstore/pkg/clients"
	"github.com/GlebRadaev/cardstore/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

// Application runs one of the two processes: the storefront serves buyers,
// the operator serves the admin. They share only the database.
type Application struct {
	process string

	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories
	bot  *telegram.Client
	ext  *notifier.Service

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New(process string) *Application {
	return &Application{
		process: process,
		errCh:   make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New(a.process)

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(a.repo, txManager)
	a.api = handlers.New(cfg, a.srv, auth.NewJWTService(cfg.JWTSecret))

	if cfg.BotToken == "" {
		zap.L().Warn("BOT_TOKEN is not set, chat bot and notification delivery are disabled")
	} else {
		a.bot = telegram.New(cfg, clients.NewHTTPClient())
		audience, deliveries, updates := a.chatComponents()
		a.ext = notifier.New(cfg, audience, a.srv.QueueService, notifier.NewDispatcher(deliveries))

		if err := a.startUpdates(ctx, updates); err != nil {
			return fmt.Errorf("can't start bot updates: %w", err)
		}
		a.startNotifier(ctx)
	}

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully", zap.String("process", a.process))
	return nil
}

// chatComponents picks the notification audience, delivery handlers and bot
// for the running process.
func (a *Application) chatComponents() (domain.Audience, map[domain.NotificationType]notifier.Handler, chat.UpdateHandler) {
	if a.cfg.Process == config.ProcessOperator {
		if a.cfg.AdminUserID == 0 {
			zap.L().Warn("ADMIN_USER_ID is not set, new order announcements will be dropped")
		}
		bot := chat.NewOperatorBot(a.bot, a.srv.OrderService, a.srv.InventoryService, a.srv.UserService,
			chat.NewSessions(a.cfg.SessionTTL), a.cfg.AdminUserID)
		return domain.AudienceOperator, notifier.OperatorHandlers(a.bot, a.cfg.AdminUserID), bot
	}

	bot := chat.NewCustomerBot(a.bot, a.srv.UserService, a.srv.LedgerService, a.srv.InventoryService, a.srv.OrderService)
	return domain.AudienceCustomer, notifier.CustomerHandlers(a.bot), bot
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

// startUpdates registers the webhook when WEBHOOK_URL is set and long-polls
// the Bot API otherwise.
func (a *Application) startUpdates(ctx context.Context, handler chat.UpdateHandler) error {
	if a.cfg.WebhookURL != "" {
		if err := a.bot.SetWebhook(ctx, a.cfg.WebhookURL, a.cfg.WebhookSecret); err != nil {
			return err
		}
		a.api.Webhook = chat.NewWebhook(a.cfg.WebhookSecret, handler)
		zap.L().Info("bot webhook registered", zap.String("url", a.cfg.WebhookURL))
		return nil
	}

	poller := chat.NewPoller(a.bot, handler, a.cfg.ErrorBackoff)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		poller.Run(ctx)
	}()
	return nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startNotifier(ctx context.Context) {
	a.ext.Start(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-a.ext.Done()
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
