package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/terraincognita07/cyclecare/internal/advisor"
	"github.com/terraincognita07/cyclecare/internal/api"
	"github.com/terraincognita07/cyclecare/internal/config"
	"github.com/terraincognita07/cyclecare/internal/i18n"
	"github.com/terraincognita07/cyclecare/internal/logger"
	"github.com/terraincognita07/cyclecare/internal/security"
	"github.com/terraincognita07/cyclecare/internal/services"
)

const shutdownTimeout = 10 * time.Second

type application struct {
	app      *fiber.App
	advisory *services.AdvisoryService
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn("close store failed", "error", err)
		}
	}()

	application, err := buildApplication(ctx, cfg, backend.Store, log)
	if err != nil {
		return err
	}
	defer application.advisory.Close()

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		application.advisory.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := application.app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	log.Info("cyclecare listening",
		"addr", "0.0.0.0:"+cfg.Port,
		"store", backend.Name,
		"tz", cfg.Location().String(),
		"access_lock", cfg.AccessLockEnabled(),
	)
	if err := application.app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func buildApplication(ctx context.Context, cfg *config.Config, kv services.KeyValueStore, log *logger.Logger) (*application, error) {
	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	gateway, err := newAdvisoryGateway(ctx, cfg, i18nManager, log)
	if err != nil {
		return nil, err
	}
	advisory := services.NewAdvisoryService(gateway, cfg.Advisor.Timeout, log.With("component", "advisory"))

	store := services.NewCycleStore(kv, cfg.Store.Key, log.With("component", "store"))
	if err := store.Load(ctx); err != nil {
		log.Warn("load cycles failed, starting empty", "error", err)
	}
	cycles := services.NewCycleService(store, advisory, log.With("component", "cycles"))

	secretKey, err := resolveSecretKey(cfg, log)
	if err != nil {
		advisory.Close()
		return nil, err
	}

	handler, err := api.NewHandler(api.HandlerOptions{
		Cycles:       cycles,
		Advisory:     advisory,
		Articles:     services.NewArticleService(i18nManager),
		I18n:         i18nManager,
		Logger:       log.With("component", "api"),
		Location:     cfg.Location(),
		SecretKey:    secretKey,
		PasscodeHash: cfg.Access.PasscodeHash,
		CookieSecure: cfg.Access.CookieSecure,
	})
	if err != nil {
		advisory.Close()
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "CycleCare",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	if history := cycles.Records(); len(history) > 0 {
		advisory.HistoryChanged(history)
	}
	return &application{app: app, advisory: advisory}, nil
}

func newAdvisoryGateway(ctx context.Context, cfg *config.Config, translator advisor.Translator, log *logger.Logger) (services.AdvisoryGateway, error) {
	if cfg.Advisor.APIKey == "" {
		log.Info("no GEMINI_API_KEY configured, using local advisory heuristics")
		return advisor.NewLocalGateway(translator, cfg.DefaultLanguage), nil
	}

	gateway, err := advisor.NewGeminiGateway(ctx, advisor.GeminiConfig{
		APIKey:   cfg.Advisor.APIKey,
		Model:    cfg.Advisor.Model,
		BaseURL:  cfg.Advisor.BaseURL,
		Timeout:  cfg.Advisor.Timeout,
		Language: cfg.Advisor.Language,
	}, log.With("component", "gemini"))
	if err != nil {
		return nil, fmt.Errorf("advisor init failed: %w", err)
	}
	log.Info("using gemini advisory gateway", "model", gateway.Model())
	return gateway, nil
}

// resolveSecretKey falls back to a per-process key, which signs out every
// session on restart.
func resolveSecretKey(cfg *config.Config, log *logger.Logger) (string, error) {
	if cfg.Access.SecretKey != "" {
		return cfg.Access.SecretKey, nil
	}
	generated, err := security.GenerateSecretKey()
	if err != nil {
		return "", fmt.Errorf("generate secret key: %w", err)
	}
	if cfg.AccessLockEnabled() {
		log.Warn("SECRET_KEY not set, sessions will not survive a restart")
	}
	return generated, nil
}
