package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/kursadbilgin/notify-api/internal/config"
	"github.com/kursadbilgin/notify-api/internal/demo"
	"github.com/kursadbilgin/notify-api/internal/domain"
	"github.com/kursadbilgin/notify-api/internal/handler"
	"github.com/kursadbilgin/notify-api/internal/infra/postgresql"
	"github.com/kursadbilgin/notify-api/internal/infra/postgresql/migrations"
	"github.com/kursadbilgin/notify-api/internal/observability"
	"github.com/kursadbilgin/notify-api/internal/provider"
	"github.com/kursadbilgin/notify-api/internal/repository"
	"github.com/kursadbilgin/notify-api/internal/service"
	"github.com/kursadbilgin/notify-api/internal/transport"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type stores struct {
	email repository.LogStore[domain.EmailNotification]
	sms   repository.LogStore[domain.SMSNotification]
	inApp repository.LogStore[domain.InAppNotification]
	sqlDB *sql.DB
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	logger, err := observability.NewLogger(observability.LoggerOptions{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		Version:     cfg.Version,
		Console:     cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatal("failed to initialize logger: ", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("notify-api stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	st, err := openStores(cfg, logger)
	if err != nil {
		return err
	}
	if st.sqlDB != nil {
		defer st.sqlDB.Close()
	}

	metrics := observability.NewMetrics()
	breakerCfg := provider.BreakerConfig{
		FailureThreshold: uint32(cfg.BreakerFailureThreshold),
		OpenTimeout:      cfg.BreakerOpenTimeout(),
	}

	emailSvc, err := service.NewEmailService(st.email, buildMailer(cfg, breakerCfg, logger), demo.Emails(cfg.Demo()), logger)
	if err != nil {
		return err
	}
	emailSvc.SetMetrics(metrics)

	smsSvc, err := service.NewSMSService(st.sms, buildGateway(cfg, breakerCfg, logger), cfg.TwilioPhoneNumber, demo.SMS(cfg.Demo()), logger)
	if err != nil {
		return err
	}
	smsSvc.SetMetrics(metrics)

	inAppSvc, err := service.NewInAppService(st.inApp, demo.InApp(cfg.Demo()), logger)
	if err != nil {
		return err
	}
	inAppSvc.SetMetrics(metrics)

	app := fiber.New(fiber.Config{
		AppName:               "notify-api",
		ErrorHandler:          transport.ErrorHandler(logger),
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(transport.RequestContext())
	app.Use(cors.New(transport.CORSConfig(cfg.CORSOrigins())))
	app.Use(metrics.HTTPMiddleware())

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	var pinger handler.Pinger
	if st.sqlDB != nil {
		pinger = st.sqlDB
	}
	handler.RegisterHealthRoutes(app, handler.ServiceInfo{
		Environment: cfg.Environment,
		Version:     cfg.Version,
		FrontendURL: cfg.FrontendURL,
		DemoMode:    cfg.Demo(),
	}, pinger)

	if err := handler.RegisterEmailRoutes(app, emailSvc); err != nil {
		return err
	}
	if err := handler.RegisterSMSRoutes(app, smsSvc); err != nil {
		return err
	}
	if err := handler.RegisterInAppRoutes(app, inAppSvc); err != nil {
		return err
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + strconv.Itoa(cfg.Port)
		logger.Info("notify-api listening",
			zap.String("addr", addr),
			zap.String("store", cfg.StoreBackend),
			zap.Bool("demoMode", cfg.Demo()),
		)
		if err := app.Listen(addr); err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down http server")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("notify-api stopped")
	return nil
}

func openStores(cfg *config.Config, logger *zap.Logger) (*stores, error) {
	if cfg.StoreBackend != config.StoreBackendPostgres {
		logger.Info("using in-memory notification store; records are lost on restart")
		return &stores{
			email: repository.NewMemoryStore[domain.EmailNotification](),
			sms:   repository.NewMemoryStore[domain.SMSNotification](),
			inApp: repository.NewMemoryStore[domain.InAppNotification](),
		}, nil
	}

	db, err := postgresql.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("postgres initialization failed: %w", err)
	}
	if err := migrations.Migrate(db); err != nil {
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres underlying db init failed: %w", err)
	}

	return &stores{
		email: repository.NewGormEmailStore(db),
		sms:   repository.NewGormSMSStore(db),
		inApp: repository.NewGormInAppStore(db),
		sqlDB: sqlDB,
	}, nil
}

// buildMailer returns nil when the selected provider has no credentials.
func buildMailer(cfg *config.Config, breakerCfg provider.BreakerConfig, logger *zap.Logger) provider.Mailer {
	var (
		mailer provider.Mailer
		err    error
	)

	switch cfg.MailProvider {
	case config.MailProviderPostmark:
		var pm *provider.PostmarkMailer
		pm, err = provider.NewPostmarkMailer(provider.PostmarkConfig{
			ServerToken:  cfg.PostmarkServerToken,
			AccountToken: cfg.PostmarkAccountToken,
			From:         cfg.MailFrom,
		})
		if err == nil {
			mailer = pm
		}
	default:
		var sm *provider.SMTPMailer
		sm, err = provider.NewSMTPMailer(provider.SMTPConfig{
			Host:     cfg.MailServer,
			Port:     cfg.MailPort,
			Username: cfg.MailUsername,
			Password: cfg.MailPassword,
			From:     cfg.MailFrom,
			StartTLS: cfg.MailStartTLS,
		})
		if err == nil {
			mailer = sm
		}
	}

	if err != nil {
		if errors.Is(err, provider.ErrNotConfigured) {
			logger.Warn("mailer not configured; email records will be marked unsent", zap.String("provider", cfg.MailProvider))
		} else {
			logger.Error("mailer configuration invalid; email delivery disabled", zap.String("provider", cfg.MailProvider), zap.Error(err))
		}
		return nil
	}

	return provider.NewBreakerMailer(mailer, breakerCfg, logger)
}

// buildGateway returns nil when Twilio credentials are incomplete.
func buildGateway(cfg *config.Config, breakerCfg provider.BreakerConfig, logger *zap.Logger) provider.SMSGateway {
	gateway, err := provider.NewTwilioGateway(provider.TwilioConfig{
		AccountSID:  cfg.TwilioAccountSID,
		AuthToken:   cfg.TwilioAuthToken,
		PhoneNumber: cfg.TwilioPhoneNumber,
		BaseURL:     cfg.TwilioBaseURL,
	})
	if err != nil {
		if errors.Is(err, provider.ErrNotConfigured) {
			logger.Warn("sms gateway not configured; messages will be recorded without delivery")
		} else {
			logger.Error("sms gateway configuration invalid; sms delivery disabled", zap.Error(err))
		}
		return nil
	}

	return provider.NewBreakerGateway(gateway, breakerCfg, logger)
}
