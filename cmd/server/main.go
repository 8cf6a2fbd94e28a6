package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	_ "github.com/zapcrm/whatsapp-integration/docs" // swagger docs

	"github.com/zapcrm/whatsapp-integration/internal/api"
	"github.com/zapcrm/whatsapp-integration/internal/auth"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
	"github.com/zapcrm/whatsapp-integration/internal/core/service"
	"github.com/zapcrm/whatsapp-integration/internal/infrastructure/config"
	mongodb "github.com/zapcrm/whatsapp-integration/internal/infrastructure/db/mongo"
	redisdb "github.com/zapcrm/whatsapp-integration/internal/infrastructure/db/redis"
	"github.com/zapcrm/whatsapp-integration/internal/infrastructure/http/handlers"
	"github.com/zapcrm/whatsapp-integration/internal/infrastructure/queue"
	"github.com/zapcrm/whatsapp-integration/internal/infrastructure/whatsapp"
	"github.com/zapcrm/whatsapp-integration/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// @title                       WhatsApp Integration API
// @version                     1.0
// @description                 Contacts, message history and WhatsApp Web messaging behind JWT authentication.
// @BasePath                    /api
// @schemes                     http
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "whatsapp-integration: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "whatsapp-integration",
	})
	if cfg.DevSecretInUse() {
		log.Warn().Msg("JWT_SECRET not set, signing tokens with the development secret")
	}

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	users := mongodb.NewUserRepository(db)
	contacts := mongodb.NewContactRepository(db)
	messages := mongodb.NewMessageRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, contacts, messages); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- WhatsApp session ---
	var (
		messenger ports.Messenger = whatsapp.Disabled{}
		source    whatsapp.Source = whatsapp.Disabled{}
	)
	if cfg.WhatsApp.Enabled {
		client := whatsapp.NewClient(whatsapp.Options{
			SessionDir:  cfg.WhatsApp.SessionDir,
			Headless:    cfg.WhatsApp.Headless,
			ChromePath:  cfg.WhatsApp.ChromePath,
			SendTimeout: cfg.WhatsApp.SendTimeout,
		}, log)
		if err := client.Start(ctx); err != nil {
			// The API stays up; an admin can retry through /api/whatsapp/restart.
			log.Error().Err(err).Msg("whatsapp session failed to start")
		}
		defer client.Close()
		messenger, source = client, client
	} else {
		log.Warn().Msg("whatsapp disabled, sends will fail with 502")
	}
	messenger = whatsapp.Instrument(messenger)

	// --- Services ---
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.Auth.TokenTTL)
	hasher := auth.NewPasswordHasher(bcrypt.DefaultCost, cfg.Auth.HashConcurrency)

	authOpts := []service.AuthOption{service.WithResetTokenTTL(cfg.Auth.ResetTokenTTL)}
	if cfg.WhatsApp.Enabled {
		authOpts = append(authOpts, service.WithResetNotifier(service.NewWhatsAppResetNotifier(messenger, cfg.Auth.ResetTokenTTL)))
	}
	authService := service.NewAuthService(users, hasher, tokens, log, authOpts...)
	contactService := service.NewContactService(contacts, messages, log)
	messageService := service.NewMessageService(messages, contacts, messenger, log)
	whatsappService := service.NewWhatsAppService(messenger, contacts, messages, log)
	inboundService := service.NewInboundService(contacts, messages, messenger, redisdb.NewDeduper(rdb),
		service.AutoReply{Keywords: cfg.Inbound.AutoReplyKeywords, Text: cfg.Inbound.AutoReplyText}, log)

	dispatcher := queue.NewDispatcher(cfg.Inbound.Workers, inboundService, log)
	poller := whatsapp.NewPoller(source, dispatcher, cfg.WhatsApp.PollInterval, log)

	// --- HTTP ---
	readiness := handlers.NewReadinessHandler(map[string]handlers.Check{
		"mongodb": handlers.MongoCheck(db),
		"redis":   handlers.RedisCheck(rdb),
	}, messenger)

	e := api.NewRouter(api.Deps{
		Log:              log,
		Auth:             authService,
		Contacts:         contactService,
		Messages:         messageService,
		WhatsApp:         whatsappService,
		Tokens:           tokens,
		Users:            users,
		Readiness:        readiness,
		ExposeResetToken: cfg.IsDevelopment(),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return dispatcher.Run(gctx) })
	g.Go(func() error { return poller.Run(gctx) })
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return e.Shutdown(sctx)
	})

	return g.Wait()
}
