package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/api"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/service"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/infrastructure/db/mongo"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/infrastructure/db/redis"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/infrastructure/mail"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/infrastructure/queue"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/pkg/config"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/realtime"
	"github.com/Mamatha1607/connectly-group-chat-application/pkg/logger"
)

const (
	tokenTTL        = 24 * time.Hour
	fanoutWorkers   = 4
	shutdownTimeout = 10 * time.Second
)

// @title        Connectly API
// @version      1.0
// @description  Group chat backend: accounts, rooms, messages, notifications and a realtime socket.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	userRepo := mongo.NewUserRepository(db)
	roomRepo := mongo.NewRoomRepository(db)
	messageRepo := mongo.NewMessageRepository(db)

	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		roomRepo.EnsureIndexes,
		messageRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Realtime hub ---
	hub := realtime.NewHub(log)

	// --- Services ---
	var mailer ports.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			From:     cfg.SMTP.From,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
		})
	} else {
		mailer = mail.NewLogMailer(log)
	}

	codeStore := redis.NewResetCodeStore(rdb)
	authService := service.NewAuthService(userRepo, codeStore, mailer, cfg.JWTSecret, tokenTTL, log)

	notificationService := service.NewNotificationService(userRepo, hub, log)
	dispatcher := queue.NewDispatcher(fanoutWorkers, notificationService, log)
	dispatcher.Start(ctx)

	roomService := service.NewRoomService(roomRepo, userRepo, notificationService, hub, log)
	messageService := service.NewMessageService(messageRepo, roomRepo, userRepo, hub, dispatcher, log)

	realtimeHandler := realtime.NewHandler(hub, messageService, roomRepo, log)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Mongo:         db,
		Redis:         rdb,
		JWTSecret:     cfg.JWTSecret,
		Auth:          authService,
		Rooms:         roomService,
		Messages:      messageService,
		Notifications: notificationService,
		Users:         userRepo,
		Realtime:      realtimeHandler,
		Log:           log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
