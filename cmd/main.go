package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/raamdecor/backoffice/internal/app"
	"github.com/raamdecor/backoffice/internal/config"
	"github.com/raamdecor/backoffice/internal/entities"
	"github.com/raamdecor/backoffice/internal/handler"
	"github.com/raamdecor/backoffice/internal/notify"
	"github.com/raamdecor/backoffice/internal/postgres"
	"github.com/raamdecor/backoffice/internal/repo"
	"github.com/raamdecor/backoffice/internal/service"
	"github.com/raamdecor/backoffice/pkg/cache"
	"github.com/raamdecor/backoffice/pkg/tokenstore"
	"github.com/raamdecor/backoffice/pkg/trm"

	_ "github.com/raamdecor/backoffice/docs"
	"github.com/joho/godotenv"
)

// @title           Raamdecor Backoffice API
// @version         1.0
// @description     Order lifecycle and notification back office
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	orderRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)

	statusCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
	sessions := tokenstore.New(logger, false)
	csrf := tokenstore.New(logger, true)

	dispatcher := notify.NewDispatcher(
		logger,
		orderRepo,
		notify.NewMailgunChannel(conf.Notify),
		notify.NewWhatsappStub(logger),
		conf.Notify.SendTimeout,
	)

	orderService := service.NewOrderService(logger, txManager, orderRepo, dispatcher, statusCache, entities.AllowAllPolicy{})

	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, orderService)
	httpHandler := handler.NewHTTPHandler(logger, orderService, sessions, csrf, conf.Auth)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(statusCache, sessions, csrf)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
