package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/managio-dev/managio/config"
	"github.com/managio-dev/managio/db"
	"github.com/managio-dev/managio/internal/auth"
	"github.com/managio-dev/managio/internal/cache"
	"github.com/managio-dev/managio/internal/events"
	"github.com/managio-dev/managio/internal/handlers"
	"github.com/managio-dev/managio/internal/notifications"
	"github.com/managio-dev/managio/internal/router"
	"github.com/managio-dev/managio/internal/scheduler"
	"github.com/managio-dev/managio/internal/timer"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, reading configuration from environment")
	}

	v, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config file")
	}

	cfg, err := config.ParseConfig(v)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to parse config")
	}

	if err := auth.InitJWTSecret(); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize JWT secret")
	}

	if err := db.ConnectDatabase(cfg.Database.DSN); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	if err := db.MigrateDatabase(); err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to redis")
	}

	dataCache := cache.New(redisClient, cfg.App.CacheTTL)

	tracker := timer.NewTracker(
		timer.NewRedisStore(redisClient, cfg.App.TimerStoreTTL),
		timer.NewGormRecorder(db.DB),
	)

	if err := tracker.Recover(ctx); err != nil {
		logrus.WithError(err).Error("Failed to recover timer sessions")
	}

	bus, err := events.NewRabbitBus(events.RabbitConfig{
		URL:       cfg.RabbitMQ.URL,
		QueueName: cfg.RabbitMQ.QueueName,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to RabbitMQ")
	}

	dispatcher := notifications.NewDispatcher(db.DB, bus, dataCache, handlers.WSHub)

	go func() {
		if err := dispatcher.Run(ctx); err != nil {
			logrus.WithError(err).Error("Notification dispatcher stopped")
		}
	}()

	handlers.Configure(bus, dataCache, tracker)

	deadlines := scheduler.NewScheduler(bus, cfg.App.SweepInterval)
	deadlines.Start()

	r := router.NewRouter()

	go func() {
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	logrus.WithField("port", cfg.Server.Port).Info("Managio started")

	<-ctx.Done()

	logrus.Info("Shutting down")

	deadlines.Stop()
	tracker.Shutdown()

	if err := bus.Close(); err != nil {
		logrus.WithError(err).Warn("Failed to close event bus")
	}

	if err := redisClient.Close(); err != nil {
		logrus.WithError(err).Warn("Failed to close redis client")
	}
}
