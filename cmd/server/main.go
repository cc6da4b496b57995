package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/honeynil/course-purchase-service/internal/api"
	"github.com/honeynil/course-purchase-service/internal/config"
	"github.com/honeynil/course-purchase-service/internal/handler"
	"github.com/honeynil/course-purchase-service/internal/infrastructure/auth"
	"github.com/honeynil/course-purchase-service/internal/infrastructure/gateway"
	"github.com/honeynil/course-purchase-service/internal/infrastructure/kafka"
	"github.com/honeynil/course-purchase-service/internal/infrastructure/redis"
	"github.com/honeynil/course-purchase-service/internal/observability"
	core "github.com/honeynil/course-purchase-service/internal/repository/postgres"
	service "github.com/honeynil/course-purchase-service/internal/services"
	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем логи, метрики, трейсы
	shutdownTracing, metricsHandler := observability.Setup(ctx, cfg)
	defer shutdownTracing(context.Background())

	// Подключаемся к Postgres
	db, err := core.Open(cfg.PostgresDSN)
	if err != nil {
		fatal("failed to open Postgres", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		fatal("failed to connect to Postgres", err)
	}
	if err := core.Migrate(ctx, db); err != nil {
		fatal("failed to migrate Postgres", err)
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisAddr)
	if err != nil {
		fatal("failed to connect to Redis", err)
	}
	defer redisClient.Close()

	// Инициализируем зависимости
	purchaseRepo := core.NewPostgresPurchaseRepository(db)
	courseRepo := core.NewPostgresCourseRepository(db)
	lectureRepo := core.NewPostgresLectureRepository(db)
	userRepo := core.NewPostgresUserRepository(db)

	producer := kafka.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	retry := service.DefaultRetryConfig()
	retry.MaxAttempts = cfg.ProjectionAttempts

	projector := service.NewEnrollmentProjector(userRepo, courseRepo, lectureRepo, purchaseRepo, redisClient, cfg.StoreTimeout, retry)
	finalizer := service.NewPurchaseFinalizer(producer, cfg.PurchaseTopic, projector, service.DefaultRetryConfig(), cfg.StoreTimeout)
	gw := gateway.NewStripeGateway(cfg.WebhookSecret, cfg.WebhookTolerance)

	purchaseSvc := service.NewPurchaseService(purchaseRepo, courseRepo, redisClient, finalizer, cfg.CourseCacheTTL, cfg.StoreTimeout)
	querySvc := service.NewQueryService(purchaseRepo, courseRepo, redisClient, cfg.CourseCacheTTL, cfg.StoreTimeout)
	reconciler := service.NewWebhookReconciler(gw, purchaseRepo, finalizer, cfg.StoreTimeout)

	// Фоновые драйверы проекции
	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.PurchaseTopic, cfg.KafkaGroupID, purchaseRepo, projector)
	defer consumer.Close()
	go consumer.Consume(ctx)

	sweeper := service.NewProjectionSweeper(purchaseRepo, projector, redisClient, cfg.SweepInterval, cfg.SweepBatchSize, cfg.StoreTimeout)
	go sweeper.Run(ctx)

	// Настраиваем роутер
	jwtService := auth.NewJWTService(cfg.JWTSecret, 24*time.Hour)
	h := handler.NewHandler(purchaseSvc, querySvc, reconciler)
	router := api.SetupRouter(h, jwtService, redisClient, metricsHandler)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("starting server", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server failed", err)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
