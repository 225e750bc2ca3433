package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/brewcrew/cafe-backend/internal/config"
	"github.com/brewcrew/cafe-backend/internal/db"
	"github.com/brewcrew/cafe-backend/internal/es"
	"github.com/brewcrew/cafe-backend/internal/handlers"
	"github.com/brewcrew/cafe-backend/internal/httpserver"
	"github.com/brewcrew/cafe-backend/internal/logging"
	authmw "github.com/brewcrew/cafe-backend/internal/middleware/auth"
	loggingmw "github.com/brewcrew/cafe-backend/internal/middleware/logging"
	"github.com/brewcrew/cafe-backend/internal/mykafka"
	"github.com/brewcrew/cafe-backend/internal/repo"
	"github.com/brewcrew/cafe-backend/internal/service"
)

const itemsIndex = "items"

func main() {
	configuration, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(configuration.DatabaseURL, "DATABASE_URL")
	config.MustNonEmpty(configuration.JWTSecret, "JWT_SECRET")

	logger := logging.New(configuration.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()

	database, err := db.Open(ctx, configuration.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	jwtSecret := []byte(configuration.JWTSecret)

	var producer *mykafka.Producer
	if configuration.KafkaAddress != "" {
		producer = mykafka.NewProducer([]string{configuration.KafkaAddress})
	} else {
		logger.Warn("KAFKA_ADDRESS not set, domain events disabled")
	}

	gormRepo := &repo.GormRepo{DB: database}

	menuSvc := &service.MenuService{Repo: gormRepo}
	userSvc := &service.UserService{Repo: gormRepo, JWTSecret: jwtSecret}
	orderSvc := &service.OrderService{Repo: gormRepo}
	favouriteSvc := &service.FavouriteService{Repo: gormRepo}

	deps := httpserver.Deps{
		MenuHandler:      &handlers.MenuHandler{Svc: menuSvc, Producer: producer},
		UserHandler:      &handlers.UserHandler{Svc: userSvc, Producer: producer},
		OrderHandler:     &handlers.OrderHandler{Svc: orderSvc, Producer: producer},
		FavouriteHandler: &handlers.FavouriteHandler{Svc: favouriteSvc},
		Auth:             authmw.New(gormRepo, jwtSecret),
	}

	if configuration.ESURL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		deps.MenuHandler.ES = esClient
		deps.MenuHandler.ESIndex = itemsIndex
		deps.SearchHandler = handlers.NewSearchHandler(esClient, itemsIndex)
	} else {
		logger.Warn("ES_URL not set, menu search disabled")
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))
	e.HTTPErrorHandler = httpserver.ErrorHandler()

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.ServerPort,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
