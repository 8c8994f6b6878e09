package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"foodcourt/cmd"
	httpadapter "foodcourt/internal/adapters/in/http"
	"foodcourt/internal/adapters/in/ws"
	"foodcourt/internal/adapters/out/geo"
	"foodcourt/internal/adapters/out/kafka"
	"foodcourt/internal/adapters/out/postgres/orderrepo"
	"foodcourt/internal/adapters/out/postgres/restaurantrepo"
	"foodcourt/internal/core/application/events"
	"foodcourt/internal/jobs"
	"foodcourt/internal/pkg/auth"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config, err := cmd.ParseConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(config)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	tokens, err := auth.NewTokenManager(config.JWTSecret, config.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to configure sessions: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := ws.NewHub()
	go hub.Run(ctx)

	publisher := buildPublisher(config, hub)
	geoService := buildGeoService(config)

	root := cmd.NewCompositionRoot(config, gormDB, publisher, geoService)

	autoArchiveHandler := root.CreateAutoArchiveOrderCommandHandler()
	jobManager := jobs.NewJobManager(
		root.OrderRepository(), &autoArchiveHandler, config.OrderArchiveDelay, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	server := httpadapter.NewServer(httpadapter.ServerParams{
		CreateOrderHandler:          root.CreateCreateOrderCommandHandler(),
		AdvanceOrderHandler:         root.CreateAdvanceOrderCommandHandler(),
		AssignDriverHandler:         root.CreateAssignDriverCommandHandler(),
		UpdateDriverLocationHandler: root.CreateUpdateDriverLocationCommandHandler(),
		ArchiveOrderHandler:         root.CreateArchiveOrderCommandHandler(),
		RateOrderHandler:            root.CreateRateOrderCommandHandler(),
		GetActiveOrdersHandler:      root.CreateGetActiveOrdersQueryHandler(),
		GetOrderHistoryHandler:      root.CreateGetOrderHistoryQueryHandler(),
		GetReviewsHandler:           root.CreateGetReviewsQueryHandler(),
		GetDriverOrdersHandler:      root.CreateGetDriverOrdersQueryHandler(),
		GetCustomerOrdersHandler:    root.CreateGetCustomerOrdersQueryHandler(),
		GetFeeQuoteHandler:          root.CreateGetFeeQuoteQueryHandler(),
		RestaurantRepo:              root.RestaurantRepository(),
		Relay:                       hub,
	})

	e := echo.New()
	server.RegisterRoutes(e, tokens)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil {
			log.Infof("HTTP server stopped: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP shutdown: %v", err)
	}
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", config.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("open connection: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	gormDB, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &restaurantrepo.RestaurantDTO{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return gormDB, nil
}

// buildPublisher combines the websocket relay with the optional Kafka
// producer. The relay is always on; Kafka joins only when a broker is
// configured.
func buildPublisher(config cmd.Config, hub *ws.Hub) events.Publisher {
	if config.KafkaHost == "" {
		return events.NewFanOut(hub)
	}

	producer, err := kafka.NewOrderChangedProducer(
		strings.Split(config.KafkaHost, ","), config.KafkaOrderChangedTopic)
	if err != nil {
		log.Warnf("Kafka disabled: %v", err)
		return events.NewFanOut(hub)
	}

	return events.NewFanOut(hub, producer)
}

func buildGeoService(config cmd.Config) *geo.Client {
	opts := []geo.Option{}
	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		opts = append(opts, geo.WithCache(geo.NewRedisGeocodeCache(client)))
	}

	return geo.NewClient(config.GeoServiceURL, opts...)
}
