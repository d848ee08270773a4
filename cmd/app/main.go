package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArseniyHeyden/FlightBooking/config"
	"github.com/ArseniyHeyden/FlightBooking/internal/bootstrap"
	"github.com/ArseniyHeyden/FlightBooking/internal/cache"
	"github.com/ArseniyHeyden/FlightBooking/internal/kafka"
	"github.com/ArseniyHeyden/FlightBooking/internal/repository"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/booking"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/flights"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/inventory"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/loyalty"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.SearchCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)

	seatInventory := inventory.NewSeatInventory(seatRepo, redisCache, time.Duration(cfg.Booking.SeatLockTTLSeconds)*time.Second)
	ledger := loyalty.NewLedger(userRepo, ticketRepo)
	flightService := flights.NewFlightService(flightRepo, userRepo, historyRepo, favoriteRepo, redisCache)
	userService := users.NewUserService(userRepo)
	bookingService := booking.NewBookingService(
		userRepo,
		flightRepo,
		ticketRepo,
		seatInventory,
		ledger,
		producer,
		cfg.Kafka.TicketEventsTopic,
		cfg.Booking.RetentionDays,
	)

	if err := bootstrap.Run(ctx, cfg, flightService, seatInventory, bookingService, userService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
