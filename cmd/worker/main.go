package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArseniyHeyden/FlightBooking/config"
	"github.com/ArseniyHeyden/FlightBooking/internal/cache"
	"github.com/ArseniyHeyden/FlightBooking/internal/email"
	"github.com/ArseniyHeyden/FlightBooking/internal/kafka"
	"github.com/ArseniyHeyden/FlightBooking/internal/repository"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/booking"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/inventory"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/loyalty"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	seatInventory := inventory.NewSeatInventory(seatRepo, redisCache, time.Duration(cfg.Booking.SeatLockTTLSeconds)*time.Second)
	ledger := loyalty.NewLedger(userRepo, ticketRepo)
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

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.TicketEventsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, event kafka.TicketEvent) error {
			user, err := userRepo.GetByID(ctx, event.UserID)
			if err != nil {
				log.Printf("notify ticket %d: lookup user %d: %v", event.TicketID, event.UserID, err)
				return nil
			}
			return emailSender.Send(ctx, user.Email, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	cleanupTicker := time.NewTicker(time.Duration(cfg.Worker.CleanupSweepMinutes) * time.Minute)
	defer cleanupTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-cleanupTicker.C:
			deleted, err := bookingService.CleanupExpiredBookings(ctx)
			if err != nil {
				log.Printf("cleanup expired bookings error: %v", err)
				continue
			}
			if deleted > 0 {
				log.Printf("deleted %d expired unpaid tickets", deleted)
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
