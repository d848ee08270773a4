// Command seed loads a demo flight catalog and generates the seat map for
// every flight. With -occupy it also pre-occupies roughly 30% of the seats
// to simulate partial load; never use that flag against a real database.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/ArseniyHeyden/FlightBooking/config"
	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/ArseniyHeyden/FlightBooking/internal/repository"
	"github.com/ArseniyHeyden/FlightBooking/internal/seatgen"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	occupy := flag.Bool("occupy", false, "pre-occupy ~30% of seats (demo data only)")
	flag.Parse()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	seatRepo := repository.NewSeatRepository(pool)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, f := range demoFlights() {
		var flightID int64
		err := pool.QueryRow(ctx, `INSERT INTO flights (from_city, to_city, from_airport, to_airport, airline, base_price, duration_minutes, has_transfer, transfer_city, transfer_duration, is_hot_deal, hot_deal_discount, departure_time, arrival_time, includes_baggage)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`,
			f.FromCity, f.ToCity, f.FromAirport, f.ToAirport, f.Airline, f.BasePrice, f.DurationMinutes, f.HasTransfer, f.TransferCity, f.TransferDuration, f.IsHotDeal, f.HotDealDiscount, f.DepartureTime, f.ArrivalTime, f.IncludesBaggage).
			Scan(&flightID)
		if err != nil {
			log.Fatalf("insert flight %s -> %s: %v", f.FromCity, f.ToCity, err)
		}

		seats := seatgen.Generate(flightID)
		if *occupy {
			seatgen.SeedDemoOccupancy(seats, rng, 0.3)
		}
		if err := seatRepo.InsertAll(ctx, seats); err != nil {
			log.Fatalf("insert seats for flight %d: %v", flightID, err)
		}
		log.Printf("seeded flight %d (%s -> %s) with %d seats", flightID, f.FromCity, f.ToCity, len(seats))
	}
}

func demoFlights() []domain.Flight {
	return []domain.Flight{
		{FromCity: "Moscow", ToCity: "Saint Petersburg", FromAirport: "SVO", ToAirport: "LED", Airline: "Aeroflot", BasePrice: 3500, DurationMinutes: 90, DepartureTime: "08:30", ArrivalTime: "10:00", IncludesBaggage: true},
		{FromCity: "Moscow", ToCity: "Sochi", FromAirport: "VKO", ToAirport: "AER", Airline: "Pobeda", BasePrice: 5200, DurationMinutes: 150, DepartureTime: "11:15", ArrivalTime: "13:45", IsHotDeal: true, HotDealDiscount: 25},
		{FromCity: "Saint Petersburg", ToCity: "Kazan", FromAirport: "LED", ToAirport: "KZN", Airline: "S7", BasePrice: 4100, DurationMinutes: 135, DepartureTime: "14:00", ArrivalTime: "16:15", IncludesBaggage: true},
		{FromCity: "Moscow", ToCity: "Vladivostok", FromAirport: "SVO", ToAirport: "VVO", Airline: "Aeroflot", BasePrice: 18500, DurationMinutes: 600, HasTransfer: true, TransferCity: "Novosibirsk", TransferDuration: 90, DepartureTime: "21:40", ArrivalTime: "12:40", IncludesBaggage: true},
		{FromCity: "Kazan", ToCity: "Sochi", FromAirport: "KZN", ToAirport: "AER", Airline: "UTair", BasePrice: 6300, DurationMinutes: 180, DepartureTime: "07:05", ArrivalTime: "10:05", IsHotDeal: true, HotDealDiscount: 15},
	}
}
