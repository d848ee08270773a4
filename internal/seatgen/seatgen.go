package seatgen

import (
	"math/rand"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
)

const (
	rows = 25
)

var positions = []string{"A", "B", "C", "D", "E", "F"}

// Generate builds the full seat map for a flight: 25 rows of six seats,
// all free. Class and price modifier follow the cabin layout; emergency
// exit rows are 12-13, windows are A and F, aisles C and D.
func Generate(flightID int64) []domain.Seat {
	seats := make([]domain.Seat, 0, rows*len(positions))
	for row := 1; row <= rows; row++ {
		for _, pos := range positions {
			seats = append(seats, domain.Seat{
				FlightID:      flightID,
				SeatNumber:    domain.SeatNumber(row, pos),
				Class:         domain.CabinForRow(row),
				RowNumber:     row,
				Position:      pos,
				Occupied:      false,
				PriceModifier: Modifier(row, pos),
			})
		}
	}
	return seats
}

// Modifier returns the price premium for a seat position.
func Modifier(row int, position string) float64 {
	window := position == "A" || position == "F"
	aisle := position == "C" || position == "D"
	exitRow := row == 12 || row == 13

	switch {
	case window && exitRow:
		return 1.3
	case window:
		return 1.1
	case exitRow:
		return 1.2
	case aisle:
		return 1.05
	default:
		return 1.0
	}
}

// SeedDemoOccupancy marks roughly the given fraction of seats occupied.
// Demo tooling only; production seat maps start fully free and seats are
// occupied exclusively through reservations.
func SeedDemoOccupancy(seats []domain.Seat, rng *rand.Rand, fraction float64) {
	for i := range seats {
		if rng.Float64() < fraction {
			seats[i].Occupied = true
		}
	}
}
