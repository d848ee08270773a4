package domain

import "fmt"

type CabinClass string

const (
	CabinEconomy  CabinClass = "economy"
	CabinComfort  CabinClass = "comfort"
	CabinBusiness CabinClass = "business"
)

// ParseCabinClass validates a cabin class coming from the API boundary.
func ParseCabinClass(s string) (CabinClass, error) {
	switch CabinClass(s) {
	case CabinEconomy, CabinComfort, CabinBusiness:
		return CabinClass(s), nil
	}
	return "", fmt.Errorf("unknown cabin class %q", s)
}

type Seat struct {
	ID            int64
	FlightID      int64
	SeatNumber    string // row followed by position, e.g. "12A"
	Class         CabinClass
	RowNumber     int
	Position      string // A-F
	Occupied      bool
	PriceModifier float64 // >= 1.0
}

// CabinForRow maps a row of the standard 25-row cabin to its class:
// rows 1-5 business, 6-10 comfort, 11-25 economy.
func CabinForRow(row int) CabinClass {
	switch {
	case row <= 5:
		return CabinBusiness
	case row <= 10:
		return CabinComfort
	default:
		return CabinEconomy
	}
}

func SeatNumber(row int, position string) string {
	return fmt.Sprintf("%d%s", row, position)
}
