package domain

type PassengerType string

const (
	PassengerAdult  PassengerType = "adult"
	PassengerChild  PassengerType = "child"
	PassengerInfant PassengerType = "infant"
)

// Passenger is a booking-time value, not a persisted entity.
type Passenger struct {
	Number     int // ordinal within the booking request, starting at 1
	Name       string
	Age        int
	SeatClass  CabinClass
	SeatNumber string // empty if no explicit seat was chosen
}

// Type derives the passenger type from age: 12+ adult, 2-11 child,
// under 2 infant.
func (p Passenger) Type() PassengerType {
	switch {
	case p.Age >= 12:
		return PassengerAdult
	case p.Age >= 2:
		return PassengerChild
	default:
		return PassengerInfant
	}
}

// PriceCoefficient returns the fare share for a passenger type.
func (t PassengerType) PriceCoefficient() float64 {
	switch t {
	case PassengerChild:
		return 0.75
	case PassengerInfant:
		return 0.1
	default:
		return 1.0
	}
}
