package domain

import "time"

type TicketStatus string

const (
	TicketStatusBooked    TicketStatus = "BOOKED"
	TicketStatusPaid      TicketStatus = "PAID"
	TicketStatusCancelled TicketStatus = "CANCELLED"
	TicketStatusCompleted TicketStatus = "COMPLETED"
)

type Ticket struct {
	ID                int64
	UserID            int64
	FlightID          int64
	Reference         string // groups the tickets of one booking request
	DepartureDate     string // YYYY-MM-DD
	ReturnDate        string // empty for one-way
	SeatNumber        string
	PassengerName     string
	PassengerDocument string
	FinalPrice        float64 // fixed at booking time, never recomputed
	IsPaid            bool
	PaymentDate       *time.Time
	BookingDate       time.Time
	Status            TicketStatus
}
