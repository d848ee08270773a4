package email

import (
	"context"
	"fmt"

	"github.com/ArseniyHeyden/FlightBooking/internal/kafka"
)

// Sender renders ticket notifications. Actual delivery is handled by an
// external mail gateway; this sender writes the rendered notification to
// stdout.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, to string, event kafka.TicketEvent) error {
	fmt.Printf("notify %s: %s ticket %d (flight %d, seat %s, %.2f)\n",
		to, event.Type, event.TicketID, event.FlightID, event.SeatNumber, event.FinalPrice)
	return nil
}
