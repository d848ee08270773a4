package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/ArseniyHeyden/FlightBooking/internal/kafka"
	"github.com/ArseniyHeyden/FlightBooking/internal/pricing"
	"github.com/ArseniyHeyden/FlightBooking/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	BookFlight(ctx context.Context, input BookFlightInput) (*BookingResult, error)
	QuotePrice(ctx context.Context, input QuoteInput) (float64, error)
	PayTicket(ctx context.Context, ticketID, userID int64) error
	CancelTicket(ctx context.Context, ticketID, userID int64) error
	ListTickets(ctx context.Context, userID int64) ([]domain.Ticket, error)
	CleanupExpiredBookings(ctx context.Context) (int, error)
}

// Inventory is the seat store the booking flow reserves against.
type Inventory interface {
	Available(ctx context.Context, flightID int64) ([]domain.Seat, error)
	Get(ctx context.Context, flightID int64, seatNumber string) (*domain.Seat, error)
	Reserve(ctx context.Context, flightID int64, seatNumber string) (*domain.Seat, error)
	Free(ctx context.Context, flightID int64, seatNumber string) error
}

// Ledger updates loyalty statistics after a successful payment.
type Ledger interface {
	ApplyPayment(ctx context.Context, userID int64, amount float64) (domain.LoyaltyTier, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type PassengerInput struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Document   string `json:"document"`
	SeatNumber string `json:"seat_number"` // empty for an auto-assigned seat
}

type BookFlightInput struct {
	UserID        int64             `json:"user_id"`
	FlightID      int64             `json:"flight_id"`
	DepartureDate string            `json:"departure_date"`
	ReturnDate    string            `json:"return_date"`
	SeatClass     domain.CabinClass `json:"seat_class"`
	Passengers    []PassengerInput  `json:"passengers"`
}

type BookingResult struct {
	Reference  string  `json:"reference"`
	TicketIDs  []int64 `json:"ticket_ids"`
	TotalPrice float64 `json:"total_price"`
}

type QuoteInput struct {
	FlightID      int64             `json:"flight_id"`
	UserID        int64             `json:"user_id"`
	DepartureDate string            `json:"departure_date"`
	HasReturn     bool              `json:"has_return"`
	SeatClass     domain.CabinClass `json:"seat_class"`
	SeatNumber    string            `json:"seat_number"`
}

type BookingService struct {
	users         repository.UserRepository
	flights       repository.FlightRepository
	tickets       repository.TicketRepository
	inventory     Inventory
	ledger        Ledger
	engine        *pricing.Engine
	producer      Producer
	eventsTopic   string
	retentionDays int
	now           func() time.Time
	rng           *rand.Rand
}

type BookingServiceOption func(*BookingService)

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
		s.engine = pricing.NewEngine(now)
	}
}

func WithRand(rng *rand.Rand) BookingServiceOption {
	return func(s *BookingService) {
		s.rng = rng
	}
}

func NewBookingService(
	users repository.UserRepository,
	flights repository.FlightRepository,
	tickets repository.TicketRepository,
	inventory Inventory,
	ledger Ledger,
	producer Producer,
	eventsTopic string,
	retentionDays int,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		users:         users,
		flights:       flights,
		tickets:       tickets,
		inventory:     inventory,
		ledger:        ledger,
		producer:      producer,
		eventsTopic:   eventsTopic,
		retentionDays: retentionDays,
		now:           time.Now,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	service.engine = pricing.NewEngine(service.now)
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BookFlight books one ticket per passenger. Document validation is
// all-or-nothing and happens before any write. Passengers without an
// explicit seat get a random free seat of the requested cabin reserved for
// them, so every active ticket owns its seat. Ticket creation is
// compensated: if passenger N cannot be persisted, tickets already created
// for this request are cancelled and their seats freed.
func (s *BookingService) BookFlight(ctx context.Context, input BookFlightInput) (*BookingResult, error) {
	if len(input.Passengers) == 0 {
		return nil, fmt.Errorf("at least one passenger is required")
	}

	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	if !pricing.ValidDate(input.DepartureDate) {
		return nil, fmt.Errorf("departure date %q: %w", input.DepartureDate, domain.ErrInvalidDate)
	}
	if input.ReturnDate != "" && !pricing.ValidDate(input.ReturnDate) {
		return nil, fmt.Errorf("return date %q: %w", input.ReturnDate, domain.ErrInvalidDate)
	}

	for i, p := range input.Passengers {
		if !ValidDocument(p.Document, p.Age) {
			return nil, fmt.Errorf("passenger %d: %w", i+1, domain.ErrInvalidDocument)
		}
	}

	reference := uuid.NewString()
	result := &BookingResult{Reference: reference}

	var booked []domain.Ticket
	for i, p := range input.Passengers {
		passenger := domain.Passenger{
			Number:     i + 1,
			Name:       p.Name,
			Age:        p.Age,
			SeatClass:  input.SeatClass,
			SeatNumber: p.SeatNumber,
		}

		var seat *domain.Seat
		if p.SeatNumber != "" {
			seat, err = s.inventory.Reserve(ctx, input.FlightID, p.SeatNumber)
			if err != nil {
				s.compensate(ctx, booked)
				return nil, fmt.Errorf("passenger %d seat %s: %w", passenger.Number, p.SeatNumber, err)
			}
		} else {
			seat, err = s.reserveAutoSeat(ctx, input.FlightID, input.SeatClass)
			if err != nil {
				s.compensate(ctx, booked)
				return nil, fmt.Errorf("passenger %d: %w", passenger.Number, err)
			}
		}

		price := s.engine.PassengerPrice(pricing.Input{
			BasePrice:       flight.BasePrice,
			DepartureDate:   input.DepartureDate,
			Tier:            user.Tier,
			HasReturn:       input.ReturnDate != "",
			SeatClass:       input.SeatClass,
			IsHotDeal:       flight.IsHotDeal,
			HotDealDiscount: flight.HotDealDiscount,
			SeatModifier:    seat.PriceModifier,
		}, passenger.Type())

		ticket := domain.Ticket{
			UserID:            input.UserID,
			FlightID:          input.FlightID,
			Reference:         reference,
			DepartureDate:     input.DepartureDate,
			ReturnDate:        input.ReturnDate,
			SeatNumber:        seat.SeatNumber,
			PassengerName:     passenger.Name,
			PassengerDocument: p.Document,
			FinalPrice:        price,
			BookingDate:       s.now(),
			Status:            domain.TicketStatusBooked,
		}
		if err := s.tickets.Create(ctx, &ticket); err != nil {
			_ = s.inventory.Free(ctx, input.FlightID, seat.SeatNumber)
			s.compensate(ctx, booked)
			return nil, fmt.Errorf("create ticket for passenger %d: %w", passenger.Number, err)
		}

		booked = append(booked, ticket)
		result.TicketIDs = append(result.TicketIDs, ticket.ID)
		result.TotalPrice += price
		s.publish(ctx, "ticket_booked", &ticket)
	}

	return result, nil
}

// compensate cancels the tickets already created for a failed booking
// request and frees the seats they reserved.
func (s *BookingService) compensate(ctx context.Context, booked []domain.Ticket) {
	for _, t := range booked {
		if err := s.tickets.UpdateStatus(ctx, t.ID, domain.TicketStatusCancelled); err != nil {
			log.Printf("compensate booking %s: cancel ticket %d: %v", t.Reference, t.ID, err)
			continue
		}
		if t.SeatNumber != "" {
			if err := s.inventory.Free(ctx, t.FlightID, t.SeatNumber); err != nil {
				log.Printf("compensate booking %s: free seat %s: %v", t.Reference, t.SeatNumber, err)
			}
		}
	}
}

// QuotePrice computes a per-adult fare without reserving anything.
func (s *BookingService) QuotePrice(ctx context.Context, input QuoteInput) (float64, error) {
	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		return 0, err
	}
	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return 0, err
	}

	seatModifier := 1.0
	if input.SeatNumber != "" {
		seat, err := s.inventory.Get(ctx, input.FlightID, input.SeatNumber)
		if err != nil {
			return 0, err
		}
		seatModifier = seat.PriceModifier
	}

	return s.engine.Quote(pricing.Input{
		BasePrice:       flight.BasePrice,
		DepartureDate:   input.DepartureDate,
		Tier:            user.Tier,
		HasReturn:       input.HasReturn,
		SeatClass:       input.SeatClass,
		IsHotDeal:       flight.IsHotDeal,
		HotDealDiscount: flight.HotDealDiscount,
		SeatModifier:    seatModifier,
	}), nil
}

// PayTicket marks one of the user's unpaid tickets as paid and updates the
// loyalty ledger. The final price is the one fixed at booking time.
func (s *BookingService) PayTicket(ctx context.Context, ticketID, userID int64) error {
	unpaid, err := s.tickets.ListUnpaidByUser(ctx, userID)
	if err != nil {
		return err
	}
	var ticket *domain.Ticket
	for i := range unpaid {
		if unpaid[i].ID == ticketID {
			ticket = &unpaid[i]
			break
		}
	}
	if ticket == nil {
		return domain.ErrTicketNotFound
	}

	paidAt := s.now()
	if err := s.tickets.MarkPaid(ctx, ticketID, paidAt); err != nil {
		return err
	}

	if _, err := s.ledger.ApplyPayment(ctx, userID, ticket.FinalPrice); err != nil {
		// The ticket is already marked paid at this point; the caller sees
		// the failure instead of a payment that silently dropped the
		// loyalty stats.
		return fmt.Errorf("ticket %d paid, loyalty update failed: %w", ticketID, err)
	}

	ticket.IsPaid = true
	ticket.PaymentDate = &paidAt
	ticket.Status = domain.TicketStatusPaid
	s.publish(ctx, "ticket_paid", ticket)
	return nil
}

// CancelTicket cancels one of the user's BOOKED tickets and frees its seat,
// keeping the occupied flag consistent with active tickets.
func (s *BookingService) CancelTicket(ctx context.Context, ticketID, userID int64) error {
	bookedTickets, err := s.tickets.ListByStatus(ctx, userID, domain.TicketStatusBooked)
	if err != nil {
		return err
	}
	var ticket *domain.Ticket
	for i := range bookedTickets {
		if bookedTickets[i].ID == ticketID {
			ticket = &bookedTickets[i]
			break
		}
	}
	if ticket == nil {
		return domain.ErrTicketNotFound
	}

	if err := s.tickets.UpdateStatus(ctx, ticketID, domain.TicketStatusCancelled); err != nil {
		return err
	}
	if ticket.SeatNumber != "" {
		if err := s.inventory.Free(ctx, ticket.FlightID, ticket.SeatNumber); err != nil {
			log.Printf("cancel ticket %d: free seat %s: %v", ticketID, ticket.SeatNumber, err)
		}
	}

	ticket.Status = domain.TicketStatusCancelled
	s.publish(ctx, "ticket_cancelled", ticket)
	return nil
}

func (s *BookingService) ListTickets(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	return s.tickets.ListByUser(ctx, userID)
}

// CleanupExpiredBookings hard-deletes unpaid tickets whose booking date is
// older than the retention window. Seats are freed first so the occupied
// flag invariant survives the deletion.
func (s *BookingService) CleanupExpiredBookings(ctx context.Context) (int, error) {
	cutoff := s.now().AddDate(0, 0, -s.retentionDays)
	expired, err := s.tickets.ListUnpaidBookedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, t := range expired {
		if t.SeatNumber != "" {
			if err := s.inventory.Free(ctx, t.FlightID, t.SeatNumber); err != nil {
				log.Printf("cleanup ticket %d: free seat %s: %v", t.ID, t.SeatNumber, err)
			}
		}
		if err := s.tickets.Delete(ctx, t.ID); err != nil {
			log.Printf("cleanup ticket %d: delete: %v", t.ID, err)
			continue
		}
		deleted++
		s.publish(ctx, "ticket_expired", &t)
	}
	return deleted, nil
}

// ValidDocument checks a passenger identity document: exactly 10
// characters, digits only for passengers 14 and older (passport),
// alphanumeric otherwise (birth certificate).
func ValidDocument(document string, age int) bool {
	if len(document) != 10 {
		return false
	}
	for _, r := range document {
		if age >= 14 {
			if r < '0' || r > '9' {
				return false
			}
		} else {
			if !isLetterOrDigit(r) {
				return false
			}
		}
	}
	return true
}

func isLetterOrDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// reserveAutoSeat reserves a random free seat of the requested cabin for a
// passenger who skipped seat selection, so cancel and cleanup can free the
// ticket's seat unconditionally. Candidates grabbed by a concurrent booking
// between the listing and the reserve are skipped.
func (s *BookingService) reserveAutoSeat(ctx context.Context, flightID int64, class domain.CabinClass) (*domain.Seat, error) {
	available, err := s.inventory.Available(ctx, flightID)
	if err != nil {
		return nil, fmt.Errorf("list available seats: %w", err)
	}

	candidates := make([]domain.Seat, 0, len(available))
	for _, seat := range available {
		if seat.Class == class {
			candidates = append(candidates, seat)
		}
	}
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, candidate := range candidates {
		seat, err := s.inventory.Reserve(ctx, flightID, candidate.SeatNumber)
		if err == nil {
			return seat, nil
		}
		if errors.Is(err, domain.ErrSeatOccupied) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("no free %s seat: %w", class, domain.ErrSeatOccupied)
}

func (s *BookingService) publish(ctx context.Context, eventType string, ticket *domain.Ticket) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.TicketEvent{
		Type:       eventType,
		Reference:  ticket.Reference,
		TicketID:   ticket.ID,
		UserID:     ticket.UserID,
		FlightID:   ticket.FlightID,
		SeatNumber: ticket.SeatNumber,
		FinalPrice: ticket.FinalPrice,
		Status:     string(ticket.Status),
		OccurredAt: s.now(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, ticket.Reference, event); err != nil {
		log.Printf("publish %s for ticket %d: %v", eventType, ticket.ID, err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
