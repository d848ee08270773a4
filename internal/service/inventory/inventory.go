package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/ArseniyHeyden/FlightBooking/internal/repository"
)

type InventoryUseCase interface {
	List(ctx context.Context, flightID int64) ([]domain.Seat, error)
	Available(ctx context.Context, flightID int64) ([]domain.Seat, error)
	Get(ctx context.Context, flightID int64, seatNumber string) (*domain.Seat, error)
	Reserve(ctx context.Context, flightID int64, seatNumber string) (*domain.Seat, error)
	Free(ctx context.Context, flightID int64, seatNumber string) error
}

// SeatLocker guards the check-then-set against concurrent requests for the
// same seat. The database conditional update stays authoritative; the lock
// only keeps racing requests from both hitting it.
type SeatLocker interface {
	AcquireSeatLock(ctx context.Context, flightID int64, seatNumber string, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID int64, seatNumber string) error
}

// SeatInventory owns the seat map of every flight: listing, atomic
// reservation and freeing. There is no hold or expiry mechanism; a
// reservation lasts until the owning ticket is cancelled.
type SeatInventory struct {
	seats   repository.SeatRepository
	locker  SeatLocker
	lockTTL time.Duration
}

func NewSeatInventory(seats repository.SeatRepository, locker SeatLocker, lockTTL time.Duration) *SeatInventory {
	return &SeatInventory{seats: seats, locker: locker, lockTTL: lockTTL}
}

func (s *SeatInventory) List(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	return s.seats.ListByFlight(ctx, flightID)
}

func (s *SeatInventory) Available(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	return s.seats.AvailableByFlight(ctx, flightID)
}

func (s *SeatInventory) Get(ctx context.Context, flightID int64, seatNumber string) (*domain.Seat, error) {
	return s.seats.GetByNumber(ctx, flightID, seatNumber)
}

// Reserve marks a seat occupied. It fails with domain.ErrSeatNotFound or
// domain.ErrSeatOccupied and has no side effects on failure. Of concurrent
// attempts for the same seat exactly one succeeds.
func (s *SeatInventory) Reserve(ctx context.Context, flightID int64, seatNumber string) (*domain.Seat, error) {
	if s.locker != nil {
		ok, err := s.locker.AcquireSeatLock(ctx, flightID, seatNumber, s.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire seat lock: %w", err)
		}
		if !ok {
			return nil, domain.ErrSeatOccupied
		}
		defer func() {
			_ = s.locker.ReleaseSeatLock(ctx, flightID, seatNumber)
		}()
	}

	if err := s.seats.Occupy(ctx, flightID, seatNumber); err != nil {
		return nil, err
	}
	return s.seats.GetByNumber(ctx, flightID, seatNumber)
}

func (s *SeatInventory) Free(ctx context.Context, flightID int64, seatNumber string) error {
	return s.seats.Free(ctx, flightID, seatNumber)
}

var _ InventoryUseCase = (*SeatInventory)(nil)
