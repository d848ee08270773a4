package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSeatRepository struct {
	mock.Mock
}

func (m *MockSeatRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepository) AvailableByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepository) GetByNumber(ctx context.Context, flightID int64, seatNumber string) (*domain.Seat, error) {
	args := m.Called(ctx, flightID, seatNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seat), args.Error(1)
}

func (m *MockSeatRepository) Occupy(ctx context.Context, flightID int64, seatNumber string) error {
	args := m.Called(ctx, flightID, seatNumber)
	return args.Error(0)
}

func (m *MockSeatRepository) Free(ctx context.Context, flightID int64, seatNumber string) error {
	args := m.Called(ctx, flightID, seatNumber)
	return args.Error(0)
}

func (m *MockSeatRepository) InsertAll(ctx context.Context, seats []domain.Seat) error {
	args := m.Called(ctx, seats)
	return args.Error(0)
}

type MockSeatLocker struct {
	mock.Mock
}

func (m *MockSeatLocker) AcquireSeatLock(ctx context.Context, flightID int64, seatNumber string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, flightID, seatNumber, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockSeatLocker) ReleaseSeatLock(ctx context.Context, flightID int64, seatNumber string) error {
	args := m.Called(ctx, flightID, seatNumber)
	return args.Error(0)
}

func TestReserve_Success(t *testing.T) {
	repo := &MockSeatRepository{}
	locker := &MockSeatLocker{}
	ctx := context.Background()
	ttl := 10 * time.Second

	locker.On("AcquireSeatLock", ctx, int64(1), "12A", ttl).Return(true, nil).Once()
	repo.On("Occupy", ctx, int64(1), "12A").Return(nil).Once()
	repo.On("GetByNumber", ctx, int64(1), "12A").
		Return(&domain.Seat{FlightID: 1, SeatNumber: "12A", Occupied: true, PriceModifier: 1.3}, nil).Once()
	locker.On("ReleaseSeatLock", ctx, int64(1), "12A").Return(nil).Once()

	seat, err := NewSeatInventory(repo, locker, ttl).Reserve(ctx, 1, "12A")

	assert.NoError(t, err)
	assert.Equal(t, "12A", seat.SeatNumber)
	assert.Equal(t, 1.3, seat.PriceModifier)
	repo.AssertExpectations(t)
	locker.AssertExpectations(t)
}

func TestReserve_LockDeniedMeansOccupied(t *testing.T) {
	repo := &MockSeatRepository{}
	locker := &MockSeatLocker{}
	ctx := context.Background()

	locker.On("AcquireSeatLock", ctx, int64(1), "12A", mock.Anything).Return(false, nil).Once()

	_, err := NewSeatInventory(repo, locker, time.Second).Reserve(ctx, 1, "12A")

	assert.ErrorIs(t, err, domain.ErrSeatOccupied)
	repo.AssertNotCalled(t, "Occupy", mock.Anything, mock.Anything, mock.Anything)
}

func TestReserve_OccupiedSeatHasNoSideEffects(t *testing.T) {
	repo := &MockSeatRepository{}
	ctx := context.Background()

	repo.On("Occupy", ctx, int64(1), "12A").Return(domain.ErrSeatOccupied).Once()

	_, err := NewSeatInventory(repo, nil, 0).Reserve(ctx, 1, "12A")

	assert.ErrorIs(t, err, domain.ErrSeatOccupied)
	repo.AssertNotCalled(t, "GetByNumber", mock.Anything, mock.Anything, mock.Anything)
}

func TestReserve_UnknownSeat(t *testing.T) {
	repo := &MockSeatRepository{}
	ctx := context.Background()

	repo.On("Occupy", ctx, int64(1), "26A").Return(domain.ErrSeatNotFound).Once()

	_, err := NewSeatInventory(repo, nil, 0).Reserve(ctx, 1, "26A")

	assert.ErrorIs(t, err, domain.ErrSeatNotFound)
}

func TestReserve_WorksWithoutLocker(t *testing.T) {
	repo := &MockSeatRepository{}
	ctx := context.Background()

	repo.On("Occupy", ctx, int64(1), "3C").Return(nil).Once()
	repo.On("GetByNumber", ctx, int64(1), "3C").
		Return(&domain.Seat{FlightID: 1, SeatNumber: "3C", Occupied: true, PriceModifier: 1.05}, nil).Once()

	seat, err := NewSeatInventory(repo, nil, 0).Reserve(ctx, 1, "3C")

	assert.NoError(t, err)
	assert.True(t, seat.Occupied)
}

func TestReserve_LockerErrorPropagates(t *testing.T) {
	repo := &MockSeatRepository{}
	locker := &MockSeatLocker{}
	ctx := context.Background()
	redisDown := errors.New("dial tcp: connection refused")

	locker.On("AcquireSeatLock", ctx, int64(1), "12A", mock.Anything).Return(false, redisDown).Once()

	_, err := NewSeatInventory(repo, locker, time.Second).Reserve(ctx, 1, "12A")

	assert.ErrorIs(t, err, redisDown)
}

// fakeSeatStore is an in-memory stand-in with the same conditional-update
// semantics the SQL repository has.
type fakeSeatStore struct {
	mu    sync.Mutex
	seats map[string]*domain.Seat
}

func newFakeSeatStore(numbers ...string) *fakeSeatStore {
	s := &fakeSeatStore{seats: make(map[string]*domain.Seat)}
	for _, n := range numbers {
		s.seats[n] = &domain.Seat{FlightID: 1, SeatNumber: n, PriceModifier: 1.0}
	}
	return s
}

func (s *fakeSeatStore) ListByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Seat, 0, len(s.seats))
	for _, seat := range s.seats {
		out = append(out, *seat)
	}
	return out, nil
}

func (s *fakeSeatStore) AvailableByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Seat
	for _, seat := range s.seats {
		if !seat.Occupied {
			out = append(out, *seat)
		}
	}
	return out, nil
}

func (s *fakeSeatStore) GetByNumber(ctx context.Context, flightID int64, seatNumber string) (*domain.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat, ok := s.seats[seatNumber]
	if !ok {
		return nil, domain.ErrSeatNotFound
	}
	copied := *seat
	return &copied, nil
}

func (s *fakeSeatStore) Occupy(ctx context.Context, flightID int64, seatNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat, ok := s.seats[seatNumber]
	if !ok {
		return domain.ErrSeatNotFound
	}
	if seat.Occupied {
		return domain.ErrSeatOccupied
	}
	seat.Occupied = true
	return nil
}

func (s *fakeSeatStore) Free(ctx context.Context, flightID int64, seatNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat, ok := s.seats[seatNumber]
	if !ok {
		return domain.ErrSeatNotFound
	}
	seat.Occupied = false
	return nil
}

func (s *fakeSeatStore) InsertAll(ctx context.Context, seats []domain.Seat) error {
	return nil
}

func TestReserve_ConcurrentExactlyOneWinner(t *testing.T) {
	store := newFakeSeatStore("15B")
	inv := NewSeatInventory(store, nil, 0)
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := inv.Reserve(ctx, 1, "15B")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	winners, losers := 0, 0
	for err := range results {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrSeatOccupied)
		losers++
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, attempts-1, losers)
}

func TestFreeThenReserveAgain(t *testing.T) {
	store := newFakeSeatStore("15B")
	inv := NewSeatInventory(store, nil, 0)
	ctx := context.Background()

	_, err := inv.Reserve(ctx, 1, "15B")
	assert.NoError(t, err)

	_, err = inv.Reserve(ctx, 1, "15B")
	assert.ErrorIs(t, err, domain.ErrSeatOccupied)

	assert.NoError(t, inv.Free(ctx, 1, "15B"))

	seat, err := inv.Reserve(ctx, 1, "15B")
	assert.NoError(t, err)
	assert.True(t, seat.Occupied)
}
