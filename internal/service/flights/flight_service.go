package flights

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/ArseniyHeyden/FlightBooking/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Search(ctx context.Context, fromCity, toCity string, userID int64) ([]domain.Flight, error)
	HotDeals(ctx context.Context, limit int) ([]domain.Flight, error)
	AddFavorite(ctx context.Context, userID, flightID int64) error
	RemoveFavorite(ctx context.Context, userID, flightID int64) error
	IsFavorite(ctx context.Context, userID, flightID int64) (bool, error)
	Favorites(ctx context.Context, userID int64) ([]domain.Flight, error)
	SearchHistory(ctx context.Context, userID int64, limit int) ([]domain.SearchHistory, error)
	ClearSearchHistory(ctx context.Context, userID int64) error
	PopularRoutes(ctx context.Context, limit int) ([][2]string, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	GetSearch(ctx context.Context, fromCity, toCity string) ([]domain.Flight, error)
	SetSearch(ctx context.Context, fromCity, toCity string, flights []domain.Flight) error
}

// FlightService serves the immutable flight catalog plus the per-user
// search history and favorites around it.
type FlightService struct {
	flights   repository.FlightRepository
	users     repository.UserRepository
	history   repository.HistoryRepository
	favorites repository.FavoriteRepository
	cache     Cache
	now       func() time.Time
}

func NewFlightService(
	flights repository.FlightRepository,
	users repository.UserRepository,
	history repository.HistoryRepository,
	favorites repository.FavoriteRepository,
	cache Cache,
) *FlightService {
	return &FlightService{
		flights:   flights,
		users:     users,
		history:   history,
		favorites: favorites,
		cache:     cache,
		now:       time.Now,
	}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

// Search returns direct flights first, then one-transfer options. For
// known users the search is recorded in their history; history failures
// never fail the search itself.
func (s *FlightService) Search(ctx context.Context, fromCity, toCity string, userID int64) ([]domain.Flight, error) {
	fromCity = normalizeCity(fromCity)
	toCity = normalizeCity(toCity)

	if s.cache != nil {
		if cached, err := s.cache.GetSearch(ctx, fromCity, toCity); err == nil && cached != nil {
			return cached, nil
		}
	}

	direct, err := s.flights.Search(ctx, fromCity, toCity)
	if err != nil {
		return nil, err
	}
	withTransfers, err := s.flights.SearchWithTransfers(ctx, fromCity, toCity)
	if err != nil {
		return nil, err
	}
	results := append(direct, withTransfers...)

	if s.cache != nil {
		_ = s.cache.SetSearch(ctx, fromCity, toCity, results)
	}

	if userID > 0 && len(results) > 0 {
		s.recordSearch(ctx, userID, fromCity, toCity, len(results))
	}
	return results, nil
}

func (s *FlightService) recordSearch(ctx context.Context, userID int64, fromCity, toCity string, count int) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return
	}
	entry := domain.SearchHistory{
		UserID:      userID,
		FromCity:    fromCity,
		ToCity:      toCity,
		SearchedAt:  s.now(),
		ResultCount: count,
	}
	if err := s.history.Insert(ctx, &entry); err != nil {
		log.Printf("record search %s -> %s for user %d: %v", fromCity, toCity, userID, err)
	}
}

func (s *FlightService) HotDeals(ctx context.Context, limit int) ([]domain.Flight, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.flights.HotDeals(ctx, limit)
}

func (s *FlightService) AddFavorite(ctx context.Context, userID, flightID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.flights.GetByID(ctx, flightID); err != nil {
		return err
	}
	fav := domain.FavoriteRoute{UserID: userID, FlightID: flightID, AddedAt: s.now()}
	return s.favorites.Add(ctx, &fav)
}

func (s *FlightService) RemoveFavorite(ctx context.Context, userID, flightID int64) error {
	return s.favorites.Remove(ctx, userID, flightID)
}

func (s *FlightService) IsFavorite(ctx context.Context, userID, flightID int64) (bool, error) {
	fav, err := s.favorites.Get(ctx, userID, flightID)
	if err != nil {
		return false, err
	}
	return fav != nil, nil
}

func (s *FlightService) Favorites(ctx context.Context, userID int64) ([]domain.Flight, error) {
	favs, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	flights := make([]domain.Flight, 0, len(favs))
	for _, fav := range favs {
		flight, err := s.flights.GetByID(ctx, fav.FlightID)
		if err != nil {
			// The flight may have been removed from the catalog.
			continue
		}
		flights = append(flights, *flight)
	}
	return flights, nil
}

func (s *FlightService) SearchHistory(ctx context.Context, userID int64, limit int) ([]domain.SearchHistory, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.history.ListByUser(ctx, userID, limit)
}

func (s *FlightService) ClearSearchHistory(ctx context.Context, userID int64) error {
	return s.history.Clear(ctx, userID)
}

// PopularRoutes derives route suggestions from recent searches.
func (s *FlightService) PopularRoutes(ctx context.Context, limit int) ([][2]string, error) {
	if limit <= 0 {
		limit = 5
	}
	recent, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	routes := make([][2]string, 0, len(recent))
	for _, entry := range recent {
		routes = append(routes, [2]string{entry.FromCity, entry.ToCity})
	}
	return routes, nil
}

func normalizeCity(city string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(city)), " ")
}

var _ FlightUseCase = (*FlightService)(nil)
