package repository

import (
	"context"
	"errors"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Search(ctx context.Context, fromCity, toCity string) ([]domain.Flight, error)
	SearchWithTransfers(ctx context.Context, fromCity, toCity string) ([]domain.Flight, error)
	HotDeals(ctx context.Context, limit int) ([]domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, from_city, to_city, from_airport, to_airport, airline, base_price, duration_minutes, has_transfer, transfer_city, transfer_duration, is_hot_deal, hot_deal_discount, departure_time, arrival_time, includes_baggage, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FromCity, &f.ToCity, &f.FromAirport, &f.ToAirport, &f.Airline, &f.BasePrice, &f.DurationMinutes, &f.HasTransfer, &f.TransferCity, &f.TransferDuration, &f.IsHotDeal, &f.HotDealDiscount, &f.DepartureTime, &f.ArrivalTime, &f.IncludesBaggage, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	defer rows.Close()
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY from_city, to_city`)
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) Search(ctx context.Context, fromCity, toCity string) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE lower(from_city)=lower($1) AND lower(to_city)=lower($2) AND NOT has_transfer ORDER BY base_price`, fromCity, toCity)
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) SearchWithTransfers(ctx context.Context, fromCity, toCity string) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE lower(from_city)=lower($1) AND lower(to_city)=lower($2) AND has_transfer ORDER BY base_price`, fromCity, toCity)
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) HotDeals(ctx context.Context, limit int) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE is_hot_deal AND hot_deal_discount > 0 ORDER BY hot_deal_discount DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
