package repository

import (
	"context"
	"errors"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SeatRepository interface {
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error)
	AvailableByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error)
	GetByNumber(ctx context.Context, flightID int64, seatNumber string) (*domain.Seat, error)
	// Occupy flips the occupied flag only when the seat is currently free.
	// The conditional update makes concurrent reservations of the same seat
	// yield exactly one success.
	Occupy(ctx context.Context, flightID int64, seatNumber string) error
	Free(ctx context.Context, flightID int64, seatNumber string) error
	InsertAll(ctx context.Context, seats []domain.Seat) error
}

type PGSeatRepository struct {
	db *pgxpool.Pool
}

func NewSeatRepository(db *pgxpool.Pool) SeatRepository {
	return &PGSeatRepository{db: db}
}

const seatColumns = `id, flight_id, seat_number, class, row_number, position, occupied, price_modifier`

func collectSeats(rows pgx.Rows) ([]domain.Seat, error) {
	defer rows.Close()
	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.ID, &s.FlightID, &s.SeatNumber, &s.Class, &s.RowNumber, &s.Position, &s.Occupied, &s.PriceModifier); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

func (r *PGSeatRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, `SELECT `+seatColumns+` FROM seats WHERE flight_id=$1 ORDER BY row_number, position`, flightID)
	if err != nil {
		return nil, err
	}
	return collectSeats(rows)
}

func (r *PGSeatRepository) AvailableByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, `SELECT `+seatColumns+` FROM seats WHERE flight_id=$1 AND NOT occupied ORDER BY row_number, position`, flightID)
	if err != nil {
		return nil, err
	}
	return collectSeats(rows)
}

func (r *PGSeatRepository) GetByNumber(ctx context.Context, flightID int64, seatNumber string) (*domain.Seat, error) {
	row := r.db.QueryRow(ctx, `SELECT `+seatColumns+` FROM seats WHERE flight_id=$1 AND seat_number=$2`, flightID, seatNumber)
	var s domain.Seat
	if err := row.Scan(&s.ID, &s.FlightID, &s.SeatNumber, &s.Class, &s.RowNumber, &s.Position, &s.Occupied, &s.PriceModifier); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGSeatRepository) Occupy(ctx context.Context, flightID int64, seatNumber string) error {
	res, err := r.db.Exec(ctx, `UPDATE seats SET occupied=true WHERE flight_id=$1 AND seat_number=$2 AND NOT occupied`, flightID, seatNumber)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		// Distinguish a missing seat from a taken one.
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM seats WHERE flight_id=$1 AND seat_number=$2)`, flightID, seatNumber).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrSeatNotFound
		}
		return domain.ErrSeatOccupied
	}
	return nil
}

func (r *PGSeatRepository) Free(ctx context.Context, flightID int64, seatNumber string) error {
	res, err := r.db.Exec(ctx, `UPDATE seats SET occupied=false WHERE flight_id=$1 AND seat_number=$2`, flightID, seatNumber)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrSeatNotFound
	}
	return nil
}

func (r *PGSeatRepository) InsertAll(ctx context.Context, seats []domain.Seat) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, s := range seats {
		if _, err := tx.Exec(ctx, `INSERT INTO seats (flight_id, seat_number, class, row_number, position, occupied, price_modifier)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.FlightID, s.SeatNumber, s.Class, s.RowNumber, s.Position, s.Occupied, s.PriceModifier); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

var _ SeatRepository = (*PGSeatRepository)(nil)
