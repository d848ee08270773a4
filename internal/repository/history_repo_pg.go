package repository

import (
	"context"
	"errors"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HistoryRepository interface {
	Insert(ctx context.Context, entry *domain.SearchHistory) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.SearchHistory, error)
	Recent(ctx context.Context, limit int) ([]domain.SearchHistory, error)
	Clear(ctx context.Context, userID int64) error
}

type FavoriteRepository interface {
	Add(ctx context.Context, fav *domain.FavoriteRoute) error
	Remove(ctx context.Context, userID, flightID int64) error
	Get(ctx context.Context, userID, flightID int64) (*domain.FavoriteRoute, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.FavoriteRoute, error)
}

type PGHistoryRepository struct {
	db *pgxpool.Pool
}

func NewHistoryRepository(db *pgxpool.Pool) HistoryRepository {
	return &PGHistoryRepository{db: db}
}

func (r *PGHistoryRepository) Insert(ctx context.Context, entry *domain.SearchHistory) error {
	return r.db.QueryRow(ctx, `INSERT INTO search_history (user_id, from_city, to_city, searched_at, result_count)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		entry.UserID, entry.FromCity, entry.ToCity, entry.SearchedAt, entry.ResultCount).
		Scan(&entry.ID)
}

func (r *PGHistoryRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.SearchHistory, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, from_city, to_city, searched_at, result_count FROM search_history WHERE user_id=$1 ORDER BY searched_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.SearchHistory, 0)
	for rows.Next() {
		var e domain.SearchHistory
		if err := rows.Scan(&e.ID, &e.UserID, &e.FromCity, &e.ToCity, &e.SearchedAt, &e.ResultCount); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *PGHistoryRepository) Recent(ctx context.Context, limit int) ([]domain.SearchHistory, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, from_city, to_city, searched_at, result_count FROM search_history ORDER BY searched_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.SearchHistory, 0)
	for rows.Next() {
		var e domain.SearchHistory
		if err := rows.Scan(&e.ID, &e.UserID, &e.FromCity, &e.ToCity, &e.SearchedAt, &e.ResultCount); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *PGHistoryRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM search_history WHERE user_id=$1`, userID)
	return err
}

type PGFavoriteRepository struct {
	db *pgxpool.Pool
}

func NewFavoriteRepository(db *pgxpool.Pool) FavoriteRepository {
	return &PGFavoriteRepository{db: db}
}

func (r *PGFavoriteRepository) Add(ctx context.Context, fav *domain.FavoriteRoute) error {
	return r.db.QueryRow(ctx, `INSERT INTO favorite_routes (user_id, flight_id, added_at)
		VALUES ($1, $2, $3) ON CONFLICT (user_id, flight_id) DO UPDATE SET added_at=favorite_routes.added_at
		RETURNING id`,
		fav.UserID, fav.FlightID, fav.AddedAt).
		Scan(&fav.ID)
}

func (r *PGFavoriteRepository) Remove(ctx context.Context, userID, flightID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM favorite_routes WHERE user_id=$1 AND flight_id=$2`, userID, flightID)
	return err
}

// Get returns nil without error when the route is not a favorite.
func (r *PGFavoriteRepository) Get(ctx context.Context, userID, flightID int64) (*domain.FavoriteRoute, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_id, flight_id, added_at FROM favorite_routes WHERE user_id=$1 AND flight_id=$2`, userID, flightID)
	var f domain.FavoriteRoute
	if err := row.Scan(&f.ID, &f.UserID, &f.FlightID, &f.AddedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.FavoriteRoute, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, flight_id, added_at FROM favorite_routes WHERE user_id=$1 ORDER BY added_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favs := make([]domain.FavoriteRoute, 0)
	for rows.Next() {
		var f domain.FavoriteRoute
		if err := rows.Scan(&f.ID, &f.UserID, &f.FlightID, &f.AddedAt); err != nil {
			return nil, err
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}

var (
	_ HistoryRepository  = (*PGHistoryRepository)(nil)
	_ FavoriteRepository = (*PGFavoriteRepository)(nil)
)
