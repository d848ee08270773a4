package repository

import (
	"context"
	"errors"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// AddPaidTrip bumps the cumulative trip count and spend after a payment.
	AddPaidTrip(ctx context.Context, userID int64, amount float64) error
	// UpdateTier raises the loyalty tier. The guard keeps tiers monotonic
	// even if two payments race.
	UpdateTier(ctx context.Context, userID int64, tier domain.LoyaltyTier) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, name, email, phone, password_hash, tier, total_trips, total_spent, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Tier, &u.TotalTrips, &u.TotalSpent, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.QueryRow(ctx, `INSERT INTO users (name, email, phone, password_hash, tier, total_trips, total_spent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		user.Name, user.Email, user.Phone, user.PasswordHash, user.Tier, user.TotalTrips, user.TotalSpent).
		Scan(&user.ID, &user.CreatedAt)
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email)=lower($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *PGUserRepository) AddPaidTrip(ctx context.Context, userID int64, amount float64) error {
	res, err := r.db.Exec(ctx, `UPDATE users SET total_trips = total_trips + 1, total_spent = total_spent + $1 WHERE id=$2`, amount, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *PGUserRepository) UpdateTier(ctx context.Context, userID int64, tier domain.LoyaltyTier) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET tier=$1 WHERE id=$2 AND tier < $1`, tier, userID)
	return err
}

var _ UserRepository = (*PGUserRepository)(nil)
