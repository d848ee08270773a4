package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Ticket, error)
	ListUnpaidByUser(ctx context.Context, userID int64) ([]domain.Ticket, error)
	ListByStatus(ctx context.Context, userID int64, status domain.TicketStatus) ([]domain.Ticket, error)
	MarkPaid(ctx context.Context, id int64, paidAt time.Time) error
	UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) error
	CountPaidByUser(ctx context.Context, userID int64) (int, error)
	// ListUnpaidBookedBefore returns unpaid BOOKED tickets created before the
	// cutoff, for the retention sweep.
	ListUnpaidBookedBefore(ctx context.Context, cutoff time.Time) ([]domain.Ticket, error)
	Delete(ctx context.Context, id int64) error
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

const ticketColumns = `id, user_id, flight_id, reference, departure_date, return_date, seat_number, passenger_name, passenger_document, final_price, is_paid, payment_date, booking_date, status`

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := row.Scan(&t.ID, &t.UserID, &t.FlightID, &t.Reference, &t.DepartureDate, &t.ReturnDate, &t.SeatNumber, &t.PassengerName, &t.PassengerDocument, &t.FinalPrice, &t.IsPaid, &t.PaymentDate, &t.BookingDate, &t.Status); err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	defer rows.Close()
	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

func (r *PGTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	return r.db.QueryRow(ctx, `INSERT INTO tickets (user_id, flight_id, reference, departure_date, return_date, seat_number, passenger_name, passenger_document, final_price, is_paid, booking_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		ticket.UserID, ticket.FlightID, ticket.Reference, ticket.DepartureDate, ticket.ReturnDate, ticket.SeatNumber, ticket.PassengerName, ticket.PassengerDocument, ticket.FinalPrice, ticket.IsPaid, ticket.BookingDate, ticket.Status).
		Scan(&ticket.ID)
}

func (r *PGTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	t, err := scanTicket(r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *PGTicketRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE user_id=$1 ORDER BY booking_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectTickets(rows)
}

func (r *PGTicketRepository) ListUnpaidByUser(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE user_id=$1 AND NOT is_paid AND status=$2 ORDER BY booking_date DESC`, userID, domain.TicketStatusBooked)
	if err != nil {
		return nil, err
	}
	return collectTickets(rows)
}

func (r *PGTicketRepository) ListByStatus(ctx context.Context, userID int64, status domain.TicketStatus) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE user_id=$1 AND status=$2 ORDER BY booking_date DESC`, userID, status)
	if err != nil {
		return nil, err
	}
	return collectTickets(rows)
}

func (r *PGTicketRepository) MarkPaid(ctx context.Context, id int64, paidAt time.Time) error {
	res, err := r.db.Exec(ctx, `UPDATE tickets SET is_paid=true, payment_date=$1, status=$2 WHERE id=$3 AND NOT is_paid`, paidAt, domain.TicketStatusPaid, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *PGTicketRepository) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) error {
	res, err := r.db.Exec(ctx, `UPDATE tickets SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *PGTicketRepository) CountPaidByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM tickets WHERE user_id=$1 AND is_paid`, userID).Scan(&count)
	return count, err
}

func (r *PGTicketRepository) ListUnpaidBookedBefore(ctx context.Context, cutoff time.Time) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE NOT is_paid AND status=$1 AND booking_date < $2`, domain.TicketStatusBooked, cutoff)
	if err != nil {
		return nil, err
	}
	return collectTickets(rows)
}

func (r *PGTicketRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	return err
}

var _ TicketRepository = (*PGTicketRepository)(nil)
