package loyalty

import (
	"context"
	"fmt"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/ArseniyHeyden/FlightBooking/internal/repository"
)

// TierFor maps a paid-ticket count to a loyalty tier.
func TierFor(paidCount int) domain.LoyaltyTier {
	switch {
	case paidCount >= 20:
		return domain.TierGold
	case paidCount >= 10:
		return domain.TierSilver
	default:
		return domain.TierBronze
	}
}

type LedgerUseCase interface {
	ApplyPayment(ctx context.Context, userID int64, amount float64) (domain.LoyaltyTier, error)
}

// Ledger tracks per-user paid-trip statistics and recomputes the discount
// tier after each successful payment. Tiers only ever go up.
type Ledger struct {
	users   repository.UserRepository
	tickets repository.TicketRepository
}

func NewLedger(users repository.UserRepository, tickets repository.TicketRepository) *Ledger {
	return &Ledger{users: users, tickets: tickets}
}

func (l *Ledger) ApplyPayment(ctx context.Context, userID int64, amount float64) (domain.LoyaltyTier, error) {
	user, err := l.users.GetByID(ctx, userID)
	if err != nil {
		return domain.TierBronze, err
	}

	if err := l.users.AddPaidTrip(ctx, userID, amount); err != nil {
		return user.Tier, fmt.Errorf("update user stats: %w", err)
	}

	paidCount, err := l.tickets.CountPaidByUser(ctx, userID)
	if err != nil {
		return user.Tier, fmt.Errorf("count paid tickets: %w", err)
	}

	tier := TierFor(paidCount)
	if tier <= user.Tier {
		return user.Tier, nil
	}
	if err := l.users.UpdateTier(ctx, userID, tier); err != nil {
		return user.Tier, fmt.Errorf("update tier: %w", err)
	}
	return tier, nil
}

var _ LedgerUseCase = (*Ledger)(nil)
