package domain

import "time"

type LoyaltyTier int

const (
	TierBronze LoyaltyTier = 0
	TierSilver LoyaltyTier = 1
	TierGold   LoyaltyTier = 2
)

func (t LoyaltyTier) String() string {
	switch t {
	case TierSilver:
		return "Silver"
	case TierGold:
		return "Gold"
	default:
		return "Bronze"
	}
}

type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Tier         LoyaltyTier
	TotalTrips   int
	TotalSpent   float64
	CreatedAt    time.Time
}
