package pricing

import (
	"math"
	"time"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
)

const dateLayout = "2006-01-02"

// Input carries everything a single fare computation depends on.
type Input struct {
	BasePrice       float64
	DepartureDate   string // YYYY-MM-DD
	Tier            domain.LoyaltyTier
	HasReturn       bool
	SeatClass       domain.CabinClass
	IsHotDeal       bool
	HotDealDiscount int     // percent, 0-50
	SeatModifier    float64 // per-seat premium, >= 1.0; 0 means no seat yet
}

// Engine derives a final ticket price from a base fare and a set of
// independent multiplicative modifiers. It is deterministic for a fixed
// clock and has no side effects.
type Engine struct {
	now func() time.Time
}

func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Quote runs the fare pipeline. Order matters: each coefficient multiplies
// the running price, not the base.
func (e *Engine) Quote(in Input) float64 {
	price := in.BasePrice

	price *= e.leadTimeCoefficient(in.DepartureDate)
	price *= e.seasonCoefficient(in.DepartureDate)

	if in.HasReturn {
		price *= 1.8
	}

	switch in.SeatClass {
	case domain.CabinBusiness:
		price *= 2.5
	case domain.CabinComfort:
		price *= 1.5
	}

	switch in.Tier {
	case domain.TierSilver:
		price *= 0.95
	case domain.TierGold:
		price *= 0.90
	}

	if in.IsHotDeal && in.HotDealDiscount > 0 {
		price *= 1.0 - float64(in.HotDealDiscount)/100.0
	}

	if in.SeatModifier > 0 {
		price *= in.SeatModifier
	}

	return roundToCents(price)
}

// PassengerPrice applies the passenger-type coefficient on top of Quote.
func (e *Engine) PassengerPrice(in Input, pt domain.PassengerType) float64 {
	return roundToCents(e.Quote(in) * pt.PriceCoefficient())
}

// leadTimeCoefficient buckets the whole days until departure. Unparseable
// or past dates fall into the zero-day bucket, matching the most expensive
// last-minute rate.
func (e *Engine) leadTimeCoefficient(departureDate string) float64 {
	days := e.daysUntil(departureDate)
	switch {
	case days < 3:
		return 1.5
	case days < 7:
		return 1.3
	case days < 14:
		return 1.1
	case days < 30:
		return 1.0
	default:
		return 0.9
	}
}

func (e *Engine) daysUntil(departureDate string) int {
	dep, err := time.Parse(dateLayout, departureDate)
	if err != nil {
		return 0
	}
	diff := dep.Sub(e.now())
	days := int(diff.Hours() / 24) // truncated toward zero
	if days < 0 {
		return 0
	}
	return days
}

// seasonCoefficient keys off the departure month: summer and December are
// high season, January and February low. If the month cannot be read from
// the date string, the current calendar month is used instead.
func (e *Engine) seasonCoefficient(departureDate string) float64 {
	month := e.monthOf(departureDate)
	switch month {
	case 6, 7, 8, 12:
		return 1.4
	case 1, 2:
		return 0.8
	default:
		return 1.0
	}
}

func (e *Engine) monthOf(departureDate string) int {
	if t, err := time.Parse(dateLayout, departureDate); err == nil {
		return int(t.Month())
	}
	return int(e.now().Month())
}

// roundToCents rounds half away from zero on the cent.
func roundToCents(price float64) float64 {
	return math.Round(price*100) / 100
}

// ValidDate reports whether a date string is a parseable YYYY-MM-DD value.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
