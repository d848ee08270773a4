package domain

import "time"

type Flight struct {
	ID               int64
	FromCity         string
	ToCity           string
	FromAirport      string
	ToAirport        string
	Airline          string
	BasePrice        float64
	DurationMinutes  int
	HasTransfer      bool
	TransferCity     string
	TransferDuration int
	IsHotDeal        bool
	HotDealDiscount  int // percent, 0-50
	DepartureTime    string
	ArrivalTime      string
	IncludesBaggage  bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
