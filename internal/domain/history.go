package domain

import "time"

type SearchHistory struct {
	ID          int64
	UserID      int64
	FromCity    string
	ToCity      string
	SearchedAt  time.Time
	ResultCount int
}

type FavoriteRoute struct {
	ID       int64
	UserID   int64
	FlightID int64
	AddedAt  time.Time
}
