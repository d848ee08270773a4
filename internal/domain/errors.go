package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrFlightNotFound     = errors.New("flight not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrSeatNotFound       = errors.New("seat not found")
	ErrSeatOccupied       = errors.New("seat is already occupied")
	ErrInvalidDocument    = errors.New("invalid passenger document")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email is already registered")
)
