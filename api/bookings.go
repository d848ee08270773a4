package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type bookFlightRequest struct {
	UserID        int64                    `json:"user_id"`
	FlightID      int64                    `json:"flight_id"`
	DepartureDate string                   `json:"departure_date"`
	ReturnDate    string                   `json:"return_date"`
	SeatClass     string                   `json:"seat_class"`
	Passengers    []booking.PassengerInput `json:"passengers"`
}

type quoteRequest struct {
	UserID        int64  `json:"user_id"`
	FlightID      int64  `json:"flight_id"`
	DepartureDate string `json:"departure_date"`
	HasReturn     bool   `json:"has_return"`
	SeatClass     string `json:"seat_class"`
	SeatNumber    string `json:"seat_number"`
}

type ticketActionRequest struct {
	UserID int64 `json:"user_id"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.book)
	router.POST("/quote", h.quote)
	router.POST("/tickets/:id/pay", h.pay)
	router.POST("/tickets/:id/cancel", h.cancel)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req bookFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	seatClass, err := domain.ParseCabinClass(req.SeatClass)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.BookFlight(c.Request.Context(), booking.BookFlightInput{
		UserID:        req.UserID,
		FlightID:      req.FlightID,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		SeatClass:     seatClass,
		Passengers:    req.Passengers,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *BookingHandler) quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	seatClass, err := domain.ParseCabinClass(req.SeatClass)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price, err := h.service.QuotePrice(c.Request.Context(), booking.QuoteInput{
		UserID:        req.UserID,
		FlightID:      req.FlightID,
		DepartureDate: req.DepartureDate,
		HasReturn:     req.HasReturn,
		SeatClass:     seatClass,
		SeatNumber:    req.SeatNumber,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price})
}

func (h *BookingHandler) pay(c *gin.Context) {
	ticketID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}
	var req ticketActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.PayTicket(c.Request.Context(), ticketID, req.UserID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(domain.TicketStatusPaid)})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	ticketID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}
	var req ticketActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.CancelTicket(c.Request.Context(), ticketID, req.UserID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(domain.TicketStatusCancelled)})
}

// statusFor maps the domain error taxonomy to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrTicketNotFound),
		errors.Is(err, domain.ErrSeatNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSeatOccupied):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidDocument),
		errors.Is(err, domain.ErrInvalidDate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
