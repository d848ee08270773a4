package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ArseniyHeyden/FlightBooking/api"
	"github.com/ArseniyHeyden/FlightBooking/config"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/booking"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/flights"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/inventory"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/users"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	flightSvc flights.FlightUseCase,
	inventorySvc inventory.InventoryUseCase,
	bookingSvc booking.BookingUseCase,
	userSvc users.UserUseCase,
) error {
	router := gin.Default()

	flightsGroup := router.Group("/flights")
	api.NewFlightHandler(flightSvc).Register(flightsGroup)
	api.NewSeatHandler(inventorySvc).Register(flightsGroup)

	bookingsGroup := router.Group("/bookings")
	api.NewBookingHandler(bookingSvc).Register(bookingsGroup)

	usersGroup := router.Group("/users")
	api.NewUserHandler(userSvc, bookingSvc, flightSvc).Register(usersGroup)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
