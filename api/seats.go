package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/inventory"
	"github.com/gin-gonic/gin"
)

type SeatHandler struct {
	service inventory.InventoryUseCase
}

func NewSeatHandler(service inventory.InventoryUseCase) *SeatHandler {
	return &SeatHandler{service: service}
}

// Register mounts the seat routes under the flights group.
func (h *SeatHandler) Register(router *gin.RouterGroup) {
	router.GET("/:id/seats", h.list)
	router.GET("/:id/seats/available", h.available)
}

func (h *SeatHandler) list(c *gin.Context) {
	flightID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}
	seats, err := h.service.List(c.Request.Context(), flightID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, seats)
}

func (h *SeatHandler) available(c *gin.Context) {
	flightID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}
	seats, err := h.service.Available(c.Request.Context(), flightID)
	if err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, seats)
}
