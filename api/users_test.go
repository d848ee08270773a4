package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/ArseniyHeyden/FlightBooking/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserUseCase is a mock implementation of users.UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, input users.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Get(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestUserHandler_register(t *testing.T) {
	mockUsers := &MockUserUseCase{}
	handler := NewUserHandler(mockUsers, &MockBookingUseCase{}, &MockFlightUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := users.RegisterInput{Name: "Anna", Email: "anna@example.com", Password: "s3cret-pass"}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/users/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockUsers.On("Register", c.Request.Context(), input).
		Return(&domain.User{ID: 1, Name: "Anna", Email: "anna@example.com", Tier: domain.TierBronze}, nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response userResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), response.ID)
	assert.Equal(t, "Bronze", response.Tier)
	assert.NotContains(t, w.Body.String(), "password")

	mockUsers.AssertExpectations(t)
}

func TestUserHandler_register_emailTaken(t *testing.T) {
	mockUsers := &MockUserUseCase{}
	handler := NewUserHandler(mockUsers, &MockBookingUseCase{}, &MockFlightUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := users.RegisterInput{Name: "Anna", Email: "anna@example.com", Password: "s3cret-pass"}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/users/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockUsers.On("Register", c.Request.Context(), input).Return(nil, domain.ErrEmailTaken)

	handler.register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_login(t *testing.T) {
	mockUsers := &MockUserUseCase{}
	handler := NewUserHandler(mockUsers, &MockBookingUseCase{}, &MockFlightUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(loginRequest{Email: "anna@example.com", Password: "s3cret-pass"})
	c.Request = httptest.NewRequest("POST", "/users/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockUsers.On("Authenticate", c.Request.Context(), "anna@example.com", "s3cret-pass").
		Return(&domain.User{ID: 1, Email: "anna@example.com", Tier: domain.TierSilver}, nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response userResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Silver", response.Tier)

	mockUsers.AssertExpectations(t)
}

func TestUserHandler_login_badCredentials(t *testing.T) {
	mockUsers := &MockUserUseCase{}
	handler := NewUserHandler(mockUsers, &MockBookingUseCase{}, &MockFlightUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(loginRequest{Email: "anna@example.com", Password: "wrong"})
	c.Request = httptest.NewRequest("POST", "/users/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockUsers.On("Authenticate", c.Request.Context(), "anna@example.com", "wrong").
		Return(nil, domain.ErrInvalidCredentials)

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_tickets(t *testing.T) {
	mockBookings := &MockBookingUseCase{}
	handler := NewUserHandler(&MockUserUseCase{}, mockBookings, &MockFlightUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/users/1/tickets", nil)

	mockBookings.On("ListTickets", c.Request.Context(), int64(1)).Return([]domain.Ticket{
		{ID: 5, UserID: 1, Status: domain.TicketStatusPaid},
	}, nil)

	handler.tickets(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Ticket
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)

	mockBookings.AssertExpectations(t)
}

func TestUserHandler_addFavorite(t *testing.T) {
	mockFlights := &MockFlightUseCase{}
	handler := NewUserHandler(&MockUserUseCase{}, &MockBookingUseCase{}, mockFlights)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	body, _ := json.Marshal(favoriteRequest{FlightID: 4})
	c.Request = httptest.NewRequest("POST", "/users/1/favorites", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockFlights.On("AddFavorite", c.Request.Context(), int64(1), int64(4)).Return(nil)

	handler.addFavorite(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockFlights.AssertExpectations(t)
}

func TestUserHandler_addFavorite_unknownFlight(t *testing.T) {
	mockFlights := &MockFlightUseCase{}
	handler := NewUserHandler(&MockUserUseCase{}, &MockBookingUseCase{}, mockFlights)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	body, _ := json.Marshal(favoriteRequest{FlightID: 99})
	c.Request = httptest.NewRequest("POST", "/users/1/favorites", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockFlights.On("AddFavorite", c.Request.Context(), int64(1), int64(99)).
		Return(domain.ErrFlightNotFound)

	handler.addFavorite(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_history(t *testing.T) {
	mockFlights := &MockFlightUseCase{}
	handler := NewUserHandler(&MockUserUseCase{}, &MockBookingUseCase{}, mockFlights)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/users/1/history", nil)

	mockFlights.On("SearchHistory", c.Request.Context(), int64(1), 20).Return([]domain.SearchHistory{
		{UserID: 1, FromCity: "Moscow", ToCity: "Sochi", ResultCount: 3},
	}, nil)

	handler.history(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockFlights.AssertExpectations(t)
}

func TestUserHandler_clearHistory(t *testing.T) {
	mockFlights := &MockFlightUseCase{}
	handler := NewUserHandler(&MockUserUseCase{}, &MockBookingUseCase{}, mockFlights)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("DELETE", "/users/1/history", nil)

	mockFlights.On("ClearSearchHistory", c.Request.Context(), int64(1)).Return(nil)

	handler.clearHistory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockFlights.AssertExpectations(t)
}
