package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"skybook/internal/cache"
	"skybook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListFlights_ServedFromCache(t *testing.T) {
	flights := new(MockFlightStore)
	catalog := new(MockCatalogCache)

	cached := []models.Flight{{ID: "FL-1", FlightNumber: "SB101"}}
	catalog.On("GetFlights", mock.Anything).Return(cached, nil)

	svc := NewFlightService(flights, catalog, new(MockFlightSearcher), time.Minute)

	result, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, cached, result)
	flights.AssertNotCalled(t, "List", mock.Anything)
}

func TestListFlights_CacheMissPopulatesCache(t *testing.T) {
	flights := new(MockFlightStore)
	catalog := new(MockCatalogCache)

	fromDB := []models.Flight{{ID: "FL-1"}, {ID: "FL-2"}}
	catalog.On("GetFlights", mock.Anything).Return(nil, cache.ErrCacheMiss)
	flights.On("List", mock.Anything).Return(fromDB, nil)
	catalog.On("SetFlights", mock.Anything, fromDB, time.Minute).Return(nil)

	svc := NewFlightService(flights, catalog, new(MockFlightSearcher), time.Minute)

	result, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	catalog.AssertCalled(t, "SetFlights", mock.Anything, fromDB, time.Minute)
}

func TestCreateFlight_InvalidatesCacheAndIndexes(t *testing.T) {
	flights := new(MockFlightStore)
	catalog := new(MockCatalogCache)
	index := new(MockFlightSearcher)

	flights.On("CreateWithSeats", mock.Anything, mock.AnythingOfType("*models.Flight"), 30, 6).
		Run(func(args mock.Arguments) {
			flight := args.Get(1).(*models.Flight)
			flight.TotalSeats = 180
		}).
		Return(nil)
	catalog.On("InvalidateFlights", mock.Anything).Return(nil)
	index.On("IndexFlight", mock.Anything, mock.AnythingOfType("*models.Flight")).Return(nil)

	svc := NewFlightService(flights, catalog, index, time.Minute)

	flight, err := svc.Create(context.Background(), &models.CreateFlightRequest{
		FlightNumber:  "SB101",
		Origin:        "Bangkok",
		Destination:   "Chiang Mai",
		DepartureTime: time.Now().Add(48 * time.Hour),
		ArrivalTime:   time.Now().Add(50 * time.Hour),
		BasePrice:     120000,
	})

	assert.NoError(t, err)
	assert.Contains(t, flight.ID, "FL-")
	assert.Equal(t, 180, flight.TotalSeats)
	catalog.AssertExpectations(t)
	index.AssertExpectations(t)
}

func TestCreateFlight_IndexFailureDoesNotFailCreate(t *testing.T) {
	flights := new(MockFlightStore)
	catalog := new(MockCatalogCache)
	index := new(MockFlightSearcher)

	flights.On("CreateWithSeats", mock.Anything, mock.Anything, 30, 6).Return(nil)
	catalog.On("InvalidateFlights", mock.Anything).Return(nil)
	index.On("IndexFlight", mock.Anything, mock.Anything).Return(errors.New("cluster unreachable"))

	svc := NewFlightService(flights, catalog, index, time.Minute)

	flight, err := svc.Create(context.Background(), &models.CreateFlightRequest{
		FlightNumber:  "SB101",
		Origin:        "Bangkok",
		Destination:   "Phuket",
		DepartureTime: time.Now().Add(48 * time.Hour),
		ArrivalTime:   time.Now().Add(50 * time.Hour),
		BasePrice:     150000,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, flight.ID)
}
