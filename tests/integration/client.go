package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"skybook/internal/models"
)

// TestClient provides methods for testing the API
type TestClient struct {
	BaseURL    string
	Username   string
	Password   string
	HTTPClient *http.Client
}

// NewTestClient creates a new test client authenticated as the default seed user
func NewTestClient(baseURL string) *TestClient {
	return NewTestClientAs(baseURL, TestUserEmail, TestUserPassword)
}

// NewTestClientAs creates a test client authenticated as a specific user
func NewTestClientAs(baseURL, username, password string) *TestClient {
	return &TestClient{
		BaseURL:  baseURL,
		Username: username,
		Password: password,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest makes an HTTP request and returns the response
func (c *TestClient) makeRequest(t *testing.T, method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(c.Username, c.Password)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}

	return resp
}

// ListFlights lists all flights
func (c *TestClient) ListFlights(t *testing.T) []models.Flight {
	resp := c.makeRequest(t, "GET", "/api/flights", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var flights []models.Flight
	if err := json.NewDecoder(resp.Body).Decode(&flights); err != nil {
		t.Fatalf("Failed to decode flights response: %v", err)
	}

	return flights
}

// ListSeats lists seats for a flight, optionally filtered by status
func (c *TestClient) ListSeats(t *testing.T, flightID, status string) []models.Seat {
	path := fmt.Sprintf("/api/flights/%s/seats", flightID)
	if status != "" {
		path += "?status=" + status
	}
	resp := c.makeRequest(t, "GET", path, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var seats []models.Seat
	if err := json.NewDecoder(resp.Body).Decode(&seats); err != nil {
		t.Fatalf("Failed to decode seats response: %v", err)
	}

	return seats
}

// CreateBooking creates a new booking
func (c *TestClient) CreateBooking(t *testing.T, req models.CreateBookingRequest) *models.Booking {
	resp := c.makeRequest(t, "POST", "/api/bookings", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var booking models.Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		t.Fatalf("Failed to decode booking response: %v", err)
	}

	return &booking
}

// TryCreateBooking creates a booking and returns the raw status code. Safe
// to call from a goroutine: it never touches testing.T
func (c *TestClient) TryCreateBooking(req models.CreateBookingRequest) (int, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return 0, err
	}

	httpReq, err := http.NewRequest("POST", c.BaseURL+"/api/bookings", bytes.NewBuffer(jsonBody))
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.Username, c.Password)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// GetBooking fetches one booking by ID
func (c *TestClient) GetBooking(t *testing.T, bookingID string) *models.Booking {
	resp := c.makeRequest(t, "GET", "/api/bookings/"+bookingID, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var booking models.Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		t.Fatalf("Failed to decode booking response: %v", err)
	}

	return &booking
}

// ListBookings lists bookings for the authenticated user
func (c *TestClient) ListBookings(t *testing.T) []models.Booking {
	resp := c.makeRequest(t, "GET", "/api/bookings", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var bookings []models.Booking
	if err := json.NewDecoder(resp.Body).Decode(&bookings); err != nil {
		t.Fatalf("Failed to decode bookings response: %v", err)
	}

	return bookings
}

// CancelBooking cancels a booking
func (c *TestClient) CancelBooking(t *testing.T, bookingID string) {
	resp := c.makeRequest(t, "PATCH", "/api/bookings/"+bookingID+"/cancel", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}
}

// CreatePayment records a payment for a booking
func (c *TestClient) CreatePayment(t *testing.T, req models.CreatePaymentRequest) *models.Payment {
	resp := c.makeRequest(t, "POST", "/api/payments", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var payment models.Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		t.Fatalf("Failed to decode payment response: %v", err)
	}

	return &payment
}

// TryCreatePayment records a payment and returns the raw status code,
// for cases where a conflict is the expected outcome
func (c *TestClient) TryCreatePayment(t *testing.T, req models.CreatePaymentRequest) int {
	resp := c.makeRequest(t, "POST", "/api/payments", req)
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

// GetPaymentStatus fetches the payment reconciliation view of a booking
func (c *TestClient) GetPaymentStatus(t *testing.T, bookingID string) *models.PaymentStatusResponse {
	resp := c.makeRequest(t, "GET", "/api/bookings/"+bookingID+"/payment-status", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var status models.PaymentStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("Failed to decode payment status response: %v", err)
	}

	return &status
}

// GetLoyaltyBalance fetches the loyalty balance of the authenticated user
func (c *TestClient) GetLoyaltyBalance(t *testing.T) *models.LoyaltyBalanceResponse {
	resp := c.makeRequest(t, "GET", "/api/loyalty/balance", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var balance models.LoyaltyBalanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&balance); err != nil {
		t.Fatalf("Failed to decode loyalty balance response: %v", err)
	}

	return &balance
}

// ListAvailableDiscounts lists discounts the authenticated user can redeem
func (c *TestClient) ListAvailableDiscounts(t *testing.T) []models.Discount {
	resp := c.makeRequest(t, "GET", "/api/discounts/available", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var discounts []models.Discount
	if err := json.NewDecoder(resp.Body).Decode(&discounts); err != nil {
		t.Fatalf("Failed to decode discounts response: %v", err)
	}

	return discounts
}

// HealthCheck checks if the API is healthy
func (c *TestClient) HealthCheck(t *testing.T) {
	resp := c.makeRequest(t, "GET", "/health", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Health check failed with status %d", resp.StatusCode)
	}
}
