package models

import "time"

// PassengerRequest - один пассажир в запросе на бронирование
type PassengerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	Surname   string `json:"surname" binding:"required"`
	SeatID    string `json:"seat_id,omitempty"`
}

// CreateBookingRequest - модель для создания бронирования
type CreateBookingRequest struct {
	UserID       string             `json:"user_id" binding:"required"`
	FlightID     string             `json:"flight_id" binding:"required"`
	ContactEmail string             `json:"contact_email"`
	ContactPhone string             `json:"contact_phone"`
	BookingDate  *time.Time         `json:"booking_date,omitempty"`
	Passengers   []PassengerRequest `json:"passengers" binding:"required,min=1"`
}

// UpdateBookingRequest - частичное обновление бронирования.
// Статус и цена меняются только через выделенные операции.
type UpdateBookingRequest struct {
	ContactEmail *string    `json:"contact_email,omitempty"`
	ContactPhone *string    `json:"contact_phone,omitempty"`
	BookingDate  *time.Time `json:"booking_date,omitempty"`
}

// UpdateBookingStatusRequest - смена статуса бронирования
type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}

// AddPassengerRequest - добавление пассажира в бронирование
type AddPassengerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	Surname   string `json:"surname" binding:"required"`
	SeatID    string `json:"seat_id,omitempty"`
}

// ApplyDiscountRequest - применение скидки к бронированию
type ApplyDiscountRequest struct {
	DiscountID string `json:"discount_id" binding:"required"`
}

// PaymentStatusResponse - сверка оплаты с ценой бронирования
type PaymentStatusResponse struct {
	BookingID     string        `json:"booking_id"`
	BookingStatus BookingStatus `json:"booking_status"`
	TotalPrice    int64         `json:"total_price"`
	TotalPaid     int64         `json:"total_paid"`
	IsPaid        bool          `json:"is_paid"`
	Payment       *Payment      `json:"payment,omitempty"`
}

// CreatePaymentRequest - запись платежа по бронированию.
// Amount и Status по умолчанию берутся из бронирования (полная цена, Completed).
type CreatePaymentRequest struct {
	BookingID string         `json:"booking_id" binding:"required"`
	Amount    *int64         `json:"amount,omitempty"`
	Method    string         `json:"method,omitempty"`
	Status    *PaymentStatus `json:"status,omitempty"`
}

// UpdatePaymentStatusRequest - смена статуса платежа
type UpdatePaymentStatusRequest struct {
	Status PaymentStatus `json:"status" binding:"required"`
}

// CreateDiscountRequest - создание кода скидки (админ)
type CreateDiscountRequest struct {
	DiscountID     string     `json:"discount_id,omitempty"`
	PointsRequired int        `json:"points_required" binding:"required"`
	Value          int64      `json:"value" binding:"required"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// AccruePointsRequest - начисление баллов лояльности
type AccruePointsRequest struct {
	Points    int        `json:"points" binding:"required"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// RedeemPointsRequest - списание баллов лояльности
type RedeemPointsRequest struct {
	Points int `json:"points" binding:"required"`
}

// LoyaltyBalanceResponse - баланс баллов пользователя
type LoyaltyBalanceResponse struct {
	UserID    string    `json:"user_id"`
	Balance   int       `json:"balance"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateFlightRequest - создание рейса с инвентарем мест (админ)
type CreateFlightRequest struct {
	FlightNumber  string    `json:"flight_number" binding:"required"`
	Origin        string    `json:"origin" binding:"required"`
	Destination   string    `json:"destination" binding:"required"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	BasePrice     int64     `json:"base_price" binding:"required"`
	Rows          int       `json:"rows"`
	SeatsPerRow   int       `json:"seats_per_row"`
}

// DashboardResponse - агрегаты для отчетности, только чтение
type DashboardResponse struct {
	PendingBookings   int64 `json:"pending_bookings"`
	ConfirmedBookings int64 `json:"confirmed_bookings"`
	CancelledBookings int64 `json:"cancelled_bookings"`
	CompletedRevenue  int64 `json:"completed_revenue"`
	SeatsBooked       int64 `json:"seats_booked"`
	SeatsAvailable    int64 `json:"seats_available"`
}

// FlightOccupancy - занятость мест по рейсу
type FlightOccupancy struct {
	FlightID  string `json:"flight_id"`
	Total     int64  `json:"total"`
	Booked    int64  `json:"booked"`
	Reserved  int64  `json:"reserved"`
	Available int64  `json:"available"`
}
