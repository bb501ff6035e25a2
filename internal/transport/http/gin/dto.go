package httpgin

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/osyp/eventix/internal/domain"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type IdentityResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func newIdentityResponse(id domain.Identity) IdentityResponse {
	return IdentityResponse{
		UserID:   id.UserID,
		Username: id.Username,
		Role:     string(id.Role),
	}
}

// CreateBookingRequest deliberately leaves numberOfTickets unvalidated at
// the binding layer: the booking service owns that check.
type CreateBookingRequest struct {
	EventID         int64  `json:"eventId" binding:"required"`
	UserID          int64  `json:"userId" binding:"required"`
	UserName        string `json:"userName" binding:"required"`
	NumberOfTickets int    `json:"numberOfTickets"`
}

type BookingResponse struct {
	ID              int64           `json:"id"`
	EventID         int64           `json:"eventId"`
	UserID          int64           `json:"userId"`
	UserName        string          `json:"userName"`
	EventName       string          `json:"eventName"`
	NumberOfTickets int             `json:"numberOfTickets"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	BookingDate     time.Time       `json:"bookingDate"`
	Status          string          `json:"status"`
}

func newBookingResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		EventID:         b.EventID,
		UserID:          b.UserID,
		UserName:        b.UserName,
		EventName:       b.EventName,
		NumberOfTickets: b.NumberOfTickets,
		TotalPrice:      b.TotalPrice,
		BookingDate:     b.BookingDate,
		Status:          string(b.Status),
	}
}

func newBookingListResponse(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, newBookingResponse(b))
	}
	return out
}

type CancelBookingResponse struct {
	Message   string `json:"message"`
	BookingID int64  `json:"bookingId"`
}

type EventResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Type         string    `json:"type"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	MaxAttendees int       `json:"maxAttendees"`
}

func newEventResponse(e domain.Event) EventResponse {
	return EventResponse{
		ID:           e.ID,
		Name:         e.Name,
		Description:  e.Description,
		Type:         string(e.Type),
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		MaxAttendees: e.MaxAttendees,
	}
}

type CreateEventRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	StartTime    string `json:"startTime" binding:"required"`
	EndTime      string `json:"endTime" binding:"required"`
	MaxAttendees int    `json:"maxAttendees" binding:"required,gt=0"`
}

type CreateEventResponse struct {
	EventID int64 `json:"eventId"`
}

type AvailabilityResponse struct {
	EventID       int64 `json:"eventId"`
	MaxAttendees  int   `json:"maxAttendees"`
	TicketsBooked int   `json:"ticketsBooked"`
	Remaining     int   `json:"remaining"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
