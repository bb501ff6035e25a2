package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventOther    EventType = "other"
	EventConcert  EventType = "concert"
	EventFestival EventType = "festival"
	EventTheatre  EventType = "theatre"
)

// ParseEventType maps a wire value to an EventType. Unknown values
// fall back to EventOther.
func ParseEventType(s string) EventType {
	switch EventType(s) {
	case EventConcert, EventFestival, EventTheatre:
		return EventType(s)
	default:
		return EventOther
	}
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
)

type Event struct {
	ID           int64
	Name         string
	Description  string
	Type         EventType
	StartTime    time.Time
	EndTime      time.Time
	MaxAttendees int
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
}

// Identity is what the auth service hands back to callers: never the
// password hash.
type Identity struct {
	UserID   int64
	Username string
	Role     Role
}

// Booking carries UserName and EventName denormalized from their owners,
// a deliberate read optimization kept from the data model.
type Booking struct {
	ID              int64
	EventID         int64
	UserID          int64
	UserName        string
	EventName       string
	NumberOfTickets int
	TotalPrice      decimal.Decimal
	BookingDate     time.Time
	Status          BookingStatus
}

// EventAvailability summarizes ticket allocation for one event.
type EventAvailability struct {
	EventID       int64
	MaxAttendees  int
	TicketsBooked int
	Remaining     int
}
