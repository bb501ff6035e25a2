package memory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/osyp/eventix/internal/domain"
)

// Seed installs the demo fixtures: two users (one admin), four events and
// two pre-existing bookings for the regular user. Event dates are relative
// to now so the catalog always looks upcoming.
func (s *Store) Seed(now time.Time) error {
	const op = "memory.Seed"

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	userHash, err := bcrypt.GenerateFromPassword([]byte("test123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = []domain.User{
		{ID: 1, Username: "admin", PasswordHash: string(adminHash), Role: domain.RoleAdmin},
		{ID: 2, Username: "testuser", PasswordHash: string(userHash), Role: domain.RoleUser},
	}

	s.events = []domain.Event{
		{
			ID:           1,
			Name:         "Webbutveckling Workshop",
			Description:  "Intensive workshop on modern web development",
			Type:         domain.EventOther,
			StartTime:    now.AddDate(0, 0, 14),
			EndTime:      now.AddDate(0, 0, 14).Add(6 * time.Hour),
			MaxAttendees: 50,
		},
		{
			ID:           2,
			Name:         "Rock Konsert - The Developers",
			Description:  "An epic concert with the band The Developers playing hits about coding",
			Type:         domain.EventConcert,
			StartTime:    now.AddDate(0, 0, 30),
			EndTime:      now.AddDate(0, 0, 30).Add(3 * time.Hour),
			MaxAttendees: 200,
		},
		{
			ID:           3,
			Name:         "Tech Festival 2025",
			Description:  "The biggest tech festival in the Nordics with talks, workshops and networking",
			Type:         domain.EventFestival,
			StartTime:    now.AddDate(0, 0, 60),
			EndTime:      now.AddDate(0, 0, 62),
			MaxAttendees: 1000,
		},
		{
			ID:           4,
			Name:         "Teater: Hamlet 2.0",
			Description:  "Shakespeare's classic in a modern take with AI and robots",
			Type:         domain.EventTheatre,
			StartTime:    now.AddDate(0, 0, 45),
			EndTime:      now.AddDate(0, 0, 45).Add(150 * time.Minute),
			MaxAttendees: 100,
		},
	}

	s.bookings = []domain.Booking{
		{
			ID:              1,
			EventID:         1,
			UserID:          2,
			UserName:        "testuser",
			EventName:       "Webbutveckling Workshop",
			NumberOfTickets: 2,
			TotalPrice:      decimal.RequireFromString("598.00"),
			BookingDate:     now.AddDate(0, 0, -5),
			Status:          domain.BookingActive,
		},
		{
			ID:              2,
			EventID:         2,
			UserID:          2,
			UserName:        "testuser",
			EventName:       "Rock Konsert - The Developers",
			NumberOfTickets: 1,
			TotalPrice:      decimal.RequireFromString("450.00"),
			BookingDate:     now.AddDate(0, 0, -2),
			Status:          domain.BookingActive,
		},
	}

	return nil
}
