package service

import (
	"github.com/osyp/eventix/internal/repository/memory"
	"github.com/osyp/eventix/internal/service/auth"
	"github.com/osyp/eventix/internal/service/booking"
	"github.com/osyp/eventix/internal/service/events"
)

type Services struct {
	Auth    *auth.Service
	Booking *booking.Service
	Events  *events.Service
}

type Config struct {
	Booking booking.Config
}

func NewServices(store *memory.Store, cfg Config) *Services {
	return &Services{
		Auth:    auth.New(store),
		Booking: booking.New(store, cfg.Booking),
		Events:  events.New(store),
	}
}
