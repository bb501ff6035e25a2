package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Server  ServerConfig
	Booking BookingConfig
	Session SessionConfig
	Seed    bool
}

type ServerConfig struct {
	Host string
	Port int
}

type BookingConfig struct {
	TicketPrice decimal.Decimal
}

type SessionConfig struct {
	TTL time.Duration
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	ticketPriceStr := os.Getenv("TICKET_PRICE")
	if ticketPriceStr == "" {
		ticketPriceStr = "299"
	}

	ticketPrice, err := decimal.NewFromString(ticketPriceStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid TICKET_PRICE: %w", op, err)
	}

	if ticketPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%s: TICKET_PRICE must be positive", op)
	}

	sessionTTLStr := os.Getenv("SESSION_TTL")
	if sessionTTLStr == "" {
		sessionTTLStr = "168h"
	}

	sessionTTL, err := time.ParseDuration(sessionTTLStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SESSION_TTL: %w", op, err)
	}

	seed := true
	if v := os.Getenv("SEED_DEMO_DATA"); v != "" {
		seed, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid SEED_DEMO_DATA: %w", op, err)
		}
	}

	return &Config{
		Server: ServerConfig{
			Host: serverHost,
			Port: serverPort,
		},
		Booking: BookingConfig{
			TicketPrice: ticketPrice,
		},
		Session: SessionConfig{
			TTL: sessionTTL,
		},
		Seed: seed,
	}, nil
}
