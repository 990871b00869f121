package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/hsalamardi/lending-service/internal/repository"
)

type Config struct {
	// fine charged per day a returned loan is overdue
	DailyFineRate float64 `envconfig:"LENDING_DAILY_FINE_RATE" default:"1.00"`
	// how long an active reservation is held before the expiry sweep takes it
	ReservationTTL time.Duration `envconfig:"LENDING_RESERVATION_TTL" default:"168h"`
}

type Service struct {
	log  *zap.Logger
	repo repository.Repository
	pub  Enqueuer
	cfg  Config
}

func NewService(repo repository.Repository, pub Enqueuer, cfg Config, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
		pub:  pub,
		cfg:  cfg,
	}
}
