package services

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthService struct {
	db      Pinger
	timeout time.Duration
}

func NewHealthService(db Pinger) *HealthService {
	return &HealthService{db: db, timeout: 2 * time.Second}
}

// Check pings the database within a short deadline.
func (s *HealthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.db.PingContext(ctx)
}
