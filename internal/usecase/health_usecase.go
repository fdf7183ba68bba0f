package usecase

import (
	"context"
	"time"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	checks map[string]HealthCheck
}

// NewHealthUsecase takes named probes; a nil probe marks the component as disabled.
func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok"}
	healthy := true
	for name, check := range u.checks {
		switch {
		case check == nil:
			status[name] = "disabled"
		case check(ctx) != nil:
			status[name] = "down"
			healthy = false
		default:
			status[name] = "up"
		}
	}
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}
