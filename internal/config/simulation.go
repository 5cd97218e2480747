package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
)

// Simulation drives cmd/simulate against a running api-server.
type Simulation struct {
	APIBaseURL    string
	Duration      time.Duration
	Workers       int
	RegisterRatio float64
	ScheduleRatio float64
	ReadRatio     float64
	InvalidRatio  float64 // share of schedule calls sent with a bad interval or patient
}

func LoadSimulation() (Simulation, error) {
	_ = godotenv.Load()

	cfg := Simulation{
		APIBaseURL: getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
	}

	var err error
	if cfg.Duration, err = getDuration("SIM_DURATION", 30*time.Second); err != nil {
		return Simulation{}, err
	}
	if cfg.Workers, err = getInt("SIM_WORKERS", 10); err != nil {
		return Simulation{}, err
	}
	if cfg.RegisterRatio, err = getFloat("SIM_REGISTER_RATIO", 0.2); err != nil {
		return Simulation{}, err
	}
	if cfg.ScheduleRatio, err = getFloat("SIM_SCHEDULE_RATIO", 0.5); err != nil {
		return Simulation{}, err
	}
	if cfg.ReadRatio, err = getFloat("SIM_READ_RATIO", 0.3); err != nil {
		return Simulation{}, err
	}
	if cfg.InvalidRatio, err = getFloat("SIM_INVALID_RATIO", 0.1); err != nil {
		return Simulation{}, err
	}

	if cfg.Workers <= 0 {
		return Simulation{}, errors.New("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return Simulation{}, errors.New("SIM_DURATION must be > 0")
	}
	if cfg.InvalidRatio < 0 || cfg.InvalidRatio > 1 {
		return Simulation{}, errors.New("SIM_INVALID_RATIO must be within [0, 1]")
	}

	total := cfg.RegisterRatio + cfg.ScheduleRatio + cfg.ReadRatio
	if total <= 0 {
		return Simulation{}, errors.New("at least one of SIM_REGISTER_RATIO, SIM_SCHEDULE_RATIO, SIM_READ_RATIO must be > 0")
	}
	cfg.RegisterRatio /= total
	cfg.ScheduleRatio /= total
	cfg.ReadRatio /= total

	return cfg, nil
}
