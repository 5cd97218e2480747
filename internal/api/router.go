package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hackgods/appointment-scheduler/internal/appointment"
	"github.com/hackgods/appointment-scheduler/internal/metrics"
	"github.com/hackgods/appointment-scheduler/internal/patient"
)

type PatientStore interface {
	Register(name string) patient.Patient
	Get(id int64) (patient.Patient, error)
	List() []patient.Patient
	Len() int
}

type Scheduler interface {
	ScheduleAppointment(in appointment.ScheduleInput) (*appointment.Appointment, error)
}

type RouterConfig struct {
	Patients    PatientStore
	Scheduler   Scheduler
	Metrics     *metrics.Collector
	RateLimiter *RateLimiter // optional

	// TrustProxyHeaders rewrites RemoteAddr from X-Forwarded-For / X-Real-IP.
	// Leave off unless a trusted proxy sets those headers, otherwise clients
	// can pick their own rate limit key.
	TrustProxyHeaders bool
	Logger      *zap.Logger
	Env         string
	Version     string
}

func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	if cfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(log))
	r.Use(MetricsMiddleware(cfg.Metrics))
	r.Use(middleware.Recoverer)

	health := NewHealthHandler(cfg.Patients, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())

	r.Group(func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware(cfg.Metrics))
		}

		r.Post("/patients", registerPatientHandler(cfg.Patients, cfg.Metrics))
		r.Get("/patients", listPatientsHandler(cfg.Patients))
		r.Get("/patients/{id}", getPatientHandler(cfg.Patients))

		r.Post("/appointments", scheduleAppointmentHandler(cfg.Scheduler, cfg.Metrics))
	})

	return r
}
