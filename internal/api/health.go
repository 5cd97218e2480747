package api

import "net/http"

type HealthHandler struct {
	patients PatientStore
	env      string
	version  string
}

func NewHealthHandler(patients PatientStore, env, version string) *HealthHandler {
	return &HealthHandler{
		patients: patients,
		env:      env,
		version:  version,
	}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Env      string `json:"env,omitempty"`
	Patients int    `json:"patients"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	})
}

// Readiness has no external dependencies to probe; the registry lives in
// process, so it reports its size instead.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ReadinessResponse{
		Status:   "ok",
		Version:  h.version,
		Env:      h.env,
		Patients: h.patients.Len(),
	})
}
