package api

import (
	"encoding/json"
	"net/http"
	"time"
)

type RegisterPatientRequest struct {
	Name string `json:"name"`
}

type PatientResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ScheduleAppointmentRequest struct {
	PatientID *int64     `json:"patient_id"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

type AppointmentResponse struct {
	PatientID int64     `json:"patient_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Confirmed bool      `json:"confirmed"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}
