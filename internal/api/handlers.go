package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hackgods/appointment-scheduler/internal/appointment"
	"github.com/hackgods/appointment-scheduler/internal/metrics"
	"github.com/hackgods/appointment-scheduler/internal/patient"
)

func registerPatientHandler(patients PatientStore, m *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p := patients.Register(req.Name)

		m.PatientsRegisteredTotal.Inc()
		m.PatientsKnown.Inc()

		writeJSON(w, http.StatusCreated, PatientResponse{ID: p.ID, Name: p.Name})
	}
}

func getPatientHandler(patients PatientStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be an integer")
			return
		}

		p, err := patients.Get(id)
		if err != nil {
			if errors.Is(err, patient.ErrPatientNotFound) {
				writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, PatientResponse{ID: p.ID, Name: p.Name})
	}
}

func listPatientsHandler(patients PatientStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := patients.List()

		resp := make([]PatientResponse, 0, len(list))
		for _, p := range list {
			resp = append(resp, PatientResponse{ID: p.ID, Name: p.Name})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func scheduleAppointmentHandler(svc Scheduler, m *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScheduleAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON; times must be RFC 3339")
			return
		}
		if req.PatientID == nil || req.StartTime == nil || req.EndTime == nil {
			writeError(w, http.StatusBadRequest, "missing_field", "patient_id, start_time and end_time are required")
			return
		}

		appt, err := svc.ScheduleAppointment(appointment.ScheduleInput{
			PatientID: *req.PatientID,
			StartTime: *req.StartTime,
			EndTime:   *req.EndTime,
		})
		if err != nil {
			m.AppointmentsTotal.WithLabelValues(handleScheduleError(w, err)).Inc()
			return
		}

		m.AppointmentsTotal.WithLabelValues("scheduled").Inc()

		writeJSON(w, http.StatusCreated, AppointmentResponse{
			PatientID: appt.PatientID,
			StartTime: appt.StartTime,
			EndTime:   appt.EndTime,
			Confirmed: appt.Confirmed,
		})
	}
}

// handleScheduleError writes the error response and returns its code.
func handleScheduleError(w http.ResponseWriter, err error) string {
	var status int
	var code string

	switch {
	case errors.Is(err, appointment.ErrInvalidRange):
		status, code = http.StatusBadRequest, "invalid_range"
	case errors.Is(err, appointment.ErrCrossDayRange):
		status, code = http.StatusBadRequest, "cross_day_range"
	case errors.Is(err, appointment.ErrUnknownPatient):
		status, code = http.StatusNotFound, "patient_not_found"
	default:
		status, code = http.StatusInternalServerError, "internal_error"
	}

	writeError(w, status, code, err.Error())
	return code
}
