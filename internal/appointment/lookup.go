package appointment

import "errors"

var (
	ErrInvalidRange   = errors.New("appointment's endTime should be after startTime")
	ErrCrossDayRange  = errors.New("appointment's endTime should be in the same day as start time's")
	ErrUnknownPatient = errors.New("patient does not exist")
)

// PatientLookup is the only thing the scheduler needs from the patient registry.
type PatientLookup interface {
	Exists(patientID int64) bool
}
