package appointment

import "time"

type ScheduleInput struct {
	PatientID int64
	StartTime time.Time
	EndTime   time.Time
}

// Appointment is created unconfirmed. Confirmation is handled elsewhere.
type Appointment struct {
	PatientID int64
	StartTime time.Time
	EndTime   time.Time
	Confirmed bool
}

func (a *Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}
