package appointment

import (
	"time"

	"go.uber.org/zap"
)

type Service struct {
	patients PatientLookup
	log      *zap.Logger
}

func NewService(patients PatientLookup, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		patients: patients,
		log:      log,
	}
}

// ScheduleAppointment validates the requested interval and returns a new
// unconfirmed appointment. Checks run in a fixed order: range, same UTC day,
// then patient existence. The registry is not consulted unless the interval
// is valid.
func (s *Service) ScheduleAppointment(in ScheduleInput) (*Appointment, error) {
	if err := ValidateRange(in.StartTime, in.EndTime); err != nil {
		s.log.Debug("appointment rejected",
			zap.Int64("patient_id", in.PatientID),
			zap.Time("start_time", in.StartTime),
			zap.Time("end_time", in.EndTime),
			zap.Error(err),
		)
		return nil, err
	}

	if !s.patients.Exists(in.PatientID) {
		s.log.Debug("appointment rejected", zap.Int64("patient_id", in.PatientID), zap.Error(ErrUnknownPatient))
		return nil, ErrUnknownPatient
	}

	appt := &Appointment{
		PatientID: in.PatientID,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Confirmed: false,
	}

	s.log.Info("appointment scheduled",
		zap.Int64("patient_id", appt.PatientID),
		zap.Time("start_time", appt.StartTime),
		zap.Duration("duration", appt.Duration()),
	)

	return appt, nil
}

// ValidateRange reports ErrInvalidRange when end is not strictly after start
// and ErrCrossDayRange when the two fall on different UTC calendar days.
func ValidateRange(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidRange
	}
	if !SameUTCDay(start, end) {
		return ErrCrossDayRange
	}
	return nil
}

// SameUTCDay compares the UTC year, month and day fields of a and b.
func SameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
