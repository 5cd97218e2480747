package patient

import "errors"

var ErrPatientNotFound = errors.New("patient not found")

type Patient struct {
	ID   int64
	Name string
}
