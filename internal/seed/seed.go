package seed

import (
	"github.com/brianvoe/gofakeit/v7"

	"github.com/hackgods/appointment-scheduler/internal/patient"
)

type Registrar interface {
	Register(name string) patient.Patient
}

// Patients registers count patients with generated names.
func Patients(reg Registrar, faker *gofakeit.Faker, count int) []patient.Patient {
	out := make([]patient.Patient, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, reg.Register(faker.Name()))
	}
	return out
}
