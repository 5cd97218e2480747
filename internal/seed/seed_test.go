package seed

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/hackgods/appointment-scheduler/internal/patient"
)

func TestPatients(t *testing.T) {
	reg := patient.NewRegistry()

	seeded := Patients(reg, gofakeit.New(7), 50)

	if len(seeded) != 50 || reg.Len() != 50 {
		t.Fatalf("expected 50 patients, got seeded=%d registry=%d", len(seeded), reg.Len())
	}
	for i, p := range seeded {
		if p.ID != int64(i+1) {
			t.Fatalf("expected id %d, got %d", i+1, p.ID)
		}
		if p.Name == "" {
			t.Fatalf("patient %d has empty name", p.ID)
		}
		if !reg.Exists(p.ID) {
			t.Fatalf("patient %d not in registry", p.ID)
		}
	}
}

func TestPatientsIsDeterministicForSeed(t *testing.T) {
	a := Patients(patient.NewRegistry(), gofakeit.New(42), 5)
	b := Patients(patient.NewRegistry(), gofakeit.New(42), 5)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("position %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPatientsZero(t *testing.T) {
	reg := patient.NewRegistry()
	if got := Patients(reg, gofakeit.New(1), 0); len(got) != 0 || reg.Len() != 0 {
		t.Fatalf("expected nothing registered, got %d", len(got))
	}
}
