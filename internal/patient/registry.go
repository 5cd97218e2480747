package patient

import "sync"

// Registry keeps patients in memory for the lifetime of the process.
// Ids start at 1 and are never reused.
type Registry struct {
	mu       sync.RWMutex
	patients []Patient
	index    map[int64]int
	nextID   int64
}

func NewRegistry() *Registry {
	return &Registry{
		index:  make(map[int64]int),
		nextID: 1,
	}
}

// Register stores a new patient under the next sequential id.
// Names are not required to be unique.
func (r *Registry) Register(name string) Patient {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := Patient{ID: r.nextID, Name: name}
	r.nextID++

	r.index[p.ID] = len(r.patients)
	r.patients = append(r.patients, p)

	return p
}

func (r *Registry) Exists(id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[id]
	return ok
}

func (r *Registry) Get(id int64) (Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return Patient{}, ErrPatientNotFound
	}
	return r.patients[i], nil
}

// List returns a copy of all patients in registration order.
func (r *Registry) List() []Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Patient, len(r.patients))
	copy(out, r.patients)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patients)
}
