package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/hackgods/appointment-scheduler/internal/config"
	"github.com/hackgods/appointment-scheduler/internal/logger"
)

type outcome int

const (
	outcomeOK outcome = iota
	outcomeRejected
	outcomeError
)

type DataPool struct {
	mu       sync.RWMutex
	patients []int64
}

func (dp *DataPool) AddPatient(id int64) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.patients = append(dp.patients, id)
}

func (dp *DataPool) RandomPatient(f *gofakeit.Faker) (int64, bool) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	if len(dp.patients) == 0 {
		return 0, false
	}
	return dp.patients[f.Number(0, len(dp.patients)-1)], true
}

// MaxPatient is one past the highest id ever seen, used to build unknown ids.
func (dp *DataPool) MaxPatient() int64 {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	var hi int64
	for _, id := range dp.patients {
		if id > hi {
			hi = id
		}
	}
	return hi
}

type OperationMetrics struct {
	Total     int64
	OK        int64
	Rejected  int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, o outcome) {
	atomic.AddInt64(&om.Total, 1)
	switch o {
	case outcomeOK:
		atomic.AddInt64(&om.OK, 1)
	case outcomeRejected:
		atomic.AddInt64(&om.Rejected, 1)
	default:
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]
	p50 = latencies[percentileIndex(len(latencies), 50)]
	p95 = latencies[percentileIndex(len(latencies), 95)]

	return avg, min, max, p50, p95
}

func percentileIndex(n, p int) int {
	idx := n * p / 100
	if idx >= n {
		idx = n - 1
	}
	return idx
}

type Metrics struct {
	Register        OperationMetrics
	Schedule        OperationMetrics
	ScheduleInvalid OperationMetrics
	ReadPatient     OperationMetrics
	ListPatients    OperationMetrics
}

type Simulator struct {
	config  config.Simulation
	pool    *DataPool
	client  *http.Client
	log     *zap.Logger
	metrics Metrics
}

func main() {
	zl, err := logger.New("dev", "info")
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	cfg, err := config.LoadSimulation()
	if err != nil {
		zl.Fatal("invalid simulation config", zap.Error(err))
	}

	zl.Info("simulator starting",
		zap.String("api", cfg.APIBaseURL),
		zap.Duration("duration", cfg.Duration),
		zap.Int("workers", cfg.Workers),
		zap.Float64("register_ratio", cfg.RegisterRatio),
		zap.Float64("schedule_ratio", cfg.ScheduleRatio),
		zap.Float64("read_ratio", cfg.ReadRatio),
	)

	sim := &Simulator{
		config: cfg,
		pool:   &DataPool{},
		client: &http.Client{Timeout: 10 * time.Second},
		log:    zl,
	}

	sim.Run()
	sim.PrintReport()
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	s.log.Info("simulation complete")
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	f := gofakeit.New(uint64(time.Now().UnixNano()) + uint64(workerID))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		r := f.Float64()
		switch {
		case r < s.config.RegisterRatio:
			s.doRegister(ctx, f)
		case r < s.config.RegisterRatio+s.config.ScheduleRatio:
			if f.Float64() < s.config.InvalidRatio {
				s.doScheduleInvalid(ctx, f)
			} else {
				s.doSchedule(ctx, f)
			}
		default:
			if f.Bool() {
				s.doReadPatient(ctx, f)
			} else {
				s.doListPatients(ctx)
			}
		}
	}
}

func (s *Simulator) doRegister(ctx context.Context, f *gofakeit.Faker) {
	start := time.Now()
	status, body, err := s.send(ctx, http.MethodPost, "/patients", map[string]string{"name": f.Name()})
	latency := time.Since(start)

	if err != nil || status != http.StatusCreated {
		s.metrics.Register.Record(latency, classify(status, err))
		return
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil || created.ID == 0 {
		s.metrics.Register.Record(latency, outcomeError)
		return
	}

	s.pool.AddPatient(created.ID)
	s.metrics.Register.Record(latency, outcomeOK)
}

func (s *Simulator) doSchedule(ctx context.Context, f *gofakeit.Faker) {
	patientID, ok := s.pool.RandomPatient(f)
	if !ok {
		return
	}

	startAt, endAt := sameDayInterval(f)

	start := time.Now()
	status, _, err := s.send(ctx, http.MethodPost, "/appointments", scheduleBody(patientID, startAt, endAt))
	latency := time.Since(start)

	if err == nil && status != http.StatusCreated && status < 500 {
		s.log.Warn("valid appointment rejected",
			zap.Int64("patient_id", patientID),
			zap.Time("start_time", startAt),
			zap.Time("end_time", endAt),
			zap.Int("status", status),
		)
	}
	s.metrics.Schedule.Record(latency, classify(status, err))
}

// doScheduleInvalid sends a request the server must refuse. A 201 here is
// counted as an error.
func (s *Simulator) doScheduleInvalid(ctx context.Context, f *gofakeit.Faker) {
	patientID, ok := s.pool.RandomPatient(f)
	if !ok {
		return
	}

	startAt, endAt := sameDayInterval(f)
	switch f.Number(0, 2) {
	case 0:
		startAt, endAt = endAt, startAt
	case 1:
		endAt = startAt.Add(24 * time.Hour)
	default:
		patientID = s.pool.MaxPatient() + int64(f.Number(1000, 100000))
	}

	start := time.Now()
	status, _, err := s.send(ctx, http.MethodPost, "/appointments", scheduleBody(patientID, startAt, endAt))
	latency := time.Since(start)

	o := outcomeError
	if err == nil && (status == http.StatusBadRequest || status == http.StatusNotFound) {
		o = outcomeOK
	} else if err == nil && status == http.StatusTooManyRequests {
		o = outcomeRejected
	}
	s.metrics.ScheduleInvalid.Record(latency, o)
}

func (s *Simulator) doReadPatient(ctx context.Context, f *gofakeit.Faker) {
	patientID, ok := s.pool.RandomPatient(f)
	if !ok {
		return
	}

	start := time.Now()
	status, _, err := s.send(ctx, http.MethodGet, fmt.Sprintf("/patients/%d", patientID), nil)
	s.metrics.ReadPatient.Record(time.Since(start), classify(status, err))
}

func (s *Simulator) doListPatients(ctx context.Context) {
	start := time.Now()
	status, _, err := s.send(ctx, http.MethodGet, "/patients", nil)
	s.metrics.ListPatients.Record(time.Since(start), classify(status, err))
}

func (s *Simulator) send(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.config.APIBaseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	return resp.StatusCode, data, err
}

func classify(status int, err error) outcome {
	switch {
	case err != nil || status >= 500:
		return outcomeError
	case status >= 400:
		return outcomeRejected
	default:
		return outcomeOK
	}
}

// sameDayInterval picks a UTC day in the coming year and an interval of
// 15 minutes to 3 hours that ends before midnight.
func sameDayInterval(f *gofakeit.Faker) (time.Time, time.Time) {
	day := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, f.Number(1, 365))
	length := time.Duration(f.Number(1, 12)) * 15 * time.Minute
	latest := 24*time.Hour - length - time.Minute
	offset := time.Duration(f.Number(0, int(latest/time.Minute))) * time.Minute
	start := day.Add(offset)
	return start, start.Add(length)
}

func scheduleBody(patientID int64, start, end time.Time) map[string]any {
	return map[string]any{
		"patient_id": patientID,
		"start_time": start.Format(time.RFC3339),
		"end_time":   end.Format(time.RFC3339),
	}
}

func (s *Simulator) PrintReport() {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("SIMULATION REPORT")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Duration: %s\n", s.config.Duration)
	fmt.Printf("Workers: %d\n", s.config.Workers)
	fmt.Println()

	printOperationReport("Register patient", &s.metrics.Register)
	printOperationReport("Schedule appointment", &s.metrics.Schedule)
	printOperationReport("Schedule invalid (expect refusal)", &s.metrics.ScheduleInvalid)
	printOperationReport("Read patient", &s.metrics.ReadPatient)
	printOperationReport("List patients", &s.metrics.ListPatients)
}

func printOperationReport(name string, om *OperationMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		return
	}

	ok := atomic.LoadInt64(&om.OK)
	rejected := atomic.LoadInt64(&om.Rejected)
	failed := atomic.LoadInt64(&om.Error)

	avg, min, max, p50, p95 := om.Stats()

	fmt.Printf("%s:\n", name)
	fmt.Printf("  Total: %d\n", total)
	fmt.Printf("  OK: %d (%.1f%%)\n", ok, float64(ok)/float64(total)*100)
	if rejected > 0 {
		fmt.Printf("  Rejected: %d (%.1f%%)\n", rejected, float64(rejected)/float64(total)*100)
	}
	if failed > 0 {
		fmt.Printf("  Errors: %d (%.1f%%)\n", failed, float64(failed)/float64(total)*100)
	}
	fmt.Printf("  Latency: avg=%s min=%s max=%s p50=%s p95=%s\n",
		avg.Round(time.Microsecond), min.Round(time.Microsecond), max.Round(time.Microsecond),
		p50.Round(time.Microsecond), p95.Round(time.Microsecond))
	fmt.Println()
}
