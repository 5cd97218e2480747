package main

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/hackgods/appointment-scheduler/internal/appointment"
)

func TestSameDayIntervalIsSchedulable(t *testing.T) {
	f := gofakeit.New(3)
	for i := 0; i < 1000; i++ {
		start, end := sameDayInterval(f)
		if err := appointment.ValidateRange(start, end); err != nil {
			t.Fatalf("start=%s end=%s: %v", start, end, err)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		err    error
		want   outcome
	}{
		{http.StatusCreated, nil, outcomeOK},
		{http.StatusBadRequest, nil, outcomeRejected},
		{http.StatusTooManyRequests, nil, outcomeRejected},
		{http.StatusInternalServerError, nil, outcomeError},
		{0, errors.New("dial tcp: refused"), outcomeError},
	}
	for _, tc := range tests {
		if got := classify(tc.status, tc.err); got != tc.want {
			t.Fatalf("classify(%d, %v) = %v, want %v", tc.status, tc.err, got, tc.want)
		}
	}
}

func TestOperationMetricsStats(t *testing.T) {
	var om OperationMetrics
	for i := 1; i <= 100; i++ {
		om.Record(time.Duration(i)*time.Millisecond, outcomeOK)
	}
	om.Record(time.Second, outcomeError)

	avg, min, max, p50, p95 := om.Stats()
	if om.Total != 101 || om.OK != 100 || om.Error != 1 {
		t.Fatalf("unexpected counts: total=%d ok=%d err=%d", om.Total, om.OK, om.Error)
	}
	if min != time.Millisecond || max != time.Second {
		t.Fatalf("unexpected min/max %s/%s", min, max)
	}
	if p50 != 51*time.Millisecond || p95 != 96*time.Millisecond {
		t.Fatalf("unexpected percentiles p50=%s p95=%s", p50, p95)
	}
	if avg <= 0 {
		t.Fatalf("unexpected avg %s", avg)
	}
}

func TestDataPoolMaxPatient(t *testing.T) {
	var dp DataPool
	if _, ok := dp.RandomPatient(gofakeit.New(1)); ok {
		t.Fatal("expected empty pool")
	}
	dp.AddPatient(3)
	dp.AddPatient(9)
	dp.AddPatient(4)
	if got := dp.MaxPatient(); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
}
