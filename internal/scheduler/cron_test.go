package scheduler

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type countingProber struct {
	calls atomic.Int32
}

func (p *countingProber) RefreshSession(ctx context.Context) error {
	p.calls.Add(1)
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSchedulerRunsProbe(t *testing.T) {
	prober := &countingProber{}
	s := NewScheduler(prober, "@every 1s", quietLogger())
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for prober.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Probe never ran")
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(&countingProber{}, "not a schedule", quietLogger())
	if err := s.Start(); err == nil {
		t.Fatal("Expected invalid schedule error")
	}
}

func TestSchedulerDisabled(t *testing.T) {
	prober := &countingProber{}
	s := NewScheduler(prober, "", quietLogger())
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Stop()
	if prober.calls.Load() != 0 {
		t.Error("Disabled scheduler ran the probe")
	}
}
