package app

import (
	"context"
	"testing"
)

func TestFlightTryStart(t *testing.T) {
	var f flight

	_, done, ok := f.tryStart(context.Background())
	if !ok || !f.running() {
		t.Fatal("Expected first run to start")
	}
	if _, _, ok := f.tryStart(context.Background()); ok {
		t.Fatal("Expected second run to be rejected")
	}

	done()
	if f.running() {
		t.Error("Expected flight idle after done")
	}
	if _, done, ok := f.tryStart(context.Background()); !ok {
		t.Error("Expected run to start after done")
	} else {
		done()
	}
}

func TestFlightReplace(t *testing.T) {
	var f flight

	first, doneFirst := f.replace(context.Background())
	second, doneSecond := f.replace(context.Background())

	if first.Err() == nil {
		t.Error("Expected first run cancelled")
	}
	if second.Err() != nil {
		t.Error("Second run must stay live")
	}

	// The superseded run finishing must not mark the flight idle
	doneFirst()
	if !f.running() {
		t.Error("Expected flight still running")
	}

	f.stop()
	if second.Err() == nil {
		t.Error("Expected stop to cancel the run")
	}
	doneSecond()
	if f.running() {
		t.Error("Expected flight idle")
	}
}
