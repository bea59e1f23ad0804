package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"go.opentelemetry.io/otel/codes"
)

func TestTracerProviderLogsSpans(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	tp := NewTracerProvider(logger)
	defer tp.Shutdown(context.Background())

	_, span := tp.Tracer("test").Start(context.Background(), "discovery.fetch")
	span.End()

	_, failed := tp.Tracer("test").Start(context.Background(), "session.login")
	failed.SetStatus(codes.Error, "bad credentials")
	failed.RecordError(errors.New("bad credentials"))
	failed.End()

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 span entries, got %d", len(entries))
	}
	if entries[0].Message != "Span finished" || entries[0].Data["span"] != "discovery.fetch" {
		t.Errorf("Unexpected entry %q %v", entries[0].Message, entries[0].Data)
	}
	if entries[1].Message != "Span failed" || entries[1].Data["error"] != "bad credentials" {
		t.Errorf("Unexpected entry %q %v", entries[1].Message, entries[1].Data)
	}
}

func TestTracerProviderSilentAboveDebug(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	tp := NewTracerProvider(logger)
	defer tp.Shutdown(context.Background())

	_, span := tp.Tracer("test").Start(context.Background(), "discovery.fetch")
	span.End()

	if len(hook.AllEntries()) != 0 {
		t.Errorf("Expected no span logs at info level, got %d", len(hook.AllEntries()))
	}
}
