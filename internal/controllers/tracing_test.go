package controllers

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		tp.Shutdown(context.Background())
	})
	return recorder
}

func findSpan(recorder *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	for _, span := range recorder.Ended() {
		if span.Name() == name {
			return span
		}
	}
	return nil
}

func TestFailedLoginMarksSpan(t *testing.T) {
	recorder := recordSpans(t)
	f := newFixture(t)
	f.srv.AddUser("ana@example.com", "secret")

	if err := f.session.Login(context.Background(), "ana@example.com", "wrong"); err == nil {
		t.Fatal("Expected login error")
	}

	span := findSpan(recorder, "session.login")
	if span == nil {
		t.Fatal("Expected a session.login span")
	}
	if span.Status().Code != codes.Error {
		t.Errorf("Expected error status, got %v", span.Status())
	}
	if len(span.Events()) == 0 {
		t.Error("Expected the error to be recorded as an event")
	}
}

func TestSearchSpanSucceeds(t *testing.T) {
	recorder := recordSpans(t)
	f := newFixture(t)

	if err := f.discovery.Search(context.Background()); err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	span := findSpan(recorder, "discovery.fetch_page")
	if span == nil {
		t.Fatal("Expected a discovery.fetch_page span")
	}
	if span.Status().Code == codes.Error {
		t.Errorf("Unexpected failed span %v", span.Status())
	}
}
