package utils

import (
	"errors"
	"os/exec"
	"runtime"
	"testing"
)

func TestOpenBrowserWithoutLauncher(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("launcher lookup via PATH is linux specific")
	}
	t.Setenv("PATH", t.TempDir())

	err := OpenBrowser("http://localhost:5000/auth/google")
	if !errors.Is(err, exec.ErrNotFound) {
		t.Fatalf("Expected a missing launcher error, got %v", err)
	}
}
