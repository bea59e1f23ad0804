package utils

import (
	"fmt"
	"io"

	"github.com/pkg/browser"
)

// OpenBrowser opens url in the system browser. The launcher's own output is
// discarded so it cannot draw over the terminal UI.
func OpenBrowser(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
