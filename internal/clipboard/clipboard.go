// Package clipboard copies text to the system clipboard through the
// platform's clipboard utility.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Copy places text on the system clipboard. On Linux it tries the
// common utilities in order and reports what to install when none is
// present.
func Copy(text string) error {
	switch runtime.GOOS {
	case "darwin":
		return pipe("pbcopy", nil, text)
	case "windows":
		return pipe("clip", nil, text)
	case "linux":
		return copyLinux(text)
	default:
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
}

func copyLinux(text string) error {
	candidates := [][]string{
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	}
	for _, candidate := range candidates {
		if _, err := exec.LookPath(candidate[0]); err != nil {
			continue
		}
		return pipe(candidate[0], candidate[1:], text)
	}
	return fmt.Errorf("no clipboard utility found; install xclip, xsel, or wl-clipboard")
}

func pipe(name string, args []string, text string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}
