package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// xprintidleProvider shells out to xprintidle, which only works under X11.
type xprintidleProvider struct {
	path string
}

func newIdleProvider() IdleProvider {
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		return IdleProviderFunc(unsupportedIdle)
	}
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return IdleProviderFunc(unsupportedIdle)
	}
	return &xprintidleProvider{path: path}
}

func (provider *xprintidleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(string(output))
}

func parseIdleMillis(raw string) (time.Duration, error) {
	idleMillis, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

func unsupportedIdle() (time.Duration, error) {
	return 0, ErrIdleUnsupported
}
