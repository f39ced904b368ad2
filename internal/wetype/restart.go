package wetype

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrRestartTimeout reports that the restart command outlived its timeout.
var ErrRestartTimeout = errors.New("restart signal timed out")

// Restart signals the input method to restart by running the configured
// restart command, bounded by the configured timeout. Best effort and
// fire-and-forget: a non-zero exit is tolerated (the process may simply
// not be running). Callers must treat a returned error as a warning only;
// by the time Restart runs the store mutation is already committed and is
// never rolled back.
func Restart(ctx context.Context, cfg Config) error {
	argv := strings.Fields(cfg.RestartCommand)
	if len(argv) == 0 {
		return errors.New("restart command is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.RestartTimeout))
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return fmt.Errorf("%w after %s: %s", ErrRestartTimeout, time.Duration(cfg.RestartTimeout), cfg.RestartCommand)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// killall exits non-zero when no process matched. Nothing to
		// restart is a success for our purposes.
		return nil
	}

	return fmt.Errorf("restart command %q: %w", cfg.RestartCommand, err)
}
