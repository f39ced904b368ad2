package wetype

import (
	"context"
	"errors"
	"testing"
	"time"
)

func restartConfig(command string, timeout time.Duration) Config {
	return Config{
		RestartCommand: command,
		RestartTimeout: Duration(timeout),
	}
}

func TestRestartSucceeds(t *testing.T) {
	t.Parallel()

	err := Restart(context.Background(), restartConfig("true", time.Second))
	if err != nil {
		t.Errorf("Restart = %v, want nil", err)
	}
}

func TestRestartToleratesNonZeroExit(t *testing.T) {
	t.Parallel()

	// killall exits non-zero when no process matched; treated as success.
	err := Restart(context.Background(), restartConfig("false", time.Second))
	if err != nil {
		t.Errorf("Restart = %v, want nil for non-zero exit", err)
	}
}

func TestRestartTimesOut(t *testing.T) {
	t.Parallel()

	err := Restart(context.Background(), restartConfig("sleep 30", 50*time.Millisecond))
	if !errors.Is(err, ErrRestartTimeout) {
		t.Errorf("Restart = %v, want ErrRestartTimeout", err)
	}
}

func TestRestartSpawnFailure(t *testing.T) {
	t.Parallel()

	err := Restart(context.Background(), restartConfig("/nonexistent-restart-helper", time.Second))
	if err == nil {
		t.Error("Restart should report a command that cannot start")
	}

	if errors.Is(err, ErrRestartTimeout) {
		t.Error("spawn failure must not be reported as a timeout")
	}
}

func TestRestartEmptyCommand(t *testing.T) {
	t.Parallel()

	err := Restart(context.Background(), restartConfig("   ", time.Second))
	if err == nil {
		t.Error("Restart should reject an empty command")
	}
}
