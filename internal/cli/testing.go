package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guojun21/wetype-hotwords/internal/hotword"
	"github.com/guojun21/wetype-hotwords/internal/mmkv"
)

// CLI provides a clean interface for running CLI commands in tests.
// It manages a temp directory and environment variables.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI creates a new test CLI with a temp directory. HOME points inside
// the temp dir so global config lookups stay hermetic.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()

	return &CLI{
		t:   t,
		Dir: dir,
		Env: map[string]string{"HOME": dir},
	}
}

// StoreDir returns the store directory used by Run.
func (r *CLI) StoreDir() string {
	return filepath.Join(r.Dir, "mmkv")
}

// StoreID is the store file name used by Run.
const StoreID = "wetype.settings"

// Run executes the CLI with the given args and returns stdout, stderr, and
// exit code. Args should not include "wetype" or the store location flags -
// those are added automatically.
func (r *CLI) Run(args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"wetype", "--store-dir", r.StoreDir(), "--store-id", StoreID}, args...)
	code := Run(nil, &outBuf, &errBuf, fullArgs, r.Env)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the CLI and fails the test if the command returns non-zero.
// Returns trimmed stdout on success.
func (r *CLI) MustRun(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code != 0 {
		r.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail executes the CLI and fails the test if the command succeeds.
// Returns trimmed stderr.
func (r *CLI) MustFail(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code == 0 {
		r.t.Fatalf("command %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// Seed writes list as the current hotword value in the test store.
func (r *CLI) Seed(list hotword.List) {
	r.t.Helper()

	data, err := list.Encode()
	if err != nil {
		r.t.Fatalf("encode seed list: %v", err)
	}

	store := mmkv.Open(r.StoreDir(), StoreID)
	if err := store.SetString(hotword.StoreKey, string(data)); err != nil {
		r.t.Fatalf("seed store: %v", err)
	}
}

// Written reads back the latest hotword value actually written to the
// store, via the framing walker. This is the written state, which can
// differ from what the recovery scanner would select: older, longer
// versions of the list remain in the file and win the completeness
// heuristic.
func (r *CLI) Written() hotword.List {
	r.t.Helper()

	store := mmkv.Open(r.StoreDir(), StoreID)

	value, err := store.GetString(hotword.StoreKey)
	if err != nil {
		r.t.Fatalf("read back store: %v", err)
	}

	list, err := hotword.Decode([]byte(value))
	if err != nil {
		r.t.Fatalf("decode store value: %v", err)
	}

	return list
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
