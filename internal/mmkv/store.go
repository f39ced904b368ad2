package mmkv

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Store is a path-bound handle to one container file. It holds no open file
// descriptor and no cached state: every operation re-reads the file, so a
// Store is as fresh as its last call. Concurrent invocations against the
// same file are not guarded (single-writer assumption).
type Store struct {
	path string
}

// Open returns a Store for the container id inside dir. The file does not
// have to exist yet; reads report that, writes create it.
func Open(dir, id string) *Store {
	return &Store{path: filepath.Join(dir, id)}
}

// Path returns the container file path.
func (s *Store) Path() string {
	return s.path
}

// Snapshot reads the whole container file into an immutable buffer.
func (s *Store) Snapshot() ([]byte, error) {
	buf, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", s.path, err)
	}

	return buf, nil
}

// CurrentValue scans for key and selects the authoritative candidate under
// policy. Returns ErrNoValue when the key never occurs, ErrUnrecoverable
// when occurrences exist but none yields a valid decoded value.
func (s *Store) CurrentValue(key string, policy Policy) (Candidate, error) {
	buf, err := s.Snapshot()
	if err != nil {
		return Candidate{}, err
	}

	cands := Scan(buf, key)
	if len(cands) == 0 {
		return Candidate{}, fmt.Errorf("%w: %s", ErrNoValue, key)
	}

	cand, ok := SelectAuthoritative(cands, policy)
	if !ok {
		return Candidate{}, fmt.Errorf("%w: %s", ErrUnrecoverable, key)
	}

	return cand, nil
}

// Keys walks the container framing and returns all key names, sorted.
func (s *Store) Keys() ([]string, error) {
	buf, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	payload, err := usedPayload(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	values, _ := currentValues(payload)

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys, nil
}

// GetString walks the container framing and returns the latest string
// value for key. Returns ErrKeyNotFound when the key has no record or its
// blob is not a framed string.
func (s *Store) GetString(key string) (string, error) {
	buf, err := s.Snapshot()
	if err != nil {
		return "", err
	}

	payload, err := usedPayload(buf)
	if err != nil {
		return "", fmt.Errorf("%s: %w", s.path, err)
	}

	values, _ := currentValues(payload)

	blob, ok := values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	str, ok := decodeStringBlob(blob)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string value", ErrKeyNotFound, key)
	}

	return str, nil
}
