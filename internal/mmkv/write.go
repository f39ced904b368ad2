package mmkv

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// SetString appends a new record making value the current string value of
// key, in framing the real store's reader accepts.
//
// The fast path appends in place after the used payload and then bumps the
// size header; a record is only visible once the header covers it, so a
// torn append leaves the previous state intact. When the record does not
// fit the file, the container is compacted (latest value per key, stale
// versions of key dropped), grown page-aligned by doubling as needed, and
// replaced atomically.
func (s *Store) SetString(key, value string) error {
	record := appendRecord(nil, key, encodeStringBlob(value))

	buf, err := os.ReadFile(s.path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s.rewrite(nil, nil, record)
	case err != nil:
		return fmt.Errorf("read store %s: %w", s.path, err)
	}

	payload, err := usedPayload(buf)
	if err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}

	if headerSize+len(payload)+len(record) <= len(buf) {
		return s.appendInPlace(len(payload), record)
	}

	values, order := currentValues(payload)

	var compacted []byte

	for _, existing := range order {
		if existing == key {
			continue // superseded by the record being written
		}

		compacted = appendRecord(compacted, existing, values[existing])
	}

	return s.rewrite(compacted, buf, record)
}

// appendInPlace writes record after the used payload, then publishes it by
// updating the size header. Data before header, never the other way round.
func (s *Store) appendInPlace(used int, record []byte) error {
	file, err := os.OpenFile(s.path, os.O_WRONLY, filePerms)
	if err != nil {
		return fmt.Errorf("open store %s: %w", s.path, err)
	}

	defer func() { _ = file.Close() }()

	if _, err := file.WriteAt(record, int64(headerSize+used)); err != nil {
		return fmt.Errorf("append to store %s: %w", s.path, err)
	}

	var header [headerSize]byte

	binary.LittleEndian.PutUint32(header[:], uint32(used+len(record)))

	if _, err := file.WriteAt(header[:], 0); err != nil {
		return fmt.Errorf("update store header %s: %w", s.path, err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync store %s: %w", s.path, err)
	}

	return nil
}

// rewrite builds a fresh container image holding payload plus record and
// replaces the file atomically. The new image keeps the old file size when
// sufficient, otherwise grows by doubling from one page.
func (s *Store) rewrite(payload, old []byte, record []byte) error {
	payload = append(payload, record...)

	size := pageSize
	if len(old) > size {
		size = len(old)
	}

	for size < headerSize+len(payload) {
		size *= 2
	}

	image := make([]byte, size)
	binary.LittleEndian.PutUint32(image, uint32(len(payload)))
	copy(image[headerSize:], payload)

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerms); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(image)); err != nil {
		return fmt.Errorf("write store %s: %w", s.path, err)
	}

	return nil
}
