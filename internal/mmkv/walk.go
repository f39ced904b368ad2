package mmkv

import (
	"encoding/binary"
	"fmt"
	"iter"
)

// Container framing. The file starts with a little-endian uint32 giving the
// number of payload bytes in use; the payload is a sequence of records, each
// a length-delimited key followed by a length-delimited value blob. String
// values carry one more length prefix inside the blob. The file itself is
// page-aligned and zero-padded past the used payload.
const (
	headerSize = 4
	pageSize   = 4096
)

// usedPayload returns the in-use payload slice of a raw container image.
func usedPayload(buf []byte) ([]byte, error) {
	if len(buf) < headerSize {
		return nil, fmt.Errorf("%w: file shorter than header", ErrCorruptHeader)
	}

	used := int(binary.LittleEndian.Uint32(buf))
	if used > len(buf)-headerSize {
		return nil, fmt.Errorf("%w: size %d exceeds file length %d", ErrCorruptHeader, used, len(buf))
	}

	return buf[headerSize : headerSize+used], nil
}

// records iterates the (key, value blob) pairs of a payload in append
// order. Later records for the same key supersede earlier ones; callers
// wanting current values must take the last pair per key. Iteration stops
// silently at the first malformed record: the walk is best-effort over a
// format owned by the real store.
func records(payload []byte) iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		rest := payload

		for len(rest) > 0 {
			keyLen, n := binary.Uvarint(rest)
			if n <= 0 || keyLen > uint64(len(rest)-n) {
				return
			}

			key := string(rest[n : n+int(keyLen)])
			rest = rest[n+int(keyLen):]

			blobLen, n := binary.Uvarint(rest)
			if n <= 0 || blobLen > uint64(len(rest)-n) {
				return
			}

			blob := rest[n : n+int(blobLen)]
			rest = rest[n+int(blobLen):]

			if !yield(key, blob) {
				return
			}
		}
	}
}

// currentValues walks a payload and returns the latest value blob per key,
// plus the keys in first-appearance order.
func currentValues(payload []byte) (map[string][]byte, []string) {
	values := make(map[string][]byte)

	var order []string

	for key, blob := range records(payload) {
		if _, seen := values[key]; !seen {
			order = append(order, key)
		}

		values[key] = blob
	}

	return values, order
}

// decodeStringBlob unwraps the inner length prefix of a string value blob.
func decodeStringBlob(blob []byte) (string, bool) {
	strLen, n := binary.Uvarint(blob)
	if n <= 0 || strLen != uint64(len(blob)-n) {
		return "", false
	}

	return string(blob[n:]), true
}

// encodeStringBlob wraps s with its inner length prefix.
func encodeStringBlob(s string) []byte {
	blob := make([]byte, 0, binary.MaxVarintLen32+len(s))
	blob = binary.AppendUvarint(blob, uint64(len(s)))

	return append(blob, s...)
}

// appendRecord appends the framed (key, blob) record to dst.
func appendRecord(dst []byte, key string, blob []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(key)))
	dst = append(dst, key...)
	dst = binary.AppendUvarint(dst, uint64(len(blob)))

	return append(dst, blob...)
}
