// Package mmkv reads and appends values in an MMKV-style append-only
// key-value container without the native library.
//
// Two access paths exist. The raw scanner recovers historical versions of a
// value by searching the file for the key name and balanced JSON array
// delimiters; it tolerates arbitrary binary garbage and is the read path for
// data written by the real store. The record walker and writer understand
// the container framing (little-endian size header followed by
// varint-delimited key/value records) and are used for key listing, direct
// reads, and framing-correct appends.
package mmkv

import (
	"bytes"
	"encoding/json"
)

// maxCandidateWindow bounds how far past a key occurrence the scanner
// searches for a value. Keeps worst-case work linear on large files.
const maxCandidateWindow = 100_000

// Candidate is a byte span suspected to encode a value for a key.
// Produced transiently by Scan and discarded after selection.
type Candidate struct {
	// Start and End are the span's offsets within the scanned buffer.
	Start int
	End   int

	// Raw is the span between and including the array delimiters.
	Raw []byte

	// Elems holds the decoded array elements when Decoded is true.
	Elems []json.RawMessage

	// Decoded reports whether Raw parsed as a JSON array.
	Decoded bool
}

// Scan finds every candidate value for key in buf.
//
// From each literal occurrence of key, it searches forward (within a bounded
// window) for an opening '[', matches it against the corresponding ']' by
// nesting depth, and attempts to decode the span as a JSON array. Occurrences
// without a balanced span inside the window are dropped. Decode failures are
// recorded on the candidate, never fatal: the key name showing up inside
// unrelated binary data is expected.
func Scan(buf []byte, key string) []Candidate {
	needle := []byte(key)
	if len(needle) == 0 {
		return nil
	}

	var cands []Candidate

	for off := 0; ; {
		rel := bytes.Index(buf[off:], needle)
		if rel < 0 {
			break
		}

		pos := off + rel
		off = pos + len(needle)

		if cand, ok := candidateAfter(buf, off); ok {
			cands = append(cands, cand)
		}
	}

	return cands
}

// candidateAfter extracts a candidate starting at buf[from:], bounded by
// maxCandidateWindow. Returns false if no balanced array span exists.
func candidateAfter(buf []byte, from int) (Candidate, bool) {
	limit := from + maxCandidateWindow
	if limit > len(buf) {
		limit = len(buf)
	}

	window := buf[from:limit]

	open := bytes.IndexByte(window, '[')
	if open < 0 {
		return Candidate{}, false
	}

	closing := matchBracket(window, open)
	if closing < 0 {
		// No balanced close before the window end. Partial spans are
		// not worth a decode attempt.
		return Candidate{}, false
	}

	raw := window[open : closing+1]

	cand := Candidate{
		Start: from + open,
		End:   from + closing + 1,
		Raw:   raw,
	}

	var elems []json.RawMessage
	if json.Unmarshal(raw, &elems) == nil {
		cand.Elems = elems
		cand.Decoded = true
	}

	return cand, true
}

// matchBracket returns the index of the ']' matching the '[' at open,
// tracking nesting depth. Returns -1 if the window ends first.
//
// Depth counting is byte-level: a ']' inside a JSON string closes the span
// early and the truncated span then fails to decode. That mirrors how the
// store's own tooling recovers values and is accepted as a heuristic.
func matchBracket(window []byte, open int) int {
	depth := 0

	for idx := open; idx < len(window); idx++ {
		switch window[idx] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return idx
			}
		}
	}

	return -1
}
