// Package hotword models the input method's shortcut phrases and the
// operations the tool performs on them.
package hotword

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// StoreKey is the container key the hotword list is stored under.
const StoreKey = "hotWordList"

// RecognizedFields are the element field names that identify a decoded
// array as a hotword list during recovery.
var RecognizedFields = []string{"hw_id", "key", "text"}

// Hotword is one shortcut phrase. Key is the trigger (stored values may
// carry surrounding whitespace; comparisons strip it), Text the expansion.
// ID and Timestamp are opaque and preserved verbatim across round trips.
type Hotword struct {
	ID        string `json:"hw_id"`
	Key       string `json:"key"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// List is an ordered hotword collection, most recent first. Trigger keys
// are not unique; operations tolerate duplicates. A List is rebuilt fresh
// from the store on every invocation, never cached across them.
type List []Hotword

// Decode parses a stored JSON array into a List.
func Decode(data []byte) (List, error) {
	var list List
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode hotword list: %w", err)
	}

	return list, nil
}

// Encode serializes the list as the stored JSON array form: compact,
// elements in order, non-ASCII text kept literal (no HTML escaping), no
// trailing newline. The store's own reader accepts this byte-for-byte.
func (l List) Encode() ([]byte, error) {
	if l == nil {
		l = List{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(l); err != nil {
		return nil, fmt.Errorf("encode hotword list: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// NewID returns a fresh hotword id: current time in decimal milliseconds.
func NewID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// Insert prepends a new hotword with a fresh id. Never fails and never
// checks for trigger-key collisions; duplicates are permitted.
func (l List) Insert(key, text string) List {
	out := make(List, 0, len(l)+1)
	out = append(out, Hotword{ID: NewID(), Key: key, Text: text})

	return append(out, l...)
}

// Remove drops every hotword whose whitespace-stripped trigger equals key.
// The query itself is compared literally, not stripped. Returns the
// filtered list and the number removed; zero removed means not found.
func (l List) Remove(key string) (List, int) {
	out := make(List, 0, len(l))
	removed := 0

	for _, hw := range l {
		if strings.TrimSpace(hw.Key) == key {
			removed++

			continue
		}

		out = append(out, hw)
	}

	return out, removed
}

// Find yields the hotwords whose trigger or text contains term,
// case-insensitively. The sequence is lazy and restartable; it never
// mutates the list.
func (l List) Find(term string) iter.Seq[Hotword] {
	lowered := strings.ToLower(term)

	return func(yield func(Hotword) bool) {
		for _, hw := range l {
			if !strings.Contains(strings.ToLower(hw.Key), lowered) &&
				!strings.Contains(strings.ToLower(hw.Text), lowered) {
				continue
			}

			if !yield(hw) {
				return
			}
		}
	}
}

// DisplayKey returns the stripped trigger, or a placeholder when empty.
func (h Hotword) DisplayKey() string {
	key := strings.TrimSpace(h.Key)
	if key == "" {
		return "(no trigger)"
	}

	return key
}

// Preview returns up to limit runes of the text on one line, newlines
// escaped, with "..." appended when truncated.
func (h Hotword) Preview(limit int) string {
	text := h.Text
	truncated := false

	if runes := []rune(text); len(runes) > limit {
		text = string(runes[:limit])
		truncated = true
	}

	text = strings.ReplaceAll(text, "\n", `\n`)
	if truncated {
		text += "..."
	}

	return text
}
