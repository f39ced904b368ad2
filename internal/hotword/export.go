package hotword

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
	"github.com/tidwall/pretty"
)

// ErrImportFormat reports an import file that is neither an export
// envelope nor a bare hotword array.
var ErrImportFormat = errors.New("unrecognized import format")

// Export is the envelope written by the export command.
type Export struct {
	ExportedAt string `json:"exported_at"`
	Count      int    `json:"count"`
	Hotwords   List   `json:"hotwords"`
}

// WriteExport writes the list to path as an indented export envelope.
// The file is replaced atomically so a failed export never truncates an
// existing one.
func WriteExport(path string, list List) error {
	if list == nil {
		list = List{}
	}

	env := Export{
		ExportedAt: time.Now().Format(time.RFC3339),
		Count:      len(list),
		Hotwords:   list,
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}

	formatted := pretty.PrettyOptions(buf.Bytes(), &pretty.Options{Indent: "  "})

	if err := atomic.WriteFile(path, bytes.NewReader(formatted)); err != nil {
		return fmt.Errorf("write export %s: %w", path, err)
	}

	return nil
}

// ReadImport reads a hotword list from path. Accepts either the export
// envelope or a bare array, in JSON or JWCC (comments and trailing commas
// tolerated).
func ReadImport(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImportFormat, path, err)
	}

	trimmed := bytes.TrimSpace(standardized)

	if bytes.HasPrefix(trimmed, []byte("[")) {
		list, decodeErr := Decode(trimmed)
		if decodeErr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrImportFormat, path, decodeErr)
		}

		return list, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImportFormat, path, err)
	}

	inner, ok := raw["hotwords"]
	if !ok {
		return nil, fmt.Errorf("%w: %s: no hotwords field", ErrImportFormat, path)
	}

	list, err := Decode(inner)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImportFormat, path, err)
	}

	return list, nil
}
