package io

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON encodes v as indented JSON to w, followed by a newline.
func WriteJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON atomically writes v as indented JSON to path.
func ExportJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return WriteFile(path, append(data, '\n'), DefaultPerm)
}
