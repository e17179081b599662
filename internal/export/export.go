// Package export serializes a finished session's series to disk.
package export

import (
	"encoding/json"
	"fmt"
	"os"
)

// Record is the export artifact: the generated input series and the
// filtered output received from the device, in order.
type Record struct {
	Input  []float32 `json:"input"`
	Output []float32 `json:"output"`
}

// Write serializes the record as JSON to path, replacing any previous
// file. Failures are reported to the caller and are not fatal to the
// session.
func Write(path string, input, output []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	enc := json.NewEncoder(f)
	if err := enc.Encode(Record{Input: input, Output: output}); err != nil {
		f.Close()
		return fmt.Errorf("export: encode: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
