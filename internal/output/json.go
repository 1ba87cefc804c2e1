// Package output prints command results as JSON for both humans and
// machine consumers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

var Writer io.Writer = os.Stdout

func JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	_, err = fmt.Fprintln(Writer, string(data))
	return err
}

// JSONCompact prints single-line JSON, for piping into other tools.
func JSONCompact(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	_, err = fmt.Fprintln(Writer, string(data))
	return err
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func JSONError(msg, details string) {
	_ = JSON(ErrorResponse{Error: msg, Details: details})
}
