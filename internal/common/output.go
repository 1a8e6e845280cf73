package common

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteOutput renders v as yaml (the default) or json.
func WriteOutput(w io.Writer, v any, format string) error {
	var (
		outputData []byte
		err        error
	)
	switch format {
	case "json":
		outputData, err = json.MarshalIndent(v, "", "  ")
		if err == nil {
			outputData = append(outputData, '\n')
		}
	case "yaml", "":
		outputData, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("invalid format %q (valid: yaml, json)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = w.Write(outputData)
	return err
}
