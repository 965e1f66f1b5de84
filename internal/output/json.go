package output

import (
	"encoding/json"
	"fmt"

	"github.com/ncampost/compute-manager/internal/machine"
)

// JSONFormatter formats instances as JSON.
type JSONFormatter struct{}

// FormatInstance formats a single instance as JSON.
func (f *JSONFormatter) FormatInstance(info *machine.Info) (string, error) {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal instance to JSON: %w", err)
	}

	return string(data) + "\n", nil
}

// FormatInstanceList formats a list of instances as a JSON array.
func (f *JSONFormatter) FormatInstanceList(infos []machine.Info) (string, error) {
	if len(infos) == 0 {
		return "[]\n", nil
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal instances to JSON: %w", err)
	}

	return string(data) + "\n", nil
}
