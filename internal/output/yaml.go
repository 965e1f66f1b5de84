package output

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ncampost/compute-manager/internal/machine"
)

// YAMLFormatter formats instances as YAML.
type YAMLFormatter struct{}

// FormatInstance formats a single instance as YAML.
func (f *YAMLFormatter) FormatInstance(info *machine.Info) (string, error) {
	data, err := yaml.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("failed to marshal instance to YAML: %w", err)
	}

	return string(data), nil
}

// FormatInstanceList formats a list of instances as a YAML stream
// (multiple documents separated by ---).
func (f *YAMLFormatter) FormatInstanceList(infos []machine.Info) (string, error) {
	if len(infos) == 0 {
		return "", nil
	}

	var buf bytes.Buffer

	for i, info := range infos {
		data, err := yaml.Marshal(info)
		if err != nil {
			return "", fmt.Errorf("failed to marshal instance %s to YAML: %w", info.Name, err)
		}

		if i > 0 {
			buf.WriteString("---\n")
		}

		buf.Write(data)
	}

	return buf.String(), nil
}
