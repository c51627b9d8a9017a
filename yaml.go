package twalk

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

// DecodeYAML decodes a YAML document into a document value. Mappings
// become tables, sequences arrays, and timestamps datetimes (normalized to
// RFC3339 text). Mapping keys must be strings. Empty input decodes to an
// empty table.
func DecodeYAML(data []byte) (*Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Table(), nil
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if raw == nil {
		return Table(), nil
	}
	v, err := FromAny(raw)
	if err != nil {
		return nil, fmt.Errorf("convert yaml document: %w", err)
	}
	return v, nil
}

// EncodeYAML encodes a document value as YAML.
func EncodeYAML(v *Value) ([]byte, error) {
	out, err := yaml.Marshal(v.Interface())
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return out, nil
}
