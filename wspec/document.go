package wspec

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Document serializes w to JSON bytes: the portable wire form a WSpec is
// handed to a downstream renderer or archived in.
func (w *WSpec) Document() ([]byte, error) {
	return json.MarshalIndent(w, "", "  ")
}

// YAML serializes w to YAML bytes, for the same document in a form humans
// tend to review SDD/WSpec pairs in.
func (w *WSpec) YAML() ([]byte, error) {
	return yaml.Marshal(w)
}

// FromDocument parses JSON bytes produced by Document back into a WSpec.
func FromDocument(data []byte) (*WSpec, error) {
	w := &WSpec{}
	if err := json.Unmarshal(data, w); err != nil {
		return nil, err
	}
	return w, nil
}

// FromYAML parses YAML bytes produced by YAML back into a WSpec.
func FromYAML(data []byte) (*WSpec, error) {
	w := &WSpec{}
	if err := yaml.Unmarshal(data, w); err != nil {
		return nil, err
	}
	return w, nil
}
