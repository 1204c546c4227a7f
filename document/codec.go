package document

import (
	"encoding/json"
	"fmt"
)

// Decode reads JSON document. Data is decoded over a fresh default document,
// so keys absent from input keep their defaults, and result is normalized.
func Decode(data []byte) (*Document, error) {
	d := NewDefault()
	// lists present in input replace defaults entirely, absent lists are
	// filled back by Normalize
	d.Sections, d.Masters, d.Pages = nil, nil, nil
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("unable to decode document: %w", err)
	}
	return Normalize(d), nil
}

// Encode serializes document to JSON. Indentation is used when indent is set.
func Encode(d *Document, indent bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(d, "", "  ")
	} else {
		data, err = json.Marshal(d)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to encode document: %w", err)
	}
	return data, nil
}
