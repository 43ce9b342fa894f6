package formats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ParseModel parses a model document from a byte slice.
func ParseModel(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, wrapInvalid(err)
	}
	return &m, nil
}

// ParseModelReader parses a model document from a reader.
func ParseModelReader(r io.Reader) (*Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, wrapInvalid(err)
	}
	return &m, nil
}

// ParseModelFile parses a model document from disk.
func ParseModelFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	return ParseModel(data)
}

// Marshal encodes a model back to its JSON document form.
func (m *Model) Marshal() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

func wrapInvalid(err error) error {
	if errors.Is(err, ErrInvalidModel) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidModel, err)
}
