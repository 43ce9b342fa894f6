package formats

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cogentcore.org/core/base/ordmap"
)

// TextureMap maps texture ids to path fragments in declaration order.
// Declaration order drives atlas packing order.
type TextureMap struct {
	ordmap.Map[string, string]
}

// NewTextureMap returns an empty texture map.
func NewTextureMap() *TextureMap {
	return &TextureMap{Map: *ordmap.New[string, string]()}
}

// Set adds or replaces the path for a texture id.
// Replacing keeps the id's original position.
func (t *TextureMap) Set(id, path string) {
	t.Add(id, path)
}

// Get returns the path for a texture id.
func (t *TextureMap) Get(id string) (string, bool) {
	if t == nil {
		return "", false
	}
	return t.ValueByKeyTry(id)
}

// Len returns the number of textures. A nil map is empty.
func (t *TextureMap) Len() int {
	if t == nil {
		return 0
	}
	return t.Map.Len()
}

// UnmarshalJSON decodes a JSON object keeping key order.
func (t *TextureMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: textures must be an object", ErrInvalidModel)
	}

	t.Map = *ordmap.New[string, string]()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("%w: texture key must be a string", ErrInvalidModel)
		}
		var path string
		if err := dec.Decode(&path); err != nil {
			return fmt.Errorf("%w: texture %q: %v", ErrInvalidModel, key, err)
		}
		t.Add(key, path)
	}

	// Closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the map as a JSON object in declaration order.
func (t *TextureMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range t.Order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
