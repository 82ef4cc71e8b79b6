package models

import (
	json "github.com/goccy/go-json"
)

// jsonUnmarshal keeps model-level decoding on the same JSON library the
// store serializes with.
func jsonUnmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
