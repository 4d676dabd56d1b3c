package models

import (
	"bytes"
	"encoding/json"
)

// LanguageStats is an insertion-ordered mapping of language name to
// percentage string. Setting an existing name overwrites its value but
// keeps its original position, so iteration order always matches the
// order languages first appeared in the source document.
type LanguageStats struct {
	names  []string
	values map[string]string
}

// NewLanguageStats returns an empty LanguageStats
func NewLanguageStats() *LanguageStats {
	return &LanguageStats{values: make(map[string]string)}
}

// Set stores the percentage for a language. Last write wins.
func (s *LanguageStats) Set(name, percentage string) {
	if _, exists := s.values[name]; !exists {
		s.names = append(s.names, name)
	}
	s.values[name] = percentage
}

// Get returns the percentage for a language and whether it is present
func (s *LanguageStats) Get(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Len returns the number of distinct languages
func (s *LanguageStats) Len() int {
	return len(s.names)
}

// Names returns the language names in insertion order
func (s *LanguageStats) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// MarshalJSON serializes the stats as a JSON object whose keys appear
// in insertion order (encoding/json maps would sort them).
func (s *LanguageStats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.values[name])
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

// UnmarshalJSON restores the stats from a JSON object. Key order within
// the object is preserved.
func (s *LanguageStats) UnmarshalJSON(data []byte) error {
	s.names = nil
	s.values = make(map[string]string)
	if string(data) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	// opening brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		s.Set(keyTok.(string), value)
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
