package frontmatter

import "maps"

// Metadata is an insertion-ordered map of front matter fields. It records
// which keys were written since parsing so serialization can leave every
// other field's source text untouched.
type Metadata struct {
	keys    []string
	values  map[string]any
	touched map[string]bool
}

// NewMetadata returns an empty Metadata.
func NewMetadata() *Metadata {
	return &Metadata{
		values:  make(map[string]any),
		touched: make(map[string]bool),
	}
}

// put stores a value without marking it touched. Used while decoding.
func (m *Metadata) put(key string, v any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Len returns the number of fields.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the field names in order.
func (m *Metadata) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Get returns the value stored under key.
func (m *Metadata) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Metadata) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores v under key, appending the key when new.
func (m *Metadata) Set(key string, v any) {
	m.put(key, v)
	m.touched[key] = true
}

// Delete removes key.
func (m *Metadata) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	m.touched[key] = true
}

// Touched reports whether key was set or deleted since parsing.
func (m *Metadata) Touched(key string) bool {
	return m != nil && m.touched[key]
}

// Dirty reports whether any key was set or deleted since parsing.
func (m *Metadata) Dirty() bool {
	return m != nil && len(m.touched) > 0
}

// Clone returns a copy that can be mutated independently. Nested values
// are shared.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return NewMetadata()
	}
	return &Metadata{
		keys:    append([]string(nil), m.keys...),
		values:  maps.Clone(m.values),
		touched: maps.Clone(m.touched),
	}
}

// Map returns the fields as a plain map.
func (m *Metadata) Map() map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return maps.Clone(m.values)
}

// String returns the value under key when it is a string.
func (m *Metadata) String(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool reports the truthiness of the value under key. Absent keys, nil,
// false, zero numbers, and empty strings are false.
func (m *Metadata) Bool(key string) bool {
	v, _ := m.Get(key)
	return truthy(v)
}

// Strings returns the value under key as a list of strings. A scalar
// string becomes a one-element list; empty entries are skipped.
func (m *Metadata) Strings(key string) []string {
	v, ok := m.Get(key)
	if !ok || v == nil {
		return nil
	}

	switch vv := v.(type) {
	case string:
		if vv == "" {
			return nil
		}
		return []string{vv}
	case []string:
		return append([]string(nil), vv...)
	case []any:
		var out []string
		for _, item := range vv {
			s, ok := item.(string)
			if !ok || s == "" {
				continue
			}
			out = append(out, s)
		}
		return out
	}
	return nil
}

func truthy(v any) bool {
	switch vv := v.(type) {
	case nil:
		return false
	case bool:
		return vv
	case string:
		return vv != ""
	case int:
		return vv != 0
	case int64:
		return vv != 0
	case uint64:
		return vv != 0
	case float64:
		return vv != 0
	}
	return true
}
