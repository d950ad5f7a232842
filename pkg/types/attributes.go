package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Attributes holds the free-form key/value descriptors attached to an item
// (size variants, color, batch codes). Stored as a JSONB column.
type Attributes map[string]string

// Value implements driver.Valuer.
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *Attributes) Scan(src any) error {
	if src == nil {
		*a = Attributes{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported attributes source %T", src)
	}

	if len(raw) == 0 {
		*a = Attributes{}
		return nil
	}
	return json.Unmarshal(raw, a)
}

// Contains reports whether every key in filter is present with an equal value.
func (a Attributes) Contains(filter Attributes) bool {
	for key, want := range filter {
		got, ok := a[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}

// Merge overlays the provided attributes on top of the receiver, returning the
// merged copy. Existing keys not present in overlay are preserved.
func (a Attributes) Merge(overlay Attributes) Attributes {
	merged := make(Attributes, len(a)+len(overlay))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}
