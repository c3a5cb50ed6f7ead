package models

import "fmt"

// TakeoutRecord is a caller-shaped takeout entry. The server owns the
// "timestamp" key.
type TakeoutRecord map[string]any

// TimestampKey is the field stamped on every stored takeout record.
const TimestampKey = "timestamp"

// Clone copies the top level of the record.
func (r TakeoutRecord) Clone() TakeoutRecord {
	out := make(TakeoutRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Timestamp returns the server-assigned timestamp, if any.
func (r TakeoutRecord) Timestamp() string {
	return r.String(TimestampKey)
}

// String renders a field for flat exports; missing fields are empty.
func (r TakeoutRecord) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
