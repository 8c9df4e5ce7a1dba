package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Attributes is the mutable attribute bag a record store keeps per document.
type Attributes map[string]interface{}

// Document is one stored record: a store-assigned id plus its attributes.
type Document struct {
	ID         string
	Attributes Attributes
}

// String returns the attribute as text. Numbers are rendered without
// trailing zeros; missing keys yield "".
func (a Attributes) String(key string) string {
	switch v := a[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case Numeric:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Map returns a nested attribute bag, or nil when key is absent or not a map.
func (a Attributes) Map(key string) Attributes {
	switch v := a[key].(type) {
	case Attributes:
		return v
	case map[string]interface{}:
		return Attributes(v)
	default:
		return nil
	}
}

// Time reads an RFC3339 timestamp attribute; unreadable values yield the zero time.
func (a Attributes) Time(key string) time.Time {
	switch v := a[key].(type) {
	case time.Time:
		return v
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return time.Time{}
	}
}

func setTime(attrs Attributes, key string, t time.Time) {
	if !t.IsZero() {
		attrs[key] = t.UTC().Format(time.RFC3339Nano)
	}
}
