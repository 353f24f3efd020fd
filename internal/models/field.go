package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Field is a loosely typed JSON request value that remembers whether it was
// supplied at all. Strings are kept verbatim, numbers keep their literal
// text and booleans become "1" or "".
type Field struct {
	Value   string
	Present bool
	numeric bool
}

// Text returns a present field holding s.
func Text(s string) Field {
	return Field{Value: s, Present: true}
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves the field
// absent.
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = Field{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field{Value: s, Present: true}
	case 't':
		*f = Field{Value: "1", Present: true}
	case 'f':
		*f = Field{Value: "", Present: true}
	case '[', '{':
		return fmt.Errorf("field must be a scalar, got %s", data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = Field{Value: n.String(), Present: true, numeric: true}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Present {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Blank reports whether the field is missing or holds a falsy value:
// the empty string, "0", or a numeric zero.
func (f Field) Blank() bool {
	if !f.Present || f.Value == "" || f.Value == "0" {
		return true
	}
	if f.numeric {
		d, err := decimal.NewFromString(f.Value)
		return err == nil && d.IsZero()
	}
	return false
}
