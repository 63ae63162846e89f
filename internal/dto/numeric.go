package dto

import (
	"bytes"
	"encoding/json"
)

// Numeric is a numeric request field kept as its raw text until validated.
//
// Any JSON value decodes into it: strings are unquoted, null is empty, and
// every other value keeps its literal text, so the "numeric" binding rule
// reports type mistakes on the field instead of failing the decode.
type Numeric string

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(s)
	default:
		*n = Numeric(data)
	}
	return nil
}

func (n Numeric) String() string {
	return string(n)
}
