package rest

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Text is a string field that providers sometimes send as a number or a bool
// (IDs, train numbers). Null decodes to "".
type Text string

// UnmarshalJSON accepts strings, numbers and booleans.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Text(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*t = Text(strconv.FormatBool(b))
	return nil
}

func (t Text) String() string { return string(t) }
