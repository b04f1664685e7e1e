package plugin

import (
	"encoding/json"
	"io"
	"strings"

	"DevKit/internal/errors"
)

// Response is the document returned by Execute. Field order matters: the
// encoder emits the keys exactly in this order.
type Response struct {
	Plugin         string `json:"plugin"`
	ProcessedInput any    `json:"processed_input"`
	Timestamp      string `json:"timestamp"`
	Status         string `json:"status"`
}

// Encode serializes the response as human-readable JSON with two-space
// indentation.
func (r Response) Encode() (string, error) {
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.CodeExecutionFailure, err, "encode response")
	}
	return string(raw), nil
}

// DecodeInput attempts to parse the payload as JSON. On success it returns
// the decoded value with its JSON shape preserved (objects, arrays, numbers,
// strings); numbers are kept as json.Number so arbitrarily large payloads
// round-trip unchanged. On any syntactic error it reports ok=false and the
// caller falls back to the raw string. A failed parse is never an error.
func DecodeInput(payload string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, false
	}
	// Trailing content after the first value makes the whole payload
	// invalid JSON, matching strict parser behaviour.
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return value, true
}
