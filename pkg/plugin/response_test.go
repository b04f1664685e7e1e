package plugin

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEncodeKeyOrderAndIndent(t *testing.T) {
	resp := Response{
		Plugin:         "test-plugin",
		ProcessedInput: map[string]any{"a": 1},
		Timestamp:      DefaultTimestamp,
		Status:         StatusSuccess,
	}
	out, err := resp.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{
  "plugin": "test-plugin",
  "processed_input": {
    "a": 1
  },
  "timestamp": "2024-01-01T00:00:00Z",
  "status": "success"
}`
	if out != want {
		t.Fatalf("unexpected encoding:\n%s\nwant:\n%s", out, want)
	}
}

func TestDecodeInputShapes(t *testing.T) {
	cases := []struct {
		payload string
		ok      bool
	}{
		{`{"a":1}`, true},
		{`[1,2,3]`, true},
		{`"quoted"`, true},
		{`42`, true},
		{`true`, true},
		{`null`, true},
		{`not json`, false},
		{``, false},
		{`{"a":1} trailing`, false},
		{`{"a":`, false},
	}
	for _, tc := range cases {
		_, ok := DecodeInput(tc.payload)
		if ok != tc.ok {
			t.Fatalf("DecodeInput(%q) ok=%v, want %v", tc.payload, ok, tc.ok)
		}
	}
}

func TestDecodeInputPreservesLargeNumbers(t *testing.T) {
	const payload = `{"n": 12345678901234567890}`
	value, ok := DecodeInput(payload)
	if !ok {
		t.Fatalf("expected valid JSON")
	}
	obj := value.(map[string]any)
	num, isNumber := obj["n"].(json.Number)
	if !isNumber {
		t.Fatalf("expected json.Number, got %T", obj["n"])
	}

	resp := Response{Plugin: "test-plugin", ProcessedInput: obj, Timestamp: DefaultTimestamp, Status: StatusSuccess}
	out, err := resp.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, num.String()) {
		t.Fatalf("large number did not round-trip:\n%s", out)
	}
}
