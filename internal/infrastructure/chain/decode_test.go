package chain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeTextField(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"byte vector", "[72,101,108,108,111]", "Hello"},
		{"empty vector", "[]", ""},
		{"plain string", `"Rust Meetup"`, "Rust Meetup"},
		{"empty string", `""`, ""},
		{"number is not text", "42", ""},
		{"object is not text", `{"a":1}`, ""},
		{"bool is not text", "true", ""},
		{"utf8 bytes", "[230,151,165]", "日"},
		{"missing field", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeTextField(json.RawMessage(tt.raw)))
		})
	}
}
