package chain

import "encoding/json"

// DecodeTextField renders a polymorphic object field as display text. Program
// upgrades changed some fields from vector<u8> to string, so readers see
// either a JSON array of byte values or a plain JSON string; any other shape
// is not text and decodes to the empty string.
func DecodeTextField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var nums []uint16
	if err := json.Unmarshal(raw, &nums); err == nil {
		b := make([]byte, len(nums))
		for i, n := range nums {
			b[i] = byte(n)
		}
		return string(b)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return ""
}
