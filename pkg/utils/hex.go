package utils

import (
	"encoding/hex"
	"strings"

	"github.com/manolaz/mosaic/pkg/errors"
)

// EncodeHex renders bytes as lowercase hex, two digits per byte.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex decodes a hex string produced by EncodeHex. Decoding is
// case-insensitive; odd-length input or non-hex characters fail with a
// malformed-encoding error before any caller touches the bytes.
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errors.MalformedEncoding("odd length")
	}
	b, err := hex.DecodeString(strings.ToLower(s))
	if err != nil {
		return nil, errors.MalformedEncoding(err.Error())
	}
	return b, nil
}
