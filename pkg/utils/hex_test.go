package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
)

func TestEncodeHexLowercaseZeroPadded(t *testing.T) {
	assert.Equal(t, "00ff0a10", EncodeHex([]byte{0x00, 0xff, 0x0a, 0x10}))
	assert.Equal(t, "", EncodeHex(nil))
}

func TestDecodeHexRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{0x00},
		{0xde, 0xad, 0xbe, 0xef},
		{0x00, 0x01, 0x7f, 0x80, 0xfe, 0xff},
	}
	for _, b := range cases {
		got, err := DecodeHex(EncodeHex(b))
		require.NoError(t, err)
		assert.True(t, bytes.Equal(b, got), "round trip of %v gave %v", b, got)
	}
}

func TestDecodeHexCaseInsensitive(t *testing.T) {
	got, err := DecodeHex("DeAdBeEf")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, got)
}

func TestDecodeHexRejectsOddLength(t *testing.T) {
	_, err := DecodeHex("abc")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, constants.ErrCodeMalformedEncoding))
}

func TestDecodeHexRejectsInvalidCharacters(t *testing.T) {
	for _, s := range []string{"zz", "12g4", "0x12"} {
		_, err := DecodeHex(s)
		require.Error(t, err, "input %q", s)
		assert.True(t, errors.IsCode(err, constants.ErrCodeMalformedEncoding))
	}
}
