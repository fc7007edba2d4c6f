package services

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorRoundTrip(t *testing.T) {
	for _, offset := range []int{0, 1, 19, 20, 100, 999, 123456} {
		decoded, err := DecodeCursor(EncodeCursor(offset))
		assert.NoError(t, err)
		assert.Equal(t, offset, decoded)
	}
}

func TestDecodeCursorAbsent(t *testing.T) {
	offset, err := DecodeCursor("")
	assert.NoError(t, err)
	assert.Equal(t, 0, offset)
}

func TestDecodeCursorOpaqueness(t *testing.T) {
	// Callers should not be able to guess the token shape
	token := EncodeCursor(40)
	assert.NotEqual(t, "40", token)
}

func TestDecodeCursorMalformed(t *testing.T) {
	cases := []string{
		"not base64 at all!!!",
		base64.URLEncoding.EncodeToString([]byte("abc")), // decodes but not an int
		base64.URLEncoding.EncodeToString([]byte("-5")),  // negative offset
		base64.URLEncoding.EncodeToString([]byte("1.5")), // not an integer
	}
	for _, c := range cases {
		_, err := DecodeCursor(c)
		assert.ErrorIs(t, err, ErrInvalidCursor, "cursor %q", c)
	}
}
