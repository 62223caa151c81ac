package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMultiFieldToken(t *testing.T) {
	// Test with simple fields
	fields := []string{"field1", "field2", "field3"}
	token := EncodeMultiFieldToken(fields...)

	decodedFields, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, fields, decodedFields, "Fields should match after decode")

	// Test with empty fields
	emptyToken := EncodeMultiFieldToken()
	decodedEmpty, err := DecodeMultiFieldToken(emptyToken)
	assert.NoError(t, err, "Decoding should not return an error")
	// When splitting an empty string with strings.Split, we get a slice with one empty string
	assert.Equal(t, []string{""}, decodedEmpty, "Should decode to slice with one empty string")

	// Test with special characters
	specialFields := []string{"field|with|pipes", "field with spaces"}
	specialToken := EncodeMultiFieldToken(specialFields...)

	decodedSpecial, err := DecodeMultiFieldToken(specialToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Len(t, decodedSpecial, 4, "Should split on all pipe characters")
}

func TestDecodeMultiFieldTokenError(t *testing.T) {
	_, err := DecodeMultiFieldToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")
}

func TestOffsetToken(t *testing.T) {
	token := EncodeOffsetToken("newest", 50)
	assert.NotEmpty(t, token, "Token should not be empty")

	offset, err := DecodeOffsetToken(token, "newest")
	require.NoError(t, err)
	assert.Equal(t, 50, offset)
}

func TestOffsetTokenErrors(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		sortKey string
		errPart string
	}{
		{"bad base64", "this is not base64!", "newest", "base64 decode"},
		{"wrong field count", EncodeMultiFieldToken("newest"), "newest", "split"},
		{"other sort", EncodeOffsetToken("oldest", 10), "newest", "issued for sort"},
		{"non numeric offset", EncodeMultiFieldToken("newest", "ten"), "newest", "offset parse"},
		{"negative offset", EncodeMultiFieldToken("newest", "-3"), "newest", "negative offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeOffsetToken(tt.token, tt.sortKey)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}
