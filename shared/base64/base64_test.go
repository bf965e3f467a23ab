package base64_test

import (
	"lankaride/shared/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

const pixel = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "png", input: pixel, expected: "image/png"},
		{name: "text", input: "data:text/plain;base64,SGVsbG8=", expected: "text/plain"},
		{name: "missing marker", input: "data:image/png,abc", expected: ""},
		{name: "missing prefix", input: "image/png;base64,abc", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	contentType, data, err := base64.Decode(pixel)

	assert.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.NotEmpty(t, data)

	_, _, err = base64.Decode("data:image/png;base64,@@@")
	assert.ErrorIs(t, err, base64.ErrInvalidDataURI)

	_, _, err = base64.Decode("plain text")
	assert.ErrorIs(t, err, base64.ErrInvalidDataURI)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".jpg", base64.Extension("image/jpeg"))
	assert.Equal(t, ".png", base64.Extension("image/png"))
	assert.Equal(t, "", base64.Extension("text/plain"))
}
