package sanitizer_test

import (
	"lankaride/shared/sanitizer"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "Pickup at 9 from the hotel, 3 bags",
			expected: "Pickup at 9 from the hotel, 3 bags",
		},
		{
			name:     "email",
			input:    "mail me at kasun.perera+trip@gmail.com thanks",
			expected: "mail me at [hidden] thanks",
		},
		{
			name:     "local mobile with spaces",
			input:    "call 077 123 4567",
			expected: "call [hidden]",
		},
		{
			name:     "international number",
			input:    "whatsapp +94-77-1234567 ok",
			expected: "whatsapp [hidden] ok",
		},
		{
			name:     "url with scheme",
			input:    "see https://example.com/tours?id=1",
			expected: "see [hidden]",
		},
		{
			name:     "bare domain",
			input:    "book via mytours.lk instead",
			expected: "book via [hidden] instead",
		},
		{
			name:     "short numbers kept",
			input:    "2 adults, 1 child, 2025 trip",
			expected: "2 adults, 1 child, 2025 trip",
		},
		{
			name:     "dates and prices kept",
			input:    "from 2025-03-01 to 2025-03-05 for 45000.00",
			expected: "from 2025-03-01 to 2025-03-05 for 45000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizer.Clean(tt.input))
		})
	}
}

func TestChanged(t *testing.T) {
	assert.True(t, sanitizer.Changed("reach me on 0771234567"))
	assert.False(t, sanitizer.Changed("see you at the airport"))
}
