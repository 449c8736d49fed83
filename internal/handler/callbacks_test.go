package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "page_2",
			expected: "page_2",
		},
		{
			name:     "string with whitespace",
			input:    "  page_2  ",
			expected: "page_2",
		},
		{
			name:     "string with newline",
			input:    "page\n_2",
			expected: "page_2",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "\x0clearn\x00",
			expected: "learn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		expected   int
		expectedOK bool
	}{
		{name: "valid page", data: "page_3", expected: 3, expectedOK: true},
		{name: "not a number", data: "page_x", expectedOK: false},
		{name: "other data", data: "learn", expectedOK: false},
		{name: "empty", data: "", expectedOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, ok := parsePage(tt.data)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expected, page)
		})
	}
}
