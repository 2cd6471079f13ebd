package annotate

import (
	"testing"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "year wins over month",
			input:    "octubre de 1957",
			expected: "1957",
		},
		{
			name:     "year range bounds",
			input:    "anno 2099",
			expected: "2099",
		},
		{
			name:     "out of range year ignored",
			input:    "1850",
			expected: "1850",
		},
		{
			name:     "spanish month",
			input:    "finales de Octubre",
			expected: "octubre",
		},
		{
			name:     "english month",
			input:    "late October rains",
			expected: "october",
		},
		{
			name:     "mayo not swallowed by may",
			input:    "mediados de mayo",
			expected: "mayo",
		},
		{
			name:     "spanish season",
			input:    "aquel verano",
			expected: "julio",
		},
		{
			name:     "english season",
			input:    "that long winter",
			expected: "january",
		},
		{
			name:     "unrecognized passes through",
			input:    "hace tiempo",
			expected: "hace tiempo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.input); got != tt.expected {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
