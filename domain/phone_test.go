package domain

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "formatted US number",
			raw:      "+1 (555) 123-4567",
			expected: "15551234567",
		},
		{
			name:     "already normalized",
			raw:      "15551234567",
			expected: "15551234567",
		},
		{
			name:     "dots and spaces",
			raw:      "555.123.4567",
			expected: "5551234567",
		},
		{
			name:     "empty input",
			raw:      "",
			expected: "",
		},
		{
			name:     "no digits at all",
			raw:      "not-a-number",
			expected: "",
		},
		{
			name:     "unicode letters mixed in",
			raw:      "tel: ٥5١5é5",
			expected: "555",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.raw)
			if got != tt.expected {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{"+1 (555) 123-4567", "5551234567", "", "abc123def"}
	for _, raw := range inputs {
		once := NormalizePhone(raw)
		twice := NormalizePhone(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}
