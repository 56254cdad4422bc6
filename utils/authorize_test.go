package utils

import "testing"

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		allowed  []string
		expected bool
	}{
		{"role in set", "admin", []string{"admin", "lead-guide"}, true},
		{"role not in set", "user", []string{"admin", "lead-guide"}, false},
		{"single allowed role", "guide", []string{"guide"}, true},
		{"empty allowed set denies", "admin", nil, false},
		{"empty role denies", "", []string{"admin"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.role, tt.allowed...)
			if got != tt.expected {
				t.Errorf("Authorize(%q, %v) = %v, want %v", tt.role, tt.allowed, got, tt.expected)
			}
		})
	}
}
