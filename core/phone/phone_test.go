package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"bare digits", "9876543210", "9876543210"},
		{"spaces and dashes", "987-654 3210", "9876543210"},
		{"parens", "(987) 654-3210", "9876543210"},
		{"intl prefix", "+254 712 345 678", "254712345678"},
		{"letters stripped", "98a76b54321c0", "9876543210"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalize_equivalence(t *testing.T) {
	// differently punctuated inputs must collapse to the same key
	want := Normalize("9876543210")
	assert.Equal(t, want, Normalize("987-654 3210"))
	assert.Equal(t, want, Normalize("(987) 654-3210"))
	assert.True(t, IsValid(want))
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"empty", "", false},
		{"too short", "123456789", false},
		{"min length", "1234567890", true},
		{"max length", "123456789012345", true},
		{"too long", "1234567890123456", false},
		{"formatted", "(987) 654-3210", true},
		{"no digits", "abc-def", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.raw))
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"ten digits", "9876543210", "98765 43210"},
		{"twelve digits", "254712345678", "25471 23456 78"},
		{"already formatted", "98765 43210", "98765 43210"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.raw))
		})
	}
}
