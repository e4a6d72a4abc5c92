package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Weak1", false},
		{"Weak1!", false},
		{"Strong1!", true},
		{"Secret@123", true},
		{"secret@123", false},
		{"SECRET@ABC", false},
		{"Secret1234", false},
		{"", false},
		{"Ab1!ééé", false},
		{"Ab1!éééé", true},
		{"abcdefΩ1!", false},
		{"Abcdef١!", false},
	}

	for _, tc := range tests {
		t.Run(tc.password, func(t *testing.T) {
			assert.Equal(t, tc.want, IsStrongPassword(tc.password))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("john.doe@example.com"))
	assert.True(t, IsValidEmail("a+b@localhost"))
	assert.False(t, IsValidEmail("john.doe"))
	assert.False(t, IsValidEmail("john@@example.com"))
	assert.False(t, IsValidEmail("john@example..com"))
	assert.False(t, IsValidEmail(""))
	assert.True(t, IsValidEmail(strings.Repeat("a", 38)+"@example.com"))
	assert.False(t, IsValidEmail(strings.Repeat("a", 39)+"@example.com"))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Asha", ""))
	assert.True(t, IsValidName(strings.Repeat("é", 30)))
	assert.False(t, IsValidName("Asha", strings.Repeat("r", 31)))
}

func TestIsValidAddressField(t *testing.T) {
	assert.True(t, IsValidAddressField("12 Lake View", strings.Repeat("x", 255)))
	assert.False(t, IsValidAddressField(strings.Repeat("x", 256)))
}

func TestIsValidContactNumber(t *testing.T) {
	assert.True(t, IsValidContactNumber("9876543210"))
	assert.False(t, IsValidContactNumber("987654321"))
	assert.False(t, IsValidContactNumber("98765432101"))
	assert.False(t, IsValidContactNumber("98765x3210"))
	assert.False(t, IsValidContactNumber(""))
}

func TestIsValidPincode(t *testing.T) {
	assert.True(t, IsValidPincode("560001"))
	assert.False(t, IsValidPincode("56001"))
	assert.False(t, IsValidPincode("56000a"))
}

func TestAnyEmpty(t *testing.T) {
	assert.False(t, AnyEmpty("a", "b"))
	assert.True(t, AnyEmpty("a", ""))
	assert.False(t, AnyEmpty())
}
