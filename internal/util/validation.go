package util

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	minPasswordLength = 8
	passwordSpecials  = "#@$%&*!^"

	// Column widths of the customer and address tables.
	maxNameLength         = 30
	maxEmailLength        = 50
	maxAddressFieldLength = 255
)

var emailRegex = regexp.MustCompile("^[a-zA-Z0-9_!#$%&'*+/=?`{|}~^-]+(?:\\.[a-zA-Z0-9_!#$%&'*+/=?`{|}~^-]+)*@[a-zA-Z0-9-]+(?:\\.[a-zA-Z0-9-]+)*$")

var (
	EmailRule          = []validation.Rule{validation.Required, validation.RuneLength(0, maxEmailLength), validation.Match(emailRegex)}
	NameRule           = []validation.Rule{validation.RuneLength(0, maxNameLength)}
	AddressFieldRule   = []validation.Rule{validation.RuneLength(0, maxAddressFieldLength)}
	ContactNumberRule  = []validation.Rule{validation.Required, validation.Length(10, 10), is.Digit}
	PincodeRule        = []validation.Rule{validation.Required, validation.Length(6, 6), is.Digit}
	StrongPasswordRule = []validation.Rule{validation.Required, validation.By(strongPassword)}
)

var errWeakPassword = errors.New("must be at least 8 characters with an uppercase letter, a digit and a special character")

func strongPassword(value any) error {
	s, _ := value.(string)
	if utf8.RuneCountInString(s) < minPasswordLength {
		return errWeakPassword
	}

	var upper, digit, special bool
	for _, r := range s {
		switch {
		case 'A' <= r && r <= 'Z':
			upper = true
		case '0' <= r && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	if !upper || !digit || !special {
		return errWeakPassword
	}
	return nil
}

func IsValidEmail(s string) bool {
	return validation.Validate(s, EmailRule...) == nil
}

func IsValidContactNumber(s string) bool {
	return validation.Validate(s, ContactNumberRule...) == nil
}

// IsValidName reports whether every name fits the name columns.
func IsValidName(names ...string) bool {
	for _, n := range names {
		if validation.Validate(n, NameRule...) != nil {
			return false
		}
	}
	return true
}

func IsValidAddressField(fields ...string) bool {
	for _, f := range fields {
		if validation.Validate(f, AddressFieldRule...) != nil {
			return false
		}
	}
	return true
}

func IsValidPincode(s string) bool {
	return validation.Validate(s, PincodeRule...) == nil
}

func IsStrongPassword(s string) bool {
	return validation.Validate(s, StrongPasswordRule...) == nil
}

// AnyEmpty reports whether any of the values is empty.
func AnyEmpty(values ...string) bool {
	for _, v := range values {
		if validation.Validate(v, validation.Required) != nil {
			return true
		}
	}
	return false
}
