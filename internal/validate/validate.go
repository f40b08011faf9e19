// Package validate holds the input predicates shared by request binding and
// the repositories.
package validate

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Nigerian numbers: optional +234 or trunk 0, then a 10-digit mobile
	// number starting with 7-9 or any other 10-digit sequence.
	phonePattern = regexp.MustCompile(`^(?:\+234|0)?(?:[789]\d{9}|\d{10})$`)

	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// ValidateEmail reports whether email has a basic local@domain.tld shape.
// No DNS or MX verification is done.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone reports whether phone is a Nigerian mobile number once
// spaces, dashes and parentheses are removed.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}

// NormalizePhone strips the separators ValidatePhone ignores.
func NormalizePhone(phone string) string {
	return phoneSeparators.Replace(phone)
}

// CanonicalPhone maps every accepted form of a number (+234..., 0... or the
// bare 10 digits) to +234 followed by the 10-digit national number. Input
// that fails ValidatePhone is returned with separators stripped.
func CanonicalPhone(phone string) string {
	p := NormalizePhone(phone)
	if !phonePattern.MatchString(p) {
		return p
	}
	return "+234" + p[len(p)-10:]
}

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
