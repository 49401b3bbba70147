package utils

import (
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D`)

// FormatPhoneNumber normalizes a raw phone number to the digits-only format
// the WhatsApp service expects. All non-digit characters are stripped; a
// number without the country code gets leading zeros trimmed and the default
// code prepended.
func FormatPhoneNumber(raw, defaultCountryCode string) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	if digits == "" {
		return ""
	}

	if defaultCountryCode != "" && !strings.HasPrefix(digits, defaultCountryCode) {
		digits = strings.TrimLeft(digits, "0")
		digits = defaultCountryCode + digits
	}

	return digits
}
