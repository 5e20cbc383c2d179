package validators

import "strings"

// NormalizePhone remove todo lo que no sea dígito.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhone exige exactamente 10 dígitos después de normalizar.
func IsValidPhone(phone string) bool {
	return len(NormalizePhone(phone)) == 10
}

// FormatPhoneNumber renders a 10-digit phone as (XXX) XXX-XXXX.
// Formatting an already-formatted number returns it unchanged;
// anything that does not normalize to 10 digits is returned as-is.
func FormatPhoneNumber(phone string) string {
	digits := NormalizePhone(phone)
	if len(digits) != 10 {
		return phone
	}
	return "(" + digits[0:3] + ") " + digits[3:6] + "-" + digits[6:10]
}
