package utils

import (
	"strings"
	"unicode"
)

// IMEILength is the digit count of a handset IMEI
const IMEILength = 15

// PinLength is the digit count of the unlock PIN
const PinLength = 4

// DigitsOnly strips everything that is not an ASCII digit
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsDigits reports whether s is non-empty and all ASCII digits
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizeIMEI trims scanner noise around an IMEI
func NormalizeIMEI(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
}

// ValidIMEI checks the 15-digit shape of an IMEI
func ValidIMEI(s string) bool {
	return len(s) == IMEILength && IsDigits(s)
}

// ValidPin checks the 4-digit shape of the unlock PIN
func ValidPin(s string) bool {
	return len(s) == PinLength && IsDigits(s)
}

// FormatCNIC renders CNIC digits as #####-#######-#, formatting partial input as it grows
func FormatCNIC(s string) string {
	d := DigitsOnly(s)
	switch {
	case len(d) <= 5:
		return d
	case len(d) <= 12:
		return d[:5] + "-" + d[5:]
	default:
		return d[:5] + "-" + d[5:12] + "-" + d[12:13]
	}
}

// ValidCNIC reports whether s holds a complete 13-digit CNIC
func ValidCNIC(s string) bool {
	return len(DigitsOnly(s)) == 13
}
