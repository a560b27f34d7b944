package validate

import (
	"fmt"
	"strings"
)

// FormatPhone returns a pretty-printed representation of a phone number for
// display. Eleven-digit numbers starting with +7, 7 or 8 are rendered as
// "+7 (XXX) XXX-XX-XX"; anything else is returned verbatim. Display only:
// the stored value is never modified.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) == 11 && (strings.HasPrefix(phone, "+7") ||
		strings.HasPrefix(phone, "7") || strings.HasPrefix(phone, "8")) {
		return fmt.Sprintf("+7 (%s) %s-%s-%s", d[1:4], d[4:7], d[7:9], d[9:11])
	}
	return phone
}
