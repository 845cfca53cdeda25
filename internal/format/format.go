package format

import (
	"fmt"
	"strings"
	"time"
)

// Currency formats an amount in minor units.
// Example: Currency(129999, "USD") => "$1,299.99".
func Currency(minor int64, currency string) string {
	switch strings.ToUpper(currency) {
	case "USD", "":
		neg := minor < 0
		if neg {
			minor = -minor
		}
		head := thousandSep(minor / 100)
		tail := fmt.Sprintf("%02d", minor%100)
		if neg {
			return "-$" + head + "." + tail
		}
		return "$" + head + "." + tail
	case "JPY":
		return "¥" + thousandSep(minor)
	default:
		return fmt.Sprintf("%s %s", strings.ToUpper(currency), thousandSep(minor))
	}
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Date formats a time in a short, human-readable form.
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
