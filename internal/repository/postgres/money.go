package postgres

import (
	"fmt"
	"math"
	"strings"
)

// numericStringToCents parses a NUMERIC(20,2) text value into cents. The
// conversion stays in integer arithmetic: round-tripping through float64
// silently loses cents once a balance passes 2^53 / 100.
func numericStringToCents(s string) (int64, error) {
	v := strings.TrimSpace(s)

	neg := false
	if len(v) > 0 && (v[0] == '-' || v[0] == '+') {
		neg = v[0] == '-'
		v = v[1:]
	}
	if v == "" {
		return 0, fmt.Errorf("invalid numeric %q", s)
	}

	units, frac := v, ""
	if i := strings.IndexByte(v, '.'); i >= 0 {
		units, frac = v[:i], v[i+1:]
	}
	if len(frac) > 2 {
		// The schema carries two decimal places; extra digits mean a bug
		// upstream, and truncating them would corrupt a balance.
		return 0, fmt.Errorf("numeric %q has more than two decimal places", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var cents int64
	for _, c := range units + frac {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid numeric %q", s)
		}
		d := int64(c - '0')
		if cents > (math.MaxInt64-d)/10 {
			return 0, fmt.Errorf("numeric %q overflows cents", s)
		}
		cents = cents*10 + d
	}

	if neg {
		cents = -cents
	}
	return cents, nil
}

// centsToNumericString renders cents as a NUMERIC(20,2) literal.
func centsToNumericString(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
