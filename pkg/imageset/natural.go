package imageset

import (
	"strings"
)

// NaturalCompare compares two strings so that embedded numbers sort by value:
// "card2" < "card10". It returns -1, 0 or +1.
//
// Both strings are split into alternating runs of ASCII digits and
// non-digits. Digit runs compare as unbounded integers (leading zeros
// ignored), non-digit runs compare case-insensitively, and a digit run sorts
// before a non-digit run. When one string is a run-wise prefix of the other
// the shorter one sorts first. Strings that differ only in case or leading
// zeros compare equal; callers needing a total order break ties themselves.
func NaturalCompare(a, b string) int {
	for a != "" && b != "" {
		ra, restA := nextRun(a)
		rb, restB := nextRun(b)

		da, db := isDigit(ra[0]), isDigit(rb[0])
		var c int
		switch {
		case da && db:
			c = compareDigits(ra, rb)
		case da:
			return -1
		case db:
			return 1
		default:
			c = strings.Compare(strings.ToLower(ra), strings.ToLower(rb))
		}
		if c != 0 {
			return c
		}
		a, b = restA, restB
	}

	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

// NaturalLess reports whether a sorts before b in natural order.
func NaturalLess(a, b string) bool { return NaturalCompare(a, b) < 0 }

// nextRun splits off the leading run of digits or non-digits.
func nextRun(s string) (run, rest string) {
	digit := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digit {
		i++
	}
	return s[:i], s[i:]
}

// compareDigits compares two digit runs by numeric value without parsing, so
// runs longer than any integer type still order correctly.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
