package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	plainNumberRegex  = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	dotThousandsRegex = regexp.MustCompile(`^-?\d{1,3}\.\d{3}$`)
)

// NormalizePrice turns a displayed price such as "1 299,00 €" into
// "1299.00 EUR". It reports false when no number remains after removing
// currency symbols and separators.
func NormalizePrice(raw, currency string) (string, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, raw)

	number := canonicalDecimal(cleaned)
	if !plainNumberRegex.MatchString(number) {
		return "", false
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return "", false
	}

	return fmt.Sprintf("%.2f %s", value, currency), true
}

// canonicalDecimal rewrites grouping and decimal separators so the result
// uses "." as the only decimal point and no thousands separators.
func canonicalDecimal(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// 1.299,00
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		// 1,299.00
		return strings.ReplaceAll(s, ",", "")

	case lastComma >= 0:
		if strings.Count(s, ",") == 1 {
			if decimals := len(s) - lastComma - 1; decimals >= 1 && decimals <= 2 {
				return strings.Replace(s, ",", ".", 1)
			}
		}
		return strings.ReplaceAll(s, ",", "")

	case strings.Count(s, ".") > 1 || dotThousandsRegex.MatchString(s):
		// 1.299.000 or 1.299
		return strings.ReplaceAll(s, ".", "")
	}

	return s
}
