package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// attempt is one step of a field fallback chain.
type attempt func() (string, bool)

// firstOf runs attempts in order and returns the first successful value.
func firstOf(attempts ...attempt) string {
	for _, try := range attempts {
		if value, ok := try(); ok {
			return value
		}
	}
	return ""
}

// attrOf reads attr from the first descendant of node matching selector.
func attrOf(node *goquery.Selection, selector, attr string) attempt {
	return func() (string, bool) {
		if selector == "" || attr == "" {
			return "", false
		}

		value, exists := node.Find(selector).First().Attr(attr)
		value = strings.TrimSpace(value)
		if !exists || value == "" {
			return "", false
		}
		return value, true
	}
}

// textOf reads the trimmed text of the first descendant matching selector.
func textOf(node *goquery.Selection, selector string) attempt {
	return func() (string, bool) {
		if selector == "" {
			return "", false
		}

		match := node.Find(selector).First()
		if match.Length() == 0 {
			return "", false
		}
		return strings.TrimSpace(match.Text()), true
	}
}
