package classifier

import (
	"strings"

	"catalogfeed/scraper/internal/domain"
)

// Classifier assigns a product category to a title by keyword containment.
type Classifier struct {
	rules domain.CategoryMap
}

// New builds a classifier over rules, keeping their order. Keywords are
// lowercased once here so Classify only lowercases the title.
func New(rules domain.CategoryMap) *Classifier {
	normalized := make(domain.CategoryMap, 0, len(rules))
	for _, rule := range rules {
		keyword := strings.ToLower(strings.TrimSpace(rule.Keyword))
		if keyword == "" {
			continue
		}
		normalized = append(normalized, domain.CategoryRule{
			Keyword:  keyword,
			Category: rule.Category,
		})
	}

	return &Classifier{rules: normalized}
}

// Classify returns the category of the first rule whose keyword occurs
// anywhere in the lowercased title, or "" when nothing matches.
// Matching is plain substring containment, so "bag" also hits "handbag".
func (c *Classifier) Classify(title string) string {
	if title == "" {
		return ""
	}

	lower := strings.ToLower(title)
	for _, rule := range c.rules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Category
		}
	}
	return ""
}

// Len returns the number of active rules.
func (c *Classifier) Len() int {
	return len(c.rules)
}
