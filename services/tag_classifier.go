package services

import "strings"

const DefaultTag = "general"

type TagClassifier struct {
	rules []TagRule
}

func NewTagClassifier(rules []TagRule) *TagClassifier {
	return &TagClassifier{rules: rules}
}

// Classify returns every tag whose rule fires on the lower-cased title+snippet,
// in rule order. It never returns an empty set.
func (c *TagClassifier) Classify(title, snippet string) []string {
	text := strings.ToLower(title + " " + snippet)

	var tags []string
	seen := make(map[string]bool)
	for _, rule := range c.rules {
		if seen[rule.Tag] {
			continue
		}
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" && strings.Contains(text, kw) {
				tags = append(tags, rule.Tag)
				seen[rule.Tag] = true
				break
			}
		}
	}

	if len(tags) == 0 {
		return []string{DefaultTag}
	}
	return tags
}
