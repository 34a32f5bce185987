package personality

import (
	"strings"

	"github.com/elliotchance/pie/v2"
)

// Classifier reports which keyword categories occur in a text. Matching is
// case-insensitive substring containment.
type Classifier struct {
	categories []Category
}

func NewClassifier(categories []Category) *Classifier {
	lowered := make([]Category, 0, len(categories))
	for _, category := range categories {
		category.Keywords = pie.Map(category.Keywords, strings.ToLower)
		lowered = append(lowered, category)
	}

	return &Classifier{
		categories: lowered,
	}
}

// Classify returns the matching categories in definition order.
func (c *Classifier) Classify(text string) []Category {
	text = strings.ToLower(text)

	return pie.Filter(c.categories, func(category Category) bool {
		return pie.Any(category.Keywords, func(keyword string) bool {
			return strings.Contains(text, keyword)
		})
	})
}
