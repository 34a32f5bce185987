package personality

import (
	"testing"

	"github.com/elliotchance/pie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryNames(categories []Category) []string {
	return pie.Map(categories, func(c Category) string { return c.Name })
}

func TestClassifier_Classify(t *testing.T) {
	defs, err := DefaultDefinitions()
	require.NoError(t, err)

	classifier := NewClassifier(defs.Categories)

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "nothing", text: "おはよう", expected: nil},
		{name: "affection", text: "だいすきだよ", expected: []string{"affection"}},
		{name: "hostility", text: "ほんとにむかつく", expected: []string{"hostility"}},
		{name: "gratitude", text: "助かるよ", expected: []string{"gratitude"}},
		{name: "humor", text: "爆笑した", expected: []string{"humor"}},
		{name: "detachment", text: "どうでもいい", expected: []string{"detachment"}},
		{name: "enthusiasm", text: "やったー！", expected: []string{"enthusiasm"}},
		{name: "several", text: "ありがとう、面白いね、大好き", expected: []string{"affection", "gratitude", "humor"}},
		{name: "empty", text: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, categoryNames(classifier.Classify(tt.text)))
		})
	}
}

func TestClassifier_DoesNotMutateDefinitions(t *testing.T) {
	categories := []Category{{Name: "shout", Keywords: []string{"HEY"}}}

	classifier := NewClassifier(categories)

	assert.Equal(t, "HEY", categories[0].Keywords[0])
	assert.Len(t, classifier.Classify("hey there"), 1)
}
