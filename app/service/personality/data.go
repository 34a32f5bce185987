package personality

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed definitions.yaml
var definitionsYAML []byte

type Variant string

const (
	Kind      Variant = "kind"
	Funny     Variant = "funny"
	Cool      Variant = "cool"
	Angry     Variant = "angry"
	Childlike Variant = "childlike"
	Neutral   Variant = "neutral"
)

// Scoreable lists the variants that carry a counter. The order is also the
// tie-break priority when several counters share the maximum.
var Scoreable = []Variant{Kind, Funny, Cool, Angry, Childlike}

type Config struct {
	Prompt     string  `yaml:"prompt" validate:"required"`
	Color      string  `yaml:"color" validate:"required,hexcolor"`
	VoiceSpeed float64 `yaml:"voice_speed" validate:"gt=0"`
}

// Effect changes one counter. Increment effects add the resolver's configured
// increment, the rest add Delta.
type Effect struct {
	Variant   Variant `yaml:"variant" validate:"required,oneof=kind funny cool angry childlike"`
	Delta     int     `yaml:"delta"`
	Increment bool    `yaml:"increment"`
}

type Category struct {
	Name     string   `yaml:"name" validate:"required"`
	Keywords []string `yaml:"keywords" validate:"required,min=1,dive,required"`
	Effects  []Effect `yaml:"effects" validate:"required,min=1,dive"`
}

type Definitions struct {
	Variants   map[Variant]Config `yaml:"variants" validate:"required,dive"`
	Categories []Category         `yaml:"categories" validate:"required,min=1,dive"`
}

type Snapshot struct {
	CurrentType  Variant         `json:"current_type"`
	CurrentColor string          `json:"current_color"`
	Points       map[Variant]int `json:"points"`
	Prompt       string          `json:"prompt"`
	VoiceSpeed   float64         `json:"voice_speed"`
}

type Update struct {
	Points  map[Variant]int `json:"points"`
	Changes []string        `json:"changes"`
}

var defaultDefinitions = sync.OnceValues(func() (*Definitions, error) {
	return ParseDefinitions(definitionsYAML)
})

// DefaultDefinitions returns the built-in variants and keyword categories.
func DefaultDefinitions() (*Definitions, error) {
	return defaultDefinitions()
}

func ParseDefinitions(data []byte) (*Definitions, error) {
	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse personality definitions: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(defs); err != nil {
		return nil, fmt.Errorf("failed to validate personality definitions: %w", err)
	}

	for _, variant := range append([]Variant{Neutral}, Scoreable...) {
		if _, ok := defs.Variants[variant]; !ok {
			return nil, fmt.Errorf("personality definitions: missing variant %q", variant)
		}
	}

	return &defs, nil
}
