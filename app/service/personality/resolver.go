package personality

import (
	"fmt"
	"maps"
	"strings"
)

const NoMatchMessage = "no relevant keyword detected"

// ScoreBoard holds one non-negative counter per scoreable variant.
type ScoreBoard map[Variant]int

func NewScoreBoard() ScoreBoard {
	board := make(ScoreBoard, len(Scoreable))
	for _, variant := range Scoreable {
		board[variant] = 0
	}

	return board
}

func (b ScoreBoard) Clone() ScoreBoard {
	return maps.Clone(b)
}

func (b ScoreBoard) add(variant Variant, delta int) (before, after int) {
	before = b[variant]
	after = max(0, before+delta)
	b[variant] = after

	return before, after
}

// Resolver applies keyword categories to a ScoreBoard and derives the current
// variant from it. It is not safe for concurrent use.
type Resolver struct {
	defs       *Definitions
	classifier *Classifier
	increment  int
	board      ScoreBoard
}

func NewResolver(defs *Definitions, increment int) *Resolver {
	return &Resolver{
		defs:       defs,
		classifier: NewClassifier(defs.Categories),
		increment:  increment,
		board:      NewScoreBoard(),
	}
}

func (r *Resolver) Update(text string) Update {
	var changes []string

	for _, category := range r.classifier.Classify(text) {
		parts := make([]string, 0, len(category.Effects))

		for _, effect := range category.Effects {
			delta := effect.Delta
			if effect.Increment {
				delta = r.increment
			}

			before, after := r.board.add(effect.Variant, delta)
			parts = append(parts, fmt.Sprintf("%s: %d→%d", effect.Variant, before, after))
		}

		changes = append(changes, fmt.Sprintf("%s keyword detected! %s", category.Name, strings.Join(parts, ", ")))
	}

	if len(changes) == 0 {
		changes = append(changes, NoMatchMessage)
	}

	return Update{
		Points:  r.Points(),
		Changes: changes,
	}
}

// Current returns neutral while every counter is zero, otherwise the variant
// with the greatest counter; ties go to the earliest variant in Scoreable.
func (r *Resolver) Current() (Variant, Config) {
	current := Neutral
	best := 0

	for _, variant := range Scoreable {
		if points := r.board[variant]; points > best {
			current = variant
			best = points
		}
	}

	return current, r.defs.Variants[current]
}

func (r *Resolver) Points() map[Variant]int {
	return r.board.Clone()
}

func (r *Resolver) Snapshot() Snapshot {
	variant, cfg := r.Current()

	return Snapshot{
		CurrentType:  variant,
		CurrentColor: cfg.Color,
		Points:       r.Points(),
		Prompt:       cfg.Prompt,
		VoiceSpeed:   cfg.VoiceSpeed,
	}
}

func (r *Resolver) Reset() {
	r.board = NewScoreBoard()
}

// Restore replaces the counters with a board previously taken from Points.
func (r *Resolver) Restore(board ScoreBoard) {
	r.board = board.Clone()
}
