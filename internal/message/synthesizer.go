// Package message synthesizes plausible German military plaintext in the
// style of wartime Kriegsmarine radio traffic.
package message

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/models"
	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/vocab"
)

// MinLength is the shortest normalized plaintext worth keeping; anything
// shorter carries too little signal for the ciphertext statistics.
const MinLength = 8

// Fixed category draw weights; must sum to 1.0.
var categoryWeights = []struct {
	category models.Category
	weight   float64
}{
	{models.Weather, 0.30},
	{models.Position, 0.30},
	{models.Sighting, 0.20},
	{models.Military, 0.20},
}

// Synthesizer builds plaintext messages from the vocabulary pools. All
// randomness comes from the injected source, so seeded runs are reproducible.
type Synthesizer struct {
	rng *rand.Rand
}

// NewSynthesizer creates a synthesizer drawing from rng.
func NewSynthesizer(rng *rand.Rand) *Synthesizer {
	return &Synthesizer{rng: rng}
}

// DrawCategory picks a message category according to the fixed weights.
func (s *Synthesizer) DrawCategory() models.Category {
	roll := s.rng.Float64()
	cumulative := 0.0
	for _, cw := range categoryWeights {
		cumulative += cw.weight
		if roll < cumulative {
			return cw.category
		}
	}
	return categoryWeights[len(categoryWeights)-1].category
}

// Synthesize fills the category's template with uniform draws from each
// referenced vocabulary pool. The result is raw text; callers normalize it
// before use.
func (s *Synthesizer) Synthesize(category models.Category) string {
	switch category {
	case models.Weather:
		return s.weatherReport()
	case models.Position:
		return s.positionReport()
	case models.Sighting:
		return s.enemySighting()
	default:
		return s.militaryMessage()
	}
}

func (s *Synthesizer) weatherReport() string {
	return fmt.Sprintf(vocab.WeatherTemplate,
		s.pick(vocab.GridSquares),
		s.rng.Intn(24), s.rng.Intn(60),
		s.rng.Intn(51)-20, // -20..30 degrees
		1+s.rng.Intn(20),
		s.pick(vocab.WindDirections),
		1+s.rng.Intn(12),
		990+s.rng.Intn(41),
		s.pick(vocab.WeatherPhenomena),
	)
}

func (s *Synthesizer) positionReport() string {
	return fmt.Sprintf(vocab.PositionTemplate,
		s.pick(vocab.GridSquares),
		s.rng.Intn(24), s.rng.Intn(60),
		s.rng.Intn(360),
		1+s.rng.Intn(25),
	)
}

func (s *Synthesizer) enemySighting() string {
	return fmt.Sprintf(vocab.SightingTemplate,
		s.pick(vocab.Vessels),
		1+s.rng.Intn(10),
		"QUADRAT "+s.pick(vocab.GridSquares),
		s.rng.Intn(24), s.rng.Intn(60),
		s.rng.Intn(360),
		1+s.rng.Intn(25),
	)
}

func (s *Synthesizer) militaryMessage() string {
	return fmt.Sprintf("%s %s %s %s QUADRAT %s",
		s.pick(vocab.MessageOpenings),
		s.pick(vocab.MilitaryUnits),
		s.pick(vocab.CommandTerms),
		s.pick(vocab.Vessels),
		s.pick(vocab.GridSquares),
	)
}

func (s *Synthesizer) pick(pool []string) string {
	return pool[s.rng.Intn(len(pool))]
}

// Normalize prepares raw template output for the Enigma alphabet: hard-cut to
// maxLength characters (mid-word cuts are accepted), uppercase, then drop
// everything outside A-Z. Umlauts and digits do not survive. The result can
// be shorter than MinLength or empty; callers must resample in that case.
func Normalize(raw string, maxLength int) string {
	runes := []rune(raw)
	if len(runes) > maxLength {
		runes = runes[:maxLength]
	}
	upper := strings.ToUpper(string(runes))

	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
