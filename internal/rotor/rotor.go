// Package rotor models three-rotor machine positions and samples them for
// dataset runs.
package rotor

import (
	"fmt"
	"math/rand"
)

// historicalShare is the chance a sample comes from the well-known settings
// instead of a uniform draw. Keeping a slice of famous positions in the data
// lets models train against configurations that show up in the literature.
const historicalShare = 0.10

// Setting is a rotor window position, one letter per rotor, left to right.
type Setting struct {
	Left   byte
	Middle byte
	Right  byte
}

// Historical window positions that appear in period material and in most
// textbook treatments of the machine.
var historicalSettings = []Setting{
	{'A', 'A', 'A'},
	{'A', 'A', 'B'},
	{'A', 'A', 'Z'},
	{'Z', 'A', 'A'},
	{'B', 'C', 'D'},
	{'X', 'Y', 'Z'},
}

// String renders the setting as the three-letter form used on the wire and
// in the dataset, e.g. "AXQ".
func (s Setting) String() string {
	return string([]byte{s.Left, s.Middle, s.Right})
}

// Parse validates a three-letter position string and returns the setting.
func Parse(s string) (Setting, error) {
	if len(s) != 3 {
		return Setting{}, fmt.Errorf("position must be exactly three letters, got %q", s)
	}
	for i := 0; i < 3; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return Setting{}, fmt.Errorf("position must use uppercase A-Z, got %q", s)
		}
	}
	return Setting{Left: s[0], Middle: s[1], Right: s[2]}, nil
}

// Sampler draws rotor settings for dataset rows.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler drawing from rng.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Sample returns the next rotor setting: usually a uniform position over the
// full A-Z space, occasionally one of the historical settings.
func (s *Sampler) Sample() Setting {
	if s.rng.Float64() < historicalShare {
		return historicalSettings[s.rng.Intn(len(historicalSettings))]
	}
	return Setting{
		Left:   s.letter(),
		Middle: s.letter(),
		Right:  s.letter(),
	}
}

func (s *Sampler) letter() byte {
	return byte('A' + s.rng.Intn(26))
}
