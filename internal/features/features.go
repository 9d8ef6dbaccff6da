// Package features computes the statistical and structural measurements
// recorded for each plaintext/ciphertext pair. Every function is pure and
// total: malformed or too-short input degrades to zero values instead of
// failing, so the extractor never aborts a run.
package features

import (
	"math"
	"sort"
	"strings"
)

// Extraction holds the derived feature columns of a sample row.
type Extraction struct {
	Entropy                    float64
	IndexOfCoincidence         float64
	Kappa1                     float64
	MostCommonPlaintextLetter  string
	MostCommonCiphertextLetter string
	MostCommonBigram           string
	Top3Bigrams                string
	SelfEncryptions            int
	AvgShift                   float64
	FirstLetterShift           int
	LastLetterShift            int
	RepeatedLetters            int
	FirstLetter                string
	LastLetter                 string
}

// Extract computes all features for a pair. Shift statistics assume the
// caller has already validated len(plaintext) == len(ciphertext); when the
// pair is too short (plaintext under two characters or empty ciphertext),
// bigram fields stay empty and shift fields stay zero.
func Extract(plaintext, ciphertext string) Extraction {
	ex := Extraction{
		Entropy:                    Entropy(ciphertext),
		IndexOfCoincidence:         IndexOfCoincidence(ciphertext),
		Kappa1:                     Kappa1(ciphertext),
		MostCommonPlaintextLetter:  MostCommonLetter(plaintext),
		MostCommonCiphertextLetter: MostCommonLetter(ciphertext),
		RepeatedLetters:            RepeatedLetters(ciphertext),
	}
	if len(ciphertext) > 0 {
		ex.FirstLetter = string(ciphertext[0])
		ex.LastLetter = string(ciphertext[len(ciphertext)-1])
	}
	if len(plaintext) < 2 || len(ciphertext) == 0 {
		return ex
	}

	ex.MostCommonBigram, ex.Top3Bigrams = BigramStats(ciphertext)

	if len(plaintext) == len(ciphertext) {
		shifts := Shifts(plaintext, ciphertext)
		sum := 0
		for _, sh := range shifts {
			if sh == 0 {
				ex.SelfEncryptions++
			}
			sum += sh
		}
		ex.AvgShift = float64(sum) / float64(len(shifts))
		ex.FirstLetterShift = shifts[0]
		ex.LastLetterShift = shifts[len(shifts)-1]
	}
	return ex
}

// Entropy is the Shannon entropy (base 2) of the text's letter-frequency
// distribution. A constant string has entropy 0; the maximum over A-Z text
// is log2(26).
func Entropy(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	counts := make(map[byte]int)
	for i := 0; i < len(text); i++ {
		counts[text[i]]++
	}
	n := float64(len(text))
	entropy := 0.0
	for _, c := range counts {
		p := float64(c) / n
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// IndexOfCoincidence is the probability that two randomly chosen positions
// of the text hold the same letter. Returns 0 for texts shorter than two
// characters.
func IndexOfCoincidence(text string) float64 {
	n := len(text)
	if n <= 1 {
		return 0
	}
	counts := make(map[byte]int)
	for i := 0; i < n; i++ {
		counts[text[i]]++
	}
	sum := 0
	for _, c := range counts {
		sum += c * (c - 1)
	}
	return float64(sum) / float64(n*(n-1))
}

// Kappa1 is the adjacent-coincidence rate: the fraction of neighboring
// character pairs that are equal. Returns 0 for texts shorter than two
// characters.
func Kappa1(text string) float64 {
	if len(text) <= 1 {
		return 0
	}
	return float64(RepeatedLetters(text)) / float64(len(text)-1)
}

// RepeatedLetters counts adjacent equal-character pairs, the raw numerator
// of Kappa1.
func RepeatedLetters(text string) int {
	count := 0
	for i := 0; i+1 < len(text); i++ {
		if text[i] == text[i+1] {
			count++
		}
	}
	return count
}

// MostCommonLetter returns the most frequent character of the text as a
// one-character string, or "" for empty text. Ties go to the character
// encountered first.
func MostCommonLetter(text string) string {
	if len(text) == 0 {
		return ""
	}
	counts := make(map[byte]int)
	var order []byte
	for i := 0; i < len(text); i++ {
		b := text[i]
		if counts[b] == 0 {
			order = append(order, b)
		}
		counts[b]++
	}
	best := order[0]
	for _, b := range order[1:] {
		if counts[b] > counts[best] {
			best = b
		}
	}
	return string(best)
}

// BigramStats builds the frequency table of overlapping two-character
// substrings and reports the single most frequent bigram plus the top three
// joined by commas. Ties keep first-encountered order. Texts shorter than
// two characters yield empty strings.
func BigramStats(text string) (mostCommon string, top3 string) {
	if len(text) < 2 {
		return "", ""
	}
	counts := make(map[string]int)
	var order []string
	for i := 0; i+1 < len(text); i++ {
		bg := text[i : i+2]
		if counts[bg] == 0 {
			order = append(order, bg)
		}
		counts[bg]++
	}

	ranked := make([]string, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked[0], strings.Join(ranked, ",")
}

// Shifts returns the per-position letter shift (ciphertext minus plaintext,
// mod 26) for a validated same-length pair.
func Shifts(plaintext, ciphertext string) []int {
	n := len(plaintext)
	if len(ciphertext) < n {
		n = len(ciphertext)
	}
	shifts := make([]int, n)
	for i := 0; i < n; i++ {
		shifts[i] = (int(ciphertext[i]) - int(plaintext[i]) + 26) % 26
	}
	return shifts
}
