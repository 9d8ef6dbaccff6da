package models

import "time"

// Category identifies which message template family a plaintext was drawn from.
type Category string

const (
	Weather  Category = "WEATHER"
	Position Category = "POSITION"
	Sighting Category = "SIGHTING"
	Military Category = "MILITARY"
)

// Categories lists every category in draw order.
var Categories = []Category{Weather, Position, Sighting, Military}

// Sample is one labeled training example: a plaintext, its ciphertext under a
// known rotor position, and the statistical features derived from the pair.
// Field order matches the dataset column order.
type Sample struct {
	Plaintext        string   `json:"plaintext" db:"plaintext"`
	Ciphertext       string   `json:"ciphertext" db:"ciphertext"`
	RotorLeft        string   `json:"rotor_left" db:"rotor_left"`
	RotorMiddle      string   `json:"rotor_middle" db:"rotor_middle"`
	RotorRight       string   `json:"rotor_right" db:"rotor_right"`
	FullPosition     string   `json:"full_position" db:"full_position"`
	MessageType      Category `json:"message_type" db:"message_type"`
	PlaintextLength  int      `json:"plaintext_length" db:"plaintext_length"`
	CiphertextLength int      `json:"ciphertext_length" db:"ciphertext_length"`

	// Ciphertext statistics
	Entropy            float64 `json:"entropy" db:"entropy"`
	IndexOfCoincidence float64 `json:"index_of_coincidence" db:"index_of_coincidence"`
	Kappa1             float64 `json:"kappa_1" db:"kappa_1"`

	// Frequency features
	MostCommonPlaintextLetter  string `json:"most_common_plaintext_letter" db:"most_common_plaintext_letter"`
	MostCommonCiphertextLetter string `json:"most_common_ciphertext_letter" db:"most_common_ciphertext_letter"`
	MostCommonBigram           string `json:"most_common_bigram" db:"most_common_bigram"`
	Top3Bigrams                string `json:"top_3_bigrams" db:"top_3_bigrams"`

	// Plaintext-to-ciphertext shift features
	SelfEncryptions  int     `json:"self_encryptions" db:"self_encryptions"`
	AvgShift         float64 `json:"avg_shift" db:"avg_shift"`
	FirstLetterShift int     `json:"first_letter_shift" db:"first_letter_shift"`
	LastLetterShift  int     `json:"last_letter_shift" db:"last_letter_shift"`

	// Structure features
	RepeatedLetters int    `json:"repeated_letters" db:"repeated_letters"`
	FirstLetter     string `json:"first_letter" db:"first_letter"`
	LastLetter      string `json:"last_letter" db:"last_letter"`
}

// Run tracks one generation run: the requested quota, live progress, and a
// breakdown of why attempts were discarded.
type Run struct {
	ID               string     `json:"id" db:"id"`
	Status           string     `json:"status" db:"status"` // "pending", "running", "completed", "aborted"
	Requested        int        `json:"requested" db:"requested"`
	Generated        int        `json:"generated" db:"generated"`
	Attempts         int        `json:"attempts" db:"attempts"`
	ShortPlaintexts  int        `json:"short_plaintexts" db:"short_plaintexts"`
	OracleErrors     int        `json:"oracle_errors" db:"oracle_errors"`
	OracleTimeouts   int        `json:"oracle_timeouts" db:"oracle_timeouts"`
	LengthMismatches int        `json:"length_mismatches" db:"length_mismatches"`
	StartedAt        time.Time  `json:"started_at" db:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}
