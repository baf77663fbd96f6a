package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Attempt is one reported answer for a word
type Attempt struct {
	ID        int64
	Word      string
	Correct   bool
	CreatedAt time.Time
}

// Outcome is the result of a scored round
type Outcome struct {
	Word     string
	Accepted []string
	Guess    string
	Correct  bool
}

// AcceptedString joins the accepted translations for display
func (o Outcome) AcceptedString() string {
	return strings.Join(o.Accepted, ",")
}

// Score is a tally of scored rounds
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Add records one round
func (s *Score) Add(correct bool) {
	s.Total++
	if correct {
		s.Correct++
	}
}

// Percentage returns the share of correct rounds rounded to one decimal
func (s Score) Percentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return math.Round(1000*float64(s.Correct)/float64(s.Total)) / 10
}

// Summary returns the end of session line
func (s Score) Summary() string {
	return fmt.Sprintf("Total score: %d correct translations out of %d (%.1f%%)",
		s.Correct, s.Total, s.Percentage())
}
