package repository

import (
	"vocabquiz/internal/domain"
)

// DictionaryRepository defines dictionary data operations
type DictionaryRepository interface {
	ListEntries() ([]domain.Entry, error)
	UpsertEntries(entries []domain.Entry) error
}

// AttemptRepository defines answer history operations
type AttemptRepository interface {
	LogAttempt(word string, correct bool) error
	LastResults() (map[string]bool, error)
	Totals() (domain.Score, error)
}
