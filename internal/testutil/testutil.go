package testutil

import (
	"fmt"

	"vocabquiz/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestRecord creates a test word record
func NewTestRecord(word string, accepted ...string) domain.WordRecord {
	return domain.WordRecord{Word: word, Accepted: accepted}
}

// NewTestRecords creates n distinct word records
func NewTestRecords(n int) []domain.WordRecord {
	records := make([]domain.WordRecord, n)
	for i := range records {
		records[i] = NewTestRecord(fmt.Sprintf("mot%d", i), fmt.Sprintf("palabra%d", i))
	}
	return records
}

// NewTestEntry creates a test dictionary entry
func NewTestEntry(word string, frequency int, translations ...string) domain.Entry {
	return domain.Entry{
		Word:         word,
		Translations: translations,
		Frequency:    frequency,
	}
}
