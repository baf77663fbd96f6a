package service

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/repository"

	"go.uber.org/zap"
)

// DefaultPNewWord is the probability of keeping an unseen word in a slot
const DefaultPNewWord = 0.7

// minIncorrectForReplay is the number of missed words needed before they are replayed
const minIncorrectForReplay = 3

// EntrySource provides dictionary entries
type EntrySource interface {
	Entries() ([]domain.Entry, error)
}

// WordService picks the words served to the quiz
type WordService struct {
	dictionary EntrySource
	attempts   repository.AttemptRepository
	pNewWord   float64
	logger     *zap.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewWordService creates a new word service. A nil rnd is seeded from the clock.
func NewWordService(dictionary EntrySource, attempts repository.AttemptRepository, pNewWord float64, rnd *rand.Rand, logger *zap.Logger) *WordService {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &WordService{
		dictionary: dictionary,
		attempts:   attempts,
		pNewWord:   pNewWord,
		logger:     logger,
		rnd:        rnd,
	}
}

// GenerateWords returns up to n words. Unseen words are drawn by frequency
// without replacement; slots are then swapped for previously missed words
// with probability 1-pNewWord once more than three words were missed.
func (s *WordService) GenerateWords(n int) ([]domain.WordRecord, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: num_words must be positive, got %d", ErrInvalidInput, n)
	}

	entries, err := s.dictionary.Entries()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEmptyDictionary
	}

	last, err := s.attempts.LastResults()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	byWord := make(map[string]domain.Entry, len(entries))
	var unseen []domain.Entry
	for _, e := range entries {
		byWord[e.Word] = e
		if _, seen := last[e.Word]; !seen {
			unseen = append(unseen, e)
		}
	}

	var missed []string
	for word, correct := range last {
		if _, known := byWord[word]; known && !correct {
			missed = append(missed, word)
		}
	}
	sort.Strings(missed)

	pool := unseen
	if len(pool) == 0 {
		pool = entries
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	samples := weightedSample(s.rnd, pool, n)

	replayed := 0
	for i := range samples {
		if s.rnd.Float64() >= s.pNewWord && len(missed) > minIncorrectForReplay {
			j := s.rnd.Intn(len(missed))
			samples[i] = byWord[missed[j]]
			missed = append(missed[:j], missed[j+1:]...)
			replayed++
		}
	}

	s.logger.Debug("Generated words",
		zap.Int("requested", n),
		zap.Int("returned", len(samples)),
		zap.Int("unseen", len(unseen)),
		zap.Int("replayed", replayed),
	)

	records := make([]domain.WordRecord, len(samples))
	for i, e := range samples {
		records[i] = e.Record()
	}
	return records, nil
}

// weightedSample draws up to k distinct entries, each draw proportional to weight
func weightedSample(rnd *rand.Rand, pool []domain.Entry, k int) []domain.Entry {
	remaining := make([]domain.Entry, len(pool))
	copy(remaining, pool)

	total := 0
	for _, e := range remaining {
		total += e.Weight()
	}

	if k > len(remaining) {
		k = len(remaining)
	}

	picked := make([]domain.Entry, 0, k)
	for len(picked) < k {
		target := rnd.Intn(total)
		idx := 0
		for acc := remaining[0].Weight(); acc <= target; acc += remaining[idx].Weight() {
			idx++
		}

		chosen := remaining[idx]
		picked = append(picked, chosen)
		total -= chosen.Weight()
		remaining[idx] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}

	return picked
}
