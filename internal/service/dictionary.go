package service

import (
	"fmt"
	"sync"
	"time"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/repository"

	"go.uber.org/zap"
)

// DictionaryCache keeps the dictionary in memory between refreshes
type DictionaryCache struct {
	repo   repository.DictionaryRepository
	logger *zap.Logger

	mu       sync.RWMutex
	entries  []domain.Entry
	loadedAt time.Time
}

// NewDictionaryCache creates an empty cache, loaded on first use
func NewDictionaryCache(repo repository.DictionaryRepository, logger *zap.Logger) *DictionaryCache {
	return &DictionaryCache{
		repo:   repo,
		logger: logger,
	}
}

// Refresh reloads the dictionary from the repository
func (c *DictionaryCache) Refresh() error {
	entries, err := c.repo.ListEntries()
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	c.mu.Lock()
	c.entries = entries
	c.loadedAt = time.Now()
	c.mu.Unlock()

	c.logger.Info("Dictionary loaded", zap.Int("entries", len(entries)))
	return nil
}

// Entries returns the cached dictionary, loading it if it was never loaded.
// The returned slice must not be modified.
func (c *DictionaryCache) Entries() ([]domain.Entry, error) {
	c.mu.RLock()
	entries, loaded := c.entries, !c.loadedAt.IsZero()
	c.mu.RUnlock()

	if loaded {
		return entries, nil
	}

	if err := c.Refresh(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries, nil
}
