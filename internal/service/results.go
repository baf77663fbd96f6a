package service

import (
	"fmt"
	"strings"

	"vocabquiz/internal/repository"

	"go.uber.org/zap"
)

// ResultService records answers reported by quiz clients
type ResultService struct {
	attempts repository.AttemptRepository
	logger   *zap.Logger
}

// NewResultService creates a new result service
func NewResultService(attempts repository.AttemptRepository, logger *zap.Logger) *ResultService {
	return &ResultService{
		attempts: attempts,
		logger:   logger,
	}
}

// RecordResult appends one answer to the history
func (s *ResultService) RecordResult(word string, correct bool) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return fmt.Errorf("%w: word cannot be empty", ErrInvalidInput)
	}

	if err := s.attempts.LogAttempt(word, correct); err != nil {
		return fmt.Errorf("failed to log attempt: %w", err)
	}

	s.logger.Info("Result recorded", zap.String("word", word), zap.Bool("correct", correct))
	return nil
}
