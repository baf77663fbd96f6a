package service

import (
	"vocabquiz/internal/domain"
	"vocabquiz/internal/repository"

	"go.uber.org/zap"
)

// StatsService reports on the answer history
type StatsService struct {
	attempts repository.AttemptRepository
	logger   *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(attempts repository.AttemptRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		attempts: attempts,
		logger:   logger,
	}
}

// Totals returns the score over the whole history
func (s *StatsService) Totals() (domain.Score, error) {
	score, err := s.attempts.Totals()
	if err != nil {
		s.logger.Error("Failed to count attempts", zap.Error(err))
		return domain.Score{}, err
	}
	return score, nil
}
