package testutil

import (
	"context"

	"vocabquiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockWordSource is a mock for quiz.WordSource
type MockWordSource struct {
	mock.Mock
}

func (m *MockWordSource) FetchWords(ctx context.Context, n int) ([]domain.WordRecord, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordRecord), args.Error(1)
}

func (m *MockWordSource) ReportResult(ctx context.Context, word string, correct bool) error {
	args := m.Called(ctx, word, correct)
	return args.Error(0)
}

// MockDictionaryRepository is a mock for DictionaryRepository
type MockDictionaryRepository struct {
	mock.Mock
}

func (m *MockDictionaryRepository) ListEntries() ([]domain.Entry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockDictionaryRepository) UpsertEntries(entries []domain.Entry) error {
	args := m.Called(entries)
	return args.Error(0)
}

// MockAttemptRepository is a mock for AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) LogAttempt(word string, correct bool) error {
	args := m.Called(word, correct)
	return args.Error(0)
}

func (m *MockAttemptRepository) LastResults() (map[string]bool, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockAttemptRepository) Totals() (domain.Score, error) {
	args := m.Called()
	return args.Get(0).(domain.Score), args.Error(1)
}

// MockWordGenerator is a mock for api.WordGenerator
type MockWordGenerator struct {
	mock.Mock
}

func (m *MockWordGenerator) GenerateWords(n int) ([]domain.WordRecord, error) {
	args := m.Called(n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordRecord), args.Error(1)
}

// MockResultRecorder is a mock for api.ResultRecorder
type MockResultRecorder struct {
	mock.Mock
}

func (m *MockResultRecorder) RecordResult(word string, correct bool) error {
	args := m.Called(word, correct)
	return args.Error(0)
}

// MockStatsReader is a mock for api.StatsReader
type MockStatsReader struct {
	mock.Mock
}

func (m *MockStatsReader) Totals() (domain.Score, error) {
	args := m.Called()
	return args.Get(0).(domain.Score), args.Error(1)
}

// MockPinger is a mock for api.Pinger
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping() error {
	args := m.Called()
	return args.Error(0)
}
