package quiz

import (
	"errors"

	"vocabquiz/internal/domain"
)

const (
	// DefaultLowWater is the queue length below which a refill is requested
	DefaultLowWater = 3
	// DefaultBatchSize is the number of records requested per refill
	DefaultBatchSize = 20
)

// ErrQueueEmpty is returned when a record is requested from an empty queue
var ErrQueueEmpty = errors.New("word queue is empty")

// Queue is a FIFO of fetched word records
type Queue struct {
	records  []domain.WordRecord
	lowWater int
}

// NewQueue creates an empty queue with the given low-water mark
func NewQueue(lowWater int) *Queue {
	if lowWater <= 0 {
		lowWater = DefaultLowWater
	}
	return &Queue{lowWater: lowWater}
}

// Len returns the number of queued records
func (q *Queue) Len() int {
	return len(q.records)
}

// Low reports whether the queue is below its low-water mark
func (q *Queue) Low() bool {
	return len(q.records) < q.lowWater
}

// Append adds records to the tail in the given order
func (q *Queue) Append(records ...domain.WordRecord) {
	q.records = append(q.records, records...)
}

// Pop removes and returns the head record
func (q *Queue) Pop() (domain.WordRecord, error) {
	if len(q.records) == 0 {
		return domain.WordRecord{}, ErrQueueEmpty
	}
	head := q.records[0]
	q.records[0] = domain.WordRecord{}
	q.records = q.records[1:]
	return head, nil
}
