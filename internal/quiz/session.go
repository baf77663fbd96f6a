// Package quiz runs a vocabulary quiz session: a prefetching word queue,
// a typed answer buffer and the scoring of each round.
package quiz

import (
	"context"
	"errors"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/input"
	"vocabquiz/internal/matcher"

	"go.uber.org/zap"
)

// ErrSessionClosed is returned when posting to a session whose loop has ended
var ErrSessionClosed = errors.New("quiz session closed")

// WordSource provides words and accepts results
type WordSource interface {
	FetchWords(ctx context.Context, n int) ([]domain.WordRecord, error)
	ReportResult(ctx context.Context, word string, correct bool) error
}

// Config holds queue settings
type Config struct {
	BatchSize int
	LowWater  int
}

type eventKind int

const (
	eventKey eventKind = iota
	eventText
	eventBackspace
	eventEnter
	eventSubmit
	eventAppend
	eventFetchFailed
	eventScore
)

type event struct {
	kind    eventKind
	key     rune
	text    string
	records []domain.WordRecord
	err     error
	reply   chan domain.Score
}

// Session owns the quiz state. All state is touched by the Run loop only;
// keystrokes and fetch completions reach it as events.
type Session struct {
	source   WordSource
	renderer Renderer
	logger   *zap.Logger
	cfg      Config

	events chan event
	done   chan struct{}
	ctx    context.Context
	goFunc func(func())

	queue   *Queue
	buffer  input.Buffer
	current *domain.WordRecord
	last    *domain.Outcome
	waiting bool
	score   domain.Score
}

// NewSession creates a session, call Run to start it
func NewSession(source WordSource, renderer Renderer, cfg Config, logger *zap.Logger) *Session {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.LowWater <= 0 {
		cfg.LowWater = DefaultLowWater
	}
	if renderer == nil {
		renderer = nopRenderer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		source:   source,
		renderer: renderer,
		logger:   logger,
		cfg:      cfg,
		events:   make(chan event, 16),
		done:     make(chan struct{}),
		ctx:      context.Background(),
		goFunc:   func(f func()) { go f() },
		queue:    NewQueue(cfg.LowWater),
	}
}

// Run loads the first word and processes events until ctx is done
func (s *Session) Run(ctx context.Context) error {
	s.ctx = ctx
	defer close(s.done)

	s.logger.Info("Quiz session started",
		zap.Int("batch_size", s.cfg.BatchSize),
		zap.Int("low_water", s.cfg.LowWater),
	)

	s.advance()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Quiz session stopped",
				zap.Int("correct", s.score.Correct),
				zap.Int("total", s.score.Total),
			)
			return ctx.Err()
		case ev := <-s.events:
			s.handle(ev)
		}
	}
}

// KeyPress types one character
func (s *Session) KeyPress(ctx context.Context, r rune) error {
	return s.post(ctx, event{kind: eventKey, key: r})
}

// Type types every character of text
func (s *Session) Type(ctx context.Context, text string) error {
	return s.post(ctx, event{kind: eventText, text: text})
}

// Backspace removes the last typed character
func (s *Session) Backspace(ctx context.Context) error {
	return s.post(ctx, event{kind: eventBackspace})
}

// Enter submits the typed answer and moves to the next word
func (s *Session) Enter(ctx context.Context) error {
	return s.post(ctx, event{kind: eventEnter})
}

// Submit types text and submits it as one step, so answers posted
// concurrently are never interleaved
func (s *Session) Submit(ctx context.Context, text string) error {
	return s.post(ctx, event{kind: eventSubmit, text: text})
}

// Score returns the tally of scored rounds so far
func (s *Session) Score(ctx context.Context) (domain.Score, error) {
	reply := make(chan domain.Score, 1)
	if err := s.post(ctx, event{kind: eventScore, reply: reply}); err != nil {
		return domain.Score{}, err
	}
	select {
	case score := <-reply:
		return score, nil
	case <-ctx.Done():
		return domain.Score{}, ctx.Err()
	case <-s.done:
		return domain.Score{}, ErrSessionClosed
	}
}

func (s *Session) post(ctx context.Context, ev event) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	select {
	case s.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrSessionClosed
	}
}

func (s *Session) handle(ev event) {
	switch ev.kind {
	case eventKey:
		if s.buffer.Type(ev.key) {
			s.renderer.ShowBuffer(s.buffer.String())
		}
	case eventText:
		s.typeText(ev.text)
	case eventBackspace:
		s.buffer.Backspace()
		s.renderer.ShowBuffer(s.buffer.String())
	case eventEnter:
		s.enter()
	case eventSubmit:
		s.typeText(ev.text)
		s.enter()
	case eventAppend:
		s.appendRecords(ev.records)
	case eventFetchFailed:
		s.logger.Warn("Failed to fetch words",
			zap.Error(ev.err),
			zap.Int("queued", s.queue.Len()),
		)
	case eventScore:
		ev.reply <- s.score
	}
}

func (s *Session) typeText(text string) {
	changed := false
	for _, r := range text {
		if s.buffer.Type(r) {
			changed = true
		}
	}
	if changed {
		s.renderer.ShowBuffer(s.buffer.String())
	}
}

func (s *Session) enter() {
	raw := s.buffer.String()
	s.buffer.Reset()
	s.renderer.ShowBuffer("")
	s.submit(raw)
}

// submit scores raw against the current word, reports it and advances.
// Nothing is scored before the first word is shown.
func (s *Session) submit(raw string) {
	if s.current != nil {
		outcome := domain.Outcome{
			Word:     s.current.Word,
			Accepted: s.current.Accepted,
			Guess:    raw,
			Correct:  matcher.Matches(raw, s.current.Accepted),
		}
		s.last = &outcome
		s.score.Add(outcome.Correct)
		s.report(outcome)
		s.renderer.ShowOutcome(outcome)
	}
	s.advance()
}

// advance shows the head of the queue and requests a refill when low.
// On an empty queue the session waits for the next append instead.
func (s *Session) advance() {
	record, err := s.queue.Pop()
	s.refillIfLow()

	if err != nil {
		s.current = nil
		s.waiting = true
		s.renderer.ShowWaiting()
		return
	}

	s.waiting = false
	s.current = &record
	s.renderer.ShowWord(record.Word)
}

func (s *Session) refillIfLow() {
	if !s.queue.Low() {
		return
	}

	n := s.cfg.BatchSize
	ctx := s.ctx
	s.logger.Debug("Requesting words", zap.Int("num_words", n), zap.Int("queued", s.queue.Len()))

	s.goFunc(func() {
		records, err := s.source.FetchWords(ctx, n)
		ev := event{kind: eventAppend, records: records}
		if err != nil {
			ev = event{kind: eventFetchFailed, err: err}
		}
		_ = s.post(ctx, ev)
	})
}

func (s *Session) appendRecords(records []domain.WordRecord) {
	if len(records) == 0 {
		s.logger.Warn("Word source returned no words")
		return
	}

	s.queue.Append(records...)
	s.logger.Debug("Words appended", zap.Int("received", len(records)), zap.Int("queued", s.queue.Len()))

	if s.waiting {
		s.advance()
	}
}

func (s *Session) report(outcome domain.Outcome) {
	ctx := s.ctx
	s.goFunc(func() {
		if err := s.source.ReportResult(ctx, outcome.Word, outcome.Correct); err != nil {
			s.logger.Warn("Failed to report result",
				zap.Error(err),
				zap.String("word", outcome.Word),
				zap.Bool("correct", outcome.Correct),
			)
		}
	})
}
