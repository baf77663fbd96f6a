package quiz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingRenderer struct {
	mu       sync.Mutex
	words    []string
	buffers  []string
	outcomes []domain.Outcome
	waits    int
}

func (r *recordingRenderer) ShowWord(word string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.words = append(r.words, word)
}

func (r *recordingRenderer) ShowBuffer(buffer string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buffers = append(r.buffers, buffer)
}

func (r *recordingRenderer) ShowOutcome(outcome domain.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *recordingRenderer) ShowWaiting() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waits++
}

func (r *recordingRenderer) Words() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.words...)
}

// stepSession runs the session without goroutines: spawned work is queued
// and executed by runPending, posted events are handled by drain.
type stepSession struct {
	*Session
	pending []func()
}

func newStepSession(source WordSource, renderer Renderer) *stepSession {
	s := &stepSession{
		Session: NewSession(source, renderer, Config{BatchSize: 20, LowWater: 3}, testutil.NewTestLogger()),
	}
	s.goFunc = func(f func()) { s.pending = append(s.pending, f) }
	return s
}

func (s *stepSession) runPending() {
	pending := s.pending
	s.pending = nil
	for _, f := range pending {
		f()
	}
}

func (s *stepSession) drain() {
	for {
		select {
		case ev := <-s.events:
			s.handle(ev)
		default:
			return
		}
	}
}

func TestSession_FirstWordShownAfterRefill(t *testing.T) {
	source := new(testutil.MockWordSource)
	source.On("FetchWords", mock.Anything, 20).Return(testutil.NewTestRecords(20), nil).Once()
	renderer := &recordingRenderer{}
	s := newStepSession(source, renderer)

	s.advance()

	assert.Nil(t, s.current)
	assert.True(t, s.waiting)
	assert.Equal(t, 1, renderer.waits)
	require.Len(t, s.pending, 1)

	s.runPending()
	s.drain()

	require.NotNil(t, s.current)
	assert.Equal(t, "mot0", s.current.Word)
	assert.False(t, s.waiting)
	assert.Equal(t, []string{"mot0"}, renderer.Words())
	assert.Equal(t, 19, s.queue.Len())
	assert.Empty(t, s.pending)
	source.AssertExpectations(t)
}

func TestSession_RefillOnlyBelowLowWater(t *testing.T) {
	s := newStepSession(new(testutil.MockWordSource), nil)
	s.queue.Append(testutil.NewTestRecords(5)...)

	expectedSpawns := []int{0, 0, 1, 2, 3}
	for i, expected := range expectedSpawns {
		s.advance()
		assert.Len(t, s.pending, expected, "advance %d (queue %d)", i+1, s.queue.Len())
	}
}

func TestSession_SubmitCorrect(t *testing.T) {
	source := new(testutil.MockWordSource)
	source.On("ReportResult", mock.Anything, "château", true).Return(nil).Once()
	renderer := &recordingRenderer{}
	s := newStepSession(source, renderer)
	s.queue.Append(testutil.NewTestRecord("château", "castillo", "palacio"))
	s.queue.Append(testutil.NewTestRecords(10)...)
	s.advance()

	for _, r := range "Castillo" {
		s.handle(event{kind: eventKey, key: r})
	}
	s.handle(event{kind: eventEnter})
	s.runPending()

	require.Len(t, renderer.outcomes, 1)
	outcome := renderer.outcomes[0]
	assert.True(t, outcome.Correct)
	assert.Equal(t, "Castillo", outcome.Guess)
	assert.Equal(t, []string{"castillo", "palacio"}, outcome.Accepted)
	assert.Equal(t, "", s.buffer.String())
	assert.Equal(t, []string{"château", "mot0"}, renderer.Words())
	assert.Equal(t, domain.Score{Correct: 1, Total: 1}, s.score)
	source.AssertExpectations(t)
}

func TestSession_SubmitAccentInsensitive(t *testing.T) {
	source := new(testutil.MockWordSource)
	source.On("ReportResult", mock.Anything, "castle", true).Return(nil).Once()
	s := newStepSession(source, nil)
	s.queue.Append(testutil.NewTestRecord("castle", "château", "palais"))
	s.queue.Append(testutil.NewTestRecords(5)...)
	s.advance()

	s.handle(event{kind: eventText, text: "Chateau"})
	s.handle(event{kind: eventEnter})
	s.runPending()

	require.NotNil(t, s.last)
	assert.True(t, s.last.Correct)
	source.AssertExpectations(t)
}

func TestSession_SubmitIncorrect(t *testing.T) {
	source := new(testutil.MockWordSource)
	source.On("ReportResult", mock.Anything, "chien", false).Return(errors.New("timeout")).Once()
	renderer := &recordingRenderer{}
	s := newStepSession(source, renderer)
	s.queue.Append(testutil.NewTestRecord("chien", "perro"))
	s.queue.Append(testutil.NewTestRecords(5)...)
	s.advance()

	s.handle(event{kind: eventText, text: "gato"})
	s.handle(event{kind: eventEnter})
	s.runPending()

	require.Len(t, renderer.outcomes, 1)
	assert.False(t, renderer.outcomes[0].Correct)
	assert.Equal(t, domain.Score{Correct: 0, Total: 1}, s.score)
	source.AssertExpectations(t)
}

func TestSession_SubmitTypesAndScoresInOneStep(t *testing.T) {
	source := new(testutil.MockWordSource)
	source.On("ReportResult", mock.Anything, "chat", true).Return(nil).Once()
	source.On("ReportResult", mock.Anything, "chien", true).Return(nil).Once()
	renderer := &recordingRenderer{}
	s := newStepSession(source, renderer)
	s.queue.Append(testutil.NewTestRecord("chat", "gato"), testutil.NewTestRecord("chien", "perro"))
	s.queue.Append(testutil.NewTestRecords(5)...)
	s.advance()

	s.handle(event{kind: eventText, text: "ga"})
	s.handle(event{kind: eventSubmit, text: "to"})
	s.handle(event{kind: eventSubmit, text: "perro"})
	s.runPending()

	require.Len(t, renderer.outcomes, 2)
	assert.Equal(t, "gato", renderer.outcomes[0].Guess)
	assert.Equal(t, "perro", renderer.outcomes[1].Guess)
	assert.Equal(t, domain.Score{Correct: 2, Total: 2}, s.score)
	assert.Equal(t, "", s.buffer.String())
	source.AssertExpectations(t)
}

func TestSession_EnterBeforeFirstWord(t *testing.T) {
	source := new(testutil.MockWordSource)
	renderer := &recordingRenderer{}
	s := newStepSession(source, renderer)

	s.handle(event{kind: eventText, text: "hola"})
	s.handle(event{kind: eventEnter})

	assert.Empty(t, renderer.outcomes)
	assert.Nil(t, s.last)
	assert.Equal(t, "", s.buffer.String())
	assert.True(t, s.waiting)
	assert.Len(t, s.pending, 1)
	source.AssertNotCalled(t, "ReportResult", mock.Anything, mock.Anything, mock.Anything)
}

func TestSession_FilteredKeysLeaveBuffer(t *testing.T) {
	renderer := &recordingRenderer{}
	s := newStepSession(new(testutil.MockWordSource), renderer)

	s.handle(event{kind: eventKey, key: 'a'})
	s.handle(event{kind: eventKey, key: 'é'})
	s.handle(event{kind: eventKey, key: '?'})
	s.handle(event{kind: eventText, text: "¿?"})

	assert.Equal(t, "a", s.buffer.String())
	assert.Equal(t, []string{"a"}, renderer.buffers)
}

func TestSession_BackspaceOnEmptyBuffer(t *testing.T) {
	s := newStepSession(new(testutil.MockWordSource), nil)

	s.handle(event{kind: eventBackspace})
	assert.Equal(t, "", s.buffer.String())

	s.handle(event{kind: eventText, text: "ab"})
	s.handle(event{kind: eventBackspace})
	assert.Equal(t, "a", s.buffer.String())
}

func TestSession_FetchFailureLeavesQueue(t *testing.T) {
	source := new(testutil.MockWordSource)
	source.On("FetchWords", mock.Anything, 20).Return(nil, errors.New("connection refused")).Once()
	source.On("FetchWords", mock.Anything, 20).Return(testutil.NewTestRecords(2), nil).Once()
	renderer := &recordingRenderer{}
	s := newStepSession(source, renderer)

	s.advance()
	s.runPending()
	s.drain()

	assert.Equal(t, 0, s.queue.Len())
	assert.True(t, s.waiting)
	assert.Empty(t, renderer.Words())

	s.handle(event{kind: eventEnter})
	s.runPending()
	s.drain()

	assert.Equal(t, []string{"mot0"}, renderer.Words())
	assert.Equal(t, 1, s.queue.Len())
	// one left in the queue is below the mark, so another refill is pending
	assert.Len(t, s.pending, 1)
	source.AssertExpectations(t)
}

func TestSession_EmptyBatchDoesNotAdvance(t *testing.T) {
	source := new(testutil.MockWordSource)
	source.On("FetchWords", mock.Anything, 20).Return([]domain.WordRecord{}, nil).Once()
	s := newStepSession(source, nil)

	s.advance()
	s.runPending()
	s.drain()

	assert.True(t, s.waiting)
	assert.Empty(t, s.pending)
	source.AssertExpectations(t)
}

func TestSession_AppendWhileShowingKeepsCurrent(t *testing.T) {
	renderer := &recordingRenderer{}
	s := newStepSession(new(testutil.MockWordSource), renderer)
	s.queue.Append(testutil.NewTestRecord("un", "uno"))
	s.advance()

	s.handle(event{kind: eventAppend, records: testutil.NewTestRecords(3)})

	assert.Equal(t, "un", s.current.Word)
	assert.Equal(t, 3, s.queue.Len())
	assert.Equal(t, []string{"un"}, renderer.Words())
}

func TestSession_Run(t *testing.T) {
	source := new(testutil.MockWordSource)
	source.On("FetchWords", mock.Anything, 20).Return([]domain.WordRecord{
		testutil.NewTestRecord("château", "castillo"),
		testutil.NewTestRecord("chien", "perro"),
		testutil.NewTestRecord("chat", "gato"),
		testutil.NewTestRecord("maison", "casa"),
	}, nil)
	source.On("ReportResult", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	renderer := &recordingRenderer{}
	s := NewSession(source, renderer, Config{}, testutil.NewTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return len(renderer.Words()) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Type(ctx, "castillo"))
	require.NoError(t, s.Enter(ctx))
	require.NoError(t, s.KeyPress(ctx, 'x'))
	require.NoError(t, s.Backspace(ctx))
	require.NoError(t, s.Type(ctx, "gato"))
	require.NoError(t, s.Enter(ctx))

	score, err := s.Score(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Score{Correct: 1, Total: 2}, score)
	assert.Equal(t, []string{"château", "chien", "chat"}, renderer.Words())

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	assert.ErrorIs(t, s.Enter(context.Background()), ErrSessionClosed)
}
