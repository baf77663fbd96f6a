package quiz

import "vocabquiz/internal/domain"

// Renderer displays session changes. Its methods are called from the
// session loop only.
type Renderer interface {
	ShowWord(word string)
	ShowBuffer(buffer string)
	ShowOutcome(outcome domain.Outcome)
	ShowWaiting()
}

type nopRenderer struct{}

func (nopRenderer) ShowWord(string) {}
func (nopRenderer) ShowBuffer(string) {}
func (nopRenderer) ShowOutcome(domain.Outcome) {}
func (nopRenderer) ShowWaiting() {}
