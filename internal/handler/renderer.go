package handler

import (
	"fmt"
	"strings"

	"vocabquiz/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// chatRenderer sends session output as chat messages. Typing happens on
// the user's side, so buffer updates are not shown.
type chatRenderer struct {
	sender Sender
	chat   tele.Recipient
	logger *zap.Logger
}

func newChatRenderer(sender Sender, chat tele.Recipient, logger *zap.Logger) *chatRenderer {
	return &chatRenderer{
		sender: sender,
		chat:   chat,
		logger: logger,
	}
}

func (r *chatRenderer) ShowWord(word string) {
	r.send(fmt.Sprintf("Translate: %s", word))
}

func (r *chatRenderer) ShowBuffer(string) {}

func (r *chatRenderer) ShowOutcome(outcome domain.Outcome) {
	verdict := "Incorrect!"
	if outcome.Correct {
		verdict = "Correct!"
	}
	r.send(fmt.Sprintf("%s Possible answers: %s", verdict, strings.Join(outcome.Accepted, ", ")))
}

func (r *chatRenderer) ShowWaiting() {
	r.send("Loading words...")
}

func (r *chatRenderer) send(text string) {
	if _, err := r.sender.Send(r.chat, text); err != nil {
		r.logger.Warn("Failed to send message", zap.Error(err))
	}
}
