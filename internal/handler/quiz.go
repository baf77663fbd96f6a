package handler

import (
	"context"

	"vocabquiz/internal/matcher"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgWelcome   = "Translate each word into Spanish. Reply with your answer, /score shows how you are doing."
	msgNoSession = "Send /start to begin the quiz."
	msgFailed    = "Something went wrong. Please try again."
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	h.logger.Info("Quiz started",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("username", c.Sender().Username),
	)

	if err := c.Send(msgWelcome); err != nil {
		return err
	}

	h.startSession(c.Chat())
	return nil
}

// handleText submits the message as the answer to the current word
func (h *Handler) handleText(c tele.Context) error {
	session := h.currentSession()
	if session == nil {
		return c.Send(msgNoSession)
	}

	ctx, cancel := context.WithTimeout(context.Background(), postTimeout)
	defer cancel()

	// The answer filter only keeps ASCII, strip accents before it sees the text
	if err := session.Submit(ctx, matcher.Normalize(c.Text())); err != nil {
		h.logger.Warn("Failed to submit answer", zap.Error(err))
		return c.Send(msgNoSession)
	}

	return nil
}

// handleScore handles /score command
func (h *Handler) handleScore(c tele.Context) error {
	session := h.currentSession()
	if session == nil {
		return c.Send(msgNoSession)
	}

	ctx, cancel := context.WithTimeout(context.Background(), postTimeout)
	defer cancel()

	score, err := session.Score(ctx)
	if err != nil {
		h.logger.Error("Failed to read score", zap.Error(err))
		return c.Send(msgFailed)
	}

	return c.Send(score.Summary())
}
