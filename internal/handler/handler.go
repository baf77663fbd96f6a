package handler

import (
	"context"
	"sync"
	"time"

	"vocabquiz/internal/quiz"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// postTimeout bounds how long a handler waits for the session loop
const postTimeout = 5 * time.Second

// Sender delivers messages to a chat
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Handler manages all bot interactions
type Handler struct {
	sender Sender
	source quiz.WordSource
	cfg    quiz.Config
	logger *zap.Logger

	// The owner's running session, replaced on every /start
	session *quiz.Session
	cancel  context.CancelFunc
	mu      sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(sender Sender, source quiz.WordSource, cfg quiz.Config, logger *zap.Logger) *Handler {
	return &Handler{
		sender: sender,
		source: source,
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers(bot *tele.Bot) {
	// Commands
	bot.Handle("/start", h.handleStart)
	bot.Handle("/score", h.handleScore)

	// Answers
	bot.Handle(tele.OnText, h.handleText)
}

// Stop ends the running session, if any
func (h *Handler) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
		h.session = nil
	}
}

// startSession replaces the running session with a new one rendering to chat
func (h *Handler) startSession(chat tele.Recipient) *quiz.Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancel != nil {
		h.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	renderer := newChatRenderer(h.sender, chat, h.logger)
	session := quiz.NewSession(h.source, renderer, h.cfg, h.logger)

	h.session = session
	h.cancel = cancel

	go func() {
		if err := session.Run(ctx); err != nil && err != context.Canceled {
			h.logger.Error("Quiz session failed", zap.Error(err))
		}
	}()

	return session
}

func (h *Handler) currentSession() *quiz.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session
}
