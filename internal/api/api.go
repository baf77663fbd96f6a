// Package api serves the word source HTTP endpoints.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/middleware"
	"vocabquiz/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// DefaultNumWords is used when num_words is absent
const DefaultNumWords = 10

// WordGenerator picks words for a batch
type WordGenerator interface {
	GenerateWords(n int) ([]domain.WordRecord, error)
}

// ResultRecorder stores reported results
type ResultRecorder interface {
	RecordResult(word string, correct bool) error
}

// StatsReader reports history totals
type StatsReader interface {
	Totals() (domain.Score, error)
}

// Pinger checks the backing store
type Pinger interface {
	Ping() error
}

// Handler serves the API endpoints
type Handler struct {
	words   WordGenerator
	results ResultRecorder
	stats   StatsReader
	db      Pinger
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(words WordGenerator, results ResultRecorder, stats StatsReader, db Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		words:   words,
		results: results,
		stats:   stats,
		db:      db,
		logger:  logger,
	}
}

// Router builds the HTTP router with middleware and routes
func (h *Handler) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(h.logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	}).Handler)
	r.Use(chimiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/getWord", h.GetWords)
		r.Get("/getWord/", h.GetWords)
		r.Get("/postResult", h.PostResult)
		r.Get("/postResult/", h.PostResult)
		r.Get("/stats", h.GetStats)
		r.Get("/stats/", h.GetStats)
	})

	r.Get("/health", h.Health)

	return r
}

// GetWords serves a batch of words
func (h *Handler) GetWords(w http.ResponseWriter, r *http.Request) {
	n := DefaultNumWords
	if raw := r.URL.Query().Get("num_words"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.respondError(w, service.ErrInvalidInput, "num_words must be a positive integer")
			return
		}
		n = parsed
	}

	records, err := h.words.GenerateWords(n)
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// PostResult records the outcome of a round
func (h *Handler) PostResult(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	word := query.Get("word")
	if word == "" {
		h.respondError(w, service.ErrInvalidInput, "word is required")
		return
	}

	correct, err := parseBool(query.Get("result"))
	if err != nil {
		h.respondError(w, service.ErrInvalidInput, "result must be a boolean")
		return
	}

	if err := h.results.RecordResult(word, correct); err != nil {
		h.respondError(w, err, "")
		return
	}

	respondJSON(w, http.StatusOK, struct{}{})
}

type statsResponse struct {
	domain.Score
	Percentage float64 `json:"percentage"`
}

// GetStats serves the history totals
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	score, err := h.stats.Totals()
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	respondJSON(w, http.StatusOK, statsResponse{Score: score, Percentage: score.Percentage()})
}

// Health pings the database
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		h.logger.Error("Health check failed", zap.Error(err))
		http.Error(w, "Health check failed", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// parseBool accepts the boolean spellings query strings commonly use
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw)))
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) respondError(w http.ResponseWriter, err error, message string) {
	status := statusFor(err)
	if message == "" {
		message = err.Error()
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.Error(err))
		message = "internal server error"
	}
	respondJSON(w, status, errorResponse{Error: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrEmptyDictionary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"failed to encode response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
