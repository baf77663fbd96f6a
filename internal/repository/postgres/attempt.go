package postgres

import (
	"database/sql"

	"vocabquiz/internal/domain"
)

// AttemptRepo implements repository.AttemptRepository
type AttemptRepo struct {
	db *sql.DB
}

// NewAttemptRepo creates a new attempt repository
func NewAttemptRepo(db *sql.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// LogAttempt appends a result to the history
func (r *AttemptRepo) LogAttempt(word string, correct bool) error {
	query := `
		INSERT INTO attempts (word, correct)
		VALUES ($1, $2)
	`
	_, err := r.db.Exec(query, word, correct)
	return err
}

// LastResults returns, for every attempted word, whether its latest attempt was correct
func (r *AttemptRepo) LastResults() (map[string]bool, error) {
	query := `
		SELECT DISTINCT ON (word) word, correct
		FROM attempts
		ORDER BY word, created_at DESC, id DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make(map[string]bool)
	for rows.Next() {
		var word string
		var correct bool
		if err := rows.Scan(&word, &correct); err != nil {
			return nil, err
		}
		results[word] = correct
	}

	return results, rows.Err()
}

// Totals counts correct and total attempts
func (r *AttemptRepo) Totals() (domain.Score, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE correct), COUNT(*)
		FROM attempts
	`

	var score domain.Score
	err := r.db.QueryRow(query).Scan(&score.Correct, &score.Total)
	return score, err
}
