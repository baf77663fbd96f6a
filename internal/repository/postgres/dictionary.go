package postgres

import (
	"database/sql"
	"fmt"

	"vocabquiz/internal/domain"

	"github.com/lib/pq"
)

// DictionaryRepo implements repository.DictionaryRepository
type DictionaryRepo struct {
	db *sql.DB
}

// NewDictionaryRepo creates a new dictionary repository
func NewDictionaryRepo(db *sql.DB) *DictionaryRepo {
	return &DictionaryRepo{db: db}
}

// ListEntries returns every dictionary entry ordered by word
func (r *DictionaryRepo) ListEntries() ([]domain.Entry, error) {
	query := `
		SELECT word, translations, frequency
		FROM dictionary
		ORDER BY word
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.Word, pq.Array(&e.Translations), &e.Frequency); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// UpsertEntries inserts or replaces entries in a single transaction
func (r *DictionaryRepo) UpsertEntries(entries []domain.Entry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO dictionary (word, translations, frequency)
		VALUES ($1, $2, $3)
		ON CONFLICT (word)
		DO UPDATE SET translations = EXCLUDED.translations, frequency = EXCLUDED.frequency
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.Word, pq.Array(e.Translations), e.Weight()); err != nil {
			return fmt.Errorf("failed to upsert %q: %w", e.Word, err)
		}
	}

	return tx.Commit()
}
