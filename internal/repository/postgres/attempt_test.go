package postgres

import (
	"fmt"
	"testing"

	"vocabquiz/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAttemptRepo_LogAttempt(t *testing.T) {
	tests := []struct {
		name          string
		word          string
		correct       bool
		mockError     error
		expectedError bool
	}{
		{name: "correct answer", word: "château", correct: true},
		{name: "wrong answer", word: "chien", correct: false},
		{name: "database error", word: "chat", correct: true, mockError: fmt.Errorf("db error"), expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewAttemptRepo(db)

			exp := mock.ExpectExec("INSERT INTO attempts").WithArgs(tt.word, tt.correct)
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(1, 1))
			}

			err = repo.LogAttempt(tt.word, tt.correct)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttemptRepo_LastResults(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAttemptRepo(db)

	rows := sqlmock.NewRows([]string{"word", "correct"}).
		AddRow("château", true).
		AddRow("chien", false)

	mock.ExpectQuery("SELECT DISTINCT ON \\(word\\) word, correct FROM attempts").
		WillReturnRows(rows)

	results, err := repo.LastResults()

	assert.NoError(t, err)
	assert.Equal(t, map[string]bool{"château": true, "chien": false}, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepo_LastResults_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAttemptRepo(db)

	mock.ExpectQuery("SELECT DISTINCT ON").WillReturnError(fmt.Errorf("db error"))

	results, err := repo.LastResults()

	assert.Error(t, err)
	assert.Nil(t, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepo_Totals(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAttemptRepo(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FILTER \\(WHERE correct\\), COUNT\\(\\*\\) FROM attempts").
		WillReturnRows(sqlmock.NewRows([]string{"correct", "total"}).AddRow(7, 10))

	score, err := repo.Totals()

	assert.NoError(t, err)
	assert.Equal(t, domain.Score{Correct: 7, Total: 10}, score)
	assert.NoError(t, mock.ExpectationsWereMet())
}
