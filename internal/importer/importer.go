// Package importer loads dictionary entries from JSON or Excel files.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Result holds the outcome of reading a file
type Result struct {
	Entries []domain.Entry
	Skipped int
	Errors  []string
}

func (r *Result) skip(format string, args ...interface{}) {
	r.Skipped++
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Importer reads dictionary files and stores their entries
type Importer struct {
	repo   repository.DictionaryRepository
	logger *zap.Logger
}

// New creates a new importer
func New(repo repository.DictionaryRepository, logger *zap.Logger) *Importer {
	return &Importer{
		repo:   repo,
		logger: logger,
	}
}

// ImportFile reads path and upserts every valid entry
func (i *Importer) ImportFile(path string) (*Result, error) {
	result, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	for _, msg := range result.Errors {
		i.logger.Warn("Skipped dictionary entry", zap.String("file", path), zap.String("reason", msg))
	}

	if len(result.Entries) == 0 {
		return result, nil
	}

	if err := i.repo.UpsertEntries(result.Entries); err != nil {
		return nil, fmt.Errorf("failed to store entries: %w", err)
	}

	i.logger.Info("Dictionary imported",
		zap.String("file", path),
		zap.Int("imported", len(result.Entries)),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

// ReadFile picks the reader by file extension
func ReadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ReadJSON(f)
	case ".xlsx":
		return ReadXLSX(f)
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
}

type jsonEntry struct {
	TranslationES []string `json:"translation_es"`
	Frequency     int      `json:"frequency"`
}

// ReadJSON reads an object keyed by word:
//
//	{"château": {"translation_es": ["castillo"], "frequency": 12}}
func ReadJSON(r io.Reader) (*Result, error) {
	var raw map[string]jsonEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary: %w", err)
	}

	words := make([]string, 0, len(raw))
	for word := range raw {
		words = append(words, word)
	}
	sort.Strings(words)

	result := &Result{}
	for _, word := range words {
		item := raw[word]
		result.add(word, item.TranslationES, item.Frequency, word)
	}
	return result, nil
}

// ReadXLSX reads the first sheet: word in column A, translations in
// column B separated by "," or ";", optional frequency in column C
func ReadXLSX(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &Result{}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "word") {
			continue
		}

		label := fmt.Sprintf("row %d", i+1)
		word := row[0]

		var translations []string
		if len(row) > 1 {
			translations = splitTranslations(row[1])
		}

		frequency := 0
		if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
			frequency, err = strconv.Atoi(strings.TrimSpace(row[2]))
			if err != nil {
				result.skip("%s: invalid frequency %q", label, row[2])
				continue
			}
		}

		result.add(word, translations, frequency, label)
	}
	return result, nil
}

// add validates one entry and appends it, or counts it as skipped
func (r *Result) add(word string, translations []string, frequency int, label string) {
	word = strings.TrimSpace(word)
	if word == "" {
		r.skip("%s: word cannot be empty", label)
		return
	}

	cleaned := make([]string, 0, len(translations))
	for _, t := range translations {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		r.skip("%s: no translations", label)
		return
	}

	if frequency <= 0 {
		frequency = 1
	}

	r.Entries = append(r.Entries, domain.Entry{
		Word:         word,
		Translations: cleaned,
		Frequency:    frequency,
	})
}

func splitTranslations(cell string) []string {
	return strings.FieldsFunc(cell, func(r rune) bool {
		return r == ',' || r == ';'
	})
}
