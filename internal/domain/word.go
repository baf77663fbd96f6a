package domain

import (
	"encoding/json"
	"fmt"
)

// WordRecord is a word to translate together with its accepted translations
type WordRecord struct {
	Word     string
	Accepted []string
}

// wordRecordJSON is the wire form served by the word source
type wordRecordJSON struct {
	Word string   `json:"_word"`
	Dict wordDict `json:"_word_dict"`
}

type wordDict struct {
	TranslationES []string `json:"translation_es"`
}

// MarshalJSON encodes the record in the word source format
func (w WordRecord) MarshalJSON() ([]byte, error) {
	accepted := w.Accepted
	if accepted == nil {
		accepted = []string{}
	}
	return json.Marshal(wordRecordJSON{
		Word: w.Word,
		Dict: wordDict{TranslationES: accepted},
	})
}

// UnmarshalJSON decodes the record from the word source format
func (w *WordRecord) UnmarshalJSON(data []byte) error {
	var raw wordRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode word record: %w", err)
	}
	w.Word = raw.Word
	w.Accepted = raw.Dict.TranslationES
	return nil
}

// Entry is a dictionary row on the server side
type Entry struct {
	Word         string
	Translations []string
	Frequency    int
}

// Record returns the client facing form of the entry
func (e Entry) Record() WordRecord {
	translations := make([]string, len(e.Translations))
	copy(translations, e.Translations)
	return WordRecord{Word: e.Word, Accepted: translations}
}

// Weight returns the sampling weight, missing frequencies count as 1
func (e Entry) Weight() int {
	if e.Frequency <= 0 {
		return 1
	}
	return e.Frequency
}
