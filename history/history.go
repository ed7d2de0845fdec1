// Package history keeps a bounded, most-recent-first record of finished
// translations on top of an injected key-value store. The core never mutates
// a stored result; records are written once when the caller hands over a
// finished TranslationResult.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vibelingo/vibelingo/storage"
	"github.com/vibelingo/vibelingo/translator"
)

// DefaultLimit is the maximum number of records retained.
const DefaultLimit = 20

const storeKey = "history"

// Record is one persisted request/result pair.
type Record struct {
	ID             string                       `json:"id"`
	Timestamp      time.Time                    `json:"timestamp"`
	Text           string                       `json:"text"`
	SourceLanguage string                       `json:"sourceLanguage"`
	TargetLanguage string                       `json:"targetLanguage"`
	Style          translator.StyleMode         `json:"style"`
	Result         translator.TranslationResult `json:"result"`
}

// Store persists translation history in a KV store.
type Store struct {
	kv    storage.KV
	limit int
}

// NewStore creates a history store retaining at most DefaultLimit records.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv, limit: DefaultLimit}
}

// Add prepends a record for a completed session and truncates the list to
// the retention limit. It returns the stored record.
func (s *Store) Add(req *translator.TranslationRequest, result *translator.TranslationResult) (*Record, error) {
	records, err := s.List()
	if err != nil {
		return nil, err
	}

	rec := Record{
		ID:             uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		Text:           req.Text,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		Style:          req.Style,
		Result:         *result,
	}

	records = append([]Record{rec}, records...)
	if len(records) > s.limit {
		records = records[:s.limit]
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}
	if err := s.kv.Set(storeKey, string(data)); err != nil {
		return nil, fmt.Errorf("failed to persist history: %w", err)
	}

	return &rec, nil
}

// List returns all records, most recent first. A missing or corrupt stored
// list reads as empty rather than failing the caller.
func (s *Store) List() ([]Record, error) {
	raw, ok, err := s.kv.Get(storeKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, nil
	}
	return records, nil
}

// Clear removes all stored history.
func (s *Store) Clear() error {
	return s.kv.Delete(storeKey)
}
