// Package settings persists the user's last-used translation preferences on
// top of an injected key-value store.
package settings

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/vibelingo/vibelingo/storage"
	"github.com/vibelingo/vibelingo/translator"
)

const storeKey = "settings"

// Settings holds the last-used language pair and style mode.
type Settings struct {
	SourceLanguage string
	TargetLanguage string
	Style          translator.StyleMode
}

// Defaults returns the settings used before the user has saved anything.
func Defaults() Settings {
	return Settings{
		SourceLanguage: translator.SourceAuto,
		TargetLanguage: "tl",
		Style:          translator.StyleCasual,
	}
}

// Store reads and writes settings as a small JSON document in the KV store.
type Store struct {
	kv storage.KV
}

// NewStore creates a settings store.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Load returns the stored settings, falling back to Defaults for anything
// missing or unreadable.
func (s *Store) Load() (Settings, error) {
	out := Defaults()

	raw, ok, err := s.kv.Get(storeKey)
	if err != nil {
		return out, fmt.Errorf("failed to read settings: %w", err)
	}
	if !ok || !gjson.Valid(raw) {
		return out, nil
	}

	if v := gjson.Get(raw, "sourceLanguage"); v.Exists() {
		out.SourceLanguage = v.String()
	}
	if v := gjson.Get(raw, "targetLanguage"); v.Exists() {
		out.TargetLanguage = v.String()
	}
	if v := gjson.Get(raw, "style"); v.Exists() {
		out.Style = translator.StyleMode(v.String())
	}
	return out, nil
}

// Save persists the full settings document.
func (s *Store) Save(settings Settings) error {
	doc := "{}"
	var err error
	for _, f := range []struct {
		path  string
		value string
	}{
		{"sourceLanguage", settings.SourceLanguage},
		{"targetLanguage", settings.TargetLanguage},
		{"style", string(settings.Style)},
	} {
		doc, err = sjson.Set(doc, f.path, f.value)
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
	}
	if err := s.kv.Set(storeKey, doc); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}

// SetStyle updates only the stored style mode, leaving the rest of the
// document untouched.
func (s *Store) SetStyle(style translator.StyleMode) error {
	return s.setFields(field{"style", string(style)})
}

// SetLanguages updates only the stored language pair. Both fields land in a
// single store write, so a failed write never leaves half a pair behind.
func (s *Store) SetLanguages(source, target string) error {
	return s.setFields(
		field{"sourceLanguage", source},
		field{"targetLanguage", target},
	)
}

type field struct {
	path  string
	value string
}

func (s *Store) setFields(fields ...field) error {
	raw, ok, err := s.kv.Get(storeKey)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if !ok || !gjson.Valid(raw) {
		raw = "{}"
	}
	for _, f := range fields {
		raw, err = sjson.Set(raw, f.path, f.value)
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
	}
	if err := s.kv.Set(storeKey, raw); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}
