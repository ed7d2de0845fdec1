package storage

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// File is a KV store backed by a single JSON document on disk. Values are
// stored as JSON string members keyed by name, so the file stays readable and
// diffable. Writes go through a temp file and rename.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a file-backed store at path. The file is created lazily on
// the first Set.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return "", false, err
	}

	v := gjson.Get(doc, pathKey(key))
	if !v.Exists() {
		return "", false, nil
	}
	return v.String(), true, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}

	doc, err = sjson.Set(doc, pathKey(key), value)
	if err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return f.write(doc)
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}

	doc, err = sjson.Delete(doc, pathKey(key))
	if err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return f.write(doc)
}

// pathKey escapes path syntax in the key so it always addresses a single
// top-level member, even when it contains '.', '*' or '?'.
func pathKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (f *File) read() (string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return "{}", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read store: %w", err)
	}
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return "{}", nil
	}
	return string(data), nil
}

func (f *File) write(doc string) error {
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}
