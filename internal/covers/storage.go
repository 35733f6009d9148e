package covers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix under which stored covers are served.
const PublicPrefix = "/static/covers/"

// Store handles on-disk storage of uploaded book cover images.
type Store struct {
	dir string
}

// NewStore creates a new cover store at the specified directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create covers dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes cover image data under a unique name for the book and
// returns the generated filename. Previous covers for the same book are
// left in place until the orphan sweep removes them.
func (s *Store) Save(bookID uint, ext string, data []byte) (string, error) {
	u := uuid.New()
	filename := fmt.Sprintf("book_%d_%x%s", bookID, u, ext)
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("write cover: %w", err)
	}
	return filename, nil
}

// PublicPath returns the URL path under which a stored cover is served.
func (s *Store) PublicPath(filename string) string {
	return PublicPrefix + filename
}

// RemoveUnreferenced deletes cover files that are absent from the
// referenced set (keyed by base filename) and older than minAge.
// Only files following the store's own "book_" naming are considered.
// Returns the number of files removed.
func (s *Store) RemoveUnreferenced(referenced map[string]struct{}, minAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-minAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "book_") {
			continue
		}
		if _, ok := referenced[entry.Name()]; ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Dir returns the storage directory path.
func (s *Store) Dir() string {
	return s.dir
}
