// Package storage owns the animation directory: a flat set of *.json
// documents, one animation or preset per file, with an in-memory catalog
// rebuilt from disk on every scan. The file name is the external
// identifier; the metadata name is display-only.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mizuki/animlib/internal/diag"
	apperrors "github.com/mizuki/animlib/internal/errors"
	"github.com/mizuki/animlib/internal/models"
	"github.com/mizuki/animlib/internal/validation"
)

// Store is the sole gateway to the animation directory. It is not safe
// for concurrent use; every operation runs synchronously against the
// local filesystem.
type Store struct {
	dir      string
	reporter diag.Reporter

	catalog []models.CatalogEntry

	// The most recently loaded document, tracked together with the file
	// name it was loaded from so Delete can clear it by exact match.
	current     *models.Document
	currentFile string
}

// Open ensures the animation directory exists (creating it if missing)
// and performs an initial catalog scan. A nil reporter defaults to
// stderr output.
func Open(dir string, reporter diag.Reporter) (*Store, error) {
	if reporter == nil {
		reporter = diag.Console()
	}
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, apperrors.StorageError("resolve home directory", err)
		}
		dir = filepath.Join(homeDir, ".animlib", "animations")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperrors.StorageError("create animation directory", err)
	}

	s := &Store{dir: dir, reporter: reporter}
	s.scan()
	return s, nil
}

// Dir returns the animation directory path.
func (s *Store) Dir() string {
	return s.dir
}

// scan enumerates every *.json file directly inside the directory,
// loading and validating each one. Files that fail to parse or validate
// are skipped with a diagnostic; a single bad file never aborts the
// scan. The catalog is replaced wholesale once the scan completes.
func (s *Store) scan() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.reporter.Failuref("failed to read animation directory %s: %v", s.dir, err)
		s.catalog = nil
		return
	}

	var catalog []models.CatalogEntry
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		doc, ok := s.loadFile(path)
		if !ok {
			continue
		}
		catalog = append(catalog, models.NewCatalogEntry(path, entry.Name(), doc))
	}

	// Directory read order is filesystem-dependent; sort by file name so
	// consecutive scans of an unchanged directory agree.
	sort.Slice(catalog, func(i, j int) bool {
		return catalog[i].FileName < catalog[j].FileName
	})

	s.catalog = catalog
	s.reporter.Advisoryf("animation library scanned: %d entries", len(catalog))
}

// loadFile reads and parses one document. Absence is the sole failure
// signal; the cause is reported as a diagnostic.
func (s *Store) loadFile(path string) (*models.Document, bool) {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		s.reporter.Failuref("failed to read %s: %v", name, err)
		return nil, false
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		s.reporter.Failuref("invalid JSON in %s: %v", name, err)
		return nil, false
	}

	if result := validation.CheckMap(raw); !result.Valid {
		for _, e := range result.Errors {
			s.reporter.Failuref("invalid animation %s: %s", name, e.Message)
		}
		return nil, false
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.reporter.Failuref("malformed animation %s: %v", name, err)
		return nil, false
	}
	return &doc, true
}

// List returns the catalog produced by the last scan. No side effects,
// no re-scan; the snapshot may be stale relative to the filesystem.
func (s *Store) List() []models.CatalogEntry {
	return s.catalog
}

// Refresh re-scans the directory, discarding the previous catalog.
// Callers that mutate the directory out-of-band use this to resync.
func (s *Store) Refresh() {
	s.scan()
}

// Load reads the named file from the animation directory. On success
// the document becomes the store's current document.
func (s *Store) Load(fileName string) (*models.Document, error) {
	path := filepath.Join(s.dir, fileName)
	if _, err := os.Stat(path); err != nil {
		s.reporter.Failuref("animation not found: %s", fileName)
		return nil, apperrors.FileNotFoundError(fileName)
	}

	doc, ok := s.loadFile(path)
	if !ok {
		return nil, apperrors.InvalidDocumentError(fileName)
	}

	s.current = doc
	s.currentFile = fileName
	s.reporter.Successf("animation loaded: %s", fileName)
	return doc, nil
}

// Current returns the most recently loaded document and the file name
// it was loaded from, or nil and "" when nothing is loaded.
func (s *Store) Current() (*models.Document, string) {
	return s.current, s.currentFile
}

// Save validates the document, stamps saved_at on a copy, and writes it
// to dir/fileName, overwriting any existing file. The caller's document
// is left untouched; the stamped copy is returned. A validation failure
// writes nothing. The catalog is re-scanned after a successful write.
func (s *Store) Save(doc *models.Document, fileName string) (*models.Document, error) {
	if result := validation.CheckDocument(doc); !result.Valid {
		for _, e := range result.Errors {
			s.reporter.Failuref("cannot save %s: %s", fileName, e.Message)
		}
		return nil, result.Err()
	}

	stamped := doc.Clone()
	if stamped.Metadata == nil {
		stamped.Metadata = &models.Metadata{}
	}
	stamped.Metadata.SavedAt = time.Now().Format(time.RFC3339)

	data, err := json.MarshalIndent(stamped, "", "  ")
	if err != nil {
		return nil, apperrors.StorageError("serialize "+fileName, err)
	}
	data = append(data, '\n')

	path := filepath.Join(s.dir, fileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		s.reporter.Failuref("failed to write %s: %v", fileName, err)
		return nil, apperrors.StorageError("write "+fileName, err)
	}

	s.reporter.Successf("animation saved: %s", fileName)
	s.scan()
	return stamped, nil
}

// Delete removes the named file. A miss is an error and leaves the
// catalog alone; a hit triggers a re-scan and clears the current
// document when it was loaded from the deleted file.
func (s *Store) Delete(fileName string) error {
	path := filepath.Join(s.dir, fileName)
	if _, err := os.Stat(path); err != nil {
		s.reporter.Failuref("animation not found: %s", fileName)
		return apperrors.FileNotFoundError(fileName)
	}

	if err := os.Remove(path); err != nil {
		s.reporter.Failuref("failed to delete %s: %v", fileName, err)
		return apperrors.StorageError("delete "+fileName, err)
	}

	s.reporter.Successf("animation deleted: %s", fileName)
	s.scan()

	if s.currentFile == fileName {
		s.current = nil
		s.currentFile = ""
	}
	return nil
}

// Info returns the catalog entry for the named file from the last scan.
// It does not touch disk.
func (s *Store) Info(fileName string) (models.CatalogEntry, bool) {
	for _, entry := range s.catalog {
		if entry.FileName == fileName {
			return entry, true
		}
	}
	return models.CatalogEntry{}, false
}
