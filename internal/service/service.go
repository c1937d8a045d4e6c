// Package service provides the business logic layer over the animation
// store, shared by the CLI, TUI, and HTTP API.
package service

import (
	"fmt"
	"strings"

	apperrors "github.com/mizuki/animlib/internal/errors"
	"github.com/mizuki/animlib/internal/importer"
	"github.com/mizuki/animlib/internal/models"
	"github.com/mizuki/animlib/internal/storage"
	"github.com/sahilm/fuzzy"
)

// Service wraps a Store with search, preset creation, and import.
type Service struct {
	store *storage.Store
}

// New creates a service over an opened store.
func New(store *storage.Store) *Service {
	return &Service{store: store}
}

// Dir returns the animation directory path.
func (s *Service) Dir() string {
	return s.store.Dir()
}

// List returns the catalog from the last directory scan.
func (s *Service) List() []models.CatalogEntry {
	return s.store.List()
}

// Search fuzzy-matches the query against each entry's name, file name,
// and description, returning matches in relevance order. An empty query
// returns the full catalog.
func (s *Service) Search(query string) []models.CatalogEntry {
	entries := s.store.List()
	if query == "" {
		return entries
	}

	searchStrings := make([]string, len(entries))
	for i, entry := range entries {
		searchStrings[i] = strings.ToLower(entry.Name + " " + entry.FileName + " " + entry.Description)
	}

	matches := fuzzy.Find(strings.ToLower(query), searchStrings)
	results := make([]models.CatalogEntry, 0, len(matches))
	for _, match := range matches {
		results = append(results, entries[match.Index])
	}
	return results
}

// Load reads the named animation and makes it the current document.
func (s *Service) Load(fileName string) (*models.Document, error) {
	return s.store.Load(fileName)
}

// Current returns the most recently loaded document and its file name.
func (s *Service) Current() (*models.Document, string) {
	return s.store.Current()
}

// Save validates and persists a document under the given file name,
// returning the stamped copy that was written.
func (s *Service) Save(doc *models.Document, fileName string) (*models.Document, error) {
	if fileName == "" {
		return nil, apperrors.ValidationError("file name is required")
	}
	if !strings.HasSuffix(fileName, ".json") {
		fileName += ".json"
	}
	return s.store.Save(doc, fileName)
}

// Delete removes the named animation file.
func (s *Service) Delete(fileName string) error {
	return s.store.Delete(fileName)
}

// Refresh re-scans the animation directory.
func (s *Service) Refresh() {
	s.store.Refresh()
}

// Info returns the catalog entry for the named file.
func (s *Service) Info(fileName string) (models.CatalogEntry, error) {
	entry, ok := s.store.Info(fileName)
	if !ok {
		return models.CatalogEntry{}, apperrors.NotFoundError(fmt.Sprintf("animation %s", fileName))
	}
	return entry, nil
}

// CreatePreset builds a preset document from a parameter snapshot
// without persisting it.
func (s *Service) CreatePreset(parameters map[string]float64, name, description string) *models.Document {
	return models.NewPreset(parameters, name, description)
}

// SavePreset builds a preset and persists it in one step. The file name
// defaults to a slug of the preset name.
func (s *Service) SavePreset(parameters map[string]float64, name, description, fileName string) (*models.Document, error) {
	if name == "" {
		return nil, apperrors.ValidationError("preset name is required")
	}
	if fileName == "" {
		fileName = Slug(name) + ".json"
	}
	return s.Save(s.CreatePreset(parameters, name, description), fileName)
}

// ImportMotion converts a Cubism motion3.json file into a native
// keyframe document and saves it into the library.
func (s *Service) ImportMotion(srcPath, fileName string, sampleFps float64) (*models.Document, error) {
	doc, err := importer.ImportMotion3(srcPath, importer.Options{SampleFps: sampleFps})
	if err != nil {
		return nil, err
	}
	if fileName == "" {
		fileName = Slug(doc.Metadata.Name) + ".json"
	}
	return s.Save(doc, fileName)
}

// Slug lowercases a display name into a file-name-safe form.
func Slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "animation"
	}
	return slug
}
