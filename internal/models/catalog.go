package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CatalogEntry is the in-memory summary record for one valid animation
// file. Entries are derived from a directory scan and discarded wholesale
// on the next scan; they are never updated in place.
type CatalogEntry struct {
	FilePath      string  `json:"file_path"`
	FileName      string  `json:"file_name"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Duration      float64 `json:"duration"`
	KeyframeCount int     `json:"keyframe_count"`
}

// NewCatalogEntry derives a summary record from a loaded document. The
// display name falls back to the file name without its extension when
// the metadata carries none.
func NewCatalogEntry(path, fileName string, doc *Document) CatalogEntry {
	entry := CatalogEntry{
		FilePath:      path,
		FileName:      fileName,
		Name:          strings.TrimSuffix(fileName, filepath.Ext(fileName)),
		KeyframeCount: len(doc.Keyframes),
	}
	if doc.Metadata != nil {
		if doc.Metadata.Name != "" {
			entry.Name = doc.Metadata.Name
		}
		entry.Description = doc.Metadata.Description
		entry.Duration = doc.Metadata.Duration
	}
	return entry
}

// IsPreset reports whether the entry summarizes a preset document.
func (e CatalogEntry) IsPreset() bool {
	return e.KeyframeCount == 0
}

// Summary is a one-line description of the entry for list displays.
func (e CatalogEntry) Summary() string {
	var parts []string
	if e.IsPreset() {
		parts = append(parts, "preset")
	} else {
		parts = append(parts, fmt.Sprintf("%d keyframes", e.KeyframeCount))
		if e.Duration > 0 {
			parts = append(parts, fmt.Sprintf("%.1fs", e.Duration))
		}
	}
	parts = append(parts, e.FileName)
	if e.Description != "" {
		desc := e.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		parts = append(parts, desc)
	}
	return strings.Join(parts, " • ")
}
