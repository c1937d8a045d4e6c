// Package renderer formats animation documents for human and machine
// consumption: a markdown summary for the TUI preview and show command,
// and indented JSON for export and clipboard copy.
package renderer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mizuki/animlib/internal/models"
)

// maxPreviewKeyframes caps the keyframe table in the markdown summary;
// long animations list the head and note the truncation.
const maxPreviewKeyframes = 20

// Markdown renders a document as a markdown summary suitable for
// glamour rendering in the TUI or plain display in the CLI.
func Markdown(fileName string, doc *models.Document) string {
	var b strings.Builder

	name := strings.TrimSuffix(fileName, ".json")
	if doc.Metadata != nil && doc.Metadata.Name != "" {
		name = doc.Metadata.Name
	}
	fmt.Fprintf(&b, "# %s\n\n", name)

	if doc.Metadata != nil && doc.Metadata.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", doc.Metadata.Description)
	}

	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| File | %s |\n", fileName)
	fmt.Fprintf(&b, "| Kind | %s |\n", doc.Kind())
	if doc.Version != "" {
		fmt.Fprintf(&b, "| Version | %s |\n", doc.Version)
	}
	if doc.Metadata != nil {
		if doc.Metadata.Duration > 0 {
			fmt.Fprintf(&b, "| Duration | %.2fs |\n", doc.Metadata.Duration)
		}
		if doc.Metadata.CreatedAt != "" {
			fmt.Fprintf(&b, "| Created | %s |\n", doc.Metadata.CreatedAt)
		}
		if doc.Metadata.SavedAt != "" {
			fmt.Fprintf(&b, "| Saved | %s |\n", doc.Metadata.SavedAt)
		}
	}
	b.WriteString("\n")

	if doc.Kind() == models.KindPreset {
		writePresetTable(&b, doc.Parameters)
	} else {
		writeKeyframeTable(&b, doc.Keyframes)
	}
	return b.String()
}

func writePresetTable(b *strings.Builder, parameters map[string]float64) {
	b.WriteString("## Parameters\n\n")
	if len(parameters) == 0 {
		b.WriteString("_none_\n")
		return
	}
	names := make([]string, 0, len(parameters))
	for name := range parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("| Parameter | Value |\n|---|---|\n")
	for _, name := range names {
		fmt.Fprintf(b, "| %s | %.3f |\n", name, parameters[name])
	}
}

func writeKeyframeTable(b *strings.Builder, keyframes []models.Keyframe) {
	fmt.Fprintf(b, "## Keyframes (%d)\n\n", len(keyframes))
	if len(keyframes) == 0 {
		b.WriteString("_none_\n")
		return
	}

	shown := keyframes
	if len(shown) > maxPreviewKeyframes {
		shown = shown[:maxPreviewKeyframes]
	}

	b.WriteString("| # | Time | Parameters |\n|---|---|---|\n")
	for i, kf := range shown {
		fmt.Fprintf(b, "| %d | %.3fs | %s |\n", i, kf.Time, summarizeParameters(kf.Parameters))
	}
	if len(keyframes) > maxPreviewKeyframes {
		fmt.Fprintf(b, "\n_%d more keyframes not shown_\n", len(keyframes)-maxPreviewKeyframes)
	}
}

func summarizeParameters(parameters map[string]float64) string {
	if len(parameters) == 0 {
		return "—"
	}
	names := make([]string, 0, len(parameters))
	for name := range parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	var parts []string
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%.2f", name, parameters[name]))
		if len(parts) == 4 && len(names) > 4 {
			parts = append(parts, fmt.Sprintf("+%d more", len(names)-4))
			break
		}
	}
	return strings.Join(parts, ", ")
}

// JSON renders a document as indented JSON, the same form Save writes.
func JSON(doc *models.Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
