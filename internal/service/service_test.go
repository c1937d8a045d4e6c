package service

import (
	"path/filepath"
	"testing"

	"github.com/mizuki/animlib/internal/diag"
	"github.com/mizuki/animlib/internal/models"
	"github.com/mizuki/animlib/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "animations"), &diag.Recorder{})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return New(store)
}

func seedAnimation(t *testing.T, svc *Service, fileName, name, description string) {
	t.Helper()
	doc := &models.Document{
		Metadata: &models.Metadata{Name: name, Description: description},
		Keyframes: []models.Keyframe{
			{Time: 0, Parameters: map[string]float64{"ParamAngleX": 0}},
		},
	}
	if _, err := svc.Save(doc, fileName); err != nil {
		t.Fatalf("seed %s: %v", fileName, err)
	}
}

func TestSearch(t *testing.T) {
	svc := newTestService(t)
	seedAnimation(t, svc, "wave-hello.json", "Wave Hello", "greets the viewer")
	seedAnimation(t, svc, "blink.json", "Blink", "quick eye blink")
	seedAnimation(t, svc, "head-tilt.json", "Head Tilt", "curious tilt")

	results := svc.Search("blink")
	if len(results) == 0 || results[0].FileName != "blink.json" {
		t.Fatalf("Search(blink) = %v", results)
	}

	// Fuzzy match against the description too.
	results = svc.Search("curious")
	if len(results) == 0 || results[0].FileName != "head-tilt.json" {
		t.Fatalf("Search(curious) = %v", results)
	}

	// An empty query returns the full catalog.
	if got := svc.Search(""); len(got) != 3 {
		t.Errorf("Search(\"\") returned %d entries, want 3", len(got))
	}

	if got := svc.Search("zzzzzz"); len(got) != 0 {
		t.Errorf("Search(zzzzzz) = %v, want none", got)
	}
}

func TestSaveAppendsJSONSuffix(t *testing.T) {
	svc := newTestService(t)
	doc := &models.Document{
		Keyframes: []models.Keyframe{{Time: 0, Parameters: map[string]float64{}}},
	}
	if _, err := svc.Save(doc, "wave"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Info("wave.json"); err != nil {
		t.Errorf("file not saved under wave.json: %v", err)
	}
}

func TestSaveRequiresFileName(t *testing.T) {
	svc := newTestService(t)
	doc := &models.Document{
		Keyframes: []models.Keyframe{{Time: 0, Parameters: map[string]float64{}}},
	}
	if _, err := svc.Save(doc, ""); err == nil {
		t.Error("save without a file name succeeded")
	}
}

func TestInfoNotFound(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Info("missing.json"); err == nil {
		t.Error("info on missing file succeeded")
	}
}

func TestSavePreset(t *testing.T) {
	svc := newTestService(t)

	saved, err := svc.SavePreset(map[string]float64{"ParamAngleX": 30}, "Look Right", "glance", "")
	if err != nil {
		t.Fatal(err)
	}
	if saved.Kind() != models.KindPreset {
		t.Errorf("saved kind = %v", saved.Kind())
	}

	// The file name defaults to a slug of the preset name.
	entry, err := svc.Info("look-right.json")
	if err != nil {
		t.Fatalf("preset not saved under slug: %v", err)
	}
	if !entry.IsPreset() {
		t.Error("catalog entry not marked as preset")
	}
}

func TestSavePresetRequiresName(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.SavePreset(map[string]float64{"ParamAngleX": 1}, "", "", ""); err == nil {
		t.Error("preset without a name saved")
	}
}

func TestSavePresetRejectsEmptyParameters(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.SavePreset(map[string]float64{}, "nothing", "", ""); err == nil {
		t.Error("preset without parameters saved")
	}
	if _, err := svc.Info("nothing.json"); err == nil {
		t.Error("rejected preset appeared in catalog")
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Wave Hello", "wave-hello"},
		{"  Look Right!  ", "look-right"},
		{"snake_case_name", "snake-case-name"},
		{"ALL CAPS 2", "all-caps-2"},
		{"---", "animation"},
		{"", "animation"},
		{"日本語", "animation"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
