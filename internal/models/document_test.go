package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDocumentKind(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want Kind
	}{
		{
			name: "keyframe animation",
			doc:  Document{Keyframes: []Keyframe{{Time: 0, Parameters: map[string]float64{}}}},
			want: KindKeyframes,
		},
		{
			name: "explicit preset tag",
			doc:  Document{Type: "preset", Parameters: map[string]float64{"ParamAngleX": 1}},
			want: KindPreset,
		},
		{
			name: "parameters without keyframes",
			doc:  Document{Parameters: map[string]float64{"ParamAngleX": 1}},
			want: KindPreset,
		},
		{
			name: "empty document defaults to keyframes",
			doc:  Document{},
			want: KindKeyframes,
		},
		{
			name: "keyframes win without a preset tag",
			doc: Document{
				Keyframes:  []Keyframe{{Time: 0, Parameters: map[string]float64{}}},
				Parameters: map[string]float64{"ParamAngleX": 1},
			},
			want: KindKeyframes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewPreset(t *testing.T) {
	params := map[string]float64{"ParamAngleX": 10.0}
	doc := NewPreset(params, "look-right", "glance to the right")

	if doc.Type != "preset" {
		t.Errorf("Type = %q, want preset", doc.Type)
	}
	if doc.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", doc.Version)
	}
	if doc.Metadata.Name != "look-right" {
		t.Errorf("Metadata.Name = %q", doc.Metadata.Name)
	}
	if doc.Metadata.CreatedAt == "" {
		t.Error("Metadata.CreatedAt not stamped")
	}
	if doc.Parameters["ParamAngleX"] != 10.0 {
		t.Errorf("Parameters = %v", doc.Parameters)
	}
	if doc.Kind() != KindPreset {
		t.Errorf("Kind() = %v, want KindPreset", doc.Kind())
	}
}

func TestDocumentClone(t *testing.T) {
	doc := &Document{
		Version:  "1.0",
		Metadata: &Metadata{Name: "wave", Extra: map[string]interface{}{"author": "rin"}},
		Keyframes: []Keyframe{
			{Time: 0, Parameters: map[string]float64{"ParamAngleX": 1}},
		},
	}

	clone := doc.Clone()
	clone.Metadata.Name = "changed"
	clone.Metadata.Extra["author"] = "other"
	clone.Keyframes[0].Parameters["ParamAngleX"] = 99

	if doc.Metadata.Name != "wave" {
		t.Error("clone shares metadata with original")
	}
	if doc.Metadata.Extra["author"] != "rin" {
		t.Error("clone shares metadata extras with original")
	}
	if doc.Keyframes[0].Parameters["ParamAngleX"] != 1 {
		t.Error("clone shares keyframe parameters with original")
	}
}

func TestMetadataUnknownKeyPassthrough(t *testing.T) {
	raw := `{
		"metadata": {
			"name": "wave",
			"duration": 2.5,
			"rig_model": "hiyori_pro",
			"tags": ["greeting", "loop"]
		},
		"keyframes": [{"time": 0, "parameters": {}}]
	}`

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Metadata.Name != "wave" {
		t.Errorf("Name = %q", doc.Metadata.Name)
	}
	if doc.Metadata.Duration != 2.5 {
		t.Errorf("Duration = %v", doc.Metadata.Duration)
	}
	if doc.Metadata.Extra["rig_model"] != "hiyori_pro" {
		t.Errorf("Extra = %v", doc.Metadata.Extra)
	}

	out, err := json.Marshal(&doc)
	if err != nil {
		t.Fatal(err)
	}
	text := string(out)
	for _, want := range []string{`"rig_model":"hiyori_pro"`, `"greeting"`, `"name":"wave"`} {
		if !strings.Contains(text, want) {
			t.Errorf("marshalled document missing %s: %s", want, text)
		}
	}
}

func TestMetadataWrongTypedKnownKeyLandsInExtra(t *testing.T) {
	// A string duration is not the fixed field; it is preserved as an
	// unknown key rather than dropped.
	var m Metadata
	if err := json.Unmarshal([]byte(`{"duration": "long"}`), &m); err != nil {
		t.Fatal(err)
	}
	if m.Duration != 0 {
		t.Errorf("Duration = %v, want 0", m.Duration)
	}
	if m.Extra["duration"] != "long" {
		t.Errorf("Extra = %v", m.Extra)
	}
}

func TestNewCatalogEntry(t *testing.T) {
	doc := &Document{
		Metadata: &Metadata{Name: "Wave Hello", Description: "greets the viewer", Duration: 2},
		Keyframes: []Keyframe{
			{Time: 0, Parameters: map[string]float64{}},
			{Time: 1, Parameters: map[string]float64{}},
		},
	}
	entry := NewCatalogEntry("/lib/wave.json", "wave.json", doc)
	if entry.Name != "Wave Hello" {
		t.Errorf("Name = %q", entry.Name)
	}
	if entry.KeyframeCount != 2 {
		t.Errorf("KeyframeCount = %d", entry.KeyframeCount)
	}
	if entry.Duration != 2 {
		t.Errorf("Duration = %v", entry.Duration)
	}
	if entry.IsPreset() {
		t.Error("keyframe animation reported as preset")
	}
}

func TestNewCatalogEntryDefaults(t *testing.T) {
	doc := &Document{Parameters: map[string]float64{"ParamAngleX": 1}}
	entry := NewCatalogEntry("/lib/pose.json", "pose.json", doc)

	if entry.Name != "pose" {
		t.Errorf("Name = %q, want file stem fallback", entry.Name)
	}
	if entry.Description != "" {
		t.Errorf("Description = %q, want empty", entry.Description)
	}
	if entry.Duration != 0 {
		t.Errorf("Duration = %v, want 0", entry.Duration)
	}
	if entry.KeyframeCount != 0 {
		t.Errorf("KeyframeCount = %d, want 0", entry.KeyframeCount)
	}
	if !entry.IsPreset() {
		t.Error("preset entry not detected")
	}
	if !strings.Contains(entry.Summary(), "preset") {
		t.Errorf("Summary() = %q, want preset marker", entry.Summary())
	}
}
