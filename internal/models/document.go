package models

import (
	"encoding/json"
	"time"
)

// Kind identifies which variant of the animation document format a
// Document carries.
type Kind int

const (
	// KindKeyframes is a timeline animation: an ordered list of keyframes.
	KindKeyframes Kind = iota
	// KindPreset is a single static parameter snapshot with no timeline.
	KindPreset
)

func (k Kind) String() string {
	if k == KindPreset {
		return "preset"
	}
	return "keyframes"
}

// Document is the persisted unit of the animation library: one JSON file
// per document. A document is either a keyframe animation (Keyframes set)
// or a parameter preset (Parameters set); Kind reports which.
type Document struct {
	Version    string             `json:"version,omitempty"`
	Type       string             `json:"type,omitempty"`
	Metadata   *Metadata          `json:"metadata,omitempty"`
	Keyframes  []Keyframe         `json:"keyframes,omitempty"`
	Parameters map[string]float64 `json:"parameters,omitempty"`
}

// Keyframe is a timestamped snapshot of rig parameter values. Parameters
// may be empty but must be present for the keyframe to be valid.
type Keyframe struct {
	Time       float64            `json:"time"`
	Parameters map[string]float64 `json:"parameters"`
}

// Kind reports the document variant. An explicit "preset" type tag wins;
// otherwise a document with top-level parameters and no keyframes is a
// preset. Everything else is treated as a keyframe animation.
func (d *Document) Kind() Kind {
	if d.Type == "preset" {
		return KindPreset
	}
	if len(d.Keyframes) == 0 && d.Parameters != nil {
		return KindPreset
	}
	return KindKeyframes
}

// Clone returns a deep copy of the document. Save stamps the copy rather
// than mutating caller-owned state.
func (d *Document) Clone() *Document {
	c := &Document{
		Version: d.Version,
		Type:    d.Type,
	}
	if d.Metadata != nil {
		m := *d.Metadata
		if d.Metadata.Extra != nil {
			m.Extra = make(map[string]interface{}, len(d.Metadata.Extra))
			for k, v := range d.Metadata.Extra {
				m.Extra[k] = v
			}
		}
		c.Metadata = &m
	}
	if d.Keyframes != nil {
		c.Keyframes = make([]Keyframe, len(d.Keyframes))
		for i, kf := range d.Keyframes {
			ckf := Keyframe{Time: kf.Time}
			if kf.Parameters != nil {
				ckf.Parameters = make(map[string]float64, len(kf.Parameters))
				for k, v := range kf.Parameters {
					ckf.Parameters[k] = v
				}
			}
			c.Keyframes[i] = ckf
		}
	}
	if d.Parameters != nil {
		c.Parameters = make(map[string]float64, len(d.Parameters))
		for k, v := range d.Parameters {
			c.Parameters[k] = v
		}
	}
	return c
}

// NewPreset builds a preset document from a parameter snapshot. The
// parameters map is carried verbatim; created_at is stamped with the
// current time. The result is not persisted until passed to Save.
func NewPreset(parameters map[string]float64, name, description string) *Document {
	return &Document{
		Version: "1.0",
		Type:    "preset",
		Metadata: &Metadata{
			Name:        name,
			Description: description,
			CreatedAt:   time.Now().Format(time.RFC3339),
		},
		Parameters: parameters,
	}
}

// Metadata holds the document's descriptive fields. Keys this tool does
// not know about are kept in Extra and written back on save, so files
// authored by other tools survive a round trip.
type Metadata struct {
	Name        string
	Description string
	Duration    float64
	CreatedAt   string
	SavedAt     string
	Extra       map[string]interface{}
}

// metadata field names that map onto fixed struct fields.
const (
	metaName        = "name"
	metaDescription = "description"
	metaDuration    = "duration"
	metaCreatedAt   = "created_at"
	metaSavedAt     = "saved_at"
)

// MarshalJSON writes the fixed fields plus any preserved unknown keys.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, 5+len(m.Extra))
	for k, v := range m.Extra {
		out[k] = v
	}
	if m.Name != "" {
		out[metaName] = m.Name
	}
	if m.Description != "" {
		out[metaDescription] = m.Description
	}
	if m.Duration != 0 {
		out[metaDuration] = m.Duration
	}
	if m.CreatedAt != "" {
		out[metaCreatedAt] = m.CreatedAt
	}
	if m.SavedAt != "" {
		out[metaSavedAt] = m.SavedAt
	}
	return json.Marshal(out)
}

// UnmarshalJSON pulls out the fixed fields and stashes everything else
// in Extra.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Metadata{}
	for k, v := range raw {
		switch k {
		case metaName:
			if s, ok := v.(string); ok {
				m.Name = s
				continue
			}
		case metaDescription:
			if s, ok := v.(string); ok {
				m.Description = s
				continue
			}
		case metaDuration:
			if f, ok := v.(float64); ok {
				m.Duration = f
				continue
			}
		case metaCreatedAt:
			if s, ok := v.(string); ok {
				m.CreatedAt = s
				continue
			}
		case metaSavedAt:
			if s, ok := v.(string); ok {
				m.SavedAt = s
				continue
			}
		}
		if m.Extra == nil {
			m.Extra = make(map[string]interface{})
		}
		m.Extra[k] = v
	}
	return nil
}
