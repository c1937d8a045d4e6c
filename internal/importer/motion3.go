// Package importer converts foreign animation formats into native
// keyframe documents. Currently it understands Live2D Cubism motion
// files (*.motion3.json), flattening their segmented curves into
// uniformly sampled keyframes.
package importer

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/mizuki/animlib/internal/errors"
	"github.com/mizuki/animlib/internal/models"
)

// DefaultSampleFps is the keyframe sampling rate used when the caller
// does not specify one. Motion curves are usually authored at 30 or 60
// fps; 10 samples per second keeps imported documents readable while
// preserving the overall motion shape.
const DefaultSampleFps = 10.0

// motion3File mirrors the subset of the Cubism motion3.json format the
// importer consumes.
type motion3File struct {
	Version int          `json:"Version"`
	Meta    motion3Meta  `json:"Meta"`
	Curves  []motion3Cur `json:"Curves"`
}

type motion3Meta struct {
	Duration float64 `json:"Duration"`
	Fps      float64 `json:"Fps"`
	Loop     bool    `json:"Loop"`
}

type motion3Cur struct {
	Target   string    `json:"Target"`
	ID       string    `json:"Id"`
	Segments []float64 `json:"Segments"`
}

// Cubism segment type identifiers.
const (
	segmentLinear         = 0
	segmentBezier         = 1
	segmentStepped        = 2
	segmentInverseStepped = 3
)

// span is one decoded segment of a curve: the value transitions from
// the previous breakpoint to (t, v) according to kind.
type span struct {
	t, v float64
	kind int
}

// curve is a decoded parameter curve: a start point plus spans.
type curve struct {
	id     string
	startT float64
	startV float64
	spans  []span
}

// Options controls how a motion file is flattened into keyframes.
type Options struct {
	// SampleFps is the keyframe sampling rate; zero means DefaultSampleFps.
	SampleFps float64
	// Name overrides the metadata name; default is the file stem.
	Name string
}

// ImportMotion3 reads a Cubism motion3.json file and converts its
// parameter curves into a keyframe document. Bezier segments are
// approximated by their endpoints; stepped segments hold their value.
func ImportMotion3(path string, opts Options) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.ImportError(path, err)
	}

	var motion motion3File
	if err := json.Unmarshal(data, &motion); err != nil {
		return nil, apperrors.ImportError(path, err)
	}
	if motion.Version != 3 {
		return nil, apperrors.ImportError(path, fmt.Errorf("unsupported motion version %d", motion.Version))
	}
	if motion.Meta.Duration <= 0 {
		return nil, apperrors.ImportError(path, fmt.Errorf("motion has no duration"))
	}

	var curves []curve
	for _, c := range motion.Curves {
		// Only rig parameters translate; part opacity and model curves
		// have no home in the document format.
		if c.Target != "Parameter" {
			continue
		}
		decoded, err := decodeSegments(c.ID, c.Segments)
		if err != nil {
			return nil, apperrors.ImportError(path, err)
		}
		curves = append(curves, decoded)
	}
	if len(curves) == 0 {
		return nil, apperrors.ImportError(path, fmt.Errorf("motion contains no parameter curves"))
	}

	fps := opts.SampleFps
	if fps <= 0 {
		fps = DefaultSampleFps
	}

	name := opts.Name
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(strings.TrimSuffix(base, ".motion3.json"), ".json")
	}

	doc := &models.Document{
		Version: "1.0",
		Metadata: &models.Metadata{
			Name:        name,
			Description: fmt.Sprintf("imported from %s", filepath.Base(path)),
			Duration:    motion.Meta.Duration,
		},
		Keyframes: sampleKeyframes(curves, motion.Meta.Duration, fps),
	}
	return doc, nil
}

// decodeSegments unpacks the flat Cubism segment array. The array opens
// with the initial point (t, v); each following block is a segment type
// identifier and its points. Bezier segments carry two control points
// before the endpoint; the control points are dropped here.
func decodeSegments(id string, segments []float64) (curve, error) {
	if len(segments) < 2 {
		return curve{}, fmt.Errorf("curve %s: truncated segment data", id)
	}
	c := curve{id: id, startT: segments[0], startV: segments[1]}

	pos := 2
	for pos < len(segments) {
		kind := int(segments[pos])
		pos++

		var need int
		switch kind {
		case segmentBezier:
			need = 6
		case segmentLinear, segmentStepped, segmentInverseStepped:
			need = 2
		default:
			return curve{}, fmt.Errorf("curve %s: unknown segment type %d", id, kind)
		}
		if pos+need > len(segments) {
			return curve{}, fmt.Errorf("curve %s: truncated segment data", id)
		}

		// Endpoint is always the final (t, v) pair of the block.
		t := segments[pos+need-2]
		v := segments[pos+need-1]
		c.spans = append(c.spans, span{t: t, v: v, kind: kind})
		pos += need
	}
	return c, nil
}

// valueAt evaluates the curve at time t. Before the first point the
// curve holds its start value, after the last it holds its end value.
func (c curve) valueAt(t float64) float64 {
	if t <= c.startT || len(c.spans) == 0 {
		return c.startV
	}
	prevT, prevV := c.startT, c.startV
	for _, sp := range c.spans {
		if t <= sp.t {
			switch sp.kind {
			case segmentStepped:
				return prevV
			case segmentInverseStepped:
				return sp.v
			default:
				if sp.t == prevT {
					return sp.v
				}
				frac := (t - prevT) / (sp.t - prevT)
				return prevV + (sp.v-prevV)*frac
			}
		}
		prevT, prevV = sp.t, sp.v
	}
	return prevV
}

// sampleKeyframes walks the timeline at the given rate and snapshots
// every curve at each sample, always including the final instant.
func sampleKeyframes(curves []curve, duration, fps float64) []models.Keyframe {
	step := 1.0 / fps
	count := int(math.Floor(duration/step)) + 1

	var keyframes []models.Keyframe
	for i := 0; i < count; i++ {
		t := float64(i) * step
		keyframes = append(keyframes, snapshotAt(curves, t))
	}
	if last := keyframes[len(keyframes)-1].Time; duration-last > 1e-9 {
		keyframes = append(keyframes, snapshotAt(curves, duration))
	}
	return keyframes
}

func snapshotAt(curves []curve, t float64) models.Keyframe {
	params := make(map[string]float64, len(curves))
	for _, c := range curves {
		params[c.id] = c.valueAt(t)
	}
	// Round sample times so the JSON stays readable.
	return models.Keyframe{Time: math.Round(t*1000) / 1000, Parameters: params}
}
