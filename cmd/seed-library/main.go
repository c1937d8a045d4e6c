// Command seed-library writes a starter set of animations into a
// library directory: an idle sway loop, a blink, and a neutral-pose
// preset. Useful for demos and for exercising a fresh install.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mizuki/animlib/internal/diag"
	"github.com/mizuki/animlib/internal/models"
	"github.com/mizuki/animlib/internal/storage"
)

func main() {
	dir := flag.String("dir", "", "animation directory (default: the configured library)")
	flag.Parse()

	store, err := storage.Open(*dir, diag.Console())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seeds := map[string]*models.Document{
		"idle-sway.json":    idleSway(),
		"blink.json":        blink(),
		"neutral-pose.json": models.NewPreset(map[string]float64{
			"ParamAngleX":    0,
			"ParamAngleY":    0,
			"ParamAngleZ":    0,
			"ParamEyeLOpen":  1,
			"ParamEyeROpen":  1,
			"ParamMouthOpen": 0,
		}, "Neutral Pose", "Rest position for all head and face parameters"),
	}

	for fileName, doc := range seeds {
		if _, err := store.Save(doc, fileName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Seeded %d animations into %s\n", len(seeds), store.Dir())
}

func idleSway() *models.Document {
	return &models.Document{
		Version: "1.0",
		Metadata: &models.Metadata{
			Name:        "Idle Sway",
			Description: "Gentle side-to-side head motion for idle loops",
			Duration:    4,
		},
		Keyframes: []models.Keyframe{
			{Time: 0, Parameters: map[string]float64{"ParamAngleX": 0, "ParamAngleZ": 0}},
			{Time: 1, Parameters: map[string]float64{"ParamAngleX": 8, "ParamAngleZ": 2}},
			{Time: 2, Parameters: map[string]float64{"ParamAngleX": 0, "ParamAngleZ": 0}},
			{Time: 3, Parameters: map[string]float64{"ParamAngleX": -8, "ParamAngleZ": -2}},
			{Time: 4, Parameters: map[string]float64{"ParamAngleX": 0, "ParamAngleZ": 0}},
		},
	}
}

func blink() *models.Document {
	return &models.Document{
		Version: "1.0",
		Metadata: &models.Metadata{
			Name:        "Blink",
			Description: "Single eye blink",
			Duration:    0.3,
		},
		Keyframes: []models.Keyframe{
			{Time: 0, Parameters: map[string]float64{"ParamEyeLOpen": 1, "ParamEyeROpen": 1}},
			{Time: 0.1, Parameters: map[string]float64{"ParamEyeLOpen": 0, "ParamEyeROpen": 0}},
			{Time: 0.3, Parameters: map[string]float64{"ParamEyeLOpen": 1, "ParamEyeROpen": 1}},
		},
	}
}
