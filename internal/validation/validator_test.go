package validation

import (
	"encoding/json"
	"testing"

	"github.com/mizuki/animlib/internal/models"
)

func checkJSON(t *testing.T, raw string) *Result {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("bad test fixture: %v", err)
	}
	return CheckMap(m)
}

func TestCheckMapKeyframeVariant(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		valid    bool
		wantCode string
	}{
		{
			name:     "empty document",
			raw:      `{}`,
			wantCode: CodeMissingKeyframes,
		},
		{
			name:     "keyframes not a list",
			raw:      `{"keyframes": "not-a-list"}`,
			wantCode: CodeKeyframesNotList,
		},
		{
			name:     "keyframes is a mapping",
			raw:      `{"keyframes": {"time": 0}}`,
			wantCode: CodeKeyframesNotList,
		},
		{
			name:     "empty keyframes",
			raw:      `{"keyframes": []}`,
			wantCode: CodeKeyframesEmpty,
		},
		{
			name:     "keyframe missing time",
			raw:      `{"keyframes": [{"parameters": {}}]}`,
			wantCode: CodeMissingTime,
		},
		{
			name:     "keyframe missing parameters",
			raw:      `{"keyframes": [{"time": 0}]}`,
			wantCode: CodeMissingParameters,
		},
		{
			name:     "keyframe parameters not a mapping",
			raw:      `{"keyframes": [{"time": 0, "parameters": [1, 2]}]}`,
			wantCode: CodeParametersNotMap,
		},
		{
			name:     "keyframe not an object",
			raw:      `{"keyframes": [42]}`,
			wantCode: CodeKeyframeNotObject,
		},
		{
			name:  "minimal valid keyframe animation",
			raw:   `{"keyframes": [{"time": 0.0, "parameters": {}}]}`,
			valid: true,
		},
		{
			name:  "valid with metadata",
			raw:   `{"version": "1.0", "metadata": {"name": "wave"}, "keyframes": [{"time": 0, "parameters": {"ParamAngleX": 10}}, {"time": 1, "parameters": {"ParamAngleX": -10}}]}`,
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checkJSON(t, tt.raw)
			if result.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", result.Valid, tt.valid, result.Errors)
			}
			if !tt.valid && result.Errors[0].Code != tt.wantCode {
				t.Errorf("error code = %s, want %s", result.Errors[0].Code, tt.wantCode)
			}
		})
	}
}

func TestCheckMapFailsAtFirstBadKeyframe(t *testing.T) {
	result := checkJSON(t, `{"keyframes": [
		{"time": 0, "parameters": {}},
		{"parameters": {}}
	]}`)
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if result.Errors[0].Index != 1 {
		t.Errorf("failing keyframe index = %d, want 1", result.Errors[0].Index)
	}
}

func TestCheckMapPresetVariant(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		valid    bool
		wantCode string
	}{
		{
			name:  "typed preset",
			raw:   `{"version": "1.0", "type": "preset", "parameters": {"ParamAngleX": 10.0}}`,
			valid: true,
		},
		{
			name:  "untyped parameters-only document",
			raw:   `{"parameters": {"ParamEyeLOpen": 1.0}}`,
			valid: true,
		},
		{
			name:     "preset without parameters",
			raw:      `{"type": "preset"}`,
			wantCode: CodeMissingParameters,
		},
		{
			name:     "preset parameters not a mapping",
			raw:      `{"type": "preset", "parameters": [1, 2]}`,
			wantCode: CodeParametersNotMap,
		},
		{
			name:     "preset with empty parameters",
			raw:      `{"type": "preset", "parameters": {}}`,
			wantCode: CodeParametersEmpty,
		},
		{
			name:     "preset with non-numeric value",
			raw:      `{"type": "preset", "parameters": {"ParamAngleX": "ten"}}`,
			wantCode: CodeParameterNotFloat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checkJSON(t, tt.raw)
			if result.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", result.Valid, tt.valid, result.Errors)
			}
			if !tt.valid && result.Errors[0].Code != tt.wantCode {
				t.Errorf("error code = %s, want %s", result.Errors[0].Code, tt.wantCode)
			}
		})
	}
}

func TestCheckMapDocumentWithBothSections(t *testing.T) {
	// Keyframes win when both sections are present and no type tag says
	// otherwise.
	result := checkJSON(t, `{"parameters": {"ParamAngleX": 1}, "keyframes": []}`)
	if result.Valid {
		t.Fatal("expected keyframe rules to apply")
	}
	if result.Errors[0].Code != CodeKeyframesEmpty {
		t.Errorf("error code = %s, want %s", result.Errors[0].Code, CodeKeyframesEmpty)
	}
}

func TestCheckDocument(t *testing.T) {
	valid := &models.Document{
		Keyframes: []models.Keyframe{{Time: 0, Parameters: map[string]float64{}}},
	}
	if result := CheckDocument(valid); !result.Valid {
		t.Errorf("valid keyframe document rejected: %v", result.Errors)
	}

	missing := &models.Document{}
	if result := CheckDocument(missing); result.Valid {
		t.Error("document without keyframes accepted")
	}

	empty := &models.Document{Keyframes: []models.Keyframe{}}
	if result := CheckDocument(empty); result.Valid || result.Errors[0].Code != CodeKeyframesEmpty {
		t.Errorf("empty keyframes: got %v", result.Errors)
	}

	nilParams := &models.Document{Keyframes: []models.Keyframe{{Time: 0}}}
	if result := CheckDocument(nilParams); result.Valid || result.Errors[0].Code != CodeMissingParameters {
		t.Errorf("nil keyframe parameters: got %v", result.Errors)
	}

	preset := models.NewPreset(map[string]float64{"ParamAngleX": 10}, "look-right", "")
	if result := CheckDocument(preset); !result.Valid {
		t.Errorf("preset rejected: %v", result.Errors)
	}

	emptyPreset := models.NewPreset(map[string]float64{}, "nothing", "")
	if result := CheckDocument(emptyPreset); result.Valid {
		t.Error("empty preset accepted")
	}
}

func TestResultErr(t *testing.T) {
	if err := valid().Err(); err != nil {
		t.Errorf("valid result produced error: %v", err)
	}
	result := failed(CodeKeyframesEmpty, "keyframes is empty", -1)
	err := result.Err()
	if err == nil {
		t.Fatal("failed result produced nil error")
	}
	if err.Message != "keyframes is empty" {
		t.Errorf("error message = %q", err.Message)
	}
}
