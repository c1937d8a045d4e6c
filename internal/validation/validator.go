// Package validation checks animation documents against the shape the
// rest of the system relies on. The two document variants carry their
// own rule sets: keyframe animations need a non-empty keyframes list
// with well-formed entries, presets need a non-empty parameter map.
//
// Validation never returns a Go error or panics: the Result's Valid flag
// plus its first failing check is the whole contract. Checks run in
// order and stop at the first failure.
package validation

import (
	"fmt"

	"github.com/mizuki/animlib/internal/errors"
	"github.com/mizuki/animlib/internal/models"
)

// Check codes identifying which validation rule failed.
const (
	CodeMissingKeyframes  = "MISSING_KEYFRAMES"
	CodeKeyframesNotList  = "KEYFRAMES_NOT_LIST"
	CodeKeyframesEmpty    = "KEYFRAMES_EMPTY"
	CodeKeyframeNotObject = "KEYFRAME_NOT_OBJECT"
	CodeMissingTime       = "MISSING_TIME"
	CodeMissingParameters = "MISSING_PARAMETERS"
	CodeParametersNotMap  = "PARAMETERS_NOT_MAP"
	CodeParametersEmpty   = "PARAMETERS_EMPTY"
	CodeParameterNotFloat = "PARAMETER_NOT_FLOAT"
)

// Error describes a single failed check. Index is the offending keyframe
// index, or -1 when the check is not keyframe-scoped.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Index   int    `json:"index"`
}

// Result is the outcome of validating one document.
type Result struct {
	Valid  bool    `json:"valid"`
	Errors []Error `json:"errors,omitempty"`
}

func valid() *Result {
	return &Result{Valid: true}
}

func failed(code, message string, index int) *Result {
	return &Result{
		Valid:  false,
		Errors: []Error{{Code: code, Message: message, Index: index}},
	}
}

// Err converts a failed result into an AppError, nil when valid.
func (r *Result) Err() *errors.AppError {
	if r.Valid {
		return nil
	}
	appErr := errors.ValidationError(r.Errors[0].Message)
	if len(r.Errors) > 1 {
		appErr.WithDetails(fmt.Sprintf("%d further checks failed", len(r.Errors)-1))
	}
	return appErr
}

// CheckMap validates the generic parsed form of a document, as produced
// by unmarshalling file contents into a map. This is the load-path
// validator: it can distinguish a missing key from a zero value.
func CheckMap(raw map[string]interface{}) *Result {
	if isPresetMap(raw) {
		return checkPresetMap(raw)
	}
	return checkKeyframesMap(raw)
}

// isPresetMap applies the variant rule: an explicit "preset" type tag
// wins, otherwise top-level parameters without keyframes.
func isPresetMap(raw map[string]interface{}) bool {
	if t, ok := raw["type"].(string); ok && t == "preset" {
		return true
	}
	_, hasKeyframes := raw["keyframes"]
	_, hasParameters := raw["parameters"]
	return hasParameters && !hasKeyframes
}

func checkKeyframesMap(raw map[string]interface{}) *Result {
	value, ok := raw["keyframes"]
	if !ok {
		return failed(CodeMissingKeyframes, "keyframes field is missing", -1)
	}
	list, ok := value.([]interface{})
	if !ok {
		return failed(CodeKeyframesNotList, "keyframes must be an array", -1)
	}
	if len(list) == 0 {
		return failed(CodeKeyframesEmpty, "keyframes is empty", -1)
	}
	for i, element := range list {
		kf, ok := element.(map[string]interface{})
		if !ok {
			return failed(CodeKeyframeNotObject, fmt.Sprintf("keyframe %d: not an object", i), i)
		}
		if _, ok := kf["time"]; !ok {
			return failed(CodeMissingTime, fmt.Sprintf("keyframe %d: time field is missing", i), i)
		}
		params, ok := kf["parameters"]
		if !ok {
			return failed(CodeMissingParameters, fmt.Sprintf("keyframe %d: parameters field is missing", i), i)
		}
		if _, ok := params.(map[string]interface{}); !ok {
			return failed(CodeParametersNotMap, fmt.Sprintf("keyframe %d: parameters must be a mapping", i), i)
		}
	}
	return valid()
}

func checkPresetMap(raw map[string]interface{}) *Result {
	value, ok := raw["parameters"]
	if !ok {
		return failed(CodeMissingParameters, "preset parameters field is missing", -1)
	}
	params, ok := value.(map[string]interface{})
	if !ok {
		return failed(CodeParametersNotMap, "preset parameters must be a mapping", -1)
	}
	if len(params) == 0 {
		return failed(CodeParametersEmpty, "preset parameters is empty", -1)
	}
	for name, v := range params {
		if _, ok := v.(float64); !ok {
			return failed(CodeParameterNotFloat, fmt.Sprintf("preset parameter %q: value must be a number", name), -1)
		}
	}
	return valid()
}

// CheckDocument validates the typed form of a document before it is
// saved. The same variant rules apply; presence checks map onto nil
// checks in the typed representation.
func CheckDocument(doc *models.Document) *Result {
	if doc.Kind() == models.KindPreset {
		return checkPresetDocument(doc)
	}
	return checkKeyframesDocument(doc)
}

func checkKeyframesDocument(doc *models.Document) *Result {
	if doc.Keyframes == nil {
		return failed(CodeMissingKeyframes, "keyframes field is missing", -1)
	}
	if len(doc.Keyframes) == 0 {
		return failed(CodeKeyframesEmpty, "keyframes is empty", -1)
	}
	for i, kf := range doc.Keyframes {
		if kf.Parameters == nil {
			return failed(CodeMissingParameters, fmt.Sprintf("keyframe %d: parameters field is missing", i), i)
		}
	}
	return valid()
}

func checkPresetDocument(doc *models.Document) *Result {
	if doc.Parameters == nil {
		return failed(CodeMissingParameters, "preset parameters field is missing", -1)
	}
	if len(doc.Parameters) == 0 {
		return failed(CodeParametersEmpty, "preset parameters is empty", -1)
	}
	return valid()
}
