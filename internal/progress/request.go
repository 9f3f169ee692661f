package progress

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/2beens/mealplan/pkg"
)

const (
	invalidDataMessage  = "Invalid data"
	invalidNotesMessage = "Notes must be a string"
	dateLayout          = "2006-01-02"
)

type fieldDecoder func(raw json.RawMessage, patch *Patch) string

// patchFields lists the accepted body fields in the order errors are reported.
// userId and dayNumber are type checked only, the path decides the identity.
var patchFields = []struct {
	name   string
	decode fieldDecoder
}{
	{name: "userId", decode: decodeIdentityField},
	{name: "dayNumber", decode: decodeIdentityField},
	{name: "date", decode: decodeDateField},
	{name: "mealCompletions", decode: idSetField(func(p *Patch, v *string) { p.MealCompletions = v })},
	{name: "workoutCompleted", decode: boolField(func(p *Patch, v *bool) { p.WorkoutCompleted = v })},
	{name: "exerciseCompletions", decode: idSetField(func(p *Patch, v *string) { p.ExerciseCompletions = v })},
	{name: "dailyWalkCompleted", decode: boolField(func(p *Patch, v *bool) { p.DailyWalkCompleted = v })},
	{name: "notes", decode: decodeNotesField},
}

// DecodePatch validates a partial update body. Every field is checked before
// anything is returned, so a failing body never yields a partial patch.
// Unknown fields are ignored.
func DecodePatch(body []byte) (Patch, error) {
	var patch Patch

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return patch, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return Patch{}, pkg.NewValidationError(invalidDataMessage, pkg.FieldError{
			Field:   "body",
			Message: "Expected object",
		})
	}

	var fieldErrors []pkg.FieldError
	for _, f := range patchFields {
		value, ok := raw[f.name]
		if !ok {
			continue
		}
		if msg := f.decode(value, &patch); msg != "" {
			fieldErrors = append(fieldErrors, pkg.FieldError{Field: f.name, Message: msg})
		}
	}
	if len(fieldErrors) > 0 {
		return Patch{}, pkg.NewValidationError(invalidDataMessage, fieldErrors...)
	}

	return patch, nil
}

// DecodeNotes extracts the notes string of a notes body.
func DecodeNotes(body []byte) (string, error) {
	var req struct {
		Notes json.RawMessage `json:"notes"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return "", pkg.NewValidationError(invalidNotesMessage)
	}

	var notes string
	if !isJSONString(req.Notes) || json.Unmarshal(req.Notes, &notes) != nil {
		return "", pkg.NewValidationError(invalidNotesMessage)
	}
	return notes, nil
}

func decodeIdentityField(raw json.RawMessage, _ *Patch) string {
	var v int
	if isJSONNull(raw) || json.Unmarshal(raw, &v) != nil {
		return "Expected integer"
	}
	return ""
}

func decodeDateField(raw json.RawMessage, patch *Patch) string {
	var date string
	if !isJSONString(raw) || json.Unmarshal(raw, &date) != nil {
		return "Expected string"
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "Expected date formatted as YYYY-MM-DD"
	}
	patch.Date = &date
	return ""
}

func decodeNotesField(raw json.RawMessage, patch *Patch) string {
	if isJSONNull(raw) {
		patch.ClearNotes = true
		return ""
	}
	var notes string
	if !isJSONString(raw) || json.Unmarshal(raw, &notes) != nil {
		return "Expected string"
	}
	patch.Notes = &notes
	return ""
}

func idSetField(set func(*Patch, *string)) fieldDecoder {
	return func(raw json.RawMessage, patch *Patch) string {
		var encoded string
		if !isJSONString(raw) || json.Unmarshal(raw, &encoded) != nil {
			return "Expected string"
		}
		ids, err := DecodeIDSet(encoded)
		if err != nil {
			return "Expected a JSON encoded array of integers"
		}
		normalized := ids.Encode()
		set(patch, &normalized)
		return ""
	}
}

func boolField(set func(*Patch, *bool)) fieldDecoder {
	return func(raw json.RawMessage, patch *Patch) string {
		if isJSONNull(raw) {
			return "Expected boolean"
		}
		var v bool
		if json.Unmarshal(raw, &v) != nil {
			return "Expected boolean"
		}
		set(patch, &v)
		return ""
	}
}

func isJSONString(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '"'
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
