package submission

import (
	"encoding/json"

	"github.com/pawhelp/pawhelp-backend/internal/models"
)

// StringList accepts either a single JSON string or a list of strings
// and always unmarshals to a list. Citizen forms historically sent
// colors both ways.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = StringList(many)
	return nil
}

// Payload is the type-discriminated citizen form submission. The Kind
// field selects which location key the canonical document uses; every
// descriptive field is optional, the contact triple is required.
type Payload struct {
	Kind         models.ReportKind `json:"kind"`
	SubmissionID string            `json:"submission_id,omitempty"`

	AnimalType  string     `json:"animal_type,omitempty"`
	AnimalName  string     `json:"animal_name,omitempty"`
	Breed       string     `json:"breed,omitempty"`
	Colors      StringList `json:"colors,omitempty"`
	Age         string     `json:"age,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	Location    string     `json:"location,omitempty"`
	Date        string     `json:"date,omitempty"`
	Time        string     `json:"time,omitempty"`
	Description string     `json:"description,omitempty"`

	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
}

// locationKey maps the report kind to the canonical name of its
// location field.
func locationKey(kind models.ReportKind) string {
	switch kind {
	case models.KindFound:
		return "found_location"
	case models.KindAbuse:
		return "incident_location"
	default:
		return "last_seen_location"
	}
}

// Build turns a validated payload into the canonical details document.
// Empty fields are stripped so the store never receives placeholder
// values, colors always come out as a list (empty if absent), and
// gender defaults to "unknown". Pure and deterministic.
func Build(p *Payload) map[string]any {
	gender := p.Gender
	if gender == "" {
		gender = "unknown"
	}

	colors := make([]any, 0, len(p.Colors))
	for _, c := range p.Colors {
		if c != "" {
			colors = append(colors, c)
		}
	}

	doc := map[string]any{
		"breed":             p.Breed,
		"colors":            colors,
		"age":               p.Age,
		"gender":            gender,
		"description":       p.Description,
		locationKey(p.Kind): p.Location,
		"date":              p.Date,
		"time":              p.Time,
	}

	return Clean(doc)
}

// Clean returns a copy of doc with nil and empty-string values removed
// at any depth, including inside lists of nested documents. Empty
// lists survive; colors relies on that.
func Clean(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		cleaned, keep := cleanValue(v)
		if keep {
			out[k] = cleaned
		}
	}
	return out
}

func cleanValue(v any) (any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case string:
		return val, val != ""
	case map[string]any:
		m := Clean(val)
		return m, len(m) > 0
	case []any:
		list := make([]any, 0, len(val))
		for _, item := range val {
			if cleaned, keep := cleanValue(item); keep {
				list = append(list, cleaned)
			}
		}
		return list, true
	default:
		return val, true
	}
}
