package storylog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Submission is a loosely typed view over the JSON body posted by the client.
type Submission struct {
	fields map[string]any
}

// ParseSubmission decodes raw as a JSON object. Malformed bodies and non-object
// documents produce an empty submission rather than an error.
func ParseSubmission(raw []byte) Submission {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Submission{fields: map[string]any{}}
	}

	return Submission{fields: fields}
}

// NewSubmission builds a submission from already decoded fields.
func NewSubmission(fields map[string]any) Submission {
	if fields == nil {
		fields = map[string]any{}
	}

	return Submission{fields: fields}
}

// Get returns the named field as a string. Missing, null, false, zero and empty
// values all read as "".
func (s Submission) Get(key string) string {
	switch v := s.fields[key].(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}

		return ""
	case float64:
		if v == 0 {
			return ""
		}

		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}

		return string(b)
	}
}

// GetOr returns the named field, or fallback when the field reads as empty.
func (s Submission) GetOr(key, fallback string) string {
	if v := s.Get(key); v != "" {
		return v
	}

	return fallback
}

// Honeypot reports whether the bot-trap field was filled in.
func (s Submission) Honeypot() bool {
	return strings.TrimSpace(s.Get(FieldHoney)) != ""
}
