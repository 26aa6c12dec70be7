package data

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// StringList is a slice of strings that can be decoded either from a JSON
// array or from a single comma-separated string (which is what the admin
// form submits for list fields). Blank entries are dropped and the
// surrounding whitespace is trimmed.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	// Try a plain JSON array first.
	var values []string
	if err := json.Unmarshal(data, &values); err == nil {
		*s = values
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = SplitList(raw, ",")
	return nil
}

// SplitList splits a delimited string into a StringList, trimming each
// entry and dropping the empty ones.
func SplitList(raw, sep string) StringList {
	if strings.TrimSpace(raw) == "" {
		return StringList{}
	}

	parts := strings.Split(raw, sep)
	values := make(StringList, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	return values
}

// Count is a non-negative integer that tolerates loosely typed input: it
// decodes from a JSON number or from a numeric string, truncating any
// fractional part, and anything malformed counts as zero rather than
// failing the whole request.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)

	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		*c = 0
		return nil
	}

	*c = Count(f)
	return nil
}

// Price is an optional non-negative decimal. It decodes from a JSON
// number or a numeric string; null, malformed or negative input all
// decode to the null price.
type Price struct {
	Valid bool
	Value float64
}

func (p *Price) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(strings.Trim(string(data), `"`))

	if raw == "" || raw == "null" {
		*p = Price{}
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		*p = Price{}
		return nil
	}

	*p = Price{Valid: true, Value: f}
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

// Ptr returns the price as a nullable float, which is how it is stored.
func (p Price) Ptr() *float64 {
	if !p.Valid {
		return nil
	}
	v := p.Value
	return &v
}
