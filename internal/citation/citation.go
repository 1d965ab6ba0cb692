package citation

import (
	"encoding/json"
)

// Defaults applied when a field is missing or has the wrong shape
const (
	DefaultTitle     = "Unknown Title"
	DefaultURL       = "#"
	DefaultRelevance = 0.8
)

// Citation describes one source document backing an answer
type Citation struct {
	Title     string  `json:"title"`
	Journal   string  `json:"journal"`
	URL       string  `json:"url"`
	Relevance float64 `json:"relevance"`
}

// Normalize converts the raw citations field of an answer-service response
// into well-formed Citation records. The second return value reports whether
// the response carried a citation list at all: anything that is not a JSON
// array (absent, null, scalar, object) yields (nil, false). An array of N
// elements always yields exactly N citations in the same order, with
// per-field defaults absorbing missing or malformed data.
func Normalize(raw json.RawMessage) ([]Citation, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	// JSON null decodes into a nil slice without error
	if elems == nil {
		return nil, false
	}

	citations := make([]Citation, len(elems))
	for i, elem := range elems {
		citations[i] = normalizeOne(elem)
	}

	return citations, true
}

// normalizeOne applies the per-field fallback rules to a single element.
// Elements that are not objects (or fail to parse) fall back entirely.
func normalizeOne(elem json.RawMessage) Citation {
	c := Citation{
		Title:     DefaultTitle,
		Journal:   "",
		URL:       DefaultURL,
		Relevance: DefaultRelevance,
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil {
		return c
	}

	if s, ok := asString(fields["title"]); ok && s != "" {
		c.Title = s
	}
	if s, ok := asString(fields["journal"]); ok {
		c.Journal = s
	}
	if s, ok := asString(fields["url"]); ok && s != "" {
		c.URL = s
	}
	// Out-of-range scores pass through unchanged; only a missing or
	// non-numeric value falls back.
	if f, ok := asNumber(fields["relevance"]); ok {
		c.Relevance = f
	}

	return c
}

func asString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func asNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}
