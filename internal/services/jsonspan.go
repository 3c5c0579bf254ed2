package services

import (
	"errors"
	"strings"
)

var ErrNoJSONObject = errors.New("no JSON object found in response")

// JSONLocator finds the JSON object inside a free-text model response.
type JSONLocator interface {
	Locate(response string) (string, error)
}

// BraceSpanLocator slices from the first '{' to the last '}'. It tolerates prose
// and code fences around a single object. Braces inside string values are not
// special. A response with several top-level objects yields a span that does not
// parse, which the analyzer treats as a failed attempt.
type BraceSpanLocator struct{}

func (BraceSpanLocator) Locate(response string) (string, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONObject
	}
	return response[start : end+1], nil
}
