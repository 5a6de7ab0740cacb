package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EncodeTags serializes tags into the payload stored alongside an event.
func EncodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeTags expands a stored payload. An empty payload means no tags.
func DecodeTags(payload string) ([]string, error) {
	if strings.TrimSpace(payload) == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(payload), &tags); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTags, err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
