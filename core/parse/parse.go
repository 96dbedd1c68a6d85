package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/leofalp/agixt-go/core/jsonmap"
)

// ErrNotObjectList is returned by [Objects] when the input is neither an
// object nor an array of objects.
var ErrNotObjectList = errors.New("parse: expected a JSON object or an array of objects")

// Object parses content into an ordered JSON object. Blank content yields an
// empty object. Member order follows the input.
//
// Example usage:
//
//	// Valid JSON is decoded directly
//	settings, err := parse.Object(`{"provider":"openai","AI_MODEL":"gpt-4"}`)
//
//	// Relaxed input is repaired first
//	settings, err := parse.Object(`{provider: 'openai', AI_TEMPERATURE: 0.7,}`)
func Object(content string) (jsonmap.Object, error) {
	if strings.TrimSpace(content) == "" {
		return jsonmap.Object{}, nil
	}

	repaired, err := repair(content)
	if err != nil {
		return nil, err
	}

	var obj jsonmap.Object
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		return nil, fmt.Errorf("failed to parse content as object: %w", err)
	}
	if obj == nil {
		return jsonmap.Object{}, nil
	}
	return obj, nil
}

// Objects parses content into a list of ordered JSON objects. Content may be
// an array of objects or a single object, which yields a one-element list.
// Blank content yields an empty list.
func Objects(content string) ([]jsonmap.Object, error) {
	if strings.TrimSpace(content) == "" {
		return []jsonmap.Object{}, nil
	}

	repaired, err := repair(content)
	if err != nil {
		return nil, err
	}

	switch strings.TrimSpace(repaired)[0] {
	case '[':
		var list []jsonmap.Object
		if err := json.Unmarshal([]byte(repaired), &list); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotObjectList, err)
		}
		if list == nil {
			list = []jsonmap.Object{}
		}
		return list, nil
	case '{':
		var obj jsonmap.Object
		if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotObjectList, err)
		}
		return []jsonmap.Object{obj}, nil
	default:
		return nil, ErrNotObjectList
	}
}

// Value turns a single command-line value into raw JSON. Valid JSON
// (numbers, booleans, null, quoted strings, objects, arrays) is kept as is;
// anything else becomes a JSON string, so `hello` and `"hello"` are the same.
func Value(content string) json.RawMessage {
	trimmed := strings.TrimSpace(content)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	encoded, _ := json.Marshal(content)
	return encoded
}

// repair returns content unchanged when it is valid JSON, and the repaired
// document otherwise.
func repair(content string) (string, error) {
	if json.Valid([]byte(content)) {
		return content, nil
	}

	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		return "", fmt.Errorf("failed to repair JSON: %w", err)
	}
	if strings.TrimSpace(repaired) == "" {
		return "", errors.New("failed to repair JSON: empty result")
	}
	return repaired, nil
}
