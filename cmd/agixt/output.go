package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leofalp/agixt-go/internal/utils"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
	outputText = "text"
)

// render writes v to w in the requested format.
func render(w io.Writer, format string, v any) error {
	var (
		out string
		err error
	)

	switch format {
	case outputYAML:
		out, err = toYAML(v)
	case outputText:
		out = toText(v)
	default:
		out = utils.JSONToString(v, true)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, strings.TrimRight(out, "\n"))
	return err
}

// toYAML renders v through its JSON form so ordered objects keep their member
// order. JSON is valid YAML; decoding it into a node tree and clearing the
// flow and quoting styles yields block YAML.
func toYAML(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("error encoding output: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return "", fmt.Errorf("error converting output to yaml: %w", err)
	}
	resetStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return "", fmt.Errorf("error encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("error encoding yaml: %w", err)
	}
	return buf.String(), nil
}

func resetStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		resetStyle(child)
	}
}

// toText prints strings bare and string lists one per line; anything else
// falls back to indented JSON.
func toText(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case []string:
		return strings.Join(value, "\n")
	default:
		return utils.JSONToString(v, true)
	}
}
