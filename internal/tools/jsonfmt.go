package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/itchyny/gojq"
)

type jsonInput struct {
	Text   string
	Minify bool
	Query  string
}

// JSONOutput is the result of a json run
type JSONOutput struct {
	Formatted  string `json:"formatted"`
	Original   string `json:"original"`
	Operation  string `json:"operation"`
	Query      string `json:"query,omitempty"`
	Valid      bool   `json:"valid"`
	SizeBefore int    `json:"size_before"`
	SizeAfter  int    `json:"size_after"`
	ParsedData any    `json:"parsed_data"`
}

func newJSONTool() Tool {
	return &Definition[jsonInput, JSONOutput]{
		ToolKey: KeyJSON,
		Meta: newConfig("JSON Formatter", "Format, validate, and minify JSON strings", "text",
			"json", "format", "minify", "validate", "pretty", "parse", "jq"),
		Input: objectSchema("JSONInput", map[string]any{
			"text":   stringProp("JSON text to format or minify"),
			"minify": boolProp("Whether to minify instead of format"),
			"query":  stringProp("Optional jq filter applied before formatting"),
		}, "text"),
		Output: objectSchema("JSONOutput", map[string]any{
			"formatted":   stringProp("Formatted or minified JSON"),
			"original":    stringProp("Original input"),
			"operation":   stringProp("Operation performed (format/minify)"),
			"query":       stringProp("jq filter that was applied"),
			"valid":       boolProp("Whether input was valid JSON"),
			"size_before": intProp("Size before formatting, in characters"),
			"size_after":  intProp("Size after formatting, in characters"),
			"parsed_data": map[string]any{"description": "Parsed JSON data structure"},
		}, "formatted", "original", "operation", "valid", "size_before", "size_after", "parsed_data"),
		Validate: validateJSON,
		Execute:  executeJSON,
	}
}

func validateJSON(raw Raw) (jsonInput, error) {
	f := NewFields(KeyJSON, raw)
	in := jsonInput{
		Text:   strings.TrimSpace(f.String("text", true, "JSON text cannot be empty")),
		Minify: f.Bool("minify", false),
		Query:  strings.TrimSpace(f.OptionalString("query")),
	}

	if f.OK("text") {
		if err := checkJSON(in.Text); err != nil {
			f.Fail("text", "%v", err)
		}
	}
	if in.Query != "" && f.OK("text") && f.OK("query") {
		if _, err := runQuery(in.Query, in.Text); err != nil {
			f.Fail("query", "%v", err)
		}
	}
	return in, f.Err()
}

func executeJSON(in jsonInput) JSONOutput {
	operation := "format"
	if in.Minify {
		operation = "minify"
	}

	parsed, err := decodeJSON(in.Text)
	if err != nil {
		panic(err)
	}

	var formatted string
	switch {
	case in.Query != "":
		result, err := runQuery(in.Query, in.Text)
		if err != nil {
			panic(err)
		}
		formatted = encodeJSON(result, !in.Minify)
	case in.Minify:
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(in.Text)); err != nil {
			panic(err)
		}
		formatted = buf.String()
	default:
		formatted = encodeJSON(parsed, true)
	}

	return JSONOutput{
		Formatted:  formatted,
		Original:   in.Text,
		Operation:  operation,
		Query:      in.Query,
		Valid:      true,
		SizeBefore: utf8.RuneCountInString(in.Text),
		SizeAfter:  utf8.RuneCountInString(formatted),
		ParsedData: parsed,
	}
}

// checkJSON validates text and reports syntax errors with line and column
func checkJSON(text string) error {
	var probe json.RawMessage
	err := json.Unmarshal([]byte(text), &probe)
	if err == nil {
		return nil
	}

	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		line, col := position(text, syn.Offset)
		return fmt.Errorf("Invalid JSON: %s (line %d, column %d)", syn.Error(), line, col)
	}
	return fmt.Errorf("Invalid JSON: %v", err)
}

// position converts a byte offset into a 1-based line and column
func position(text string, offset int64) (line, col int) {
	if offset > int64(len(text)) {
		offset = int64(len(text))
	}
	prefix := text[:offset]
	line = strings.Count(prefix, "\n") + 1
	col = int(offset) - (strings.LastIndex(prefix, "\n") + 1)
	if col < 1 {
		col = 1
	}
	return line, col
}

// decodeJSON keeps number literals intact so formatting never rewrites them
func decodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// encodeJSON serializes v with sorted object keys and no HTML escaping
func encodeJSON(v any, indent bool) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// runQuery applies a jq filter. One result is returned as is, several
// are collected into an array.
func runQuery(query, text string) (any, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid jq query: %w", err)
	}

	// gojq only accepts plain decoded values, not json.Number
	var input any
	if err := json.Unmarshal([]byte(text), &input); err != nil {
		return nil, err
	}

	var results []any
	iter := parsed.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				break
			}
			return nil, fmt.Errorf("jq error: %w", err)
		}
		results = append(results, v)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	}
	return results, nil
}
