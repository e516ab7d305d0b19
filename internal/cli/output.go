package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/roelfdiedericks/devkit/internal/tools"
)

// App is bound into every command's Run method
type App struct {
	Registry *tools.Registry
	Stdin    io.Reader
	Stdout   io.Writer
	Indent   int // spaces per level, 0 for compact output
}

// dispatch runs a tool through the registry and prints its output
func (a *App) dispatch(key tools.Key, raw tools.Raw) error {
	out, err := a.Registry.Run(string(key), raw)
	if err != nil {
		return err
	}
	return a.print(out)
}

// print writes v as JSON with a trailing newline. Nothing is written if
// encoding fails.
func (a *App) print(v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if a.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", a.Indent))
	}
	if err := enc.Encode(v); err != nil {
		return &tools.ExecutionError{Tool: "output", Cause: err}
	}
	_, err := a.Stdout.Write(buf.Bytes())
	return err
}

// readArg returns s, or all of stdin when s is "-"
func (a *App) readArg(s string) (string, error) {
	if s != "-" {
		return s, nil
	}
	if a.Stdin == nil {
		return "", usagef("no stdin available")
	}
	data, err := io.ReadAll(a.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// decodeObject parses a run payload. Numbers stay json.Number so that
// integer fields are read exactly.
func decodeObject(text string) (tools.Raw, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &InputError{Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &InputError{Err: errors.New("unexpected data after the JSON object")}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &InputError{Err: fmt.Errorf("expected a JSON object, got %s", jsonKind(v))}
	}
	return tools.Raw(obj), nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number:
		return "a number"
	}
	return fmt.Sprintf("%T", v)
}
