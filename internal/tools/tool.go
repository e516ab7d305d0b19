// Package tools provides the devkit tool framework: typed tool definitions,
// explicit input validation and the registry that dispatches to them.
package tools

import (
	"fmt"

	. "github.com/roelfdiedericks/devkit/internal/logging"
)

// Key identifies a tool in the registry
type Key string

// Builtin tool keys
const (
	KeyBase64 Key = "base64"
	KeyURL    Key = "url"
	KeyHash   Key = "hash"
	KeyJWT    Key = "jwt"
	KeyJSON   Key = "json"
	KeyUUID   Key = "uuid"
	KeyEpoch  Key = "epoch"
	KeyColor  Key = "color"
	KeyEscape Key = "escape"
)

// Raw is an unvalidated input record, usually decoded from a JSON object
// with json.Decoder.UseNumber.
type Raw map[string]any

// ToolConfig is the descriptive metadata shown by list and info
type ToolConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Version     string   `json:"version"`
	Author      string   `json:"author"`
	Keywords    []string `json:"keywords"`
}

func newConfig(name, description, category string, keywords ...string) ToolConfig {
	return ToolConfig{
		Name:        name,
		Description: description,
		Category:    category,
		Version:     "1.0.0",
		Author:      "DevToolkit",
		Keywords:    keywords,
	}
}

// Tool is the interface that all tools expose to the registry
type Tool interface {
	// Key returns the unique registry key
	Key() Key

	// Config returns display metadata
	Config() ToolConfig

	// InputSchema returns the JSON Schema for the tool's input record
	InputSchema() Schema

	// OutputSchema returns the JSON Schema for the tool's output record
	OutputSchema() Schema

	// Run validates raw input and executes the tool
	Run(raw Raw) (any, error)
}

// Definition is a tool with a typed input record I and output record O.
// Validate is a precondition for Execute: Execute never re-checks its
// input, and a panic inside it is reported as an ExecutionError.
type Definition[I, O any] struct {
	ToolKey  Key
	Meta     ToolConfig
	Input    Schema
	Output   Schema
	Validate func(raw Raw) (I, error)
	Execute  func(in I) O
}

func (d *Definition[I, O]) Key() Key             { return d.ToolKey }
func (d *Definition[I, O]) Config() ToolConfig   { return d.Meta }
func (d *Definition[I, O]) InputSchema() Schema  { return d.Input }
func (d *Definition[I, O]) OutputSchema() Schema { return d.Output }

// Run validates raw and, only if it is accepted, executes the tool
func (d *Definition[I, O]) Run(raw Raw) (result any, err error) {
	in, err := d.Validate(raw)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			L_error("tools: execution defect", "tool", d.ToolKey, "panic", r)
			result = nil
			err = &ExecutionError{Tool: d.ToolKey, Cause: fmt.Errorf("%v", r)}
		}
	}()

	out := d.Execute(in)
	return out, nil
}
