package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Fields reads typed values out of a Raw input record and accumulates
// one FieldError per rejected field. Unknown keys are ignored.
type Fields struct {
	tool   Key
	raw    Raw
	errors []FieldError
}

// NewFields starts validating raw for tool
func NewFields(tool Key, raw Raw) *Fields {
	if raw == nil {
		raw = Raw{}
	}
	return &Fields{tool: tool, raw: raw}
}

// Fail records a rejection for field. Only the first failure per field is kept.
func (f *Fields) Fail(field, format string, args ...any) {
	if !f.OK(field) {
		return
	}
	f.errors = append(f.errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// OK reports whether field has not been rejected so far
func (f *Fields) OK(field string) bool {
	for _, fe := range f.errors {
		if fe.Field == field {
			return false
		}
	}
	return true
}

// Err returns a *ValidationError if anything was rejected
func (f *Fields) Err() error {
	if len(f.errors) == 0 {
		return nil
	}
	return &ValidationError{Tool: f.tool, Errors: f.errors}
}

// lookup returns the value for name, treating JSON null as absent
func (f *Fields) lookup(name string) (any, bool) {
	v, ok := f.raw[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns a required string field. When notBlank is set, a value
// that is empty after trimming is rejected with emptyMsg.
func (f *Fields) String(name string, notBlank bool, emptyMsg string) string {
	v, ok := f.lookup(name)
	if !ok {
		f.Fail(name, "field required")
		return ""
	}
	s, ok := v.(string)
	if !ok {
		f.Fail(name, "must be a string")
		return ""
	}
	if s == "" || (notBlank && strings.TrimSpace(s) == "") {
		f.Fail(name, "%s", emptyMsg)
		return ""
	}
	return s
}

// OptionalString returns a string field that may be absent
func (f *Fields) OptionalString(name string) string {
	v, ok := f.lookup(name)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		f.Fail(name, "must be a string")
		return ""
	}
	return s
}

// Text returns an optional field that may be given as a string or a
// number, rendered as its decimal text.
func (f *Fields) Text(name string) string {
	v, ok := f.lookup(name)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	f.Fail(name, "must be a string or a number")
	return ""
}

// Enum returns a string field restricted to allowed, or def when absent
func (f *Fields) Enum(name, def string, allowed ...string) string {
	v, ok := f.lookup(name)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		f.Fail(name, "must be a string")
		return def
	}
	if !slices.Contains(allowed, s) {
		f.Fail(name, "must be one of: %s", strings.Join(allowed, ", "))
		return def
	}
	return s
}

// Int returns an integer field in [lo, hi], or def when absent
func (f *Fields) Int(name string, def, lo, hi int) int {
	v, ok := f.lookup(name)
	if !ok {
		return def
	}
	n, ok := toInt(v)
	if !ok {
		f.Fail(name, "must be an integer")
		return def
	}
	if n < lo || n > hi {
		f.Fail(name, "must be between %d and %d", lo, hi)
		return def
	}
	return n
}

// Bool returns a boolean field, or def when absent
func (f *Fields) Bool(name string, def bool) bool {
	v, ok := f.lookup(name)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		f.Fail(name, "must be a boolean")
		return def
	}
	return b
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
