package tools

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, len(builtins), reg.Count())
	assert.Equal(t, []Key{KeyBase64, KeyColor, KeyEpoch, KeyEscape, KeyHash, KeyJSON, KeyJWT, KeyURL, KeyUUID}, reg.Keys())

	for key, ctor := range builtins {
		tool := ctor()
		assert.Equal(t, key, tool.Key())
		assert.NotEmpty(t, tool.Config().Name, "tool %s has no name", key)
		assert.Equal(t, "object", tool.InputSchema()["type"], "tool %s input schema", key)
		assert.Equal(t, "object", tool.OutputSchema()["type"], "tool %s output schema", key)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(newHashTool()))

	err := reg.Register(newHashTool())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateTool))
	assert.Contains(t, err.Error(), "hash")
	assert.Equal(t, 1, reg.Count())
}

func TestRegistryListOrdering(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	var keys []Key
	for _, tool := range reg.List() {
		keys = append(keys, tool.Key())
	}
	// Sorted by display name, not by key
	assert.Equal(t, []Key{KeyBase64, KeyColor, KeyEpoch, KeyEscape, KeyHash, KeyJSON, KeyJWT, KeyURL, KeyUUID}, keys)

	for i := 1; i < len(reg.List()); i++ {
		prev := strings.ToLower(reg.List()[i-1].Config().Name)
		cur := strings.ToLower(reg.List()[i].Config().Name)
		assert.LessOrEqual(t, prev, cur)
	}
}

func TestRegistryCategories(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"design", "encoding", "escape/unescape", "security", "text", "time"}, reg.Categories())

	var encoding []Key
	for _, tool := range reg.ListByCategory("encoding") {
		encoding = append(encoding, tool.Key())
	}
	assert.Equal(t, []Key{KeyBase64, KeyURL}, encoding)

	assert.Empty(t, reg.ListByCategory("nope"))
}

func TestRegistryLookupNotFound(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	assert.True(t, reg.Has("base64"))
	assert.False(t, reg.Has("rot13"))

	_, err = reg.Run("rot13", Raw{"text": "x"})
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "rot13", nf.Key)
	assert.Equal(t,
		"Tool 'rot13' not found. Available tools: base64, color, epoch, escape, hash, json, jwt, url, uuid",
		err.Error())
}

func TestBuildToolSummary(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	summary := reg.BuildToolSummary()
	assert.True(t, strings.HasPrefix(summary, "Available tools:\n"))
	for _, k := range reg.Keys() {
		assert.Contains(t, summary, "  "+string(k)+" ")
	}
	assert.Empty(t, NewRegistry().BuildToolSummary())
}

func TestTruncateDescription(t *testing.T) {
	tests := []struct {
		name   string
		desc   string
		maxLen int
		want   string
	}{
		{"short", "Encode strings", 60, "Encode strings"},
		{"first sentence", "Encode strings. Also decodes them.", 60, "Encode strings."},
		{"cut at word", "one two three four five six", 12, "one two..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateDescription(tt.desc, tt.maxLen))
		})
	}
}

func TestDefinitionExecutionDefect(t *testing.T) {
	def := &Definition[string, string]{
		ToolKey:  "broken",
		Validate: func(Raw) (string, error) { return "x", nil },
		Execute:  func(string) string { panic("boom") },
	}

	out, err := def.Run(Raw{})
	assert.Nil(t, out)

	var ee *ExecutionError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, Key("broken"), ee.Tool)
	assert.Contains(t, err.Error(), "boom")
}

func TestDefinitionConfig(t *testing.T) {
	def := &Definition[string, string]{
		ToolKey:  "meta",
		Meta:     newConfig("Meta Tool", "Describes itself", "misc", "a", "b"),
		Validate: func(Raw) (string, error) { return "", nil },
		Execute:  func(s string) string { return s },
	}

	var tool Tool = def
	cfg := tool.Config()
	assert.Equal(t, ToolConfig{
		Name:        "Meta Tool",
		Description: "Describes itself",
		Category:    "misc",
		Version:     "1.0.0",
		Author:      "DevToolkit",
		Keywords:    []string{"a", "b"},
	}, cfg)
}

func TestDefinitionSkipsExecuteOnInvalidInput(t *testing.T) {
	called := false
	def := &Definition[string, string]{
		ToolKey: "guarded",
		Validate: func(raw Raw) (string, error) {
			f := NewFields("guarded", raw)
			return f.String("text", true, "Text cannot be empty"), f.Err()
		},
		Execute: func(s string) string { called = true; return s },
	}

	_, err := def.Run(Raw{"text": "  "})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.False(t, called)
	assert.Equal(t, "invalid input for guarded: text: Text cannot be empty", err.Error())
}

func TestFields(t *testing.T) {
	raw := Raw{
		"s":     "hello",
		"blank": "   ",
		"num":   json.Number("42"),
		"float": 2.5,
		"whole": float64(7),
		"flag":  true,
		"null":  nil,
		"op":    "encode",
	}

	t.Run("string", func(t *testing.T) {
		f := NewFields("t", raw)
		assert.Equal(t, "hello", f.String("s", true, "empty"))
		f.String("missing", true, "empty")
		f.String("blank", true, "blank not allowed")
		f.String("num", false, "empty")
		f.String("null", false, "empty")

		var ve *ValidationError
		require.True(t, errors.As(f.Err(), &ve))
		msg, _ := ve.Field("missing")
		assert.Equal(t, "field required", msg)
		msg, _ = ve.Field("blank")
		assert.Equal(t, "blank not allowed", msg)
		msg, _ = ve.Field("num")
		assert.Equal(t, "must be a string", msg)
		msg, _ = ve.Field("null")
		assert.Equal(t, "field required", msg)
		_, ok := ve.Field("s")
		assert.False(t, ok)
	})

	t.Run("blank allowed", func(t *testing.T) {
		f := NewFields("t", raw)
		assert.Equal(t, "   ", f.String("blank", false, "empty"))
		assert.NoError(t, f.Err())
	})

	t.Run("enum", func(t *testing.T) {
		f := NewFields("t", raw)
		assert.Equal(t, "encode", f.Enum("op", "decode", "encode", "decode"))
		assert.Equal(t, "decode", f.Enum("missing", "decode", "encode", "decode"))
		f.Enum("s", "a", "a", "b")
		assert.EqualError(t, f.Err(), "invalid input for t: s: must be one of: a, b")
	})

	t.Run("int", func(t *testing.T) {
		f := NewFields("t", raw)
		assert.Equal(t, 42, f.Int("num", 1, 1, 100))
		assert.Equal(t, 7, f.Int("whole", 1, 1, 100))
		assert.Equal(t, 3, f.Int("missing", 3, 1, 100))
		f.Int("float", 1, 1, 100)
		f.Int("s", 1, 1, 100)
		f.Int("flag", 1, 1, 100)

		g := NewFields("t", raw)
		g.Int("num", 1, 1, 10)
		assert.EqualError(t, g.Err(), "invalid input for t: num: must be between 1 and 10")

		var ve *ValidationError
		require.True(t, errors.As(f.Err(), &ve))
		assert.Len(t, ve.Errors, 3)
	})

	t.Run("bool", func(t *testing.T) {
		f := NewFields("t", raw)
		assert.True(t, f.Bool("flag", false))
		assert.True(t, f.Bool("missing", true))
		f.Bool("s", false)
		assert.Error(t, f.Err())
	})

	t.Run("text", func(t *testing.T) {
		f := NewFields("t", raw)
		assert.Equal(t, "42", f.Text("num"))
		assert.Equal(t, "2.5", f.Text("float"))
		assert.Equal(t, "", f.Text("blank"))
		assert.Equal(t, "", f.Text("null"))
		f.Text("flag")
		assert.Error(t, f.Err())
	})

	t.Run("first failure wins", func(t *testing.T) {
		f := NewFields("t", nil)
		f.Fail("x", "first")
		f.Fail("x", "second")
		assert.False(t, f.OK("x"))
		assert.True(t, f.OK("y"))
		assert.EqualError(t, f.Err(), "invalid input for t: x: first")
	})
}
