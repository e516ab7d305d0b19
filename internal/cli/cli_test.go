package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roelfdiedericks/devkit/internal/tools"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func devkit(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	code := Main(args, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func decode(t *testing.T, r result) map[string]any {
	t.Helper()
	require.Equal(t, ExitOK, r.code, "stderr: %s", r.stderr)
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &v), r.stdout)
	return v
}

func assertFailure(t *testing.T, r result, code int, msg string) {
	t.Helper()
	assert.Equal(t, code, r.code)
	assert.Empty(t, r.stdout, "nothing may reach stdout on failure")
	assert.True(t, strings.HasPrefix(r.stderr, "Error: "), r.stderr)
	assert.Contains(t, r.stderr, msg)
}

func TestBase64Command(t *testing.T) {
	r := devkit(t, "", "base64", "hello world")
	out := decode(t, r)
	assert.Equal(t, "aGVsbG8gd29ybGQ=", out["output"])
	assert.Equal(t, "encode", out["operation"])
	assert.Empty(t, r.stderr)
	assert.True(t, strings.HasSuffix(r.stdout, "}\n"))
	assert.Contains(t, r.stdout, "\n  \"input\": ", "two space indent by default")

	for _, args := range [][]string{
		{"base64", "decode", "aGVsbG8gd29ybGQ="},
		{"base64", "aGVsbG8gd29ybGQ=", "--decode"},
		{"base64", "-d", "aGVsbG8gd29ybGQ="},
	} {
		out := decode(t, devkit(t, "", args...))
		assert.Equal(t, "hello world", out["output"], "%v", args)
	}

	assertFailure(t, devkit(t, "", "base64", ""), ExitInvalid, "Text cannot be empty")
	assertFailure(t, devkit(t, "", "base64", "encode", "x", "--decode"), ExitUsage, "conflicts")
	assertFailure(t, devkit(t, "", "base64", "a", "b", "c"), ExitUsage, "expected")
}

func TestRunMatchesShortcut(t *testing.T) {
	shortcut := devkit(t, "", "base64", "hello world")
	generic := devkit(t, "", "run", "base64", `{"text":"hello world"}`)
	require.Equal(t, ExitOK, generic.code, generic.stderr)
	assert.Equal(t, shortcut.stdout, generic.stdout)

	stdin := devkit(t, `{"text": "hello world", "operation": "encode"}`, "run", "base64", "-")
	assert.Equal(t, shortcut.stdout, stdin.stdout)
}

func TestRunErrors(t *testing.T) {
	assertFailure(t, devkit(t, "", "run", "nope", "{}"), ExitUsage, "Tool 'nope' not found. Available tools: base64,")
	assertFailure(t, devkit(t, "", "run", "hash", "not json"), ExitInvalid, "Invalid JSON input")
	assertFailure(t, devkit(t, "", "run", "hash", "[1,2]"), ExitInvalid, "expected a JSON object, got an array")
	assertFailure(t, devkit(t, "", "run", "hash", `{"text":"a"} {}`), ExitInvalid, "unexpected data")
	assertFailure(t, devkit(t, "", "run", "hash", `{"text":"a","algorithm":"crc"}`), ExitInvalid, "algorithm: must be one of")
	assertFailure(t, devkit(t, "", "run", "uuid", `{"count":101}`), ExitInvalid, "count")
	assertFailure(t, devkit(t, "", "run", "hash"), ExitUsage, "")
}

func TestUsageErrors(t *testing.T) {
	assertFailure(t, devkit(t, ""), ExitUsage, "")
	assertFailure(t, devkit(t, "", "frobnicate"), ExitUsage, "frobnicate")
	assertFailure(t, devkit(t, "", "info", "nope"), ExitUsage, "not found")
	assertFailure(t, devkit(t, "", "uuid", "--count", "many"), ExitUsage, "")
}

func TestListAndCategories(t *testing.T) {
	r := devkit(t, "", "list")
	require.Equal(t, ExitOK, r.code, r.stderr)
	var list []map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &list))
	require.Len(t, list, 9)
	assert.Equal(t, "base64", list[0]["key"])
	assert.Equal(t, "Base64 Encoder/Decoder", list[0]["name"])
	assert.Contains(t, list[0], "keywords")

	r = devkit(t, "", "list", "--category", "encoding")
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "url", list[1]["key"])

	r = devkit(t, "", "list", "-c", "nothing-here")
	assert.Equal(t, "[]\n", r.stdout)

	r = devkit(t, "", "categories")
	var cats []string
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &cats))
	assert.Equal(t, []string{"design", "encoding", "escape/unescape", "security", "text", "time"}, cats)
}

func TestInfo(t *testing.T) {
	out := decode(t, devkit(t, "", "info", "color"))
	assert.Equal(t, "color", out["name"])
	cfg := out["config"].(map[string]any)
	assert.Equal(t, "design", cfg["category"])
	assert.Equal(t, "1.0.0", cfg["version"])
	in := out["input_schema"].(map[string]any)
	assert.Equal(t, []any{"color"}, in["required"])
	assert.Contains(t, out, "output_schema")
}

func TestShortcutCommands(t *testing.T) {
	t.Run("hash", func(t *testing.T) {
		out := decode(t, devkit(t, "", "hash", "hello"))
		assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", out["hash"])

		out = decode(t, devkit(t, "", "hash", "hello", "md5"))
		assert.Equal(t, "md5", out["algorithm"])

		out = decode(t, devkit(t, "", "hash", "hello", "--algorithm", "sha1"))
		assert.Equal(t, "sha1", out["algorithm"])

		assertFailure(t, devkit(t, "", "hash", "hello", "md5", "--algorithm", "sha1"), ExitUsage, "conflicts")
	})

	t.Run("url", func(t *testing.T) {
		out := decode(t, devkit(t, "", "url", "a b&c"))
		assert.Equal(t, "a%20b%26c", out["output"])
		out = decode(t, devkit(t, "", "url", "decode", "a%20b"))
		assert.Equal(t, "a b", out["output"])
	})

	t.Run("json", func(t *testing.T) {
		out := decode(t, devkit(t, "", "json", "minify", `{ "b": 1, "a": 2 }`))
		assert.Equal(t, `{"b":1,"a":2}`, out["formatted"])

		out = decode(t, devkit(t, `{"a":{"b":[1,2]}}`, "json", "-", "--query", ".a.b", "--minify"))
		assert.Equal(t, "[1,2]", out["formatted"])

		assertFailure(t, devkit(t, "", "json", `{"a":`), ExitInvalid, "Invalid JSON")
	})

	t.Run("jwt", func(t *testing.T) {
		out := decode(t, devkit(t, "", "jwt", "not-a-token"))
		assert.Equal(t, false, out["valid_format"])
	})

	t.Run("uuid", func(t *testing.T) {
		out := decode(t, devkit(t, "", "uuid", "--count", "3", "--version", "1"))
		assert.Len(t, out["uuids"], 3)
		assert.Equal(t, float64(1), out["version"])

		assertFailure(t, devkit(t, "", "uuid", "--count", "101"), ExitInvalid, "count")
		assertFailure(t, devkit(t, "", "uuid", "--version", "3"), ExitInvalid, "UUID version must be 1 or 4")
	})

	t.Run("epoch", func(t *testing.T) {
		out := decode(t, devkit(t, "", "epoch", "1700000000000"))
		assert.Equal(t, float64(1700000000), out["epoch"])

		out = decode(t, devkit(t, "", "epoch"))
		assert.Greater(t, out["epoch"].(float64), float64(1700000000))

		assertFailure(t, devkit(t, "", "epoch", "yesterday-ish"), ExitInvalid, "Invalid epoch timestamp")
	})

	t.Run("color", func(t *testing.T) {
		out := decode(t, devkit(t, "", "color", "#ff0000"))
		assert.Equal(t, map[string]any{"h": float64(0), "s": float64(100), "l": float64(50)}, out["hsl"])
		assertFailure(t, devkit(t, "", "color", "rgb(300, 0, 0)"), ExitInvalid, "color")
	})

	t.Run("escape", func(t *testing.T) {
		r := devkit(t, "", "escape", "<b>&</b>")
		out := decode(t, r)
		assert.Equal(t, "&lt;b&gt;&amp;&lt;/b&gt;", out["output_text"])
		assert.Contains(t, r.stdout, "&lt;b&gt;", "output must not be HTML escaped")

		out = decode(t, devkit(t, "", "escape", `é`, "--unescape", "--format", "javascript"))
		assert.Equal(t, "é", out["output_text"])

		assertFailure(t, devkit(t, "", "escape", "x", "-f", "yaml"), ExitInvalid, "format")
	})
}

func TestVersionAndHelp(t *testing.T) {
	r := devkit(t, "", "version")
	assert.Equal(t, ExitOK, r.code)
	assert.Equal(t, fmt.Sprintf("devkit %s\n", Version), r.stdout)

	r = devkit(t, "", "--help")
	assert.Equal(t, ExitOK, r.code)
	assert.Contains(t, r.stdout, "Usage: devkit")
	assert.Contains(t, r.stdout, "Available tools:")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()

	compact := filepath.Join(dir, "compact.yaml")
	require.NoError(t, os.WriteFile(compact, []byte("indent: 0\n"), 0600))
	r := devkit(t, "", "--config", compact, "categories")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Equal(t, `["design","encoding","escape/unescape","security","text","time"]`+"\n", r.stdout)

	wide := filepath.Join(dir, "wide.toml")
	require.NoError(t, os.WriteFile(wide, []byte("indent = 4\ncolor = \"never\"\n"), 0600))
	r = devkit(t, "", "--config", wide, "hash", "x")
	assert.Contains(t, r.stdout, "\n    \"input\": \"x\"")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("color: pink\n"), 0600))
	assertFailure(t, devkit(t, "", "--config", bad, "categories"), ExitUsage, "color must be")

	assertFailure(t, devkit(t, "", "--config", filepath.Join(dir, "missing.yaml"), "categories"), ExitUsage, "missing.yaml")
}

func TestDebugLogging(t *testing.T) {
	r := devkit(t, "", "--debug", "hash", "x")
	require.Equal(t, ExitOK, r.code)
	assert.Contains(t, r.stderr, "dispatch")
	assert.NotContains(t, r.stdout, "dispatch")

	r = devkit(t, "", "hash", "x")
	assert.Empty(t, r.stderr)
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"validation", &tools.ValidationError{Tool: tools.KeyHash}, ExitInvalid},
		{"input", &InputError{Err: errors.New("x")}, ExitInvalid},
		{"usage", usagef("bad"), ExitUsage},
		{"not found", &tools.NotFoundError{Key: "x"}, ExitUsage},
		{"defect", &tools.ExecutionError{Tool: tools.KeyJSON, Cause: errors.New("boom")}, ExitDefect},
		{"wrapped defect", fmt.Errorf("run: %w", &tools.ExecutionError{Tool: tools.KeyJSON, Cause: errors.New("boom")}), ExitDefect},
		{"other", errors.New("disk on fire"), ExitInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}

func TestSplitOperation(t *testing.T) {
	op, text, err := splitOperation([]string{"decode", "abc"}, "encode", "decode")
	require.NoError(t, err)
	assert.Equal(t, "decode", op)
	assert.Equal(t, "abc", text)

	op, text, err = splitOperation([]string{"decode"}, "encode", "decode")
	require.NoError(t, err)
	assert.Empty(t, op, "a lone word is the text itself")
	assert.Equal(t, "decode", text)

	_, _, err = splitOperation([]string{"x", "y"}, "encode", "decode")
	assert.Error(t, err)
}
