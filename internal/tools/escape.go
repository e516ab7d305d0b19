package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

const (
	opEscape   = "escape"
	opUnescape = "unescape"
)

var escapeFormats = []string{"html", "json", "xml", "javascript"}

var (
	xmlEscaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	xmlUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")
)

type escapeInput struct {
	Text      string
	Operation string
	Format    string
}

// EscapeOutput is the result of an escape run
type EscapeOutput struct {
	InputText  string `json:"input_text"`
	OutputText string `json:"output_text"`
	Operation  string `json:"operation"`
	Format     string `json:"format"`
}

func newEscapeTool() Tool {
	return &Definition[escapeInput, EscapeOutput]{
		ToolKey: KeyEscape,
		Meta: newConfig("Escape/Unescape", "Escape or unescape text for HTML, JSON, XML or JavaScript", "escape/unescape",
			"escape", "unescape", "html", "json", "xml", "javascript"),
		Input: objectSchema("EscapeInput", map[string]any{
			"text":      stringProp("Text to escape or unescape"),
			"operation": enumProp("escape or unescape", opEscape, opEscape, opUnescape),
			"format":    enumProp("Escaping rules to apply", "html", escapeFormats...),
		}, "text"),
		Output: objectSchema("EscapeOutput", map[string]any{
			"input_text":  stringProp("Original input text"),
			"output_text": stringProp("Escaped or unescaped text"),
			"operation":   stringProp("Operation performed"),
			"format":      stringProp("Format used"),
		}, "input_text", "output_text", "operation", "format"),
		Validate: validateEscape,
		Execute:  executeEscape,
	}
}

func validateEscape(raw Raw) (escapeInput, error) {
	f := NewFields(KeyEscape, raw)
	in := escapeInput{
		Text:      f.String("text", false, "Text cannot be empty"),
		Operation: f.Enum("operation", opEscape, opEscape, opUnescape),
		Format:    f.Enum("format", "html", escapeFormats...),
	}

	if in.Format == "json" && in.Operation == opUnescape && f.OK("text") {
		if _, err := unescapeJSON(in.Text); err != nil {
			f.Fail("text", "invalid JSON string escape: %v", err)
		}
	}
	return in, f.Err()
}

func executeEscape(in escapeInput) EscapeOutput {
	var out string
	switch in.Format + "/" + in.Operation {
	case "html/escape":
		out = html.EscapeString(in.Text)
	case "html/unescape":
		out = html.UnescapeString(in.Text)
	case "json/escape":
		out = escapeJSON(in.Text)
	case "json/unescape":
		s, err := unescapeJSON(in.Text)
		if err != nil {
			panic(err)
		}
		out = s
	case "xml/escape":
		out = xmlEscaper.Replace(in.Text)
	case "xml/unescape":
		out = xmlUnescaper.Replace(in.Text)
	case "javascript/escape":
		out = escapeJS(in.Text)
	case "javascript/unescape":
		out = unescapeJS(in.Text)
	default:
		panic(fmt.Sprintf("unsupported escape %s/%s", in.Format, in.Operation))
	}

	return EscapeOutput{
		InputText:  in.Text,
		OutputText: out,
		Operation:  in.Operation,
		Format:     in.Format,
	}
}

// escapeJSON returns the body of s encoded as a JSON string literal
func escapeJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		panic(err)
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	return out[1 : len(out)-1]
}

// unescapeJSON decodes s as the body of a JSON string literal. Bare quotes
// and raw control characters are tolerated on a second attempt.
func unescapeJSON(s string) (string, error) {
	var out string
	err := json.Unmarshal([]byte(`"`+s+`"`), &out)
	if err == nil {
		return out, nil
	}
	if err2 := json.Unmarshal([]byte(`"`+quoteBare(s)+`"`), &out); err2 == nil {
		return out, nil
	}
	return "", err
}

func quoteBare(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			sb.WriteByte(c)
			i++
			sb.WriteByte(s[i])
		case c == '"':
			sb.WriteString(`\"`)
		case c < 0x20:
			fmt.Fprintf(&sb, `\u%04x`, c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func escapeJS(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			switch {
			case r < 0x20:
				fmt.Fprintf(&sb, `\u%04x`, r)
			case r > 0xffff:
				hi, lo := utf16.EncodeRune(r)
				fmt.Fprintf(&sb, `\u%04x\u%04x`, hi, lo)
			case r > 0x7f:
				fmt.Fprintf(&sb, `\u%04x`, r)
			default:
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// unescapeJS scans left to right. Unknown or truncated escapes are kept
// as written.
func unescapeJS(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			i++
			continue
		}

		switch n := s[i+1]; n {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case '\'', '"', '\\':
			sb.WriteByte(n)
		case 'x':
			if v, ok := hexAt(s, i+2, 2); ok {
				sb.WriteRune(rune(v))
				i += 4
				continue
			}
			sb.WriteString(`\x`)
		case 'u':
			v, ok := hexAt(s, i+2, 4)
			if !ok {
				sb.WriteString(`\u`)
				break
			}
			r := rune(v)
			i += 6
			if utf16.IsSurrogate(r) && strings.HasPrefix(s[i:], `\u`) {
				if lo, ok := hexAt(s, i+2, 4); ok {
					if pair := utf16.DecodeRune(r, rune(lo)); pair != unicode.ReplacementChar {
						sb.WriteRune(pair)
						i += 6
						continue
					}
				}
			}
			sb.WriteRune(r)
			continue
		default:
			sb.WriteByte(c)
			i++
			continue
		}
		i += 2
	}
	return sb.String()
}

// hexAt parses n hex digits of s starting at i
func hexAt(s string, i, n int) (uint64, bool) {
	if i+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[i:i+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return v, true
}
