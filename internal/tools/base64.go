package tools

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

const (
	opEncode = "encode"
	opDecode = "decode"
)

type base64Input struct {
	Text      string
	Operation string
}

// Base64Output is the result of a base64 run
type Base64Output struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Operation   string `json:"operation"`
	ContentType string `json:"content_type,omitempty"`
}

func newBase64Tool() Tool {
	return &Definition[base64Input, Base64Output]{
		ToolKey: KeyBase64,
		Meta: newConfig("Base64 Encoder/Decoder", "Encode or decode Base64 strings", "encoding",
			"base64", "encode", "decode", "encoding"),
		Input: objectSchema("Base64Input", map[string]any{
			"text":      stringProp("Text to encode or decode"),
			"operation": enumProp("Operation to perform", opEncode, opEncode, opDecode),
		}, "text"),
		Output: objectSchema("Base64Output", map[string]any{
			"input":        stringProp("Original input text"),
			"output":       stringProp("Processed output"),
			"operation":    stringProp("Operation performed"),
			"content_type": stringProp("MIME type sniffed from decoded bytes"),
		}, "input", "output", "operation"),
		Validate: validateBase64,
		Execute:  executeBase64,
	}
}

func validateBase64(raw Raw) (base64Input, error) {
	f := NewFields(KeyBase64, raw)
	in := base64Input{
		Text:      f.String("text", true, "Text cannot be empty"),
		Operation: f.Enum("operation", opEncode, opEncode, opDecode),
	}

	if in.Operation == opDecode && f.OK("text") {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(in.Text))
		if err != nil {
			f.Fail("text", "invalid Base64 input: %v", err)
		} else if !utf8.Valid(decoded) {
			f.Fail("text", "decoded bytes are not valid UTF-8 text")
		}
	}
	return in, f.Err()
}

func executeBase64(in base64Input) Base64Output {
	out := Base64Output{Input: in.Text, Operation: in.Operation}

	if in.Operation == opDecode {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(in.Text))
		if err != nil {
			panic(err)
		}
		out.Output = string(decoded)
		out.ContentType = mimetype.Detect(decoded).String()
		return out
	}

	out.Output = base64.StdEncoding.EncodeToString([]byte(in.Text))
	return out
}
