package tools

import (
	"net/url"
	"strings"
)

type urlInput struct {
	Text      string
	Operation string
}

// URLOutput is the result of a url run
type URLOutput struct {
	Input      string `json:"input"`
	Output     string `json:"output"`
	Operation  string `json:"operation"`
	IsValidURL bool   `json:"is_valid_url"`
}

func newURLTool() Tool {
	return &Definition[urlInput, URLOutput]{
		ToolKey: KeyURL,
		Meta: newConfig("URL Encoder/Decoder", "Encode or decode URL strings with validation", "encoding",
			"url", "encode", "decode", "percent", "encoding", "uri"),
		Input: objectSchema("UrlInput", map[string]any{
			"text":      stringProp("Text or URL to encode or decode"),
			"operation": enumProp("Operation to perform", opEncode, opEncode, opDecode),
		}, "text"),
		Output: objectSchema("UrlOutput", map[string]any{
			"input":        stringProp("Original input text"),
			"output":       stringProp("Processed output"),
			"operation":    stringProp("Operation performed"),
			"is_valid_url": boolProp("Whether the result is an absolute URL"),
		}, "input", "output", "operation", "is_valid_url"),
		Validate: validateURL,
		Execute:  executeURL,
	}
}

func validateURL(raw Raw) (urlInput, error) {
	f := NewFields(KeyURL, raw)
	in := urlInput{
		Text:      f.String("text", true, "Text cannot be empty"),
		Operation: f.Enum("operation", opEncode, opEncode, opDecode),
	}

	if in.Operation == opDecode && f.OK("text") {
		if _, err := url.PathUnescape(in.Text); err != nil {
			f.Fail("text", "invalid percent-encoding: %v", err)
		}
	}
	return in, f.Err()
}

func executeURL(in urlInput) URLOutput {
	var output string
	if in.Operation == opDecode {
		decoded, err := url.PathUnescape(in.Text)
		if err != nil {
			panic(err)
		}
		output = decoded
	} else {
		output = percentEncode(in.Text)
	}

	return URLOutput{
		Input:      in.Text,
		Output:     output,
		Operation:  in.Operation,
		IsValidURL: isAbsoluteURL(output),
	}
}

const upperhex = "0123456789ABCDEF"

// percentEncode escapes every byte except unreserved characters and '/'.
// net/url's escapers leave sub-delims such as ':' '@' '&' '=' unescaped.
func percentEncode(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&0x0f])
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '~', '/':
		return true
	}
	return false
}

// isAbsoluteURL is advisory only: scheme and host must both be present
func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
