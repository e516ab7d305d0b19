package tools

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// now is the clock used for expiry and relative-time checks
var now = time.Now

const readableLayout = "2006-01-02 15:04:05 UTC"

type jwtInput struct {
	Token string
}

// JWTOutput is the result of a jwt run. A malformed token is reported
// through ValidFormat rather than as an error.
type JWTOutput struct {
	Header            map[string]any `json:"header"`
	Payload           map[string]any `json:"payload"`
	Algorithm         string         `json:"algorithm"`
	SignatureLength   int            `json:"signature_length"`
	IssuedAt          *int64         `json:"issued_at"`
	ExpiresAt         *int64         `json:"expires_at"`
	NotBefore         *int64         `json:"not_before"`
	IssuedAtReadable  *string        `json:"issued_at_readable"`
	ExpiresAtReadable *string        `json:"expires_at_readable"`
	NotBeforeReadable *string        `json:"not_before_readable"`
	IsExpired         *bool          `json:"is_expired"`
	ValidFormat       bool           `json:"valid_format"`
}

func newJWTTool() Tool {
	return &Definition[jwtInput, JWTOutput]{
		ToolKey: KeyJWT,
		Meta: newConfig("JWT Decoder", "Decode and analyze JSON Web Tokens (JWT)", "security",
			"jwt", "json", "web", "token", "decode", "auth", "security"),
		Input: objectSchema("JWTInput", map[string]any{
			"token": stringProp("JWT token to decode"),
		}, "token"),
		Output: objectSchema("JWTOutput", map[string]any{
			"header":              objectProp("JWT header"),
			"payload":             objectProp("JWT payload claims"),
			"algorithm":           stringProp("Signing algorithm named in the header"),
			"signature_length":    intProp("Decoded signature length in bytes (never verified)"),
			"issued_at":           nullable(intProp("Issued at timestamp")),
			"expires_at":          nullable(intProp("Expires at timestamp")),
			"not_before":          nullable(intProp("Not before timestamp")),
			"issued_at_readable":  nullable(stringProp("Issued at, human readable")),
			"expires_at_readable": nullable(stringProp("Expires at, human readable")),
			"not_before_readable": nullable(stringProp("Not before, human readable")),
			"is_expired":          nullable(boolProp("Whether exp is in the past")),
			"valid_format":        boolProp("Whether the token has a decodable JWT structure"),
		}, "header", "payload", "signature_length", "valid_format"),
		Validate: validateJWT,
		Execute:  executeJWT,
	}
}

func validateJWT(raw Raw) (jwtInput, error) {
	f := NewFields(KeyJWT, raw)
	token := f.String("token", true, "JWT token cannot be empty")
	return jwtInput{Token: strings.TrimSpace(token)}, f.Err()
}

func executeJWT(in jwtInput) JWTOutput {
	invalid := JWTOutput{Header: map[string]any{}, Payload: map[string]any{}}

	parser := jwt.NewParser(jwt.WithPaddingAllowed(), jwt.WithJSONNumber())
	claims := jwt.MapClaims{}
	token, parts, err := parser.ParseUnverified(in.Token, claims)
	// An unknown or missing alg still leaves a fully decoded token
	if err != nil && !errors.Is(err, jwt.ErrTokenUnverifiable) {
		return invalid
	}
	if token == nil || token.Header == nil {
		return invalid
	}

	out := JWTOutput{
		Header:          token.Header,
		Payload:         claims,
		SignatureLength: signatureLength(parts[2]),
		ValidFormat:     true,
	}
	if alg, ok := token.Header["alg"].(string); ok {
		out.Algorithm = alg
	}

	if iat, ok := numericClaim(claims, "iat"); ok {
		out.IssuedAt = &iat
		out.IssuedAtReadable = readableTime(iat)
	}
	if nbf, ok := numericClaim(claims, "nbf"); ok {
		out.NotBefore = &nbf
		out.NotBeforeReadable = readableTime(nbf)
	}
	if exp, ok := numericClaim(claims, "exp"); ok {
		out.ExpiresAt = &exp
		out.ExpiresAtReadable = readableTime(exp)
		expired := exp < now().Unix()
		out.IsExpired = &expired
	}
	return out
}

// numericClaim returns a claim as whole seconds if it is a JSON number
func numericClaim(claims jwt.MapClaims, name string) (int64, bool) {
	switch v := claims[name].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		if f, err := v.Float64(); err == nil {
			return int64(f), true
		}
	case float64:
		return int64(v), true
	}
	return 0, false
}

func readableTime(ts int64) *string {
	s := time.Unix(ts, 0).UTC().Format(readableLayout)
	return &s
}

// signatureLength is the decoded size of the signature segment, or 0 when
// the segment is not base64url. The signature never affects valid_format.
func signatureLength(segment string) int {
	sig, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(segment, "="))
	if err != nil {
		return 0
	}
	return len(sig)
}
