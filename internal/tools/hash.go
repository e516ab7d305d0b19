package tools

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// hashAlgorithms lists the accepted algorithm names in display order
var hashAlgorithms = []string{"md5", "sha1", "sha256", "sha512", "sha3-256", "sha3-512", "blake2b-256"}

var hashers = map[string]func() hash.Hash{
	"md5":      md5.New,
	"sha1":     sha1.New,
	"sha256":   sha256.New,
	"sha512":   sha512.New,
	"sha3-256": sha3.New256,
	"sha3-512": sha3.New512,
	"blake2b-256": func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	},
}

type hashInput struct {
	Text      string
	Algorithm string
}

// HashOutput is the result of a hash run
type HashOutput struct {
	Input     string `json:"input"`
	Algorithm string `json:"algorithm"`
	Hash      string `json:"hash"`
	Length    int    `json:"length"`
}

func newHashTool() Tool {
	return &Definition[hashInput, HashOutput]{
		ToolKey: KeyHash,
		Meta: newConfig("Hash Generator", "Generate cryptographic hashes using various algorithms", "security",
			"hash", "md5", "sha1", "sha256", "sha512", "sha3", "blake2b", "crypto", "checksum", "digest"),
		Input: objectSchema("HashInput", map[string]any{
			"text":      stringProp("Text to hash"),
			"algorithm": enumProp("Hash algorithm to use", "sha256", hashAlgorithms...),
		}, "text"),
		Output: objectSchema("HashOutput", map[string]any{
			"input":     stringProp("Original input text"),
			"algorithm": stringProp("Hash algorithm used"),
			"hash":      stringProp("Lowercase hexadecimal digest"),
			"length":    intProp("Hash length in hex characters"),
		}, "input", "algorithm", "hash", "length"),
		Validate: validateHash,
		Execute:  executeHash,
	}
}

func validateHash(raw Raw) (hashInput, error) {
	f := NewFields(KeyHash, raw)
	in := hashInput{
		Text:      f.String("text", true, "Text cannot be empty"),
		Algorithm: f.Enum("algorithm", "sha256", hashAlgorithms...),
	}
	return in, f.Err()
}

func executeHash(in hashInput) HashOutput {
	h := hashers[in.Algorithm]()
	h.Write([]byte(in.Text))
	digest := hex.EncodeToString(h.Sum(nil))

	return HashOutput{
		Input:     in.Text,
		Algorithm: in.Algorithm,
		Hash:      digest,
		Length:    len(digest),
	}
}
