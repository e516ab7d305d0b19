package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roelfdiedericks/devkit/internal/tools"
)

// ListCmd prints tool summaries ordered by display name
type ListCmd struct {
	Category string `short:"c" help:"Only list tools in this category."`
}

type toolSummary struct {
	Key      tools.Key `json:"key"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Keywords []string  `json:"keywords"`
}

func (c *ListCmd) Run(app *App) error {
	list := app.Registry.List()
	if c.Category != "" {
		list = app.Registry.ListByCategory(c.Category)
	}

	out := make([]toolSummary, 0, len(list))
	for _, t := range list {
		cfg := t.Config()
		out = append(out, toolSummary{Key: t.Key(), Name: cfg.Name, Category: cfg.Category, Keywords: cfg.Keywords})
	}
	return app.print(out)
}

// CategoriesCmd prints the distinct categories
type CategoriesCmd struct{}

func (c *CategoriesCmd) Run(app *App) error {
	return app.print(app.Registry.Categories())
}

// InfoCmd prints one tool's metadata and schemas
type InfoCmd struct {
	Tool string `arg:"" help:"Tool key, e.g. base64."`
}

type toolInfo struct {
	Name         tools.Key        `json:"name"`
	Config       tools.ToolConfig `json:"config"`
	InputSchema  tools.Schema     `json:"input_schema"`
	OutputSchema tools.Schema     `json:"output_schema"`
}

func (c *InfoCmd) Run(app *App) error {
	t, err := app.Registry.Lookup(c.Tool)
	if err != nil {
		return err
	}
	return app.print(toolInfo{
		Name:         t.Key(),
		Config:       t.Config(),
		InputSchema:  t.InputSchema(),
		OutputSchema: t.OutputSchema(),
	})
}

// RunCmd validates a JSON object against a tool and executes it
type RunCmd struct {
	Tool  string `arg:"" help:"Tool key."`
	Input string `arg:"" help:"JSON object with the tool's input fields, or - to read it from stdin."`
}

func (c *RunCmd) Run(app *App) error {
	if !app.Registry.Has(c.Tool) {
		_, err := app.Registry.Lookup(c.Tool)
		return err
	}
	text, err := app.readArg(c.Input)
	if err != nil {
		return err
	}
	raw, err := decodeObject(text)
	if err != nil {
		return err
	}
	return app.dispatch(tools.Key(c.Tool), raw)
}

// splitOperation reads "[op] <text>" where op is one of ops
func splitOperation(args []string, ops ...string) (op, text string, err error) {
	switch {
	case len(args) == 1:
		return "", args[0], nil
	case len(args) == 2 && slices.Contains(ops, args[0]):
		return args[0], args[1], nil
	}
	return "", "", usagef("expected [%s] <text>, got %d arguments", strings.Join(ops, "|"), len(args))
}

// resolveOperation combines an operation word with a flag that selects
// flagOp. Contradicting each other is a usage error.
func resolveOperation(word string, flag bool, flagOp, def string) (string, error) {
	if flag {
		if word != "" && word != flagOp {
			return "", usagef("operation %q conflicts with --%s", word, flagOp)
		}
		return flagOp, nil
	}
	if word == "" {
		return def, nil
	}
	return word, nil
}

// Base64Cmd is base64 [encode|decode] <text>
type Base64Cmd struct {
	Args   []string `arg:"" name:"text" help:"[encode|decode] <text>"`
	Decode bool     `short:"d" help:"Decode instead of encode."`
}

func (c *Base64Cmd) Run(app *App) error {
	word, text, err := splitOperation(c.Args, "encode", "decode")
	if err != nil {
		return err
	}
	op, err := resolveOperation(word, c.Decode, "decode", "encode")
	if err != nil {
		return err
	}
	return app.dispatch(tools.KeyBase64, tools.Raw{"text": text, "operation": op})
}

// URLCmd is url [encode|decode] <text>
type URLCmd struct {
	Args   []string `arg:"" name:"text" help:"[encode|decode] <text>"`
	Decode bool     `short:"d" help:"Decode instead of encode."`
}

func (c *URLCmd) Run(app *App) error {
	word, text, err := splitOperation(c.Args, "encode", "decode")
	if err != nil {
		return err
	}
	op, err := resolveOperation(word, c.Decode, "decode", "encode")
	if err != nil {
		return err
	}
	return app.dispatch(tools.KeyURL, tools.Raw{"text": text, "operation": op})
}

// HashCmd is hash <text> [algorithm]
type HashCmd struct {
	Args      []string `arg:"" name:"text" help:"<text> [algorithm]"`
	Algorithm string   `short:"a" help:"md5, sha1, sha256, sha512, sha3-256, sha3-512 or blake2b-256."`
}

func (c *HashCmd) Run(app *App) error {
	if len(c.Args) > 2 {
		return usagef("expected <text> [algorithm], got %d arguments", len(c.Args))
	}
	raw := tools.Raw{"text": c.Args[0]}

	alg := c.Algorithm
	if len(c.Args) == 2 {
		if alg != "" && alg != c.Args[1] {
			return usagef("algorithm %q conflicts with --algorithm %s", c.Args[1], alg)
		}
		alg = c.Args[1]
	}
	if alg != "" {
		raw["algorithm"] = alg
	}
	return app.dispatch(tools.KeyHash, raw)
}

// JWTCmd is jwt <token>
type JWTCmd struct {
	Token string `arg:"" help:"Encoded token."`
}

func (c *JWTCmd) Run(app *App) error {
	return app.dispatch(tools.KeyJWT, tools.Raw{"token": c.Token})
}

// JSONCmd is json [format|minify] <text|->
type JSONCmd struct {
	Args   []string `arg:"" name:"text" help:"[format|minify] <text>, use - to read stdin."`
	Minify bool     `short:"m" help:"Minify instead of format."`
	Query  string   `short:"q" help:"jq filter applied before formatting."`
}

func (c *JSONCmd) Run(app *App) error {
	word, arg, err := splitOperation(c.Args, "format", "minify")
	if err != nil {
		return err
	}
	op, err := resolveOperation(word, c.Minify, "minify", "format")
	if err != nil {
		return err
	}
	text, err := app.readArg(arg)
	if err != nil {
		return err
	}

	raw := tools.Raw{"text": text, "minify": op == "minify"}
	if c.Query != "" {
		raw["query"] = c.Query
	}
	return app.dispatch(tools.KeyJSON, raw)
}

// UUIDCmd is uuid [--version V] [--count N]
type UUIDCmd struct {
	Version int `default:"4" help:"UUID version, 1 or 4."`
	Count   int `short:"n" default:"1" help:"Number of UUIDs, 1 to 100."`
}

func (c *UUIDCmd) Run(app *App) error {
	return app.dispatch(tools.KeyUUID, tools.Raw{"version": c.Version, "count": c.Count})
}

// EpochCmd is epoch [timestamp]
type EpochCmd struct {
	Timestamp string `arg:"" optional:"" help:"Seconds, milliseconds or a date. Defaults to now."`
}

func (c *EpochCmd) Run(app *App) error {
	raw := tools.Raw{}
	if c.Timestamp != "" {
		raw["timestamp"] = c.Timestamp
	}
	return app.dispatch(tools.KeyEpoch, raw)
}

// ColorCmd is color <value>
type ColorCmd struct {
	Value string `arg:"" help:"#hex, rgb(r, g, b) or hsl(h, s%, l%)."`
}

func (c *ColorCmd) Run(app *App) error {
	return app.dispatch(tools.KeyColor, tools.Raw{"color": c.Value})
}

// EscapeCmd is escape <text> [--unescape] [--format F]
type EscapeCmd struct {
	Text     string `arg:"" help:"Text to escape or unescape."`
	Unescape bool   `short:"u" help:"Unescape instead of escape."`
	Format   string `short:"f" default:"html" help:"html, json, xml or javascript."`
}

func (c *EscapeCmd) Run(app *App) error {
	op := "escape"
	if c.Unescape {
		op = "unescape"
	}
	return app.dispatch(tools.KeyEscape, tools.Raw{"text": c.Text, "operation": op, "format": c.Format})
}

// VersionCmd prints "devkit <version>"
type VersionCmd struct{}

func (c *VersionCmd) Run(app *App) error {
	_, err := fmt.Fprintf(app.Stdout, "devkit %s\n", Version)
	return err
}
