package tools

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	hexColorPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)
	rgbColorPattern = regexp.MustCompile(`(?i)^rgb\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)$`)
	hslColorPattern = regexp.MustCompile(`(?i)^hsl\s*\(\s*(\d+)\s*,\s*(\d+)%\s*,\s*(\d+)%\s*\)$`)
)

type colorInput struct {
	Color   string
	Format  string
	R, G, B uint8
}

// RGB is a color as 8-bit channels
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HSL is a color as hue degrees and saturation/lightness percentages
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// ColorOutput is the result of a color run
type ColorOutput struct {
	InputColor  string `json:"input_color"`
	InputFormat string `json:"input_format"`
	Hex         string `json:"hex"`
	RGB         RGB    `json:"rgb"`
	HSL         HSL    `json:"hsl"`
	CSSRGB      string `json:"css_rgb"`
	CSSHSL      string `json:"css_hsl"`
}

func newColorTool() Tool {
	return &Definition[colorInput, ColorOutput]{
		ToolKey: KeyColor,
		Meta: newConfig("Color Converter", "Convert between color formats (HEX, RGB, HSL)", "design",
			"color", "hex", "rgb", "hsl", "convert", "css", "design"),
		Input: objectSchema("ColorInput", map[string]any{
			"color": stringProp("Color value as #hex, rgb(r, g, b) or hsl(h, s%, l%)"),
		}, "color"),
		Output: objectSchema("ColorOutput", map[string]any{
			"input_color":  stringProp("Original input color"),
			"input_format": stringProp("Detected input format"),
			"hex":          stringProp("Hexadecimal color (#rrggbb)"),
			"rgb":          objectProp("RGB values"),
			"hsl":          objectProp("HSL values"),
			"css_rgb":      stringProp("CSS rgb() format"),
			"css_hsl":      stringProp("CSS hsl() format"),
		}, "input_color", "input_format", "hex", "rgb", "hsl", "css_rgb", "css_hsl"),
		Validate: validateColor,
		Execute:  executeColor,
	}
}

func validateColor(raw Raw) (colorInput, error) {
	f := NewFields(KeyColor, raw)
	in := colorInput{Color: strings.TrimSpace(f.String("color", true, "Color value cannot be empty"))}
	if !f.OK("color") {
		return in, f.Err()
	}

	var (
		c   colorful.Color
		err error
	)
	lower := strings.ToLower(in.Color)
	switch {
	case strings.HasPrefix(in.Color, "#"):
		in.Format = "hex"
		c, err = parseHexColor(in.Color[1:])
	case strings.HasPrefix(lower, "rgb"):
		in.Format = "rgb"
		c, err = parseRGBColor(in.Color)
	case strings.HasPrefix(lower, "hsl"):
		in.Format = "hsl"
		c, err = parseHSLColor(in.Color)
	default:
		in.Format = "hex"
		c, err = parseHexColor(in.Color)
	}
	if err != nil {
		f.Fail("color", "Invalid color format: %v", err)
		return in, f.Err()
	}

	in.R, in.G, in.B = c.RGB255()
	if in.Format == "hsl" {
		in.R, in.G, in.B = truncate255(c.R), truncate255(c.G), truncate255(c.B)
	}
	return in, nil
}

// truncate255 scales a [0, 1] channel down to 0-255 without rounding, so
// hsl(0, 100%, 25%) has r=127.
func truncate255(v float64) uint8 {
	return uint8(v * 255)
}

func parseHexColor(digits string) (colorful.Color, error) {
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) != 6 {
		return colorful.Color{}, fmt.Errorf("invalid hex color format")
	}
	if !hexColorPattern.MatchString(digits) {
		return colorful.Color{}, fmt.Errorf("invalid hex color values")
	}
	return colorful.Hex("#" + strings.ToLower(digits))
}

func parseRGBColor(s string) (colorful.Color, error) {
	m := rgbColorPattern.FindStringSubmatch(s)
	if m == nil {
		return colorful.Color{}, fmt.Errorf("invalid RGB format")
	}
	ch, ok := channels(m[1:], 255, 255, 255)
	if !ok {
		return colorful.Color{}, fmt.Errorf("RGB values must be between 0 and 255")
	}
	return colorful.Color{R: float64(ch[0]) / 255, G: float64(ch[1]) / 255, B: float64(ch[2]) / 255}, nil
}

func parseHSLColor(s string) (colorful.Color, error) {
	m := hslColorPattern.FindStringSubmatch(s)
	if m == nil {
		return colorful.Color{}, fmt.Errorf("invalid HSL format")
	}
	ch, ok := channels(m[1:], 360, 100, 100)
	if !ok {
		return colorful.Color{}, fmt.Errorf("HSL hue must be 0-360 and saturation/lightness 0-100%%")
	}
	return colorful.Hsl(float64(ch[0]), float64(ch[1])/100, float64(ch[2])/100), nil
}

// channels parses decimal captures and checks each against its upper bound
func channels(groups []string, limits ...int) ([]int, bool) {
	out := make([]int, len(groups))
	for i, g := range groups {
		n, err := strconv.Atoi(g)
		if err != nil || n < 0 || n > limits[i] {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func executeColor(in colorInput) ColorOutput {
	r, g, b := int(in.R), int(in.G), int(in.B)
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}

	h, s, l := c.Hsl()
	hsl := HSL{H: truncate(h), S: truncate(s * 100), L: truncate(l * 100)}
	if hsl.H >= 360 {
		hsl.H = 0
	}

	return ColorOutput{
		InputColor:  in.Color,
		InputFormat: in.Format,
		Hex:         fmt.Sprintf("#%02x%02x%02x", r, g, b),
		RGB:         RGB{R: r, G: g, B: b},
		HSL:         hsl,
		CSSRGB:      fmt.Sprintf("rgb(%d, %d, %d)", r, g, b),
		CSSHSL:      fmt.Sprintf("hsl(%d, %d%%, %d%%)", hsl.H, hsl.S, hsl.L),
	}
}

// truncate drops the fraction, tolerating float noise just below an integer
func truncate(v float64) int {
	return int(v + 1e-9)
}
