package tools

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

var (
	epochDigits   = regexp.MustCompile(`^[+-]?\d+$`)
	epochFraction = regexp.MustCompile(`^[+-]?(\d+\.\d*|\.\d+)$`)
	dateYear      = regexp.MustCompile(`\d{4}`)
)

type epochInput struct {
	// Epoch is nil when the current time should be used
	Epoch *int64
}

// EpochOutput is the result of an epoch run
type EpochOutput struct {
	Epoch    int64         `json:"epoch"`
	UTC      EpochFormats  `json:"utc"`
	Local    EpochFormats  `json:"local"`
	Relative EpochRelative `json:"relative"`
}

// EpochFormats holds one instant rendered in several layouts
type EpochFormats struct {
	Readable string `json:"readable"`
	ISO      string `json:"iso"`
	DDMMYYYY string `json:"ddmmyyyy"`
}

// EpochRelative is the distance from now; positive values are in the past
type EpochRelative struct {
	Days    int64  `json:"days"`
	Seconds int64  `json:"seconds"`
	Human   string `json:"human"`
}

func newEpochTool() Tool {
	return &Definition[epochInput, EpochOutput]{
		ToolKey: KeyEpoch,
		Meta: newConfig("Epoch Converter", "Convert epoch timestamps to human-readable formats", "time",
			"epoch", "timestamp", "unix", "time", "convert", "date"),
		Input: objectSchema("EpochInput", map[string]any{
			"timestamp": map[string]any{
				"type":        []string{"string", "integer", "null"},
				"description": "Epoch seconds, epoch milliseconds or a date string (leave empty for current time)",
			},
		}),
		Output: objectSchema("EpochOutput", map[string]any{
			"epoch":    intProp("Unix epoch timestamp"),
			"utc":      objectProp("UTC time representations"),
			"local":    objectProp("Local time representations"),
			"relative": objectProp("Relative time information"),
		}, "epoch", "utc", "local", "relative"),
		Validate: validateEpoch,
		Execute:  executeEpoch,
	}
}

func validateEpoch(raw Raw) (epochInput, error) {
	f := NewFields(KeyEpoch, raw)
	text := f.Text("timestamp")
	if text == "" || !f.OK("timestamp") {
		return epochInput{}, f.Err()
	}

	epoch, err := parseEpoch(text)
	if err != nil {
		f.Fail("timestamp", "Invalid epoch timestamp: %s", text)
		return epochInput{}, f.Err()
	}
	return epochInput{Epoch: &epoch}, nil
}

// parseEpoch reads seconds, milliseconds (13 or more characters, sign
// included) or a date. Dates must carry a four digit year.
func parseEpoch(text string) (int64, error) {
	if epochDigits.MatchString(text) {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return 0, err
		}
		if len(text) >= 13 {
			n = floorDiv(n, 1000)
		}
		return n, nil
	}
	if epochFraction.MatchString(text) || !dateYear.MatchString(text) {
		return 0, fmt.Errorf("not an integer timestamp or a date: %q", text)
	}

	t, err := dateparse.ParseIn(text, time.UTC)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}

func executeEpoch(in epochInput) EpochOutput {
	current := now()
	epoch := current.Unix()
	if in.Epoch != nil {
		epoch = *in.Epoch
	}

	utc := time.Unix(epoch, 0).UTC()
	local := time.Unix(epoch, 0).Local()
	diff := current.Unix() - epoch

	return EpochOutput{
		Epoch: epoch,
		UTC: EpochFormats{
			Readable: utc.Format("2006-01-02 15:04:05 UTC"),
			ISO:      utc.Format("2006-01-02T15:04:05-07:00"),
			DDMMYYYY: utc.Format("02/01/2006 15:04:05"),
		},
		Local: EpochFormats{
			Readable: local.Format("2006-01-02 15:04:05 MST"),
			ISO:      local.Format("2006-01-02T15:04:05"),
			DDMMYYYY: local.Format("02/01/2006 15:04:05"),
		},
		Relative: EpochRelative{
			Days:    floorDiv(diff, 86400),
			Seconds: diff,
			Human:   humanRelative(diff),
		},
	}
}

func humanRelative(seconds int64) string {
	abs := seconds
	if abs < 0 {
		abs = -abs
	}
	direction := "from now"
	if seconds > 0 {
		direction = "ago"
	}

	switch {
	case abs < 60:
		return fmt.Sprintf("%d seconds %s", abs, direction)
	case abs < 3600:
		return fmt.Sprintf("%d minutes %s", abs/60, direction)
	case abs < 86400:
		return fmt.Sprintf("%d hours %s", abs/3600, direction)
	}

	days := floorDiv(seconds, 86400)
	direction = "from now"
	if days > 0 {
		direction = "ago"
	}
	if days < 0 {
		days = -days
	}
	return fmt.Sprintf("%d days %s", days, direction)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
