package tools

import (
	"math"

	"github.com/google/uuid"
)

const maxUUIDCount = 100

type uuidInput struct {
	Version int
	Count   int
}

// UUIDOutput is the result of a uuid run
type UUIDOutput struct {
	UUIDs   []string `json:"uuids"`
	Version int      `json:"version"`
	Count   int      `json:"count"`
	Format  string   `json:"format"`
}

func newUUIDTool() Tool {
	return &Definition[uuidInput, UUIDOutput]{
		ToolKey: KeyUUID,
		Meta: newConfig("UUID Generator", "Generate UUID v1 or v4 unique identifiers", "text",
			"uuid", "guid", "generate", "unique", "identifier", "random"),
		Input: objectSchema("UuidInput", map[string]any{
			"version": map[string]any{
				"type":        "integer",
				"enum":        []int{1, 4},
				"default":     4,
				"description": "UUID version (1 or 4)",
			},
			"count": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     maxUUIDCount,
				"default":     1,
				"description": "Number of UUIDs to generate",
			},
		}),
		Output: objectSchema("UuidOutput", map[string]any{
			"uuids":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Generated UUIDs"},
			"version": intProp("UUID version used"),
			"count":   intProp("Number of UUIDs generated"),
			"format":  stringProp("UUID format description"),
		}, "uuids", "version", "count", "format"),
		Validate: validateUUID,
		Execute:  executeUUID,
	}
}

func validateUUID(raw Raw) (uuidInput, error) {
	f := NewFields(KeyUUID, raw)
	in := uuidInput{
		Version: f.Int("version", 4, math.MinInt, math.MaxInt),
		Count:   f.Int("count", 1, 1, maxUUIDCount),
	}
	if f.OK("version") && in.Version != 1 && in.Version != 4 {
		f.Fail("version", "UUID version must be 1 or 4")
	}
	return in, f.Err()
}

func executeUUID(in uuidInput) UUIDOutput {
	ids := make([]string, 0, in.Count)
	for range in.Count {
		var (
			id  uuid.UUID
			err error
		)
		if in.Version == 1 {
			id, err = uuid.NewUUID()
		} else {
			id, err = uuid.NewRandom()
		}
		if err != nil {
			panic(err)
		}
		ids = append(ids, id.String())
	}

	return UUIDOutput{
		UUIDs:   ids,
		Version: in.Version,
		Count:   in.Count,
		Format:  "8-4-4-4-12 hexadecimal digits",
	}
}
