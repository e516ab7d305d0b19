package tools

import (
	"fmt"

	. "github.com/roelfdiedericks/devkit/internal/logging"
)

// builtins maps each key to its constructor. The keys are constants, so a
// repeated entry is a compile error.
var builtins = map[Key]func() Tool{
	KeyBase64: newBase64Tool,
	KeyURL:    newURLTool,
	KeyHash:   newHashTool,
	KeyJWT:    newJWTTool,
	KeyJSON:   newJSONTool,
	KeyUUID:   newUUIDTool,
	KeyEpoch:  newEpochTool,
	KeyColor:  newColorTool,
	KeyEscape: newEscapeTool,
}

// RegisterDefaults registers the builtin tools
func RegisterDefaults(reg *Registry) error {
	for key, ctor := range builtins {
		tool := ctor()
		if tool.Key() != key {
			return fmt.Errorf("builtin %s constructs tool %s", key, tool.Key())
		}
		if err := reg.Register(tool); err != nil {
			return err
		}
	}
	L_debug("tools: builtins registered", "count", reg.Count())
	return nil
}

// Default returns a registry holding the builtin tools
func Default() (*Registry, error) {
	reg := NewRegistry()
	if err := RegisterDefaults(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
