package tools

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	. "github.com/roelfdiedericks/devkit/internal/logging"
)

// Registry holds all registered tools
type Registry struct {
	tools map[Key]Tool
	mu    sync.RWMutex
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[Key]Tool),
	}
}

// Register adds a tool to the registry. It fails if the key is taken.
func (r *Registry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := tool.Key()
	if _, exists := r.tools[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, key)
	}
	r.tools[key] = tool
	return nil
}

// Lookup returns a tool by key, or a *NotFoundError
func (r *Registry) Lookup(key string) (Tool, error) {
	r.mu.RLock()
	t, ok := r.tools[Key(key)]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Key: key, Available: r.Keys()}
	}
	return t, nil
}

// Has returns true if a tool with the given key is registered
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[Key(key)]
	return ok
}

// Run validates raw against the tool's rules and executes it
func (r *Registry) Run(key string, raw Raw) (any, error) {
	tool, err := r.Lookup(key)
	if err != nil {
		return nil, err
	}

	L_debug("tools: run", "tool", key, "fields", len(raw))
	defer L_elapsed(time.Now(), "tools: run finished", "tool", key)
	return tool.Run(raw)
}

// Keys returns all registered keys in lexical order
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]Key, 0, len(r.tools))
	for k := range r.tools {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// List returns all tools ordered by display name (case-insensitive),
// ties broken by key
func (r *Registry) List() []Tool {
	return r.filter(func(Tool) bool { return true })
}

// ListByCategory returns tools in category, with the same ordering as List
func (r *Registry) ListByCategory(category string) []Tool {
	return r.filter(func(t Tool) bool { return t.Config().Category == category })
}

func (r *Registry) filter(keep func(Tool) bool) []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Config().Name), strings.ToLower(out[j].Config().Name)
		if a != b {
			return a < b
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}

// Categories returns the unique categories in lexical order
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var cats []string
	for _, t := range r.tools {
		c := t.Config().Category
		if !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	sort.Strings(cats)
	return cats
}

// Count returns the number of registered tools
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// BuildToolSummary generates a help section listing available tools.
//
// Returns a formatted string like:
//
//	Available tools:
//	  base64  Encode or decode Base64 strings
//	  color   Convert between color formats (HEX, RGB, HSL)
func (r *Registry) BuildToolSummary() string {
	keys := r.Keys()
	if len(keys) == 0 {
		return ""
	}

	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("Available tools:\n")
	for _, k := range keys {
		desc := truncateDescription(r.tools[k].Config().Description, 60)
		fmt.Fprintf(&sb, "  %-*s  %s\n", width, k, desc)
	}
	return sb.String()
}

// truncateDescription shortens a description for the summary view
func truncateDescription(desc string, maxLen int) string {
	// First try to get just the first sentence
	if idx := strings.Index(desc, ". "); idx > 0 && idx < maxLen {
		return desc[:idx+1]
	}

	if len(desc) <= maxLen {
		return desc
	}

	// Find last space before maxLen to avoid cutting words
	truncated := desc[:maxLen]
	if idx := strings.LastIndex(truncated, " "); idx > maxLen/2 {
		truncated = truncated[:idx]
	}
	return truncated + "..."
}
