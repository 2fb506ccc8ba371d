package tool

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
)

// Registry binds tool objects to their names and renders the catalog the
// Prompt Builder injects into every system prompt — the LLM's sole source
// of truth for what tools exist and how to call them.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to the registry. Registering a tool whose parameter
// list declares a required ROWSET parameter is a programming error — ROWSET
// parameters are never required from the LLM, they are always auto-injected
// — so Register panics rather than let a broken tool ship silently. A
// duplicate name is overwritten with a warning, matching Register's
// overwrite behavior elsewhere, since that case (hot-reload, test overrides)
// is not itself a correctness bug.
func (r *Registry) Register(t Tool) {
	for _, p := range t.Params() {
		if p.Kind == KindRowSet && p.Required {
			panic(fmt.Sprintf("tool %q declares a required ROWSET parameter %q: rowset parameters must always be optional and auto-injected", t.Name(), p.Name))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name()]; exists {
		log.Printf("[Registry] WARNING: overwriting existing tool %q", t.Name())
	}
	r.tools[t.Name()] = t
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns all registered tools sorted by name, for deterministic
// catalog rendering.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// DescribeAll renders the deterministic, machine-readable tool catalog
// consumed by the Prompt Builder: for each tool, its name, one-line purpose,
// and parameters with kind, required-ness, and a usage example. ROWSET
// parameters always render as "[OPTIONAL — auto-injected]" so the LLM never
// attempts to construct a row set itself.
func (r *Registry) DescribeAll() string {
	tools := r.List()
	if len(tools) == 0 {
		return "(no tools registered)"
	}

	var sb strings.Builder
	for _, t := range tools {
		sb.WriteString(fmt.Sprintf("\n%s — %s\n", t.Name(), t.Description()))
		for _, p := range t.Params() {
			requiredTag := "[OPTIONAL]"
			if p.Kind == KindRowSet {
				requiredTag = "[OPTIONAL — auto-injected]"
			} else if p.Required {
				requiredTag = "[REQUIRED]"
			}
			sb.WriteString(fmt.Sprintf("  - %s: %s %s — %s (e.g. %s)\n",
				p.Name, p.Kind, requiredTag, p.Description, p.Example))
		}
	}
	return sb.String()
}
