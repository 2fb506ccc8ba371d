// Package entitycatalog loads the static entity-type configuration: regex
// patterns, user-facing aliases, and pairwise relationships. The catalog is
// loaded once at process start and is treated as read-only for the rest of
// the process's life — no caller ever mutates a Catalog after Load returns.
package entitycatalog

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// Type is one configured entity type: a name, its compiled patterns, its
// user-facing aliases (first entry is canonical), and the names of related
// types used to hint the LLM about useful extractions.
type Type struct {
	Name          string
	Patterns      []*regexp.Regexp
	Aliases       []string
	Relationships []string
}

// Catalog is the full set of configured entity types, indexed by name.
type Catalog struct {
	types map[string]Type
	order []string // insertion order, for deterministic rendering
}

// rawDocument mirrors the on-disk YAML shape: three top-level sections,
// each a map from type name to a list of strings.
type rawDocument struct {
	Patterns      map[string][]string `yaml:"patterns"`
	Aliases       map[string][]string `yaml:"aliases"`
	Relationships map[string][]string `yaml:"relationships"`
}

// Load reads and compiles the entity configuration file at path. Malformed
// regex is a fatal startup error, per the configuration contract — there is
// no recoverable path for a broken pattern file, so Load returns an error
// for the caller to treat as fatal rather than attempting partial recovery.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("entitycatalog: read %s: %w", path, err)
	}

	var doc rawDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("entitycatalog: parse %s: %w", path, err)
	}

	cat := &Catalog{types: make(map[string]Type)}

	names := make([]string, 0, len(doc.Patterns))
	for name := range doc.Patterns {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		patternStrs := doc.Patterns[name]
		if len(patternStrs) == 0 {
			return nil, fmt.Errorf("entitycatalog: type %q declares no patterns", name)
		}

		compiled := make([]*regexp.Regexp, 0, len(patternStrs))
		for _, p := range patternStrs {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("entitycatalog: type %q: malformed pattern %q: %w", name, p, err)
			}
			if re.NumSubexp() == 0 {
				// Allowed by the spec (whole match becomes the value) but
				// worth a loud warning since it's usually an authoring slip.
				fmt.Fprintf(os.Stderr, "[EntityCatalog] warning: type %q pattern %q has no capture group; whole match will be used as the value\n", name, p)
			}
			compiled = append(compiled, re)
		}

		aliases := doc.Aliases[name]
		if len(aliases) == 0 {
			aliases = []string{name}
		}

		cat.types[name] = Type{
			Name:          name,
			Patterns:      compiled,
			Aliases:       aliases,
			Relationships: doc.Relationships[name],
		}
		cat.order = append(cat.order, name)
	}

	return cat, nil
}

// Get returns the named type and whether it is registered.
func (c *Catalog) Get(name string) (Type, bool) {
	t, ok := c.types[name]
	return t, ok
}

// Names returns every configured type name in a stable, deterministic order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// AliasLines renders "User says 'X' or 'Y' → use 'type_name'" lines for the
// system prompt, one per type, in catalog order.
func (c *Catalog) AliasLines() []string {
	lines := make([]string, 0, len(c.order))
	for _, name := range c.order {
		t := c.types[name]
		line := fmt.Sprintf("User says %s → use %q", quotedJoin(t.Aliases), t.Name)
		lines = append(lines, line)
	}
	return lines
}

func quotedJoin(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += " or "
		}
		out += fmt.Sprintf("%q", s)
	}
	return out
}
