package rules

import (
	_ "embed"
	"fmt"
	"maps"
	"strings"
	"sync"
)

//go:embed rules.yaml
var defaultRules []byte

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the rule registry built from the embedded rule table. The
// table is parsed once per process.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Parse(defaultRules)
	})

	return defaultRegistry, defaultErr
}

// Registry is an immutable, parsed rule table.
type Registry struct {
	rules        []Rule
	byField      map[string]int
	unitAliases  map[string]string
	deprecations map[string]string
	upgrades     map[string][]Upgrade
}

func newRegistry(doc document) (*Registry, error) {
	r := &Registry{
		rules:        doc.Rules,
		byField:      make(map[string]int, len(doc.Rules)),
		unitAliases:  make(map[string]string, len(doc.UnitAliases)),
		deprecations: make(map[string]string, len(doc.Deprecations)),
		upgrades:     make(map[string][]Upgrade, len(doc.Upgrades)),
	}

	for i, rule := range r.rules {
		if _, ok := r.byField[rule.Field]; ok {
			return nil, fmt.Errorf("duplicate rule for %s", rule.Field)
		}

		r.byField[rule.Field] = i
	}

	for alias, unit := range doc.UnitAliases {
		r.unitAliases[strings.ToLower(alias)] = unit
	}

	maps.Copy(r.deprecations, doc.Deprecations)

	for name, raws := range doc.Upgrades {
		for _, raw := range raws {
			u, err := raw.upgrade()
			if err != nil {
				return nil, fmt.Errorf("upgrade of %s: %w", name, err)
			}

			r.upgrades[name] = append(r.upgrades[name], u)
		}
	}

	return r, nil
}

// Rules returns the rules in table order.
func (r *Registry) Rules() []Rule {
	return r.rules
}

// Rule returns the rule keyed by field.
func (r *Registry) Rule(field string) (Rule, bool) {
	i, ok := r.byField[field]
	if !ok {
		return Rule{}, false
	}

	return r.rules[i], true
}

// UnitAliases returns a copy of the alias -> canonical unit table.
func (r *Registry) UnitAliases() map[string]string {
	return maps.Clone(r.unitAliases)
}

// Deprecations returns a copy of the deprecated convention -> replacement
// table.
func (r *Registry) Deprecations() map[string]string {
	return maps.Clone(r.deprecations)
}

// Deprecation returns the replacement of a deprecated convention.
func (r *Registry) Deprecation(name string) (string, bool) {
	repl, ok := r.deprecations[name]

	return repl, ok
}

// Upgrades returns the upgrade paths of a convention.
func (r *Registry) Upgrades(name string) []Upgrade {
	return r.upgrades[name]
}

// FindUpgrade returns the upgrade of the given convention version.
func (r *Registry) FindUpgrade(name, version string) (Upgrade, bool) {
	for _, u := range r.upgrades[name] {
		if u.Applies(version) {
			return u, true
		}
	}

	return Upgrade{}, false
}

// IsDeprecated reports whether a convention version should be upgraded,
// either because the whole convention is deprecated or because an upgrade
// starts from the version.
func (r *Registry) IsDeprecated(name, version string) bool {
	if _, ok := r.deprecations[name]; ok {
		return true
	}

	_, ok := r.FindUpgrade(name, version)

	return ok
}
