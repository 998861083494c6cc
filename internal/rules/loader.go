package rules

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"sofar/internal/common"
)

// document is the YAML form of a rule table.
type document struct {
	UnitAliases  map[string]string       `yaml:"unit_aliases"`
	Deprecations map[string]string       `yaml:"deprecations"`
	Rules        ruleTable               `yaml:"rules"`
	Upgrades     map[string][]rawUpgrade `yaml:"upgrades"`
}

// LoadFile loads and parses a rule table from the given path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses a YAML rule table.
func Parse(data []byte) (*Registry, error) {
	var doc document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
	}

	return newRegistry(doc)
}

// ruleTable keeps the rules in document order.
type ruleTable []Rule

// UnmarshalYAML decodes the field -> rule mapping.
func (t *ruleTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: rules must be a mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		var r Rule

		if err := node.Content[i+1].Decode(&r); err != nil {
			return fmt.Errorf("rule %s: %w", node.Content[i].Value, err)
		}

		r.Field = common.FlatName(node.Content[i].Value)
		*t = append(*t, r)
	}

	return nil
}

// UnmarshalYAML decodes a rule body. A null value list means unconstrained.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Value    []string      `yaml:"value"`
		General  []string      `yaml:"general"`
		Specific specificTable `yaml:"specific"`
	}

	if err := node.Decode(&raw); err != nil {
		return err
	}

	r.Values = raw.Value
	r.Specific = raw.Specific

	for _, g := range raw.General {
		r.General = append(r.General, common.FlatName(g))
	}

	return nil
}

// specificTable keeps the trigger values in document order.
type specificTable []Dependency

// UnmarshalYAML decodes the trigger -> dependency mapping.
func (t *specificTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: specific must be a mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		var d Dependency

		if err := node.Content[i+1].Decode(&d); err != nil {
			return fmt.Errorf("specific %s: %w", node.Content[i].Value, err)
		}

		d.Trigger = node.Content[i].Value
		*t = append(*t, d)
	}

	return nil
}

// dimensionsKey holds the dimension constraints inside a dependency.
const dimensionsKey = "_dimensions"

// UnmarshalYAML decodes the dependent fields of one trigger value. Each
// field maps to null (existence only), a value or a list of values; the
// reserved key _dimensions maps dimension letters to size constraints.
func (d *Dependency) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: dependency must be a mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		if key.Value == dimensionsKey {
			dims, err := decodeDimensions(value)
			if err != nil {
				return err
			}

			d.Dimensions = append(d.Dimensions, dims...)

			continue
		}

		values, err := decodeValues(value)
		if err != nil {
			return fmt.Errorf("field %s: %w", key.Value, err)
		}

		d.Fields = append(d.Fields, FieldConstraint{Field: common.FlatName(key.Value), Values: values})
	}

	return nil
}

func decodeValues(node *yaml.Node) ([]string, error) {
	switch {
	case node.Kind == yaml.ScalarNode && node.Tag == "!!null":
		return nil, nil
	case node.Kind == yaml.ScalarNode:
		return []string{node.Value}, nil
	default:
		var values []string
		if err := node.Decode(&values); err != nil {
			return nil, err
		}

		return values, nil
	}
}

// rawDimension describes the permitted sizes of one letter in one of three
// ways: an explicit list, the first Count multiples of MultipleOf, or the
// squares (N+1)^2 for spherical harmonic orders N below SquareOfOrder.
type rawDimension struct {
	Value         []int  `yaml:"value"`
	MultipleOf    int    `yaml:"multiple_of"`
	Count         int    `yaml:"count"`
	SquareOfOrder int    `yaml:"square_of_order"`
	Description   string `yaml:"description"`
}

func decodeDimensions(node *yaml.Node) ([]DimensionConstraint, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: %s must be a mapping", node.Line, dimensionsKey)
	}

	var out []DimensionConstraint

	for i := 0; i+1 < len(node.Content); i += 2 {
		letter := node.Content[i].Value

		var raw rawDimension
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("dimension %s: %w", letter, err)
		}

		c, err := raw.constraint(letter)
		if err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, nil
}

func (raw rawDimension) constraint(letter string) (DimensionConstraint, error) {
	c := DimensionConstraint{Letter: strings.ToUpper(letter), Sizes: map[int]struct{}{}, Description: raw.Description}

	switch {
	case len(raw.Value) > 0:
		parts := make([]string, len(raw.Value))
		for i, v := range raw.Value {
			c.Sizes[v] = struct{}{}
			parts[i] = strconv.Itoa(v)
		}

		if c.Description == "" {
			c.Description = strings.Join(parts, ", ")
		}
	case raw.MultipleOf > 0:
		count := raw.Count
		if count == 0 {
			count = 1000
		}

		for n := 1; n <= count; n++ {
			c.Sizes[raw.MultipleOf*n] = struct{}{}
		}

		if c.Description == "" {
			c.Description = fmt.Sprintf("an integer multiple of %d greater 0", raw.MultipleOf)
		}
	case raw.SquareOfOrder > 0:
		for n := 0; n < raw.SquareOfOrder; n++ {
			c.Sizes[(n+1)*(n+1)] = struct{}{}
		}

		if c.Description == "" {
			c.Description = "(N+1)**2 where N is the spherical harmonics order"
		}
	default:
		return c, fmt.Errorf("dimension %s needs value, multiple_of or square_of_order", letter)
	}

	return c, nil
}

type rawMove struct {
	Source               string   `yaml:"source"`
	Target               string   `yaml:"target"`
	MoveAxis             []int    `yaml:"moveaxis"`
	DeprecatedDimensions []string `yaml:"deprecated_dimensions"`
}

type rawUpgrade struct {
	From    []string  `yaml:"from"`
	To      []string  `yaml:"to"`
	Move    []rawMove `yaml:"move"`
	Remove  []string  `yaml:"remove"`
	Message string    `yaml:"message"`
}

func (raw rawUpgrade) upgrade() (Upgrade, error) {
	u := Upgrade{From: raw.From, To: raw.To, Message: raw.Message}

	if len(u.From) == 0 || len(u.To) == 0 {
		return u, fmt.Errorf("upgrade needs from and to")
	}

	for _, m := range raw.Move {
		if m.MoveAxis != nil && len(m.MoveAxis) != 2 {
			return u, fmt.Errorf("moveaxis of %s must be [from, to]", m.Source)
		}

		u.Move = append(u.Move, Move{
			Source:               common.FlatName(m.Source),
			Target:               common.FlatName(m.Target),
			Axis:                 m.MoveAxis,
			DeprecatedDimensions: m.DeprecatedDimensions,
		})
	}

	for _, r := range raw.Remove {
		u.Remove = append(u.Remove, common.FlatName(r))
	}

	return u, nil
}
