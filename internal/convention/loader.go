package convention

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"sofar/internal/common"
)

// rawEntry is the YAML form of an Entry.
type rawEntry struct {
	Type       string `yaml:"type"`
	Default    any    `yaml:"default"`
	Flags      string `yaml:"flags"`
	Dimensions string `yaml:"dimensions"`
	Comment    string `yaml:"comment"`
}

// LoadFile loads and parses a convention file from the given path.
func LoadFile(id ID, path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read convention file %s: %w", path, err)
	}

	return Parse(id, data)
}

// Parse parses a YAML convention document. The document is a mapping from
// qualified field names to entries; mapping order becomes schema order.
func Parse(id ID, data []byte) (*Schema, error) {
	var doc yaml.Node

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse convention %s: %w", id, err)
	}

	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("convention %s is empty", id)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("convention %s: line %d: expected a mapping of fields", id, root.Line)
	}

	entries := make([]Entry, 0, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		entry, err := parseEntry(key.Value, value)
		if err != nil {
			return nil, fmt.Errorf("convention %s: line %d: %w", id, key.Line, err)
		}

		entries = append(entries, entry)
	}

	return NewSchema(id, entries)
}

func parseEntry(name string, node *yaml.Node) (Entry, error) {
	var raw rawEntry

	if err := node.Decode(&raw); err != nil {
		return Entry{}, fmt.Errorf("field %s: %w", name, err)
	}

	typ, err := ParseFieldType(raw.Type)
	if err != nil {
		return Entry{}, fmt.Errorf("field %s: %w", name, err)
	}

	flags, err := ParseFlags(raw.Flags)
	if err != nil {
		return Entry{}, fmt.Errorf("field %s: %w", name, err)
	}

	entry := Entry{
		Name:       common.FlatName(name),
		Type:       typ,
		Default:    raw.Default,
		Dimensions: ParseDimensions(raw.Dimensions),
		Flags:      flags,
		Comment:    raw.Comment,
	}

	if typ == Attribute {
		entry.Default = attributeDefault(raw.Default)
	}

	return entry, nil
}

// attributeDefault turns unquoted YAML scalars such as 2.1 back into text.
func attributeDefault(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
