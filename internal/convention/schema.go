package convention

import (
	"fmt"
	"sort"
	"strings"

	"sofar/internal/common"
)

// FieldType is the type class of a field.
type FieldType int

const (
	// Attribute fields hold string metadata.
	Attribute FieldType = iota
	// Double fields hold numeric scalars or arrays.
	Double
	// String fields hold strings or string arrays.
	String
)

// String returns the name used in convention files.
func (t FieldType) String() string {
	switch t {
	case Attribute:
		return "attribute"
	case Double:
		return "double"
	case String:
		return "string"
	default:
		return common.UnknownStr
	}
}

// ParseFieldType parses "attribute", "double" or "string".
func ParseFieldType(s string) (FieldType, error) {
	switch s {
	case "attribute":
		return Attribute, nil
	case "double":
		return Double, nil
	case "string":
		return String, nil
	default:
		return 0, fmt.Errorf("dtype is %s but must be attribute, double, or string", s)
	}
}

// Flags are the per-field mandatory and read-only markers.
type Flags uint8

const (
	Mandatory Flags = 1 << iota
	ReadOnly
)

// ParseFlags parses the convention notation ("m", "r", "rm" or "").
func ParseFlags(s string) (Flags, error) {
	var f Flags

	for _, r := range s {
		switch r {
		case 'm':
			f |= Mandatory
		case 'r':
			f |= ReadOnly
		default:
			return 0, fmt.Errorf("invalid flag %q in %q", r, s)
		}
	}

	return f, nil
}

// IsMandatory reports the mandatory flag.
func (f Flags) IsMandatory() bool { return f&Mandatory != 0 }

// IsReadOnly reports the read-only flag.
func (f Flags) IsReadOnly() bool { return f&ReadOnly != 0 }

// String returns the convention notation.
func (f Flags) String() string {
	var b strings.Builder
	if f.IsReadOnly() {
		b.WriteString("r")
	}

	if f.IsMandatory() {
		b.WriteString("m")
	}

	return b.String()
}

// Dimensions lists the alternative dimension strings of a field, e.g.
// ["IC", "MC"] for "IC, MC". A nil value means the field has no shape.
type Dimensions []string

// ParseDimensions splits a convention dimension string. Empty input yields nil.
func ParseDimensions(s string) Dimensions {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")

	dims := make(Dimensions, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			dims = append(dims, p)
		}
	}

	return dims
}

// First returns the first alternative or "".
func (d Dimensions) First() string {
	first, _ := common.First(d)

	return first
}

// String joins the alternatives as written in convention files.
func (d Dimensions) String() string {
	return strings.Join(d, ", ")
}

// Entry is one field definition.
type Entry struct {
	Name       string
	Type       FieldType
	Default    any
	Dimensions Dimensions
	Flags      Flags
	Comment    string
}

// ID identifies one convention file.
type ID struct {
	Name       string
	Version    string
	Deprecated bool
	Path       string
}

// String returns "Name_Version".
func (id ID) String() string {
	return id.Name + "_" + id.Version
}

// Schema is the immutable, ordered set of entries of one convention version.
type Schema struct {
	id      ID
	entries []Entry
	index   map[string]int
}

// NewSchema builds a schema from entries. Entry names must be flat and unique.
func NewSchema(id ID, entries []Entry) (*Schema, error) {
	s := &Schema{id: id, entries: make([]Entry, 0, len(entries)), index: make(map[string]int, len(entries))}

	for _, e := range entries {
		if _, dup := s.index[e.Name]; dup {
			return nil, fmt.Errorf("duplicate entry %s in %s", e.Name, id)
		}

		s.index[e.Name] = len(s.entries)
		s.entries = append(s.entries, e)
	}

	return s, nil
}

// ID returns the identity of the schema.
func (s *Schema) ID() ID { return s.id }

// Name returns the convention name.
func (s *Schema) Name() string { return s.id.Name }

// Version returns the convention version string.
func (s *Schema) Version() string { return s.id.Version }

// Deprecated reports whether the schema was loaded from the deprecated set.
func (s *Schema) Deprecated() bool { return s.id.Deprecated }

// Len returns the number of entries.
func (s *Schema) Len() int { return len(s.entries) }

// Entry returns the entry of a flat field name.
func (s *Schema) Entry(name string) (Entry, bool) {
	i, ok := s.index[name]
	if !ok {
		return Entry{}, false
	}

	return s.entries[i], true
}

// Has reports whether the schema defines name.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]

	return ok
}

// Entries returns all entries in definition order.
func (s *Schema) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Names returns all field names in definition order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}

	return names
}

// CheckDimensions returns an error listing every field whose dimension
// alternatives differ in length, or nil.
func (s *Schema) CheckDimensions() error {
	var issues []string

	for _, e := range s.entries {
		lengths := map[int][]string{}
		for _, alt := range e.Dimensions {
			lengths[len(alt)] = append(lengths[len(alt)], alt)
		}

		if len(lengths) < 2 {
			continue
		}

		keys := make([]int, 0, len(lengths))
		for k := range lengths {
			keys = append(keys, k)
		}

		sort.Ints(keys)

		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%d (%s)", k, strings.Join(lengths[k], ", "))
		}

		issues = append(issues, fmt.Sprintf("%s: %s", e.Name, strings.Join(parts, ", ")))
	}

	if len(issues) == 0 {
		return nil
	}

	return fmt.Errorf("found dimensions of unequal length for %s:\n%s", s.id, strings.Join(issues, "\n"))
}
