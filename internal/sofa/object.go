package sofa

import (
	"fmt"
	"maps"
	"runtime"
	"slices"

	"github.com/sirupsen/logrus"

	"sofar/internal/convention"
	"sofar/internal/ndarray"
)

// Names of fields the object maintains itself.
const (
	FieldConventions        = "GLOBAL_SOFAConventions"
	FieldConventionsVersion = "GLOBAL_SOFAConventionsVersion"
	FieldVersion            = "GLOBAL_Version"
	FieldDataType           = "GLOBAL_DataType"
	FieldDateCreated        = "GLOBAL_DateCreated"
	FieldDateModified       = "GLOBAL_DateModified"
	FieldAPIName            = "GLOBAL_APIName"
	FieldAPIVersion         = "GLOBAL_APIVersion"
	FieldApplicationName    = "GLOBAL_ApplicationName"
	FieldApplicationVersion = "GLOBAL_ApplicationVersion"
)

// API identification written into every new object.
const (
	APIName    = "sofar SOFA API for Go"
	APIVersion = "1.0.0"
)

// DateFormat is the layout of GLOBAL_DateCreated and GLOBAL_DateModified.
const DateFormat = "2006-01-02 15:04:05"

// Object is a SOFA object: an ordered set of fields bound to a convention.
type Object struct {
	cfg    Config
	schema *convention.Schema
	custom *entryTable

	names  []string
	values map[string]any

	protected bool

	// derived by Verify, reset by every mutation
	dimensions map[string]string
	api        *sizeTable
}

// DimensionSize is the inferred size of one dimension letter.
type DimensionSize struct {
	Letter string
	Size   int
}

// New creates an object of the named convention filled with default
// values. Unless cfg.MandatoryOnly or cfg.SkipVerify is set the new object
// is verified in read mode. The returned object is protected.
func New(name string, cfg Config) (*Object, error) {
	cfg, err := cfg.complete()
	if err != nil {
		return nil, err
	}

	schema, err := cfg.Registry.Resolve(name, cfg.Version)
	if err != nil {
		return nil, err
	}

	o := &Object{
		cfg:    cfg,
		schema: schema,
		custom: newEntryTable(),
		values: map[string]any{},
	}

	_ = o.unlocked(func() error {
		for _, e := range schema.Entries() {
			if cfg.MandatoryOnly && !e.Flags.IsMandatory() {
				continue
			}

			o.set(e.Name, defaultValue(e))
		}

		now := cfg.Now().Format(DateFormat)
		o.set(FieldDateCreated, now)
		o.set(FieldDateModified, now)
		o.set(FieldAPIName, APIName)
		o.set(FieldAPIVersion, APIVersion)
		o.set(FieldApplicationName, "Go")
		o.set(FieldApplicationVersion, fmt.Sprintf("%s [%s/%s]", runtime.Version(), runtime.GOOS, runtime.GOARCH))

		return nil
	})

	if !cfg.SkipVerify && !cfg.MandatoryOnly {
		if _, err := o.Verify(OnIssueFail, ModeRead); err != nil {
			return nil, err
		}
	}

	o.protected = true

	return o, nil
}

// defaultValue returns the default of an entry. List defaults are promoted
// to the number of dimensions of the first dimension alternative.
func defaultValue(e convention.Entry) any {
	list, ok := e.Default.([]any)
	if !ok {
		return e.Default
	}

	arr, err := ndarray.FromValue(list)
	if err != nil {
		return e.Default
	}

	if ndim := len(e.Dimensions.First()); ndim > 0 {
		arr = arr.AtLeastND(ndim)
	}

	return arr
}

// String returns "sofar.SOFA object: <convention> <version>".
func (o *Object) String() string {
	return fmt.Sprintf("sofar.SOFA object: %s %s", o.Convention(), o.ConventionVersion())
}

// Convention returns the value of GLOBAL_SOFAConventions.
func (o *Object) Convention() string {
	return o.attribute(FieldConventions)
}

// ConventionVersion returns the value of GLOBAL_SOFAConventionsVersion.
func (o *Object) ConventionVersion() string {
	return o.attribute(FieldConventionsVersion)
}

// Schema returns the convention schema the object is bound to.
func (o *Object) Schema() *convention.Schema {
	return o.schema
}

// Config returns the configuration of the object.
func (o *Object) Config() Config {
	return o.cfg
}

func (o *Object) attribute(name string) string {
	v := o.values[name]
	if s, ok := v.(string); ok {
		return s
	}

	if v == nil {
		return ""
	}

	return fmt.Sprint(v)
}

func (o *Object) logger() logrus.FieldLogger {
	return o.cfg.Logger.WithField("convention", o.Convention()+"_"+o.ConventionVersion())
}

// Get returns the value of a field.
func (o *Object) Get(name string) (any, bool) {
	v, ok := o.values[name]

	return v, ok
}

// Has reports whether the object holds the field.
func (o *Object) Has(name string) bool {
	_, ok := o.values[name]

	return ok
}

// Fields returns the field names in insertion order.
func (o *Object) Fields() []string {
	return slices.Clone(o.names)
}

// Entry returns the definition of a field, looking at custom entries first.
func (o *Object) Entry(name string) (convention.Entry, bool) {
	if e, ok := o.custom.get(name); ok {
		return e, true
	}

	return o.schema.Entry(name)
}

// CustomEntries returns the custom entries in the order they were added.
func (o *Object) CustomEntries() []convention.Entry {
	return o.custom.list()
}

// entries returns the convention entries followed by custom entries not
// defined by the convention.
func (o *Object) entries() []convention.Entry {
	out := o.schema.Entries()
	for i, e := range out {
		if c, ok := o.custom.get(e.Name); ok {
			out[i] = c
		}
	}

	for _, c := range o.custom.list() {
		if !o.schema.Has(c.Name) {
			out = append(out, c)
		}
	}

	return out
}

// Set assigns a value to a field. Protected objects accept only existing
// fields that are not read only.
//
// Values other than strings and arrays are converted to arrays with at
// least two dimensions; values holding exactly one element are stored as
// Go scalars.
func (o *Object) Set(name string, value any) error {
	if o.protected {
		if !o.Has(name) {
			return errorf(ErrInvalidField, "%s is an invalid attribute", name)
		}

		if e, ok := o.Entry(name); ok && e.Flags.IsReadOnly() {
			return errorf(ErrReadOnly, "%s is a read only attribute", name)
		}
	}

	o.set(name, value)

	return nil
}

func (o *Object) set(name string, value any) {
	if _, ok := o.values[name]; !ok {
		o.names = append(o.names, name)
	}

	o.values[name] = normalize(value)
	o.resetDerived()
}

// Delete removes a field. Protected objects refuse to delete mandatory
// fields.
func (o *Object) Delete(name string) error {
	if !o.Has(name) {
		return errorf(ErrUnknownField, "%s is not an attribute", name)
	}

	if o.protected {
		if e, ok := o.Entry(name); ok && e.Flags.IsMandatory() {
			return errorf(ErrMandatory, "%s is a mandatory attribute that can not be deleted", name)
		}
	}

	o.delete(name)

	return nil
}

func (o *Object) delete(name string) {
	delete(o.values, name)
	o.names = slices.DeleteFunc(o.names, func(n string) bool { return n == name })
	o.custom.remove(name)
	o.resetDerived()
}

// Protect re-enables protection.
func (o *Object) Protect() { o.protected = true }

// Unprotect disables protection so that invalid data can be repaired.
func (o *Object) Unprotect() { o.protected = false }

// Protected reports whether the object is protected.
func (o *Object) Protected() bool { return o.protected }

// unlocked runs fn without protection. The object is protected afterwards,
// also when fn fails or panics.
func (o *Object) unlocked(fn func() error) error {
	o.protected = false
	defer func() { o.protected = true }()

	return fn()
}

// Copy returns a deep copy sharing only the immutable schema.
func (o *Object) Copy() *Object {
	c := &Object{
		cfg:        o.cfg,
		schema:     o.schema,
		custom:     o.custom.clone(),
		names:      slices.Clone(o.names),
		values:     make(map[string]any, len(o.values)),
		protected:  o.protected,
		dimensions: maps.Clone(o.dimensions),
		api:        o.api.clone(),
	}

	for k, v := range o.values {
		if arr, ok := v.(*ndarray.Array); ok {
			v = arr.Clone()
		}

		c.values[k] = v
	}

	return c
}

func (o *Object) resetDerived() {
	o.dimensions = nil
	o.api = nil
}

// API returns the dimension sizes inferred by the last verification, in
// the order they were found. It is empty if the object changed since.
func (o *Object) API() []DimensionSize {
	return o.api.list()
}

// Dimension returns the inferred size of a letter without verifying.
func (o *Object) Dimension(letter string) (int, bool) {
	return o.api.get(letter)
}

// ResolvedDimensions maps every shaped field to the dimension alternative
// its value matched during the last verification.
func (o *Object) ResolvedDimensions() map[string]string {
	return maps.Clone(o.dimensions)
}

// entryTable is an insertion-ordered set of custom entries.
type entryTable struct {
	order   []string
	entries map[string]convention.Entry
}

func newEntryTable() *entryTable {
	return &entryTable{entries: map[string]convention.Entry{}}
}

func (t *entryTable) get(name string) (convention.Entry, bool) {
	e, ok := t.entries[name]

	return e, ok
}

func (t *entryTable) put(e convention.Entry) {
	if _, ok := t.entries[e.Name]; !ok {
		t.order = append(t.order, e.Name)
	}

	t.entries[e.Name] = e
}

func (t *entryTable) remove(name string) {
	if _, ok := t.entries[name]; !ok {
		return
	}

	delete(t.entries, name)
	t.order = slices.DeleteFunc(t.order, func(n string) bool { return n == name })
}

func (t *entryTable) list() []convention.Entry {
	out := make([]convention.Entry, len(t.order))
	for i, name := range t.order {
		out[i] = t.entries[name]
	}

	return out
}

func (t *entryTable) clone() *entryTable {
	c := &entryTable{order: slices.Clone(t.order), entries: make(map[string]convention.Entry, len(t.entries))}
	for k, e := range t.entries {
		e.Dimensions = slices.Clone(e.Dimensions)
		c.entries[k] = e
	}

	return c
}

// sizeTable maps dimension letters to sizes keeping insertion order.
type sizeTable struct {
	order []string
	sizes map[string]int
}

func newSizeTable() *sizeTable {
	return &sizeTable{sizes: map[string]int{}}
}

func (t *sizeTable) get(letter string) (int, bool) {
	if t == nil {
		return 0, false
	}

	s, ok := t.sizes[letter]

	return s, ok
}

func (t *sizeTable) put(letter string, size int) {
	if _, ok := t.sizes[letter]; !ok {
		t.order = append(t.order, letter)
	}

	t.sizes[letter] = size
}

func (t *sizeTable) list() []DimensionSize {
	if t == nil {
		return nil
	}

	out := make([]DimensionSize, len(t.order))
	for i, l := range t.order {
		out[i] = DimensionSize{Letter: l, Size: t.sizes[l]}
	}

	return out
}

func (t *sizeTable) clone() *sizeTable {
	if t == nil {
		return nil
	}

	return &sizeTable{order: slices.Clone(t.order), sizes: maps.Clone(t.sizes)}
}
