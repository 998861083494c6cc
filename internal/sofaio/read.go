package sofaio

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"sofar/internal/common"
	"sofar/internal/convention"
	"sofar/internal/ndarray"
	"sofar/internal/rules"
	"sofar/internal/sofa"
)

// ErrFormat is returned for documents that are not SOFA containers.
var ErrFormat = errors.New("invalid SOFA container")

// Verification selects whether Read verifies the object it decoded.
type Verification int

const (
	// VerifyAuto verifies objects of convention version 1.0 and later.
	VerifyAuto Verification = iota
	VerifyAlways
	VerifyNever
)

var verificationNames = []string{"auto", "always", "never"}

func (v Verification) String() string {
	if v < 0 || int(v) >= len(verificationNames) {
		return common.UnknownStr
	}

	return verificationNames[v]
}

// ParseVerification parses "auto", "always" or "never".
func ParseVerification(s string) (Verification, error) {
	for i, n := range verificationNames {
		if n == s {
			return Verification(i), nil
		}
	}

	return 0, fmt.Errorf("verification is %q but must be %s", s, strings.Join(verificationNames, ", "))
}

// ReadOptions configures Read. Zero values select the defaults of
// sofa.DefaultConfig.
type ReadOptions struct {
	Verify   Verification
	Registry *convention.Registry
	Rules    *rules.Registry
	Logger   logrus.FieldLogger
	Out      io.Writer
}

type variable struct {
	Type       string    `yaml:"type"`
	Dimensions string    `yaml:"dimensions"`
	Shape      []int     `yaml:"shape"`
	Values     yaml.Node `yaml:"values"`
	Attributes yaml.Node `yaml:"attributes"`
}

type container struct {
	attributes [][2]*yaml.Node
	dimensions [][2]*yaml.Node
	variables  [][2]*yaml.Node
}

func (c *container) attribute(key string) string {
	for _, p := range c.attributes {
		if p[0].Value == key {
			return p[1].Value
		}
	}

	return ""
}

func decode(r io.Reader) (*container, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrFormat)
		}

		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document is not a mapping", ErrFormat)
	}

	c := &container{}

	for _, p := range pairs(doc.Content[0]) {
		switch p[0].Value {
		case keyAttributes:
			c.attributes = pairs(p[1])
		case keyDimensions:
			c.dimensions = pairs(p[1])
		case keyVariables:
			c.variables = pairs(p[1])
		default:
			return nil, fmt.Errorf("%w: unknown section %q at line %d", ErrFormat, p[0].Value, p[0].Line)
		}
	}

	for _, p := range c.attributes {
		if p[1].Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: attribute %s at line %d is not a scalar", ErrFormat, p[0].Value, p[1].Line)
		}
	}

	return c, nil
}

// Read decodes a YAML container into a protected object.
//
// Fields of the convention that the container does not hold are removed,
// fields it holds that the convention does not define become custom
// entries. The object is verified in read mode according to opts.Verify.
func Read(r io.Reader, opts ReadOptions) (*sofa.Object, error) {
	c, err := decode(r)
	if err != nil {
		return nil, err
	}

	name := c.attribute("SOFAConventions")
	if name == "" {
		return nil, fmt.Errorf("%w: attribute SOFAConventions is missing", ErrFormat)
	}

	version := c.attribute("SOFAConventionsVersion")
	if version == "" {
		return nil, fmt.Errorf("%w: attribute SOFAConventionsVersion is missing", ErrFormat)
	}

	o, err := sofa.New(name, sofa.Config{
		Version:       version,
		MandatoryOnly: true,
		Registry:      opts.Registry,
		Rules:         opts.Rules,
		Logger:        opts.Logger,
		Out:           opts.Out,
	})
	if err != nil {
		return nil, err
	}

	f := &filler{o: o, present: map[string]bool{}}

	for _, p := range c.attributes {
		if err := f.add(common.GlobalPrefix+p[0].Value, p[1].Value, convention.Attribute, ""); err != nil {
			return nil, err
		}
	}

	for _, p := range c.variables {
		if err := f.variable(p[0], p[1]); err != nil {
			return nil, err
		}
	}

	o.Unprotect()

	for _, field := range o.Fields() {
		if !f.present[field] {
			if err := o.Delete(field); err != nil {
				return nil, err
			}
		}
	}

	o.Protect()

	log := o.Config().Logger
	if len(f.custom) > 0 {
		log.Infof("SOFA file contained custom entries\n----------------------------------\n%s",
			strings.Join(f.custom, ", "))
	}

	if !shouldVerify(opts.Verify, version) {
		return o, nil
	}

	if _, err := o.Verify(sofa.OnIssueFail, sofa.ModeRead); err != nil {
		return nil, fmt.Errorf("the SOFA object could not be verified, maybe due to erroneous data. "+
			"Read it without verification and call Verify() to get more information: %w", err)
	}

	checkStoredDimensions(o, c.dimensions, log)

	return o, nil
}

func shouldVerify(v Verification, version string) bool {
	switch v {
	case VerifyAlways:
		return true
	case VerifyNever:
		return false
	default:
		return versionValue(version) >= 1
	}
}

// checkStoredDimensions warns about container dimensions that differ from
// the sizes inferred from the data.
func checkStoredDimensions(o *sofa.Object, stored [][2]*yaml.Node, log logrus.FieldLogger) {
	for _, p := range stored {
		size, err := strconv.Atoi(p[1].Value)
		if err != nil {
			log.Warnf("dimension %s has invalid size %q", p[0].Value, p[1].Value)

			continue
		}

		if actual, ok := o.Dimension(p[0].Value); ok && actual != size {
			log.Warnf("dimension %s is %d in the file but %d in the data", p[0].Value, size, actual)
		}
	}
}

type filler struct {
	o       *sofa.Object
	present map[string]bool
	custom  []string
}

func (f *filler) add(name string, value any, dtype convention.FieldType, dims string) error {
	f.present[name] = true

	if !f.o.Schema().Has(name) {
		f.custom = append(f.custom, name)
	}

	return f.o.AddCustomEntry(name, value, dtype, dims)
}

func (f *filler) variable(key, node *yaml.Node) error {
	var v variable
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("%w: variable %s: %w", ErrFormat, key.Value, err)
	}

	name := common.FlatName(key.Value)

	dtype, err := convention.ParseFieldType(v.Type)
	if err != nil || dtype == convention.Attribute {
		return fmt.Errorf("%w: variable %s has type %q but must be double or string", ErrFormat, key.Value, v.Type)
	}

	value, err := v.value(dtype)
	if err != nil {
		return fmt.Errorf("%w: variable %s: %w", ErrFormat, key.Value, err)
	}

	if err := f.add(name, value, dtype, v.Dimensions); err != nil {
		return err
	}

	for _, p := range pairs(&v.Attributes) {
		if p[1].Kind != yaml.ScalarNode {
			return fmt.Errorf("%w: attribute %s of variable %s at line %d is not a scalar",
				ErrFormat, p[0].Value, key.Value, p[1].Line)
		}

		if err := f.add(name+"_"+p[0].Value, p[1].Value, convention.Attribute, ""); err != nil {
			return err
		}
	}

	return nil
}

// value builds the stored value. Data holding one element becomes a
// scalar.
func (v *variable) value(dtype convention.FieldType) (any, error) {
	var arr *ndarray.Array

	if dtype == convention.String {
		var items []string
		if err := v.Values.Decode(&items); err != nil {
			return nil, err
		}

		arr = ndarray.FromStrings(items...)
	} else {
		var items []float64
		if err := v.Values.Decode(&items); err != nil {
			return nil, err
		}

		arr = ndarray.FromFloats(items...)
	}

	if !common.IsEmpty(v.Shape) {
		var err error
		if arr, err = arr.Reshape(v.Shape...); err != nil {
			return nil, err
		}
	}

	if item, ok := arr.Item(); ok {
		return item, nil
	}

	return arr, nil
}
