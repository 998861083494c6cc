package sofaio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"sofar/internal/common"
	"sofar/internal/convention"
	"sofar/internal/ndarray"
	"sofar/internal/sofa"
)

// Container section and variable keys.
const (
	keyAttributes = "attributes"
	keyDimensions = "dimensions"
	keyVariables  = "variables"
	keyType       = "type"
	keyDims       = "dimensions"
	keyShape      = "shape"
	keyValues     = "values"
)

// Write verifies o in write mode and encodes it as a YAML container.
// Every variable is stored at the shape of the dimension alternative it
// matched, with trailing singleton dimensions added as needed.
func Write(w io.Writer, o *sofa.Object) error {
	warnOutdated(o)

	if _, err := o.Verify(sofa.OnIssueFail, sofa.ModeWrite); err != nil {
		return err
	}

	root, err := encode(o)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("failed to encode %s: %w", o, err)
	}

	return enc.Close()
}

func warnOutdated(o *sofa.Object) {
	cfg := o.Config()

	latest, err := cfg.Registry.Latest(o.Convention())
	if err != nil || versionValue(latest) <= versionValue(o.ConventionVersion()) {
		return
	}

	cfg.Logger.Warnf("Writing SOFA object with outdated Convention version %s. "+
		"It is recommended to upgrade data with Upgrade() before writing to disk if possible.",
		o.ConventionVersion())
}

func versionValue(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)

	return f
}

func encode(o *sofa.Object) (*yaml.Node, error) {
	attrs := mappingNode()
	dims := mappingNode()
	vars := mappingNode()

	for _, d := range o.API() {
		put(dims, d.Letter, intNode(d.Size))
	}

	resolved := o.ResolvedDimensions()

	for _, name := range o.Fields() {
		e, ok := o.Entry(name)
		if !ok {
			return nil, fmt.Errorf("%s is not defined by %s", name, o)
		}

		if e.Type == convention.Attribute {
			if strings.HasPrefix(name, common.GlobalPrefix) {
				v, _ := o.Get(name)
				put(attrs, strings.TrimPrefix(name, common.GlobalPrefix), stringNode(fmt.Sprint(v)))
			}

			continue
		}

		node, err := encodeVariable(o, e, dimensionsOf(e, resolved[name]))
		if err != nil {
			return nil, err
		}

		put(vars, common.QualifiedName(name), node)
	}

	root := mappingNode()
	put(root, keyAttributes, attrs)
	put(root, keyDimensions, dims)
	put(root, keyVariables, vars)

	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}, nil
}

// dimensionsOf returns the alternative of e that matched during
// verification, keeping the case used by the entry.
func dimensionsOf(e convention.Entry, resolved string) string {
	for _, alt := range e.Dimensions {
		if strings.EqualFold(alt, resolved) {
			return alt
		}
	}

	return e.Dimensions.First()
}

func encodeVariable(o *sofa.Object, e convention.Entry, dims string) (*yaml.Node, error) {
	value, _ := o.Get(e.Name)

	arr, err := ndarray.FromValue(value)
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", e.Name, err)
	}

	ndim := max(len(dims), 1)

	var items []*yaml.Node

	switch {
	case e.Type == convention.String && arr.Kind() == ndarray.String:
		arr = arr.PadTrailing(ndim)
		for _, s := range arr.Strings() {
			items = append(items, stringNode(s))
		}
	case e.Type == convention.Double && arr.IsNumeric():
		arr = arr.AtLeastND(ndim)
		for _, f := range arr.Floats() {
			items = append(items, floatNode(f))
		}
	default:
		return nil, fmt.Errorf("failed to write %s: %s data can not be stored as %s", e.Name, arr.Kind(), e.Type)
	}

	shape := make([]*yaml.Node, 0, arr.NDim())
	for _, n := range arr.Shape() {
		shape = append(shape, intNode(n))
	}

	node := mappingNode()
	put(node, keyType, stringNode(e.Type.String()))
	put(node, keyDims, stringNode(dims))
	put(node, keyShape, flowSequence(shape))
	put(node, keyValues, flowSequence(items))

	if attrs := variableAttributes(o, e.Name); len(attrs.Content) > 0 {
		put(node, keyAttributes, attrs)
	}

	return node, nil
}

// variableAttributes collects the attributes Variable_Attribute of a
// variable keyed by Attribute.
func variableAttributes(o *sofa.Object, variable string) *yaml.Node {
	attrs := mappingNode()
	prefix := variable + "_"

	for _, name := range o.Fields() {
		if !strings.HasPrefix(name, prefix) || common.ParentName(name) != variable {
			continue
		}

		if e, ok := o.Entry(name); !ok || e.Type != convention.Attribute {
			continue
		}

		v, _ := o.Get(name)
		put(attrs, strings.TrimPrefix(name, prefix), stringNode(fmt.Sprint(v)))
	}

	return attrs
}
