package sofa

import (
	"fmt"
	"strconv"
	"strings"

	"sofar/internal/convention"
	"sofar/internal/diagnostic"
)

// VersionMatch reloads the convention version the object already has.
const VersionMatch = "match"

// UpdateConvention rebinds the object to a version of its convention:
// VersionMatch keeps the current version, convention.Latest selects the
// newest one, anything else names a version. GLOBAL_SOFAConventionsVersion
// follows the selected schema.
func (o *Object) UpdateConvention(version string) error {
	name, ok := o.values[FieldConventions].(string)
	if !ok {
		return fmt.Errorf("%s is missing or not a string: %w", FieldConventions, diagnostic.ErrNotFound)
	}

	current := o.attribute(FieldConventionsVersion)

	want := version
	if version == VersionMatch {
		want = current
	}

	schema, err := o.cfg.Registry.Resolve(name, want)
	if err != nil {
		return err
	}

	o.schema = schema

	if schema.Version() == current {
		return nil
	}

	_ = o.unlocked(func() error {
		o.set(FieldConventionsVersion, schema.Version())

		return nil
	})

	from, errFrom := strconv.ParseFloat(current, 64)
	to, errTo := strconv.ParseFloat(schema.Version(), 64)

	switch {
	case errFrom != nil || errTo != nil:
	case from < to:
		o.logger().Warnf("Upgraded SOFA object from version %s to %s", current, schema.Version())
	case from > to:
		o.logger().Warnf("Downgraded SOFA object from version %s to %s", current, schema.Version())
	}

	return nil
}

// AddMissing adds absent convention fields with their default values and
// returns their names. The flags select mandatory and optional fields.
func (o *Object) AddMissing(mandatory, optional bool) ([]string, error) {
	if err := o.UpdateConvention(VersionMatch); err != nil {
		return nil, err
	}

	added, lines := o.addMissing(mandatory, optional)

	if len(added) > 0 {
		o.logger().Info("Added the following missing data with their default values:\n" + strings.Join(lines, "\n"))
	} else {
		o.logger().Info("All mandatory data contained.")
	}

	return added, nil
}

func (o *Object) addMissing(mandatory, optional bool) (added, lines []string) {
	_ = o.unlocked(func() error {
		for _, e := range o.entries() {
			if o.Has(e.Name) {
				continue
			}

			isMandatory := e.Flags.IsMandatory()
			if (isMandatory && !mandatory) || (!isMandatory && !optional) {
				continue
			}

			o.set(e.Name, defaultValue(e))

			added = append(added, e.Name)
			lines = append(lines, fmt.Sprintf("- %s (%s)", e.Name, mandatoryLabel(e.Flags)))
		}

		return nil
	})

	return added, lines
}

func mandatoryLabel(f convention.Flags) string {
	if f.IsMandatory() {
		return "mandatory"
	}

	return "optional"
}
