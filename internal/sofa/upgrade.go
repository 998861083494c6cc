package sofa

import (
	"fmt"
	"slices"
	"strings"

	"sofar/internal/rules"
)

// Upgrade migrates an object of a deprecated convention or version.
//
// Objects that are up to date are left alone and Upgrade returns nil. If
// target is not one of the upgrade targets, the possible targets
// ("<Name>_<Version>") are logged and returned. Otherwise the object is
// converted to the target convention and verified for writing.
func (o *Object) Upgrade(target string) ([]string, error) {
	if err := o.UpdateConvention(VersionMatch); err != nil {
		return nil, err
	}

	name, version := o.Convention(), o.ConventionVersion()
	log := o.logger()

	if !o.cfg.Rules.IsDeprecated(name, version) {
		log.Infof("Convention %s v%s is up to date", name, version)

		return nil, nil
	}

	u, ok := o.cfg.Rules.FindUpgrade(name, version)
	if !ok {
		log.Warnf("Convention %s v%s is outdated but is missing upgrade rules", name, version)

		return nil, nil
	}

	idx := slices.Index(u.To, target)
	if idx < 0 {
		if target != "" {
			log.Warnf("%s is invalid.", target)
		}

		lines := make([]string, len(u.To))
		for i := range u.To {
			n, v := u.Target(i)
			lines[i] = fmt.Sprintf("- %s v%s", n, v)
		}

		log.Infof("%s v%s can be upgraded to:\n%s", name, version, strings.Join(lines, "\n"))

		return slices.Clone(u.To), nil
	}

	targetName, targetVersion := u.Target(idx)

	schema, err := o.cfg.Registry.Resolve(targetName, targetVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upgrade target %s: %w", target, err)
	}

	sofaFrom := o.attribute(FieldVersion)

	var sofaTo any
	if e, ok := schema.Entry(FieldVersion); ok {
		sofaTo = e.Default
	}

	log.Infof("Upgrading %s v%s to %s v%s (SOFA version %s to %v)",
		name, version, targetName, targetVersion, sofaFrom, sofaTo)

	// the object is replaced only if every step succeeds
	next := o.Copy()

	err = next.unlocked(func() error {
		next.schema = schema

		for _, key := range []string{FieldConventions, FieldConventionsVersion, FieldVersion, FieldDataType} {
			if e, ok := schema.Entry(key); ok {
				next.set(key, e.Default)
			}
		}

		if err := next.applyMoves(u); err != nil {
			return err
		}

		next.applyRemoves(u)
		next.addMissing(true, false)

		return nil
	})
	if err != nil {
		return nil, err
	}

	*o = *next

	if u.Message != "" {
		log.Info(u.Message)
	}

	_, err = o.Verify(OnIssueFail, ModeWrite)

	return nil, err
}

func (o *Object) applyMoves(u rules.Upgrade) error {
	if len(u.Move) == 0 {
		o.logger().Info("- No data to move")

		return nil
	}

	for _, m := range u.Move {
		info := fmt.Sprintf("- Moving %s to %s.", m.Source, m.Target)

		value, ok := o.values[m.Source]
		if !ok {
			continue
		}

		o.delete(m.Source)

		if len(m.Axis) == 2 {
			arr, ok := asArray(value)
			if !ok {
				return fmt.Errorf("can not move axis of %s: %w", m.Source, ErrInvalidType)
			}

			moved, err := arr.PadTrailing(max(m.Axis[0], m.Axis[1])+1).MoveAxis(m.Axis[0], m.Axis[1])
			if err != nil {
				return fmt.Errorf("failed to move axis of %s: %w", m.Source, err)
			}

			value = moved
			info += fmt.Sprintf(" Moving axis %d to %d.", m.Axis[0], m.Axis[1])
		}

		if len(m.DeprecatedDimensions) > 0 {
			info += fmt.Sprintf(" WARNING: Dimensions %s are now deprecated.",
				strings.Join(m.DeprecatedDimensions, ", "))
		}

		o.set(m.Target, value)
		o.logger().Info(info)
	}

	return nil
}

func (o *Object) applyRemoves(u rules.Upgrade) {
	if len(u.Remove) == 0 {
		o.logger().Info("- No data to remove")

		return
	}

	for _, name := range u.Remove {
		if !o.Has(name) {
			continue
		}

		o.delete(name)
		o.logger().Infof("- Deleting %s.", name)
	}
}
