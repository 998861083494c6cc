package sofa

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"sofar/internal/common"
	"sofar/internal/diagnostic"
	"sofar/internal/rules"
)

const sectionPreliminary = "Detected preliminary conventions version %s:"

const preliminaryAdvice = "Upgrade data to version >= 1.0 if possible. Preliminary conventions " +
	"might change in the future, which could invalidate data that was written before the changes."

// checkRules applies the verification rules in table order.
func (v *verifier) checkRules() {
	reg := v.o.cfg.Rules

	for _, rule := range reg.Rules() {
		raw, ok := v.o.values[rule.Field]
		if !ok {
			continue
		}

		value := formatValue(raw)

		if !reg.MatchValue(rule.Field, value, rule.Values) {
			v.content(rule.Field, fmt.Sprintf("%s is %s but must be %s",
				rule.Field, value, strings.Join(rule.Values, ", ")))
		}

		for _, dep := range rule.General {
			if !v.o.Has(dep) {
				v.content(dep, fmt.Sprintf("%s must be given if %s is in SOFA object", dep, rule.Field))
			}
		}

		trigger := rules.Canonical(value)

		dep, ok := rule.Dependency(trigger)
		if !ok {
			continue
		}

		for _, fc := range dep.Fields {
			got, ok := v.o.values[fc.Field]
			if !ok {
				v.content(fc.Field, fmt.Sprintf("%s must be given if %s is %s", fc.Field, rule.Field, trigger))

				continue
			}

			if s := formatValue(got); !reg.MatchValue(fc.Field, s, fc.Values) {
				v.content(fc.Field, fmt.Sprintf("%s is %s but must be %s if %s is %s",
					fc.Field, s, strings.Join(fc.Values, ", "), rule.Field, trigger))
			}
		}

		for _, dc := range dep.Dimensions {
			size, ok := v.o.api.get(dc.Letter)
			if !ok || dc.Allows(size) {
				continue
			}

			v.content(rule.Field, fmt.Sprintf("Dimension %s is of size %d but must be %s if %s is %s",
				dc.Letter, size, dc.Description, rule.Field, trigger))
		}
	}
}

// checkUnits enforces lower case units when writing.
func (v *verifier) checkUnits() {
	if v.mode != ModeWrite {
		return
	}

	for _, name := range v.o.names {
		if !strings.HasSuffix(name, common.UnitsSuffix) {
			continue
		}

		unit, ok := v.o.values[name].(string)
		if !ok || !strings.ContainsFunc(unit, unicode.IsUpper) {
			continue
		}

		v.content(name, fmt.Sprintf(
			"%s is %s but must contain only lower case letters when writing SOFA files to disk.", name, unit))
	}
}

// checkDeprecation reports deprecated and preliminary conventions.
// Deprecated conventions are errors when writing.
func (v *verifier) checkDeprecation() {
	name := v.o.Convention()

	if repl, ok := v.o.cfg.Rules.Deprecation(name); ok {
		msg := fmt.Sprintf("%s is %s, which is deprecated. Use Upgrade() to upgrade to %s",
			FieldConventions, name, repl)

		if v.mode == ModeWrite {
			v.diag.AddError(diagnostic.KindDeprecated, sectionDeprecated, FieldConventions, msg)
		} else {
			v.diag.AddWarning(diagnostic.KindDeprecated, sectionDeprecated, FieldConventions, msg)
		}
	}

	version := v.o.ConventionVersion()
	if f, err := strconv.ParseFloat(version, 64); err == nil && f < 1 {
		v.diag.AddWarning(diagnostic.KindPreliminary, fmt.Sprintf(sectionPreliminary, version),
			FieldConventionsVersion, preliminaryAdvice)
	}
}

func (v *verifier) content(field, msg string) {
	v.diag.AddError(diagnostic.KindContentViolation, sectionContent, field, msg)
}
