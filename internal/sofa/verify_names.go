package sofa

import (
	"slices"
	"strings"

	"sofar/internal/common"
	"sofar/internal/convention"
	"sofar/internal/diagnostic"
)

// Reserved name prefixes.
const (
	prefixPrivate = "PRIVATE"
	prefixAPI     = "API"
	prefixGlobal  = "GLOBAL"
)

// checkNames applies the naming rules of the SOFA standard.
func (v *verifier) checkNames() {
	for _, name := range v.o.names {
		e, ok := v.o.Entry(name)
		if !ok {
			continue
		}

		if e.Type == convention.Attribute && strings.Contains(name, "_") &&
			!strings.HasPrefix(name, common.GlobalPrefix) {
			if !v.o.Has(common.ParentName(name)) {
				v.naming(sectionOrphans, name)
			}
		}
	}

	for _, name := range v.o.names {
		if e, ok := v.o.Entry(name); ok && e.Type == convention.Attribute && !wellFormedAttribute(name) {
			v.naming(sectionUnderscores, name)
		}
	}

	for _, name := range v.o.names {
		e, ok := v.o.Entry(name)
		if ok && e.Type != convention.Attribute && strings.Contains(strings.Replace(name, common.DataPrefix, "", 1), "_") {
			v.naming(sectionVariableNames, name)
		}
	}

	for _, name := range v.o.names {
		e, ok := v.o.Entry(name)
		if reservedName(name, e.Type, ok) {
			v.naming(sectionReserved, name)
		}
	}

	normative := v.o.schema.Names()
	for i, n := range normative {
		normative[i] = strings.TrimPrefix(n, common.GlobalPrefix)
	}

	for _, e := range v.o.custom.list() {
		if slices.Contains(normative, strings.TrimPrefix(e.Name, common.GlobalPrefix)) {
			v.naming(sectionShadowing, e.Name)
		}
	}
}

func (v *verifier) naming(section, name string) {
	v.diag.AddError(diagnostic.KindNamingViolation, section, name, name)
}

// wellFormedAttribute reports whether an attribute name has the form
// Variable_Attribute or Data_Variable_Attribute.
func wellFormedAttribute(name string) bool {
	switch strings.Count(name, "_") {
	case 1:
		return true
	case 2:
		return strings.HasPrefix(name, common.DataPrefix)
	default:
		return false
	}
}

// reservedName reports names starting with PRIVATE or API, names starting
// with GLOBAL but not GLOBAL_, and GLOBAL_ names of variables. typed is
// false if the type of the field is unknown.
func reservedName(name string, typ convention.FieldType, typed bool) bool {
	if strings.HasPrefix(name, prefixPrivate) || strings.HasPrefix(name, prefixAPI) {
		return true
	}

	if !strings.HasPrefix(name, prefixGlobal) {
		return false
	}

	return !strings.HasPrefix(name, common.GlobalPrefix) || (typed && typ != convention.Attribute)
}
