package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sofar/internal/convention"
)

const testRules = `
unit_aliases:
  meter: metre
  degrees: degree
deprecations:
  Old: New
rules:
  GLOBAL:DataType:
    value: [FIR, TF]
    specific:
      FIR:
        Data.IR: null
        Data.SamplingRate:Units: hertz
      TF:
        N:Units: [hertz]
        _dimensions:
          N: {multiple_of: 2, count: 3}
  ListenerView:
    general:
      - ListenerView:Type
  Pos:Type:
    specific:
      spherical harmonics:
        _dimensions:
          R: {square_of_order: 3}
          e: {value: [1, 2], description: "one or two"}
upgrades:
  Old:
    - from: ["0.3", "0.4"]
      to: [New_1.0]
      move:
        - source: Data.IR
          target: Data.IR
          moveaxis: [3, 2]
          deprecated_dimensions: [E]
      remove: [GLOBAL:Legacy]
      message: moved
`

func TestParse_Rules(t *testing.T) {
	r, err := Parse([]byte(testRules))
	require.NoError(t, err)

	rules := r.Rules()
	require.Len(t, rules, 3)
	assert.Equal(t, "GLOBAL_DataType", rules[0].Field)
	assert.Equal(t, "ListenerView", rules[1].Field)
	assert.Equal(t, "Pos_Type", rules[2].Field)

	dataType, ok := r.Rule("GLOBAL_DataType")
	require.True(t, ok)
	assert.Equal(t, []string{"FIR", "TF"}, dataType.Values)

	fir, ok := dataType.Dependency("FIR")
	require.True(t, ok)
	require.Len(t, fir.Fields, 2)
	assert.Equal(t, FieldConstraint{Field: "Data_IR"}, fir.Fields[0])
	assert.Equal(t, FieldConstraint{Field: "Data_SamplingRate_Units", Values: []string{"hertz"}}, fir.Fields[1])

	tf, ok := dataType.Dependency("TF")
	require.True(t, ok)
	require.Len(t, tf.Dimensions, 1)
	assert.Equal(t, "N", tf.Dimensions[0].Letter)
	assert.Equal(t, []int{2, 4, 6}, tf.Dimensions[0].SortedSizes())
	assert.Equal(t, "an integer multiple of 2 greater 0", tf.Dimensions[0].Description)

	view, _ := r.Rule("ListenerView")
	assert.Nil(t, view.Values)
	assert.Equal(t, []string{"ListenerView_Type"}, view.General)

	pos, _ := r.Rule("Pos_Type")
	sh, ok := pos.Dependency("spherical harmonics")
	require.True(t, ok)
	require.Len(t, sh.Dimensions, 2)
	assert.Equal(t, []int{1, 4, 9}, sh.Dimensions[0].SortedSizes())
	assert.Equal(t, "E", sh.Dimensions[1].Letter)
	assert.Equal(t, "one or two", sh.Dimensions[1].Description)
	assert.True(t, sh.Dimensions[1].Allows(2))
	assert.False(t, sh.Dimensions[1].Allows(3))

	_, ok = r.Rule("Missing")
	assert.False(t, ok)
}

func TestParse_Upgrades(t *testing.T) {
	r, err := Parse([]byte(testRules))
	require.NoError(t, err)

	assert.True(t, r.IsDeprecated("Old", "1.0"), "whole convention is deprecated")
	assert.False(t, r.IsDeprecated("New", "1.0"))

	u, ok := r.FindUpgrade("Old", "0.40")
	require.True(t, ok)
	assert.Equal(t, []Move{{
		Source:               "Data_IR",
		Target:               "Data_IR",
		Axis:                 []int{3, 2},
		DeprecatedDimensions: []string{"E"},
	}}, u.Move)
	assert.Equal(t, []string{"GLOBAL_Legacy"}, u.Remove)
	assert.Equal(t, "moved", u.Message)

	name, version := u.Target(0)
	assert.Equal(t, "New", name)
	assert.Equal(t, "1.0", version)

	_, ok = r.FindUpgrade("Old", "1.0")
	assert.False(t, ok)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"rules not a mapping", "rules: [a, b]"},
		{"bad dimension", "rules:\n  A:\n    specific:\n      x:\n        _dimensions:\n          N: {description: nothing}"},
		{"bad moveaxis", "upgrades:\n  A:\n    - from: [\"1.0\"]\n      to: [B_1.0]\n      move:\n        - {source: X, target: X, moveaxis: [1]}"},
		{"missing target", "upgrades:\n  A:\n    - from: [\"1.0\"]"},
		{"duplicate rule", "rules:\n  A:Type: {}\n  A_Type: {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestMatchValue(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	tests := []struct {
		field string
		value string
		refs  []string
		want  bool
	}{
		{"Any", "whatever", nil, true},
		{"GLOBAL_DataType", "FIR", []string{"FIR", "TF"}, true},
		{"GLOBAL_DataType", "fir", []string{"FIR", "TF"}, false},
		{"GLOBAL_SOFAConventions", "generalfir", []string{"GeneralFIR"}, false},
		{"GLOBAL_RoomType", "Free Field", []string{"free field"}, true},
		{"ListenerPosition_Type", "Cartesian", []string{"cartesian", "spherical"}, true},
		{"ListenerPosition_Type", "polar", []string{"cartesian", "spherical"}, false},
		{"ListenerPosition_Units", "Meter", []string{"metre"}, true},
		{"ListenerPosition_Units", "meters", []string{"metre"}, true},
		{"ListenerPosition_Units", "inch", []string{"metre"}, false},
		{"SourcePosition_Units", "degrees, degrees, meter", []string{"degree, degree, metre"}, true},
		{"SourcePosition_Units", "degree,degree,metre", []string{"degree, degree, metre"}, true},
		{"SourcePosition_Units", "degree degree metre", []string{"degree, degree, metre"}, true},
		{"SourcePosition_Units", "degree, metre", []string{"degree, degree, metre"}, false},
		{"RoomVolume_Units", "cubic meters", []string{"cubic metre"}, true},
		// aliases only apply to unit fields
		{"ListenerPosition_Type", "meter", []string{"metre"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, r.MatchValue(tt.field, tt.value, tt.refs))
		})
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "spherical harmonics", Canonical("Spherical Harmonics"))
	assert.Equal(t, "cartesian", Canonical("CARTESIAN"))
	assert.Equal(t, "FIR", Canonical("FIR"))
}

func TestDefault_Tables(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, r, again)

	repl, ok := r.Deprecation("SimpleFreeFieldTF")
	require.True(t, ok)
	assert.Equal(t, "SimpleFreeFieldHRTF", repl)
	assert.Equal(t, "metre", r.UnitAliases()["meters"])

	sos, ok := r.Rule("GLOBAL_DataType")
	require.True(t, ok)
	dep, ok := sos.Dependency("SOS")
	require.True(t, ok)
	require.Len(t, dep.Dimensions, 1)
	assert.Len(t, dep.Dimensions[0].Sizes, 1000)
	assert.True(t, dep.Dimensions[0].Allows(6000))

	receiver, ok := r.Rule("ReceiverPosition_Type")
	require.True(t, ok)
	sh, ok := receiver.Dependency("spherical harmonics")
	require.True(t, ok)
	assert.True(t, sh.Dimensions[0].Allows(4))
	assert.False(t, sh.Dimensions[0].Allows(5))
}

func TestDefault_CoversConventions(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	names, err := convention.Default().Names()
	require.NoError(t, err)

	rule, ok := r.Rule("GLOBAL_SOFAConventions")
	require.True(t, ok)

	for _, name := range names {
		assert.Contains(t, rule.Values, name)

		_, ok := rule.Dependency(name)
		assert.True(t, ok, "no data type rule for %s", name)
	}

	ids, err := convention.Default().List()
	require.NoError(t, err)

	for _, id := range ids {
		if !id.Deprecated {
			continue
		}

		if _, ok := r.Deprecation(id.Name); ok {
			continue
		}

		u, ok := r.FindUpgrade(id.Name, id.Version)
		require.True(t, ok, "no upgrade for deprecated %s", id)

		for i := range u.To {
			name, version := u.Target(i)
			_, err := convention.Default().Resolve(name, version)
			assert.NoError(t, err)
		}
	}
}
