package convention

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
GLOBAL:Conventions: {type: attribute, default: SOFA, flags: rm}
GLOBAL:Version: {type: attribute, default: 2.1, flags: rm}
ListenerPosition: {type: double, default: [0, 0, 0], flags: m, dimensions: "IC, MC"}
ListenerPosition:Type: {type: attribute, default: cartesian, flags: m}
Data.IR: {type: double, default: 0, flags: m, dimensions: mRn, comment: "Impulse responses"}
Data.SamplingRate:Units: {type: attribute, default: hertz}
SourceModel: {type: string, default: [""], dimensions: MS}
`

	s, err := Parse(ID{Name: "Test", Version: "1.0"}, []byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GLOBAL_Conventions",
		"GLOBAL_Version",
		"ListenerPosition",
		"ListenerPosition_Type",
		"Data_IR",
		"Data_SamplingRate_Units",
		"SourceModel",
	}, s.Names())

	version, ok := s.Entry("GLOBAL_Version")
	require.True(t, ok)
	assert.Equal(t, "2.1", version.Default)
	assert.True(t, version.Flags.IsReadOnly())
	assert.True(t, version.Flags.IsMandatory())
	assert.Nil(t, version.Dimensions)

	pos, ok := s.Entry("ListenerPosition")
	require.True(t, ok)
	assert.Equal(t, Double, pos.Type)
	assert.Equal(t, Dimensions{"IC", "MC"}, pos.Dimensions)
	assert.Equal(t, []any{0, 0, 0}, pos.Default)
	assert.False(t, pos.Flags.IsReadOnly())

	ir, _ := s.Entry("Data_IR")
	assert.Equal(t, "Impulse responses", ir.Comment)
	assert.Equal(t, "mRn", ir.Dimensions.First())

	units, _ := s.Entry("Data_SamplingRate_Units")
	assert.Equal(t, Flags(0), units.Flags)

	model, _ := s.Entry("SourceModel")
	assert.Equal(t, String, model.Type)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"not a mapping", "- a\n- b\n", "expected a mapping"},
		{"bad type", "Foo: {type: float}\n", "dtype is float"},
		{"bad flag", "Foo: {type: double, flags: x}\n", "invalid flag"},
		{"duplicate", "Foo: {type: double}\nFoo: {type: double}\n", ""},
		{"empty", "", "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(ID{Name: "Bad", Version: "1.0"}, []byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFlags(t *testing.T) {
	f, err := ParseFlags("rm")
	require.NoError(t, err)
	assert.Equal(t, "rm", f.String())

	f, err = ParseFlags("m")
	require.NoError(t, err)
	assert.True(t, f.IsMandatory())
	assert.False(t, f.IsReadOnly())
}

func TestParseDimensions(t *testing.T) {
	assert.Nil(t, ParseDimensions(""))
	assert.Equal(t, Dimensions{"IC", "MC"}, ParseDimensions("IC, MC"))
	assert.Equal(t, Dimensions{"IC", "MC"}, ParseDimensions("IC,MC"))
	assert.Equal(t, "IC, MC", Dimensions{"IC", "MC"}.String())
	assert.Empty(t, Dimensions(nil).First())
}

func TestFieldType(t *testing.T) {
	for _, ft := range []FieldType{Attribute, Double, String} {
		parsed, err := ParseFieldType(ft.String())
		require.NoError(t, err)
		assert.Equal(t, ft, parsed)
	}

	assert.Equal(t, "unknown", FieldType(7).String())
}

func TestCheckDimensions(t *testing.T) {
	s, err := NewSchema(ID{Name: "X", Version: "1.0"}, []Entry{
		{Name: "A", Type: Double, Dimensions: Dimensions{"IC", "MC"}},
		{Name: "B", Type: Double, Dimensions: Dimensions{"eCI", "eCM", "eCIM"}},
	})
	require.NoError(t, err)

	err = s.CheckDimensions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "B: 3 (eCI, eCM), 4 (eCIM)")
	assert.NotContains(t, err.Error(), "A:")
}
