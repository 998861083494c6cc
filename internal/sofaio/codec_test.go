package sofaio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"sofar/internal/convention"
	"sofar/internal/diagnostic"
	"sofar/internal/ndarray"
	"sofar/internal/sofa"
)

type fixture struct {
	logger *logrus.Logger
	hook   *test.Hook
}

func newFixture() *fixture {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	return &fixture{logger: logger, hook: hook}
}

func (f *fixture) config(version string) sofa.Config {
	cfg := sofa.DefaultConfig()
	cfg.Version = version
	cfg.Logger = f.logger
	cfg.Out = &bytes.Buffer{}
	cfg.Now = func() time.Time { return time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC) }

	return cfg
}

func (f *fixture) options() ReadOptions {
	return ReadOptions{Logger: f.logger, Out: &bytes.Buffer{}}
}

func (f *fixture) logged(msg string) bool {
	for _, e := range f.hook.AllEntries() {
		if strings.Contains(e.Message, msg) {
			return true
		}
	}

	return false
}

func (f *fixture) roundTrip(t *testing.T, o *sofa.Object) *sofa.Object {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, o))

	read, err := Read(&buf, f.options())
	require.NoError(t, err)

	return read
}

func TestRoundTrip_Conventions(t *testing.T) {
	ids, err := convention.Default().List()
	require.NoError(t, err)

	for _, id := range ids {
		if id.Deprecated {
			continue
		}

		t.Run(id.String(), func(t *testing.T) {
			f := newFixture()

			o, err := sofa.New(id.Name, f.config(id.Version))
			require.NoError(t, err)

			read := f.roundTrip(t, o)

			assert.Empty(t, sofa.Differences(o, read, sofa.ExcludeNone))
			assert.Equal(t, o.Convention(), read.Convention())
			assert.Equal(t, o.ConventionVersion(), read.ConventionVersion())
			assert.True(t, read.Protected())
		})
	}
}

func TestWrite_Deprecated(t *testing.T) {
	f := newFixture()

	o, err := sofa.New("SimpleFreeFieldTF", f.config("1.0"))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Write(&buf, o)
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrDeprecated)
	assert.Zero(t, buf.Len())
}

func TestWrite_Layout(t *testing.T) {
	f := newFixture()

	o, err := sofa.New("SimpleFreeFieldHRIR", f.config(convention.Latest))
	require.NoError(t, err)
	require.NoError(t, o.Set("Data_IR", ndarray.Zeros(2, 2, 8)))
	require.NoError(t, o.Set("SourcePosition", [][]float64{{0, 0, 1.2}, {90, 0, 1.2}}))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, o))

	var doc struct {
		Attributes map[string]string `yaml:"attributes"`
		Dimensions map[string]int    `yaml:"dimensions"`
		Variables  map[string]struct {
			Type       string            `yaml:"type"`
			Dimensions string            `yaml:"dimensions"`
			Shape      []int             `yaml:"shape"`
			Values     []any             `yaml:"values"`
			Attributes map[string]string `yaml:"attributes"`
		} `yaml:"variables"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "SimpleFreeFieldHRIR", doc.Attributes["SOFAConventions"])
	assert.NotContains(t, doc.Attributes, "GLOBAL_SOFAConventions")
	assert.Equal(t, 2, doc.Dimensions["M"])
	assert.Equal(t, 2, doc.Dimensions["R"])
	assert.Equal(t, 8, doc.Dimensions["N"])
	assert.Equal(t, 3, doc.Dimensions["C"])

	ir := doc.Variables["Data.IR"]
	assert.Equal(t, "double", ir.Type)
	assert.Equal(t, "mRn", ir.Dimensions)
	assert.Equal(t, []int{2, 2, 8}, ir.Shape)
	assert.Len(t, ir.Values, 32)

	rate := doc.Variables["Data.SamplingRate"]
	assert.Equal(t, []int{1}, rate.Shape)
	assert.Equal(t, "hertz", rate.Attributes["Units"])

	source := doc.Variables["SourcePosition"]
	assert.Equal(t, []int{2, 3}, source.Shape)
	assert.Equal(t, "spherical", source.Attributes["Type"])
	assert.NotContains(t, doc.Variables, "SourcePosition_Type")
}

func TestWrite_Outdated(t *testing.T) {
	f := newFixture()

	o, err := sofa.New("GeneralTF", f.config("1.0"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, o))
	assert.True(t, f.logged("Writing SOFA object with outdated Convention version 1.0"))

	read, err := Read(&buf, f.options())
	require.NoError(t, err)
	assert.Equal(t, "1.0", read.ConventionVersion())
}

func TestRoundTrip_CustomEntries(t *testing.T) {
	f := newFixture()

	o, err := sofa.New("SimpleFreeFieldHRIR", f.config(convention.Latest))
	require.NoError(t, err)
	require.NoError(t, o.AddVariable("Temperature", 25.1, "double", "MI"))
	require.NoError(t, o.AddAttribute("Temperature_Units", "degree celsius"))
	require.NoError(t, o.AddAttribute("GLOBAL_Operator", "Jane Doe"))

	read := f.roundTrip(t, o)

	assert.Empty(t, sofa.Differences(o, read, sofa.ExcludeNone))

	var names []string
	for _, e := range read.CustomEntries() {
		names = append(names, e.Name)
	}

	assert.Equal(t, []string{"GLOBAL_Operator", "Temperature", "Temperature_Units"}, names)
	assert.True(t, f.logged("SOFA file contained custom entries\n----------------------------------\n"+
		"GLOBAL_Operator, Temperature, Temperature_Units"))

	e, ok := read.Entry("Temperature")
	require.True(t, ok)
	assert.Equal(t, convention.Double, e.Type)
	assert.Equal(t, convention.Dimensions{"MI"}, e.Dimensions)
}

func TestRoundTrip_OptionalFieldsRemoved(t *testing.T) {
	f := newFixture()

	cfg := f.config(convention.Latest)
	cfg.MandatoryOnly = true

	o, err := sofa.New("SimpleFreeFieldHRIR", cfg)
	require.NoError(t, err)

	read := f.roundTrip(t, o)

	assert.ElementsMatch(t, o.Fields(), read.Fields())
	assert.False(t, read.Has("GLOBAL_Comment"))
}

func TestRoundTrip_StringVariable(t *testing.T) {
	f := newFixture()

	o, err := sofa.New("SimpleFreeFieldHRIR", f.config(convention.Latest))
	require.NoError(t, err)
	require.NoError(t, o.Set("Data_IR", ndarray.Zeros(2, 2, 4)))
	require.NoError(t, o.AddVariable("Labels", ndarray.FromStrings("left", "right").MustReshape(2, 1), "string", "MS"))

	read := f.roundTrip(t, o)

	labels, ok := read.Get("Labels")
	require.True(t, ok)

	arr, ok := labels.(*ndarray.Array)
	require.True(t, ok)
	assert.Equal(t, []string{"left", "right"}, arr.Strings())
	assert.Equal(t, []int{2, 1}, arr.Shape())
}

// withoutVariable removes one variable from an encoded container.
func withoutVariable(t *testing.T, data []byte, key string) []byte {
	t.Helper()

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &doc))

	for _, p := range pairs(doc.Content[0]) {
		if p[0].Value != keyVariables {
			continue
		}

		for i := 0; i < len(p[1].Content); i += 2 {
			if p[1].Content[i].Value == key {
				p[1].Content = append(p[1].Content[:i], p[1].Content[i+2:]...)

				break
			}
		}
	}

	out, err := yaml.Marshal(&doc)
	require.NoError(t, err)

	return out
}

func TestRead_Verification(t *testing.T) {
	f := newFixture()

	o, err := sofa.New("SimpleFreeFieldHRIR", f.config(convention.Latest))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, o))

	data := withoutVariable(t, buf.Bytes(), "Data.IR")

	_, err = Read(bytes.NewReader(data), f.options())
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrIncomplete)
	assert.Contains(t, err.Error(), "could not be verified")

	opts := f.options()
	opts.Verify = VerifyNever

	read, err := Read(bytes.NewReader(data), opts)
	require.NoError(t, err)
	assert.False(t, read.Has("Data_IR"))
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"not a mapping", "- a\n- b\n"},
		{"unknown section", "groups: {}\n"},
		{"no convention", "attributes:\n  SOFAConventionsVersion: \"1.0\"\n"},
		{"no version", "attributes:\n  SOFAConventions: SimpleFreeFieldHRIR\n"},
		{"nested attribute", "attributes:\n  SOFAConventions: [a]\n"},
		{
			"bad type",
			"attributes:\n  SOFAConventions: SimpleFreeFieldHRIR\n  SOFAConventionsVersion: \"1.0\"\n" +
				"variables:\n  Data.IR:\n    type: attribute\n    values: [0]\n",
		},
		{
			"bad shape",
			"attributes:\n  SOFAConventions: SimpleFreeFieldHRIR\n  SOFAConventionsVersion: \"1.0\"\n" +
				"variables:\n  Data.IR:\n    type: double\n    shape: [2, 2]\n    values: [0, 1, 2]\n",
		},
		{
			"negative shape",
			"attributes:\n  SOFAConventions: SimpleFreeFieldHRIR\n  SOFAConventionsVersion: \"1.0\"\n" +
				"variables:\n  Gain:\n    type: double\n    dimensions: xy\n    shape: [-1, -2]\n    values: [1, 2]\n",
		},
		{
			"nested variable attribute",
			"attributes:\n  SOFAConventions: SimpleFreeFieldHRIR\n  SOFAConventionsVersion: \"1.0\"\n" +
				"variables:\n  Data.IR:\n    type: double\n    shape: [1]\n    values: [0]\n" +
				"    attributes:\n      Comment: [a, b]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc), newFixture().options())
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestRead_UnknownConvention(t *testing.T) {
	doc := "attributes:\n  SOFAConventions: Banana\n  SOFAConventionsVersion: \"1.0\"\n"

	_, err := Read(strings.NewReader(doc), newFixture().options())
	assert.ErrorIs(t, err, diagnostic.ErrNotFound)
}

func TestParseVerification(t *testing.T) {
	for _, v := range []Verification{VerifyAuto, VerifyAlways, VerifyNever} {
		parsed, err := ParseVerification(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}

	_, err := ParseVerification("sometimes")
	assert.Error(t, err)
}

func TestFiles(t *testing.T) {
	f := newFixture()
	dir := t.TempDir()

	o, err := sofa.New("GeneralFIR", f.config(convention.Latest))
	require.NoError(t, err)

	require.NoError(t, WriteFile(filepath.Join(dir, "measurement"), o))
	assert.FileExists(t, filepath.Join(dir, "measurement.sofa.yaml"))

	read, err := ReadFile(filepath.Join(dir, "measurement"), f.options())
	require.NoError(t, err)
	assert.True(t, sofa.Equals(o, read, sofa.ExcludeNone, false))

	deprecated, err := sofa.New("SimpleFreeFieldTF", f.config("1.0"))
	require.NoError(t, err)

	path := filepath.Join(dir, "old.sofa.yaml")
	require.Error(t, WriteFile(path, deprecated))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	_, err = ReadFile(filepath.Join(dir, "missing"), f.options())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWithExt(t *testing.T) {
	assert.Equal(t, "a.sofa.yaml", WithExt("a"))
	assert.Equal(t, "a.sofa", WithExt("a.sofa"))
	assert.Equal(t, "dir/a.yaml", WithExt("dir/a.yaml"))
}
