package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func createFile(t *testing.T, convention string, extra ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), strings.ToLower(convention))

	_, _, err := run(t, append([]string{"new", convention, "-o", path}, extra...)...)
	require.NoError(t, err)

	return path + ".sofa.yaml"
}

func TestConventions(t *testing.T) {
	out, _, err := run(t, "conventions")
	require.NoError(t, err)
	assert.Contains(t, out, "SimpleFreeFieldHRIR_1.0\n")
	assert.NotContains(t, out, "deprecated")

	out, _, err = run(t, "conventions", "--deprecated")
	require.NoError(t, err)
	assert.Contains(t, out, "SimpleFreeFieldTF_1.0 (deprecated)\n")

	out, _, err = run(t, "conventions", "--paths")
	require.NoError(t, err)
	assert.Contains(t, out, "standardized/SimpleFreeFieldHRIR_1.0.yaml")
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hrir")

	out, _, err := run(t, "new", "SimpleFreeFieldHRIR", "-o", path)
	require.NoError(t, err)
	assert.Equal(t, "created "+path+".sofa.yaml (sofar.SOFA object: SimpleFreeFieldHRIR 1.0)\n", out)
	assert.FileExists(t, path+".sofa.yaml")

	_, _, err = run(t, "new", "Banana", "-o", path)
	assert.Error(t, err)

	_, _, err = run(t, "new")
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	path := createFile(t, "GeneralFIR")

	_, _, err := run(t, "verify", path, "--mode", "write", "--on-issue", "fail")
	require.NoError(t, err)

	_, _, err = run(t, "verify", path, "--mode", "sideways")
	assert.Error(t, err)

	_, _, err = run(t, "verify", path, "--on-issue", "panic")
	assert.Error(t, err)
}

func TestInfo(t *testing.T) {
	path := createFile(t, "SimpleFreeFieldHRIR")

	out, _, err := run(t, "info", path, "--filter", "mandatory")
	require.NoError(t, err)
	assert.Contains(t, out, "SimpleFreeFieldHRIR 1.0")
	assert.Contains(t, out, "Data_IR")

	_, _, err = run(t, "info", path, "--filter", "Banana")
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	path := createFile(t, "SimpleFreeFieldHRIR")

	out, _, err := run(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ListenerPosition : (I=1, C=3)")

	out, _, err = run(t, "inspect", path, "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "GLOBAL_SOFAConventions: (string) (len=19) \"SimpleFreeFieldHRIR\"")
}

func TestDims(t *testing.T) {
	path := createFile(t, "SimpleFreeFieldHRIR")

	out, _, err := run(t, "dims", path, "C")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, _, err = run(t, "dims", path)
	require.NoError(t, err)
	assert.Contains(t, out, "C = 3")

	_, _, err = run(t, "dims", path, "Q")
	assert.Error(t, err)
}

func TestEquals(t *testing.T) {
	a := createFile(t, "SimpleFreeFieldHRIR")
	b := createFile(t, "SimpleFreeFieldHRIR")
	c := createFile(t, "SimpleFreeFieldHRTF")

	out, _, err := run(t, "equals", a, b, "--exclude", "DATE")
	require.NoError(t, err)
	assert.Equal(t, "identical\n", out)

	out, _, err = run(t, "equals", a, c, "--exclude", "GLOBAL")
	require.ErrorIs(t, err, errNotEqual)
	assert.Contains(t, out, "not identical")

	_, _, err = run(t, "equals", a, b, "--exclude", "NOTHING")
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	_, _, err := run(t, "--log-level", "loud", "conventions")
	assert.Error(t, err)

	_, _, err = run(t, "--conventions", filepath.Join(t.TempDir(), "missing"), "conventions")
	assert.Error(t, err)
}
