package sofa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sofar/internal/diagnostic"
	"sofar/internal/ndarray"
)

func TestInfo_Filters(t *testing.T) {
	f := newFixture(t)
	o := f.create(t, "SimpleFreeFieldHRIR")

	all, err := o.Info(InfoAll)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(all, "SimpleFreeFieldHRIR 1.0 (SOFA version 2.1)\n-----"))
	assert.Contains(t, all, "showing all entries : type (shape), flags\n\n")
	assert.Contains(t, all, "Data_IR : double (MRN), mandatory\n    Impulse responses\n")
	assert.Contains(t, all, "GLOBAL_Comment : attribute, optional\n")
	assert.Contains(t, all, "GLOBAL_Conventions : attribute, mandatory, read only\n")

	mandatory, err := o.Info(InfoMandatory)
	require.NoError(t, err)
	assert.NotContains(t, mandatory, "GLOBAL_Comment :")

	optional, err := o.Info(InfoOptional)
	require.NoError(t, err)
	assert.Contains(t, optional, "GLOBAL_Comment :")
	assert.NotContains(t, optional, "Data_IR :")

	readOnly, err := o.Info(InfoReadOnly)
	require.NoError(t, err)
	assert.Contains(t, readOnly, "GLOBAL_DataType :")
	assert.NotContains(t, readOnly, "GLOBAL_Title :")

	data, err := o.Info(InfoData)
	require.NoError(t, err)
	assert.Contains(t, data, "ListenerPosition : double (IC, MC), mandatory\n")
	assert.NotContains(t, data, "ListenerPosition_Units")
}

func TestInfo_Field(t *testing.T) {
	f := newFixture(t)
	o := f.create(t, "SimpleFreeFieldHRIR")

	info, err := o.Info("Data_SamplingRate")
	require.NoError(t, err)
	assert.Contains(t, info, "Data_SamplingRate\n    type: double\n    mandatory: true\n    read only: false\n"+
		"    default: 48000\n    shape: I, M\n    comment: Sampling rate of the impulse responses\n")
	assert.Contains(t, info, "Data_SamplingRate_Units\n    type: attribute\n")

	_, err = o.Info("Bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "info='Bogus' is invalid", err.Error())
}

func TestInspect(t *testing.T) {
	f := newFixture(t)
	o := f.create(t, "SimpleFreeFieldHRIR")
	require.NoError(t, o.Set("Data_IR", ndarray.Zeros(1, 2, 64)))

	out, err := o.Inspect()
	require.NoError(t, err)
	assert.Contains(t, out, "GLOBAL_RoomType : free field\n")
	assert.Contains(t, out, "Data_SamplingRate : 48000\n")
	assert.Contains(t, out, "Data_IR : (M=1, R=2, N=64)\n")
	assert.Contains(t, out, "ReceiverPosition : (R=2, C=3, I=1)\n  ")
	assert.NotContains(t, out, "Data_IR : (M=1, R=2, N=64)\n  ")
	assert.Empty(t, f.out.String())
}

func TestDimensions(t *testing.T) {
	f := newFixture(t)
	o := f.create(t, "SimpleFreeFieldHRIR")

	n, err := o.GetDimension("R")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = o.GetDimension("X")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDimension)
	assert.ErrorIs(t, err, diagnostic.ErrNotFound)

	list, err := o.ListDimensions()
	require.NoError(t, err)
	assert.Contains(t, list, "R = 2 receiver (set by ReceiverPosition of dimension RCI, RCM)\n")
	assert.Contains(t, list, "M = 1 measurements (set by Data_IR of dimension MRN)\n")
	assert.Contains(t, list, "N = 1 samples (set by Data_IR of dimension MRN)\n")
	assert.Contains(t, list, "C = 3 coordinate dimensions, fixed\n")
}

func TestDimensions_Unavailable(t *testing.T) {
	f := newFixture(t)
	o := f.create(t, "SimpleFreeFieldHRIR")
	require.NoError(t, o.Set("Data_Delay", ndarray.Zeros(1, 5)))

	_, err := o.GetDimension("R")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionsUnavailable)

	_, err = o.ListDimensions()
	assert.ErrorIs(t, err, ErrDimensionsUnavailable)
}
