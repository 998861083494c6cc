package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var conventionNames = []string{
	"GeneralFIR",
	"GeneralTF",
	"SimpleFreeFieldHRIR",
	"SimpleFreeFieldHRTF",
	"SingleRoomSRIR",
}

func TestSuggest_CloseName(t *testing.T) {
	got := Suggest("GeneralFRI", conventionNames, 3)

	require.NotEmpty(t, got)
	assert.Equal(t, "GeneralFIR", got[0])
}

func TestSuggest_CaseAndSeparators(t *testing.T) {
	got := Suggest("simple_free_field_hrtf", conventionNames, 1)

	assert.Equal(t, []string{"SimpleFreeFieldHRTF"}, got)
}

func TestSuggest_Limit(t *testing.T) {
	got := Suggest("SimpleFreeFieldHR", conventionNames, 1)

	assert.Len(t, got, 1)
}

func TestSuggest_NothingSimilar(t *testing.T) {
	assert.Empty(t, Suggest("xyz", conventionNames, 3))
}

func TestRank_Order(t *testing.T) {
	ranked := Rank("GeneralTFF", conventionNames)

	require.NotEmpty(t, ranked)
	assert.Equal(t, "GeneralTF", ranked[0].Name)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}
