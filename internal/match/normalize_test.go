package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SimpleFreeFieldHRIR", "simplefreefieldhrir"},
		{"simple_free_field_hrir", "simplefreefieldhrir"},
		{"GeneralFIR-E", "generalfire"},
		{"Data.SamplingRate:Units", "datasamplingrateunits"},
		{"GLOBAL_RoomType", "globalroomtype"},
		{"", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestTokenizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"SimpleFreeFieldHRIR", []string{"simple", "free", "field", "hrir"}},
		{"HRIRData", []string{"hrir", "data"}},
		{"Data_SamplingRate", []string{"data", "sampling", "rate"}},
		{"GLOBAL:RoomType", []string{"global", "room", "type"}},
		{"metre", []string{"metre"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, TokenizeIdent(tt.input))
		})
	}
}
