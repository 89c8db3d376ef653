package granule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatasetInfo(t *testing.T) {
	info := DatasetInfo{
		Path: "HDFEOS/GRIDS/VIIRS_Grid_16Day_VI_500m/Data Fields/500 m 16 days NDVI",
		Dims: []uint{2400, 2400},
	}

	assert.Equal(t, 2, info.Rank())
	assert.Equal(t, "HDFEOS/GRIDS/VIIRS_Grid_16Day_VI_500m/Data_Fields/500_m_16_days_NDVI", info.SanitizedPath())
	assert.Equal(t, "500_m_16_days_NDVI", info.Name())
}

func TestArray_SignedByte(t *testing.T) {
	assert.True(t, Array{Data: []int8{1}}.SignedByte())
	assert.False(t, Array{Data: []uint8{1}}.SignedByte())
	assert.False(t, Array{Data: []int16{1}}.SignedByte())
}
