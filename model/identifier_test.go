package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGranuleID(t *testing.T) {
	// Tested code
	id, err := ParseGranuleID("VNP13A1.A2022097.h11v05.001.2022113080900")

	// Asserts
	require.NoError(t, err)
	assert.Equal(t, "VNP13A1", id.Product)
	assert.Equal(t, time.Date(2022, 4, 7, 0, 0, 0, 0, time.UTC), id.AcquisitionDate)
	assert.Equal(t, 11, id.HorizontalTile)
	assert.Equal(t, 5, id.VerticalTile)
	assert.Equal(t, "001", id.Version)
	assert.Equal(t, 2022113, id.ProductionJulianDate)
	assert.Equal(t, "VNP13A1.A2022097.h11v05.001", id.String())
}

func TestParseGranuleID_Error(t *testing.T) {
	for _, bad := range []string{"", "VNP13A1", "VNP13A1.A2022097.h11v05.001", "VNP13A1.A2022400.h11v05.001.2022113080900"} {
		_, err := ParseGranuleID(bad)
		assert.True(t, errors.Is(err, ErrMalformedMetadata), bad)
	}
}

func TestJulianDate(t *testing.T) {
	date, err := JulianDate("2020366")
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), date)

	_, err = JulianDate("2020000")
	assert.NotNil(t, err)
	_, err = JulianDate("20201")
	assert.NotNil(t, err)
}

func TestStems(t *testing.T) {
	assert.Equal(t, "VNP14A1.A2019054.h11v05.001.2019055201945",
		StemFromHref("https://example.localdomain/data/VNP14A1.A2019054.h11v05.001.2019055201945.h5?token=x"))
	assert.Equal(t, "VNP14A1.A2019054.h11v05.001.2019055201945",
		StemFromHref("/data/VNP14A1.A2019054.h11v05.001.2019055201945.h5"))
	assert.Equal(t, "VNP14A1.A2019054.h11v05.001.2019055201945",
		StemFromLocalGranuleID(" VNP14A1.A2019054.h11v05.001.2019055201945.h5 "))
	assert.Equal(t, "VNP14A1.A2019054.h11v05.001.2019055201945",
		StemFromLocalGranuleID("VNP14A1.A2019054.h11v05.001.2019055201945"))
}
