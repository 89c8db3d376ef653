package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMetadata(t *testing.T) {
	// Tested code
	meta, err := NewMetadata(mockMetadata)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, "h11v05", meta.TileName())
	assert.False(t, meta.FromSidecar())
	assert.Equal(t, [4]float64{mockMetadata.Left, mockMetadata.Bottom, mockMetadata.Right, mockMetadata.Top}, meta.Bbox())
	assert.False(t, meta.ProductInfo().Geographic())
}

func TestNewMetadata_Invariants(t *testing.T) {
	notSquare := mockMetadata
	notSquare.Shape = [2]int{1200, 2400}

	reversed := mockMetadata
	reversed.StartDatetime, reversed.EndDatetime = mockMetadata.EndDatetime, mockMetadata.StartDatetime

	negative := mockMetadata
	negative.VerticalTile = -1

	unknown := mockMetadata
	unknown.Product = "MOD13A1"

	for name, meta := range map[string]Metadata{"not square": notSquare, "reversed": reversed, "negative": negative} {
		_, err := NewMetadata(meta)
		assert.True(t, errors.Is(err, ErrMalformedMetadata), name)
	}

	_, err := NewMetadata(unknown)
	assert.True(t, errors.Is(err, ErrUnsupportedInput))

	instant := mockMetadata
	instant.EndDatetime = instant.StartDatetime
	_, err = NewMetadata(instant)
	assert.Nil(t, err)
}

func TestParseGranuleTime(t *testing.T) {
	expected := time.Date(2019, 2, 24, 20, 19, 45, 0, time.UTC)
	for _, raw := range []string{"2019-02-24T20:19:45.000Z", "2019-02-24T20:19:45", "2019-02-24 20:19:45.000000", " 2019-02-24T20:19:45Z "} {
		parsed, err := ParseGranuleTime(raw)
		assert.Nil(t, err, raw)
		assert.Equal(t, expected, parsed, raw)
	}

	_, err := ParseGranuleTime("yesterday")
	assert.True(t, errors.Is(err, ErrMalformedMetadata))
}

func TestTransform(t *testing.T) {
	transform := Transform{463.312716, 0, -10007554.7, 0, -463.312716, 5559752.6}

	x, y := transform.Apply(2400, 2400)
	assert.InDelta(t, -10007554.7+2400*463.312716, x, 1e-6)
	assert.InDelta(t, 5559752.6-2400*463.312716, y, 1e-6)

	gt := transform.GDAL()
	assert.Equal(t, [6]float64{-10007554.7, 463.312716, 0, 5559752.6, 0, -463.312716}, gt)
	assert.Equal(t, transform, TransformFromGDAL(gt))
}

func TestCRS_Validate(t *testing.T) {
	assert.Nil(t, EPSGCRS(4326).Validate())
	assert.Nil(t, WKTCRS(SinusoidalWKT).Validate())
	assert.NotNil(t, CRS{}.Validate())
	assert.NotNil(t, CRS{EPSG: 4326, WKT: SinusoidalWKT}.Validate())
	assert.Equal(t, "EPSG:4326", EPSGCRS(4326).String())
}

func TestErrors(t *testing.T) {
	missing := MissingElementError{Attribute: "id", Path: "ECSDataGranule/LocalGranuleID", Href: "x.h5.xml"}
	assert.True(t, errors.Is(missing, ErrMalformedMetadata))
	assert.Contains(t, missing.Error(), "ECSDataGranule/LocalGranuleID")

	assert.True(t, errors.Is(UnsupportedProductError{Product: "X"}, ErrUnsupportedInput))
	assert.True(t, errors.Is(Malformed("bad %d", 1), ErrMalformedMetadata))
	assert.True(t, errors.Is(Unsupported("bad %d", 1), ErrUnsupportedInput))
}
