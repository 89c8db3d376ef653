package model

import (
	"fmt"
)

// CRS is either an EPSG code or a literal WKT definition, never both
type CRS struct {
	EPSG int
	WKT  string
}

// EPSGCRS returns a CRS identified by EPSG code
func EPSGCRS(code int) CRS {
	return CRS{EPSG: code}
}

// WKTCRS returns a CRS identified by a WKT definition
func WKTCRS(wkt string) CRS {
	return CRS{WKT: wkt}
}

// Validate checks that exactly one of EPSG and WKT is set
func (c CRS) Validate() error {
	if (c.EPSG != 0) == (c.WKT != "") {
		return fmt.Errorf("crs must have exactly one of an EPSG code or a WKT definition: %+v", c)
	}
	return nil
}

func (c CRS) String() string {
	if c.EPSG != 0 {
		return fmt.Sprintf("EPSG:%d", c.EPSG)
	}
	return c.WKT
}

// Transform is an affine pixel-to-projected transform in
// [x_size, 0, left, 0, -y_size, top] order
type Transform [6]float64

// Apply maps a (col, row) pixel position to projected coordinates
func (t Transform) Apply(col, row float64) (x, y float64) {
	x = t[0]*col + t[1]*row + t[2]
	y = t[3]*col + t[4]*row + t[5]
	return
}

// GDAL returns the transform in GDAL geotransform order
func (t Transform) GDAL() [6]float64 {
	return [6]float64{t[2], t[0], t[1], t[5], t[3], t[4]}
}

// TransformFromGDAL converts a GDAL geotransform back
func TransformFromGDAL(gt [6]float64) Transform {
	return Transform{gt[1], gt[2], gt[0], gt[4], gt[5], gt[3]}
}

// GridGeometry is the georeferencing derived from a granule's Metadata
type GridGeometry struct {
	Transform Transform
	CRS       CRS
	Shape     [2]int
	// Geometry is a *geojson.Polygon or *geojson.MultiPolygon in lon/lat
	Geometry interface{}
	Bbox     []float64
}
