package model

import (
	"fmt"
	"time"
)

// Metadata holds everything recovered about one granule, whichever source it came from.
// Build it with NewMetadata so its invariants hold.
type Metadata struct {
	ID      string
	Product string
	Version string

	// AcquisitionDatetime is only set for composite products
	AcquisitionDatetime  *time.Time
	StartDatetime        time.Time
	EndDatetime          time.Time
	ProductionDatetime   time.Time
	UpdatedDatetime      *time.Time
	ProductionJulianDate int

	HorizontalTile int
	VerticalTile   int
	TileID         string

	// Shape is [rows, cols]
	Shape  [2]int
	Left   float64
	Right  float64
	Top    float64
	Bottom float64

	CloudCover *int

	// XMLHref is empty when the metadata came from the source file's own attributes
	XMLHref string

	// SourceGeometry is the footprint ring as declared by the metadata source (lon, lat)
	SourceGeometry [][]float64
}

// NewMetadata checks the record's invariants and returns it
func NewMetadata(m Metadata) (*Metadata, error) {
	if m.Shape[0] != m.Shape[1] {
		return nil, Malformed("grid shape %v is not square", m.Shape)
	}
	if m.Shape[0] <= 0 {
		return nil, Malformed("grid shape %v is empty", m.Shape)
	}
	if m.StartDatetime.After(m.EndDatetime) {
		return nil, Malformed("start datetime %s is after end datetime %s",
			m.StartDatetime.Format(time.RFC3339), m.EndDatetime.Format(time.RFC3339))
	}
	if m.HorizontalTile < 0 || m.VerticalTile < 0 {
		return nil, Malformed("negative tile index h%02dv%02d", m.HorizontalTile, m.VerticalTile)
	}
	if _, err := LookupProduct(m.Product); err != nil {
		return nil, err
	}
	return &m, nil
}

// ProductInfo returns the static configuration of the granule's product
func (m Metadata) ProductInfo() ProductInfo {
	return Products[Product(m.Product)]
}

// FromSidecar reports whether the metadata came from an XML sidecar document
func (m Metadata) FromSidecar() bool {
	return m.XMLHref != ""
}

// Bbox returns the projected bounding box as [left, bottom, right, top]
func (m Metadata) Bbox() [4]float64 {
	return [4]float64{m.Left, m.Bottom, m.Right, m.Top}
}

// TileName returns the hHHvVV tile name
func (m Metadata) TileName() string {
	return fmt.Sprintf("h%02dv%02d", m.HorizontalTile, m.VerticalTile)
}
