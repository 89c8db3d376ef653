package metadata

import (
	"fmt"
	"math"

	"github.com/venicegeo/bf-viirs/granule"
	"github.com/venicegeo/bf-viirs/hdfeos"
	"github.com/venicegeo/bf-viirs/model"
	"github.com/venicegeo/bf-viirs/util"
)

// SidecarSuffix is appended to a granule href to locate its descriptive document
const SidecarSuffix = ".xml"

// SourceGeometryTolerance is how far, in degrees, the declared footprint bbox may
// drift from the grid-derived one before a notice is logged
const SourceGeometryTolerance = 0.5

// Resolver recovers the Metadata of a granule. Hrefs are passed through Modifier before every read.
type Resolver struct {
	Modifier util.ReadHrefModifier
	Open     granule.Opener
	Exists   func(href string) (bool, error)
	Context  util.LogContext
}

// NewResolver returns a Resolver that reads granules with HDF5 and checks sidecars over HTTP or the local filesystem
func NewResolver(modifier util.ReadHrefModifier) *Resolver {
	return &Resolver{
		Modifier: modifier,
		Open:     granule.OpenHDF5,
		Exists:   util.HrefExists,
		Context:  &util.BasicLogContext{},
	}
}

// tagStrategy is picked once per granule depending on whether its sidecar exists
type tagStrategy interface {
	read(source granule.Source) (*granuleTags, error)
}

// SidecarHref returns the href of a granule's sidecar document
func SidecarHref(h5Href string) string {
	return h5Href + SidecarSuffix
}

func (r Resolver) strategy(h5Href string) (tagStrategy, error) {
	xmlHref := SidecarHref(h5Href)
	exists, err := r.Exists(util.ModifyHref(xmlHref, r.Modifier))
	if err != nil {
		return nil, fmt.Errorf("failed to check for sidecar %s: %w", xmlHref, err)
	}
	if exists {
		return documentTags{href: xmlHref, modifier: r.Modifier}, nil
	}
	return attributeTags{href: h5Href}, nil
}

// Resolve reads a granule's tags and grid description and builds its Metadata
func (r Resolver) Resolve(h5Href string) (*model.Metadata, error) {
	strategy, err := r.strategy(h5Href)
	if err != nil {
		return nil, err
	}

	source, err := r.Open(util.ModifyHref(h5Href, r.Modifier))
	if err != nil {
		return nil, err
	}
	defer source.Close()

	tags, err := strategy.read(source)
	if err != nil {
		return nil, err
	}
	if _, fromAttributes := strategy.(attributeTags); fromAttributes {
		if info, lookupErr := model.LookupProduct(tags.Product); lookupErr != nil || !info.NoSidecar {
			util.LogAlert(r.Context, fmt.Sprintf("No sidecar found at %s; using attributes of %s", SidecarHref(h5Href), h5Href))
		}
	}

	structText, err := source.StructMetadata()
	if err != nil {
		return nil, err
	}
	grid, err := hdfeos.ParseStructMetadata(structText)
	if err != nil {
		return nil, err
	}

	return build(tags, grid)
}

func build(tags *granuleTags, grid *hdfeos.GridInfo) (*model.Metadata, error) {
	version, err := model.NormalizeVersion(tags.RawVersion)
	if err != nil {
		return nil, err
	}
	info, err := model.LookupProduct(tags.Product)
	if err != nil {
		return nil, err
	}

	id := model.StemFromLocalGranuleID(tags.LocalGranuleID)
	granuleID, err := model.ParseGranuleID(id)
	if err != nil {
		return nil, err
	}

	meta := model.Metadata{
		ID:                   id,
		Product:              tags.Product,
		Version:              version,
		StartDatetime:        tags.Start,
		EndDatetime:          tags.End,
		ProductionDatetime:   tags.Production,
		UpdatedDatetime:      tags.Updated,
		ProductionJulianDate: granuleID.ProductionJulianDate,
		HorizontalTile:       tags.HorizontalTile,
		VerticalTile:         tags.VerticalTile,
		TileID:               tags.TileID,
		Shape:                grid.Shape(),
		Left:                 grid.UpperLeft[0],
		Top:                  grid.UpperLeft[1],
		Right:                grid.LowerRight[0],
		Bottom:               grid.LowerRight[1],
		CloudCover:           tags.CloudCover,
		XMLHref:              tags.XMLHref,
		SourceGeometry:       tags.Ring,
	}
	if info.Composite {
		acquired := granuleID.AcquisitionDate
		meta.AcquisitionDatetime = &acquired
	}
	return model.NewMetadata(meta)
}

// CheckSourceGeometry logs a notice when the footprint declared by the metadata source
// and the grid-derived bbox disagree by more than SourceGeometryTolerance.
// The grid-derived footprint is always the one used.
func CheckSourceGeometry(ctx util.LogContext, meta model.Metadata, bbox []float64) bool {
	if len(meta.SourceGeometry) == 0 || len(bbox) != 4 {
		return true
	}
	declared := []float64{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, p := range meta.SourceGeometry {
		declared[0] = math.Min(declared[0], p[0])
		declared[1] = math.Min(declared[1], p[1])
		declared[2] = math.Max(declared[2], p[0])
		declared[3] = math.Max(declared[3], p[1])
	}
	for i := range declared {
		if math.Abs(declared[i]-bbox[i]) > SourceGeometryTolerance {
			util.LogInfo(ctx, fmt.Sprintf("Declared footprint of %s %v differs from grid footprint %v (projected bbox %v)",
				meta.ID, declared, bbox, meta.Bbox()))
			return false
		}
	}
	return true
}
