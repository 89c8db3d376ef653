package convert

import (
	"fmt"

	"github.com/venicegeo/bf-viirs/cog"
	"github.com/venicegeo/bf-viirs/footprint"
	"github.com/venicegeo/bf-viirs/fragments"
	"github.com/venicegeo/bf-viirs/metadata"
	"github.com/venicegeo/bf-viirs/model"
	"github.com/venicegeo/bf-viirs/util"
)

// Asset keys of the source files
const (
	HDF5AssetKey     = "hdf5"
	MetadataAssetKey = "metadata"
)

// Options configure a Converter
type Options struct {
	Modifier          util.ReadHrefModifier
	DensifyFactor     int
	SimplifyTolerance float64
	Strategy          footprint.Strategy
	Fragments         fragments.Catalog
}

// OptionsFromEnv reads Options from the environment
func OptionsFromEnv() (Options, error) {
	strategy, err := footprint.ParseStrategy(util.GetAntimeridianStrategy())
	if err != nil {
		return Options{}, err
	}
	catalog, err := fragments.Load()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Modifier:          util.TokenHrefModifier(util.GetHrefToken()),
		DensifyFactor:     util.GetDensifyFactor(),
		SimplifyTolerance: util.GetSimplifyTolerance(),
		Strategy:          strategy,
		Fragments:         catalog,
	}, nil
}

// Converter turns a granule into its GranuleResult, optionally exporting its subdatasets
type Converter struct {
	Resolver *metadata.Resolver
	Builder  *footprint.Builder
	Exporter *cog.Exporter
	Context  util.LogContext
}

// New returns a Converter backed by HDF5 and GDAL
func New(opts Options, ctx util.LogContext) *Converter {
	if ctx == nil {
		ctx = &util.BasicLogContext{}
	}
	resolver := metadata.NewResolver(opts.Modifier)
	resolver.Context = ctx
	exporter := cog.NewExporter(opts.Modifier, opts.Fragments)
	exporter.Context = ctx
	return &Converter{
		Resolver: resolver,
		Builder:  footprint.NewBuilder(opts.DensifyFactor, opts.SimplifyTolerance, opts.Strategy),
		Exporter: exporter,
		Context:  ctx,
	}
}

// Describe resolves a granule's metadata and footprint without writing anything
func (c *Converter) Describe(h5Href string) (*model.GranuleResult, error) {
	meta, grid, err := c.describe(h5Href)
	if err != nil {
		return nil, err
	}
	result := model.NewGranuleResult(*meta, *grid, SourceAssets(h5Href, *meta))
	return &result, nil
}

// Convert resolves a granule and exports its subdatasets into outdir
func (c *Converter) Convert(h5Href, outdir string) (*model.GranuleResult, error) {
	meta, grid, err := c.describe(h5Href)
	if err != nil {
		return nil, err
	}
	tiles, err := c.Exporter.Cogify(h5Href, *meta, *grid, outdir)
	if err != nil {
		return nil, err
	}
	util.LogAudit(c.Context, util.LogAuditInput{
		Actor:    "bf-viirs",
		Action:   "convert",
		Actee:    meta.ID,
		Message:  fmt.Sprintf("Exported %d rasters into %s", len(tiles), outdir),
		Severity: util.INFO,
	})
	assets := append(SourceAssets(h5Href, *meta), tiles...)
	result := model.NewGranuleResult(*meta, *grid, assets)
	return &result, nil
}

func (c *Converter) describe(h5Href string) (*model.Metadata, *model.GridGeometry, error) {
	meta, err := c.Resolver.Resolve(h5Href)
	if err != nil {
		return nil, nil, err
	}
	grid, err := c.Builder.Build(*meta)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build footprint of %s: %w", meta.ID, err)
	}
	metadata.CheckSourceGeometry(c.Context, *meta, grid.Bbox)
	return meta, grid, nil
}

// SourceAssets lists the granule file and, when one was read, its sidecar document
func SourceAssets(h5Href string, meta model.Metadata) model.Assets {
	assets := model.Assets{{
		Key:       HDF5AssetKey,
		Href:      h5Href,
		MediaType: model.HDF5,
		Roles:     []string{"data"},
		Title:     "Source Data Containing All Bands",
	}}
	if meta.FromSidecar() {
		assets = append(assets, model.Asset{
			Key:       MetadataAssetKey,
			Href:      meta.XMLHref,
			MediaType: model.XML,
			Roles:     []string{"metadata"},
			Title:     "Earth Observing System Data and Information System (EOSDIS) Metadata",
		})
	}
	return assets
}
