package cog

import (
	"fmt"
	"path/filepath"

	"github.com/venicegeo/bf-viirs/fragments"
	"github.com/venicegeo/bf-viirs/granule"
	"github.com/venicegeo/bf-viirs/model"
	"github.com/venicegeo/bf-viirs/nodata"
	"github.com/venicegeo/bf-viirs/util"
)

// FillSuffix names the companion raster holding the original sentinel codes
const FillSuffix = "_fill"

// Exporter writes every 2-D subdataset of a granule as its own COG
type Exporter struct {
	Open      granule.Opener
	Modifier  util.ReadHrefModifier
	Writer    Writer
	Fragments fragments.Catalog
	Context   util.LogContext
}

// NewExporter returns an Exporter reading HDF5 and writing through GDAL
func NewExporter(modifier util.ReadHrefModifier, catalog fragments.Catalog) *Exporter {
	return &Exporter{
		Open:      granule.OpenHDF5,
		Modifier:  modifier,
		Writer:    GDALWriter{},
		Fragments: catalog,
		Context:   &util.BasicLogContext{},
	}
}

// Cogify exports the subdatasets of the granule at h5Href into outdir and returns
// one asset per written file. Rank 1 arrays are skipped; any array of rank 3 or more
// rejects the whole granule before anything is written.
func (e *Exporter) Cogify(h5Href string, meta model.Metadata, grid model.GridGeometry, outdir string) (model.Assets, error) {
	source, err := e.Open(util.ModifyHref(h5Href, e.Modifier))
	if err != nil {
		return nil, err
	}
	defer source.Close()

	datasets, err := source.Datasets()
	if err != nil {
		return nil, err
	}
	grids := []granule.DatasetInfo{}
	for _, dataset := range datasets {
		switch {
		case dataset.Rank() == 1:
			continue
		case dataset.Rank() != 2:
			return nil, model.Unsupported("subdataset %s has %d dimensions; only 2-D arrays can be exported", dataset.Path, dataset.Rank())
		}
		grids = append(grids, dataset)
	}

	stem := model.StemFromHref(h5Href)
	assets := model.Assets{}
	for _, dataset := range grids {
		written, err := e.export(source, dataset, stem, meta, grid, outdir)
		if err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", dataset.Path, err)
		}
		assets = append(assets, written...)
	}
	return assets, nil
}

func (e *Exporter) export(source granule.Source, dataset granule.DatasetInfo, stem string,
	meta model.Metadata, grid model.GridGeometry, outdir string) (model.Assets, error) {

	array, err := source.ReadArray(dataset.Path)
	if err != nil {
		return nil, err
	}
	tags, err := source.Tags(dataset.Path)
	if err != nil {
		return nil, err
	}

	base := Raster{
		Rows:      array.Rows,
		Cols:      array.Cols,
		Data:      nodata.Widen(array.Data),
		Transform: grid.Transform,
		CRS:       grid.CRS,
		Tags:      tags,
	}
	name := dataset.Name()

	rule, ok := nodata.Lookup(meta.Product, name)
	if !ok {
		if array.Fill != nil {
			value := nodata.DeclaredValue(*array.Fill, array.SignedByte())
			base.Nodata = &value
		}
		asset, err := e.write(base, name, stem, meta, outdir, []string{"data"})
		if err != nil {
			return nil, err
		}
		return model.Assets{asset}, nil
	}

	clean, fill, err := nodata.ConsolidateArray(base.Data, rule)
	if err != nil {
		return nil, err
	}
	value := rule.Value
	base.Nodata = &value

	cleanRaster := base
	cleanRaster.Data = clean
	cleanAsset, err := e.write(cleanRaster, name, stem, meta, outdir, []string{"data"})
	if err != nil {
		return nil, err
	}
	fillRaster := base
	fillRaster.Data = fill
	fillAsset, err := e.write(fillRaster, name+FillSuffix, stem, meta, outdir, []string{"metadata"})
	if err != nil {
		return nil, err
	}
	return model.Assets{cleanAsset, fillAsset}, nil
}

func (e *Exporter) write(raster Raster, key, stem string, meta model.Metadata, outdir string, roles []string) (model.Asset, error) {
	path := filepath.Join(outdir, fmt.Sprintf("%s_%s.tif", stem, key))
	if err := e.Writer.Write(path, raster); err != nil {
		return model.Asset{}, err
	}
	util.LogInfo(e.Context, "Wrote "+path)

	asset := model.Asset{Key: key, Href: path, MediaType: model.COG, Roles: roles, Title: key}
	if descriptor, ok := e.Fragments.Lookup(meta.Product, key, meta.ProductionJulianDate); ok {
		if descriptor.Title != "" {
			asset.Title = descriptor.Title
		}
		if len(descriptor.Roles) > 0 {
			asset.Roles = descriptor.Roles
		}
		asset.Extra = descriptor.Fields
	}
	return asset, nil
}
