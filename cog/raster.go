package cog

import (
	"fmt"

	"github.com/airbusgeo/godal"
	"github.com/venicegeo/bf-viirs/footprint"
	"github.com/venicegeo/bf-viirs/model"
)

// Raster is one single-band grid ready to be written
type Raster struct {
	Rows int
	Cols int
	// Data is a typed slice in row-major order
	Data      interface{}
	Nodata    *float64
	Transform model.Transform
	CRS       model.CRS
	Tags      map[string]string
}

// Writer persists a raster at a path
type Writer interface {
	Write(path string, raster Raster) error
}

// Creation options of every written tile
var translateSwitches = []string{"-of", "COG", "-co", "COMPRESS=DEFLATE", "-co", "BLOCKSIZE=512"}

// GDALWriter writes deflate-compressed, internally tiled cloud-optimized GeoTIFFs
type GDALWriter struct{}

func dataType(data interface{}) (godal.DataType, error) {
	switch data.(type) {
	case []uint8:
		return godal.Byte, nil
	case []int16:
		return godal.Int16, nil
	case []uint16:
		return godal.UInt16, nil
	case []int32:
		return godal.Int32, nil
	case []uint32:
		return godal.UInt32, nil
	case []float32:
		return godal.Float32, nil
	case []float64:
		return godal.Float64, nil
	}
	return godal.Unknown, fmt.Errorf("cannot write pixel type %T", data)
}

// Write implements Writer
func (GDALWriter) Write(path string, raster Raster) error {
	dtype, err := dataType(raster.Data)
	if err != nil {
		return err
	}
	mem, err := godal.Create(godal.Memory, "", 1, dtype, raster.Cols, raster.Rows)
	if err != nil {
		return fmt.Errorf("failed to create in-memory raster: %w", err)
	}
	defer mem.Close()

	if err = mem.SetGeoTransform(raster.Transform.GDAL()); err != nil {
		return err
	}
	sr, err := footprint.SpatialRef(raster.CRS)
	if err != nil {
		return err
	}
	defer sr.Close()
	if err = mem.SetSpatialRef(sr); err != nil {
		return err
	}
	for key, value := range raster.Tags {
		if err = mem.SetMetadata(key, value); err != nil {
			return fmt.Errorf("failed to set tag %s: %w", key, err)
		}
	}

	band := mem.Bands()[0]
	if raster.Nodata != nil {
		if err = band.SetNoData(*raster.Nodata); err != nil {
			return err
		}
	}
	if err = band.Write(0, 0, raster.Data, raster.Cols, raster.Rows); err != nil {
		return fmt.Errorf("failed to write pixels: %w", err)
	}

	out, err := mem.Translate(path, translateSwitches)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return out.Close()
}
