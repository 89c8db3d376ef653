package granule

import (
	"strings"
)

// DatasetInfo describes one leaf array beneath the grids container
type DatasetInfo struct {
	// Path is the full path inside the file, e.g. "HDFEOS/GRIDS/VIIRS_Grid_16Day_VI_500m/Data Fields/500 m 16 days NDVI"
	Path string
	Dims []uint
}

// Rank is the number of dimensions of the array
func (d DatasetInfo) Rank() int {
	return len(d.Dims)
}

// SanitizedPath replaces spaces in the path with underscores
func (d DatasetInfo) SanitizedPath() string {
	return SanitizePath(d.Path)
}

// Name is the sanitized leaf name used to name output files and look up nodata rules
func (d DatasetInfo) Name() string {
	parts := strings.Split(d.SanitizedPath(), "/")
	return parts[len(parts)-1]
}

// SanitizePath replaces spaces with underscores
func SanitizePath(path string) string {
	return strings.ReplaceAll(path, " ", "_")
}

// Array is a 2-D grid read in row-major order
type Array struct {
	Rows int
	Cols int
	// Data is a typed slice: []int8, []uint8, []int16, []uint16, []int32, []uint32, []float32 or []float64
	Data interface{}
	// Fill is the declared _FillValue, nil when absent or not applicable
	Fill *float64
}

// SignedByte reports whether the array holds int8 pixels
func (a Array) SignedByte() bool {
	_, ok := a.Data.([]int8)
	return ok
}

// Source is an open granule file. Close releases every handle it holds.
type Source interface {
	// StructMetadata returns the text of the embedded struct metadata block
	StructMetadata() (string, error)
	// Attributes returns the file's descriptive attributes with lowercased keys
	Attributes() (map[string]string, error)
	// Datasets lists the leaf arrays beneath the grids container
	Datasets() ([]DatasetInfo, error)
	// ReadArray reads a 2-D array with its native pixel type
	ReadArray(path string) (*Array, error)
	// Tags returns the descriptive tags of the projected raster view of an array
	Tags(path string) (map[string]string, error)
	Close() error
}

// Opener opens a granule for reading. The href has already been through any read-href modifier.
type Opener func(href string) (Source, error)
