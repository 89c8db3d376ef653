package granule

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/airbusgeo/godal"
	"github.com/venicegeo/bf-viirs/hdfeos"
	"github.com/venicegeo/bf-viirs/model"
	"github.com/venicegeo/bf-viirs/util"
	"gonum.org/v1/hdf5"
)

// fill value attribute spellings, in priority order
var fillValueAttributes = []string{"_FillValue", "_Fillvalue"}

// HDF5Source reads a granule with the HDF5 library for arrays and GDAL for descriptive tags.
// Arrays are read through HDF5 so signed bytes keep their sign.
type HDF5Source struct {
	path    string
	file    *hdf5.File
	cleanup func()
}

// OpenHDF5 opens a local or remote granule. Remote files are copied to a temp file first.
func OpenHDF5(href string) (Source, error) {
	localPath, cleanup, err := util.LocalCopy(href)
	if err != nil {
		return nil, err
	}
	file, err := hdf5.OpenFile(localPath, hdf5.F_ACC_RDONLY)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to open %s as HDF5: %w", href, err)
	}
	return &HDF5Source{path: localPath, file: file, cleanup: cleanup}, nil
}

// Close implements Source
func (s *HDF5Source) Close() error {
	err := s.file.Close()
	s.cleanup()
	return err
}

// StructMetadata implements Source
func (s *HDF5Source) StructMetadata() (string, error) {
	dataset, err := s.file.OpenDataset(hdfeos.StructMetadataPath)
	if err != nil {
		return "", model.Malformed("no struct metadata at %s: %v", hdfeos.StructMetadataPath, err)
	}
	defer dataset.Close()

	dtype, err := dataset.Datatype()
	if err != nil {
		return "", err
	}
	defer dtype.Close()
	if dtype.Class() != hdf5.T_STRING {
		return "", model.Malformed("struct metadata at %s is not a string", hdfeos.StructMetadataPath)
	}

	buffer := make([]byte, dtype.Size())
	if err = dataset.Read(&buffer); err != nil {
		return "", model.Malformed("unreadable struct metadata: %v", err)
	}
	return string(bytes.TrimRight(buffer, "\x00")), nil
}

// Attributes implements Source
func (s *HDF5Source) Attributes() (map[string]string, error) {
	tags, err := gdalTags(s.path)
	if err != nil {
		return nil, err
	}
	lowered := make(map[string]string, len(tags))
	for key, value := range tags {
		lowered[strings.ToLower(key)] = value
	}
	return lowered, nil
}

// Tags implements Source
func (s *HDF5Source) Tags(datasetPath string) (map[string]string, error) {
	return gdalTags(fmt.Sprintf(`HDF5:"%s"://%s`, s.path, SanitizePath(datasetPath)))
}

// gdalTags reads metadata through GDAL. Granules carry no georeferencing GDAL
// understands, so warnings raised by this open are dropped; errors are kept.
func gdalTags(name string) (map[string]string, error) {
	dataset, err := godal.Open(name, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec <= godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("GDAL error %d: %s", code, msg)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to read tags of %s: %w", name, err)
	}
	defer dataset.Close()
	return dataset.Metadatas(), nil
}

// Datasets implements Source
func (s *HDF5Source) Datasets() ([]DatasetInfo, error) {
	group, err := s.file.OpenGroup(hdfeos.GridsPath)
	if err != nil {
		return nil, model.Malformed("no %s group: %v", hdfeos.GridsPath, err)
	}
	defer group.Close()

	datasets := []DatasetInfo{}
	if err = s.walk(group, hdfeos.GridsPath, &datasets); err != nil {
		return nil, err
	}
	return datasets, nil
}

func (s *HDF5Source) walk(group *hdf5.Group, groupPath string, datasets *[]DatasetInfo) error {
	count, err := group.NumObjects()
	if err != nil {
		return err
	}
	for i := uint(0); i < count; i++ {
		name, err := group.ObjectNameByIndex(i)
		if err != nil {
			return err
		}
		kind, err := group.ObjectTypeByIndex(i)
		if err != nil {
			return err
		}
		childPath := path.Join(groupPath, name)

		switch kind {
		case hdf5.H5G_GROUP:
			child, err := group.OpenGroup(name)
			if err != nil {
				return err
			}
			err = s.walk(child, childPath, datasets)
			child.Close()
			if err != nil {
				return err
			}
		case hdf5.H5G_DATASET:
			dims, err := s.dims(childPath)
			if err != nil {
				return err
			}
			*datasets = append(*datasets, DatasetInfo{Path: childPath, Dims: dims})
		}
	}
	return nil
}

func (s *HDF5Source) dims(datasetPath string) ([]uint, error) {
	dataset, err := s.file.OpenDataset(datasetPath)
	if err != nil {
		return nil, err
	}
	defer dataset.Close()
	space := dataset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	return dims, err
}

// nativeTypes pairs HDF5 native types with a reader into the matching Go slice
var nativeTypes = []struct {
	dtype *hdf5.Datatype
	read  func(dataset *hdf5.Dataset, n int) (interface{}, error)
}{
	{hdf5.T_NATIVE_INT8, readAs[int8]},
	{hdf5.T_NATIVE_UINT8, readAs[uint8]},
	{hdf5.T_NATIVE_INT16, readAs[int16]},
	{hdf5.T_NATIVE_UINT16, readAs[uint16]},
	{hdf5.T_NATIVE_INT32, readAs[int32]},
	{hdf5.T_NATIVE_UINT32, readAs[uint32]},
	{hdf5.T_NATIVE_FLOAT, readAs[float32]},
	{hdf5.T_NATIVE_DOUBLE, readAs[float64]},
}

func readAs[T any](dataset *hdf5.Dataset, n int) (interface{}, error) {
	buffer := make([]T, n)
	return buffer, dataset.Read(&buffer)
}

// ReadArray implements Source
func (s *HDF5Source) ReadArray(datasetPath string) (*Array, error) {
	dataset, err := s.file.OpenDataset(datasetPath)
	if err != nil {
		return nil, err
	}
	defer dataset.Close()

	space := dataset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, err
	}
	if len(dims) != 2 {
		return nil, model.Unsupported("%s has rank %d; only 2-D arrays can be read", datasetPath, len(dims))
	}

	dtype, err := dataset.Datatype()
	if err != nil {
		return nil, err
	}
	defer dtype.Close()

	n := int(dims[0] * dims[1])
	for _, native := range nativeTypes {
		if !dtype.Equal(native.dtype) {
			continue
		}
		data, err := native.read(dataset, n)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", datasetPath, err)
		}
		return &Array{Rows: int(dims[0]), Cols: int(dims[1]), Data: data, Fill: fillValue(dataset)}, nil
	}
	return nil, model.Unsupported("%s has an unsupported pixel type", datasetPath)
}

// fillValue returns the declared fill value, or nil when it is absent or a
// non-numeric placeholder such as "n/a"
func fillValue(dataset *hdf5.Dataset) *float64 {
	for _, name := range fillValueAttributes {
		attr, err := dataset.OpenAttribute(name)
		if err != nil {
			continue
		}
		var value float64
		err = attr.Read(&value, hdf5.T_NATIVE_DOUBLE)
		attr.Close()
		if err != nil {
			return nil
		}
		return &value
	}
	return nil
}
