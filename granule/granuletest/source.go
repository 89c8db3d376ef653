// Package granuletest provides an in-memory granule.Source for tests
package granuletest

import (
	"fmt"
	"sort"

	"github.com/venicegeo/bf-viirs/granule"
)

// Source is an in-memory granule.Source
type Source struct {
	Struct     string
	Attrs      map[string]string
	Arrays     map[string]*granule.Array
	Ranks      map[string][]uint
	DatasetTag map[string]map[string]string
	Closed     bool
	Reads      []string
}

// Opener returns a granule.Opener that hands out the source for any href and records the href
func (s *Source) Opener(opened *[]string) granule.Opener {
	return func(href string) (granule.Source, error) {
		if opened != nil {
			*opened = append(*opened, href)
		}
		s.Closed = false
		return s, nil
	}
}

// StructMetadata implements granule.Source
func (s *Source) StructMetadata() (string, error) {
	return s.Struct, nil
}

// Attributes implements granule.Source
func (s *Source) Attributes() (map[string]string, error) {
	return s.Attrs, nil
}

// Datasets implements granule.Source; paths are listed in lexical order
func (s *Source) Datasets() ([]granule.DatasetInfo, error) {
	paths := []string{}
	for path := range s.Arrays {
		paths = append(paths, path)
	}
	for path := range s.Ranks {
		if _, ok := s.Arrays[path]; !ok {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	datasets := make([]granule.DatasetInfo, len(paths))
	for i, path := range paths {
		if dims, ok := s.Ranks[path]; ok {
			datasets[i] = granule.DatasetInfo{Path: path, Dims: dims}
			continue
		}
		array := s.Arrays[path]
		datasets[i] = granule.DatasetInfo{Path: path, Dims: []uint{uint(array.Rows), uint(array.Cols)}}
	}
	return datasets, nil
}

// ReadArray implements granule.Source
func (s *Source) ReadArray(path string) (*granule.Array, error) {
	s.Reads = append(s.Reads, path)
	array, ok := s.Arrays[path]
	if !ok {
		return nil, fmt.Errorf("no array at %s", path)
	}
	return array, nil
}

// Tags implements granule.Source
func (s *Source) Tags(path string) (map[string]string, error) {
	return s.DatasetTag[path], nil
}

// Close implements granule.Source
func (s *Source) Close() error {
	s.Closed = true
	return nil
}
