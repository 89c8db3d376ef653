package hdfeos

import (
	"strconv"
	"strings"

	"github.com/venicegeo/bf-viirs/model"
)

// Fixed locations inside an HDF-EOS5 granule
const (
	StructMetadataPath = "HDFEOS INFORMATION/StructMetadata.0"
	GridsPath          = "HDFEOS/GRIDS"
)

// Keys read from the struct metadata block. XDim is the row count and
// YDim the column count for the VIIRS sinusoidal grids.
const (
	RowsKey       = "XDim"
	ColsKey       = "YDim"
	UpperLeftKey  = "UpperLeftPointMtrs"
	LowerRightKey = "LowerRightMtrs"
)

// GridInfo is the grid description recovered from the struct metadata block
type GridInfo struct {
	Rows       int
	Cols       int
	UpperLeft  [2]float64
	LowerRight [2]float64
}

// Shape returns [rows, cols]
func (g GridInfo) Shape() [2]int {
	return [2]int{g.Rows, g.Cols}
}

// ParseStructBlock splits the block into key/value pairs. Each line is split on its
// first '='; the terminating line is dropped. Repeated keys keep their last value.
func ParseStructBlock(text string) map[string]string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}

	values := map[string]string{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}
		values[line[:idx]] = line[idx+1:]
	}
	return values
}

// ParseStructMetadata extracts the grid extents and corners from the struct metadata block
func ParseStructMetadata(text string) (*GridInfo, error) {
	if strings.TrimSpace(text) == "" {
		return nil, model.Malformed("struct metadata block is empty")
	}
	values := ParseStructBlock(text)

	rows, err := parseDim(values, RowsKey)
	if err != nil {
		return nil, err
	}
	cols, err := parseDim(values, ColsKey)
	if err != nil {
		return nil, err
	}
	upperLeft, err := parseCorner(values, UpperLeftKey)
	if err != nil {
		return nil, err
	}
	lowerRight, err := parseCorner(values, LowerRightKey)
	if err != nil {
		return nil, err
	}

	return &GridInfo{Rows: rows, Cols: cols, UpperLeft: upperLeft, LowerRight: lowerRight}, nil
}

func parseDim(values map[string]string, key string) (int, error) {
	raw, ok := values[key]
	if !ok {
		return 0, model.Malformed("struct metadata has no %s", key)
	}
	dim, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || dim <= 0 {
		return 0, model.Malformed("struct metadata %s=%q is not a positive integer", key, raw)
	}
	return dim, nil
}

func parseCorner(values map[string]string, key string) ([2]float64, error) {
	raw, ok := values[key]
	if !ok {
		return [2]float64{}, model.Malformed("struct metadata has no %s", key)
	}
	pair, err := ParsePair(raw)
	if err != nil {
		return [2]float64{}, model.Malformed("struct metadata %s: %v", key, err)
	}
	return pair, nil
}

// ParsePair parses a parenthesized "(x,y)" pair of floats
func ParsePair(raw string) ([2]float64, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "(") || !strings.HasSuffix(trimmed, ")") {
		return [2]float64{}, model.Malformed("%q is not a parenthesized pair", raw)
	}
	parts := strings.Split(trimmed[1:len(trimmed)-1], ",")
	if len(parts) != 2 {
		return [2]float64{}, model.Malformed("%q does not have two members", raw)
	}
	var pair [2]float64
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return [2]float64{}, model.Malformed("%q is not numeric", raw)
		}
		pair[i] = value
	}
	return pair, nil
}
