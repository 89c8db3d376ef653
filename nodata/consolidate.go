package nodata

import (
	"fmt"
	"math"
)

// Number is any pixel type that can be written to a GeoTIFF band
type Number interface {
	~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~float32 | ~float64
}

// Consolidate replaces every sentinel code with the rule's value. clean holds the
// canonical value at sentinel positions and the data elsewhere; fill is its complement,
// holding the original sentinel codes and the canonical value everywhere else.
// The input is not modified.
func Consolidate[T Number](data []T, rule Rule) (clean, fill []T) {
	value := T(rule.Value)
	clean = make([]T, len(data))
	fill = make([]T, len(data))
	for i, v := range data {
		if isSentinel(float64(v), rule.Codes) {
			clean[i] = value
			fill[i] = v
		} else {
			clean[i] = v
			fill[i] = value
		}
	}
	return clean, fill
}

func isSentinel(v float64, codes []float64) bool {
	for _, code := range codes {
		if v == code {
			return true
		}
	}
	return false
}

// ConsolidateArray dispatches Consolidate on a typed pixel slice
func ConsolidateArray(data interface{}, rule Rule) (clean, fill interface{}, err error) {
	switch d := data.(type) {
	case []uint8:
		clean, fill = Consolidate(d, rule)
	case []int16:
		clean, fill = Consolidate(d, rule)
	case []uint16:
		clean, fill = Consolidate(d, rule)
	case []int32:
		clean, fill = Consolidate(d, rule)
	case []uint32:
		clean, fill = Consolidate(d, rule)
	case []float32:
		clean, fill = Consolidate(d, rule)
	case []float64:
		clean, fill = Consolidate(d, rule)
	default:
		return nil, nil, fmt.Errorf("cannot consolidate nodata for pixel type %T", data)
	}
	return clean, fill, nil
}

// Widen represents signed byte data as int16. Other types are returned as-is.
func Widen(data interface{}) interface{} {
	bytes, ok := data.([]int8)
	if !ok {
		return data
	}
	wide := make([]int16, len(bytes))
	for i, b := range bytes {
		wide[i] = int16(b)
	}
	return wide
}

// DeclaredValue interprets a declared fill value for the source pixel type.
// On signed byte data a value above the int8 range is the unsigned spelling of a
// negative byte, e.g. 255 is -1.
func DeclaredValue(declared float64, signedByte bool) float64 {
	if signedByte && declared > math.MaxInt8 && declared <= math.MaxUint8 {
		return declared - 256
	}
	return declared
}
