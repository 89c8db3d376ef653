package nodata

import (
	"github.com/venicegeo/bf-viirs/model"
)

// Rule maps a set of legacy sentinel codes onto one canonical nodata value.
// Subdatasets with a rule are exported twice: the cleaned raster and a _fill raster
// that keeps only the original sentinel codes.
type Rule struct {
	Codes []float64
	Value float64
}

func codeRange(first, last float64) []float64 {
	codes := []float64{}
	for code := first; code <= last; code++ {
		codes = append(codes, code)
	}
	return codes
}

var (
	viSentinels      = Rule{Codes: []float64{-15000, -13000}, Value: -32768}
	lai              = Rule{Codes: codeRange(249, 255), Value: 200}
	laiStdDev        = Rule{Codes: codeRange(248, 255), Value: 200}
	pixelReliability = Rule{Codes: []float64{-1, -4}, Value: -32768}
	ndsi             = Rule{Codes: []float64{21100, 23900, 25100, 25200, 25300, 25400}, Value: 32767}
	snowCover        = Rule{Codes: []float64{201, 211, 237, 239, 250, 251, 253, 254}, Value: 255}
)

// Rules is keyed by product, then by sanitized subdataset name
var Rules = map[model.Product]map[string]Rule{
	model.VNP13A1: {
		"500_m_16_days_EVI":               viSentinels,
		"500_m_16_days_EVI2":              viSentinels,
		"500_m_16_days_NDVI":              viSentinels,
		"500_m_16_days_pixel_reliability": pixelReliability,
	},
	model.VNP15A2H: {
		"Fpar":       lai,
		"Lai":        lai,
		"FparStdDev": laiStdDev,
		"LaiStdDev":  laiStdDev,
	},
	model.VNP10A1: {
		"NDSI":            ndsi,
		"NDSI_Snow_Cover": snowCover,
	},
}

// Lookup returns the rule for a product's subdataset, if it has one
func Lookup(product, subdataset string) (Rule, bool) {
	rule, ok := Rules[model.Product(product)][subdataset]
	return rule, ok
}
