package model

// Product is the short product code of a VIIRS granule, e.g. VNP13A1
type Product string

// Known VIIRS products
const (
	VNP09A1  Product = "VNP09A1"
	VNP09H1  Product = "VNP09H1"
	VNP10A1  Product = "VNP10A1"
	VNP13A1  Product = "VNP13A1"
	VNP14A1  Product = "VNP14A1"
	VNP15A2H Product = "VNP15A2H"
	VNP21A2  Product = "VNP21A2"
	VNP43IA4 Product = "VNP43IA4"
	VNP43MA4 Product = "VNP43MA4"
	VNP46A2  Product = "VNP46A2"
)

// SinusoidalWKT is the native projection of every sinusoidal-grid product
const SinusoidalWKT = `PROJCS["unnamed",GEOGCS["Unknown datum based upon the custom spheroid",DATUM["Not specified (based on custom spheroid)",SPHEROID["Custom spheroid",6371007.181,0]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]]],PROJECTION["Sinusoidal"],PARAMETER["longitude_of_center",0],PARAMETER["false_easting",0],PARAMETER["false_northing",0],UNIT["Meter",1],AXIS["Easting",EAST],AXIS["Northing",NORTH]]`

// ProductInfo is the static per-product configuration
type ProductInfo struct {
	// EPSG is set for products gridded in geographic coordinates; zero otherwise.
	EPSG int
	// Composite products carry a synthesis date in their identifier.
	Composite bool
	// NoSidecar products never ship an XML sidecar document.
	NoSidecar bool
}

// Products is the lookup table for every supported product
var Products = map[Product]ProductInfo{
	VNP09A1:  {Composite: true},
	VNP09H1:  {Composite: true},
	VNP10A1:  {},
	VNP13A1:  {Composite: true},
	VNP14A1:  {},
	VNP15A2H: {Composite: true},
	VNP21A2:  {Composite: true},
	VNP43IA4: {},
	VNP43MA4: {},
	VNP46A2:  {EPSG: 4326, NoSidecar: true},
}

// LookupProduct returns the configuration for a product code
func LookupProduct(code string) (ProductInfo, error) {
	info, ok := Products[Product(code)]
	if !ok {
		return ProductInfo{}, UnsupportedProductError{Product: code}
	}
	return info, nil
}

// Geographic reports whether the product is gridded in geographic coordinates
func (p ProductInfo) Geographic() bool {
	return p.EPSG == 4326
}

// NormalizeVersion maps a raw version code onto its canonical form.
// Only the allow-listed codes are accepted.
func NormalizeVersion(raw string) (string, error) {
	switch raw {
	case "1":
		return "001", nil
	}
	return "", UnsupportedVersionError{Version: raw}
}
