package model

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// GranuleID is a parsed granule identifier, e.g.
// VNP13A1.A2022097.h11v05.001.2022113080900
type GranuleID struct {
	Product              string
	AcquisitionDate      time.Time
	HorizontalTile       int
	VerticalTile         int
	Version              string
	ProductionJulianDate int
}

var granuleIDPattern = regexp.MustCompile(`^([A-Z0-9]+)\.A(\d{7})\.h(\d{2})v(\d{2})\.(\d{3})\.(\d{7})\d*$`)

// ParseGranuleID splits an identifier into its parts
func ParseGranuleID(id string) (*GranuleID, error) {
	match := granuleIDPattern.FindStringSubmatch(id)
	if match == nil {
		return nil, Malformed("granule identifier %q does not match PRODUCT.AYYYYDDD.hHHvVV.VVV.YYYYDDDHHMMSS", id)
	}

	acquired, err := JulianDate(match[2])
	if err != nil {
		return nil, err
	}
	h, _ := strconv.Atoi(match[3])
	v, _ := strconv.Atoi(match[4])
	production, _ := strconv.Atoi(match[6])

	return &GranuleID{
		Product:              match[1],
		AcquisitionDate:      acquired,
		HorizontalTile:       h,
		VerticalTile:         v,
		Version:              match[5],
		ProductionJulianDate: production,
	}, nil
}

// JulianDate parses a YYYYDDD string as a UTC date
func JulianDate(yyyyddd string) (time.Time, error) {
	if len(yyyyddd) != 7 {
		return time.Time{}, Malformed("julian date %q is not YYYYDDD", yyyyddd)
	}
	year, errYear := strconv.Atoi(yyyyddd[:4])
	day, errDay := strconv.Atoi(yyyyddd[4:])
	if errYear != nil || errDay != nil || day < 1 || day > 366 {
		return time.Time{}, Malformed("julian date %q is not YYYYDDD", yyyyddd)
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day-1), nil
}

// container extensions stripped from file names; identifiers themselves contain dots
var containerExts = []string{".h5", ".he5", ".hdf", ".tif", ".xml"}

// StemFromHref returns the file name of an href without its container extension
func StemFromHref(href string) string {
	return trimContainerExt(path.Base(strings.Split(href, "?")[0]))
}

// StemFromLocalGranuleID strips the extension from a LocalGranuleID value
func StemFromLocalGranuleID(localGranuleID string) string {
	return trimContainerExt(strings.TrimSpace(localGranuleID))
}

func trimContainerExt(name string) string {
	ext := path.Ext(name)
	for _, known := range containerExts {
		if strings.EqualFold(ext, known) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

func (g GranuleID) String() string {
	return fmt.Sprintf("%s.A%04d%03d.h%02dv%02d.%s", g.Product, g.AcquisitionDate.Year(), g.AcquisitionDate.YearDay(),
		g.HorizontalTile, g.VerticalTile, g.Version)
}
