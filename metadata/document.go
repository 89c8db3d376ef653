package metadata

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/venicegeo/bf-viirs/granule"
	"github.com/venicegeo/bf-viirs/model"
	"github.com/venicegeo/bf-viirs/util"
)

// Paths into the sidecar document, relative to GranuleURMetaData
const (
	granuleRootPath    = "GranuleURMetaData"
	localGranuleIDPath = "ECSDataGranule/LocalGranuleID"
	productionTimePath = "ECSDataGranule/ProductionDateTime"
	shortNamePath      = "CollectionMetaData/ShortName"
	versionIDPath      = "CollectionMetaData/VersionID"
	beginningDatePath  = "RangeDateTime/RangeBeginningDate"
	beginningTimePath  = "RangeDateTime/RangeBeginningTime"
	endingDatePath     = "RangeDateTime/RangeEndingDate"
	endingTimePath     = "RangeDateTime/RangeEndingTime"
	lastUpdatePath     = "LastUpdate"
	boundaryPointPath  = "SpatialDomainContainer/HorizontalSpatialDomainContainer/GPolygon/Boundary/Point"
	psaPath            = "PSAs/PSA"
	cloudCoverPath     = "MeasuredParameter/MeasuredParameterContainer/QAStats/QAPercentCloudCover"
)

// PSA names holding the tile position
const (
	horizontalTilePSA = "HORIZONTALTILENUMBER"
	verticalTilePSA   = "VERTICALTILENUMBER"
	tileIDPSA         = "TileID"
)

// granuleDocument is the GranuleMetaDataFile root of a sidecar
type granuleDocument struct {
	Granule *urMetadata `xml:"GranuleURMetaData"`
}

type urMetadata struct {
	LocalGranuleID     string          `xml:"ECSDataGranule>LocalGranuleID"`
	ProductionDateTime string          `xml:"ECSDataGranule>ProductionDateTime"`
	ShortName          string          `xml:"CollectionMetaData>ShortName"`
	VersionID          string          `xml:"CollectionMetaData>VersionID"`
	BeginningDate      string          `xml:"RangeDateTime>RangeBeginningDate"`
	BeginningTime      string          `xml:"RangeDateTime>RangeBeginningTime"`
	EndingDate         string          `xml:"RangeDateTime>RangeEndingDate"`
	EndingTime         string          `xml:"RangeDateTime>RangeEndingTime"`
	LastUpdate         string          `xml:"LastUpdate"`
	Points             []boundaryPoint `xml:"SpatialDomainContainer>HorizontalSpatialDomainContainer>GPolygon>Boundary>Point"`
	PSAs               []psa           `xml:"PSAs>PSA"`
	CloudCover         string          `xml:"MeasuredParameter>MeasuredParameterContainer>QAStats>QAPercentCloudCover"`
}

type boundaryPoint struct {
	Longitude string `xml:"PointLongitude"`
	Latitude  string `xml:"PointLatitude"`
}

type psa struct {
	Name  string `xml:"PSAName"`
	Value string `xml:"PSAValue"`
}

// documentTags reads granule tags from the sidecar descriptive document
type documentTags struct {
	href     string
	modifier util.ReadHrefModifier
}

// read implements tagStrategy. The document has everything but the grid, so the source is not consulted.
func (d documentTags) read(granule.Source) (*granuleTags, error) {
	return d.readDocument()
}

func (d documentTags) readDocument() (*granuleTags, error) {
	reader, err := util.OpenHref(util.ModifyHref(d.href, d.modifier))
	if err != nil {
		return nil, fmt.Errorf("failed to open sidecar %s: %w", d.href, err)
	}
	defer reader.Close()

	var doc granuleDocument
	if err = xml.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, model.Malformed("sidecar %s is not a granule document: %v", d.href, err)
	}
	if doc.Granule == nil {
		return nil, d.missing("URMetadata", granuleRootPath)
	}
	return d.tags(doc.Granule)
}

func (d documentTags) missing(attribute, path string) error {
	return model.MissingElementError{Attribute: attribute, Path: path, Href: d.href}
}

func (d documentTags) require(value, attribute, path string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", d.missing(attribute, path)
	}
	return value, nil
}

func (d documentTags) tags(ur *urMetadata) (*granuleTags, error) {
	tags := granuleTags{XMLHref: d.href}
	var err error

	required := []struct {
		target    *string
		value     string
		attribute string
		path      string
	}{
		{&tags.LocalGranuleID, ur.LocalGranuleID, "id", localGranuleIDPath},
		{&tags.Product, ur.ShortName, "product", shortNamePath},
		{&tags.RawVersion, ur.VersionID, "version", versionIDPath},
	}
	for _, field := range required {
		if *field.target, err = d.require(field.value, field.attribute, field.path); err != nil {
			return nil, err
		}
	}

	if tags.Start, err = d.dateTime(ur.BeginningDate, ur.BeginningTime, "start", beginningDatePath, beginningTimePath); err != nil {
		return nil, err
	}
	if tags.End, err = d.dateTime(ur.EndingDate, ur.EndingTime, "end", endingDatePath, endingTimePath); err != nil {
		return nil, err
	}

	production, err := d.require(ur.ProductionDateTime, "created", productionTimePath)
	if err != nil {
		return nil, err
	}
	if tags.Production, err = parseTime(production, "created", productionTimePath, d.href); err != nil {
		return nil, err
	}
	lastUpdate, err := d.require(ur.LastUpdate, "updated", lastUpdatePath)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(lastUpdate, "updated", lastUpdatePath, d.href)
	if err != nil {
		return nil, err
	}
	tags.Updated = &updated

	if tags.Ring, err = d.ring(ur.Points); err != nil {
		return nil, err
	}
	if err = d.tiles(ur.PSAs, &tags); err != nil {
		return nil, err
	}

	if cloud := strings.TrimSpace(ur.CloudCover); cloud != "" {
		if tags.CloudCover, err = parseCloudCover(cloud); err != nil {
			return nil, fmt.Errorf("%s in %s: %w", cloudCoverPath, d.href, err)
		}
	}
	return &tags, nil
}

func (d documentTags) dateTime(date, clock, attribute, datePath, timePath string) (t time.Time, err error) {
	if date, err = d.require(date, attribute+"_date", datePath); err != nil {
		return
	}
	if clock, err = d.require(clock, attribute+"_time", timePath); err != nil {
		return
	}
	return parseTime(date+"T"+clock, attribute, datePath, d.href)
}

func (d documentTags) ring(points []boundaryPoint) ([][]float64, error) {
	ring := make([][]float64, 0, len(points)+1)
	for _, point := range points {
		lon, err := d.coordinate(point.Longitude, "longitude", boundaryPointPath+"/PointLongitude")
		if err != nil {
			return nil, err
		}
		lat, err := d.coordinate(point.Latitude, "latitude", boundaryPointPath+"/PointLatitude")
		if err != nil {
			return nil, err
		}
		ring = append(ring, []float64{lon, lat})
	}
	return closeRing(ring), nil
}

func (d documentTags) coordinate(raw, attribute, path string) (float64, error) {
	raw, err := d.require(raw, attribute, path)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, model.Malformed("%s at '%s' in %s is not a number: %q", attribute, path, d.href, raw)
	}
	return value, nil
}

func (d documentTags) tiles(psas []psa, tags *granuleTags) error {
	values := map[string]string{}
	for _, entry := range psas {
		name, err := d.require(entry.Name, "PSAName", psaPath+"/PSAName")
		if err != nil {
			return err
		}
		value, err := d.require(entry.Value, "PSAValue", psaPath+"/PSAValue")
		if err != nil {
			return err
		}
		values[name] = value
	}

	var err error
	for _, tile := range []struct {
		target *int
		name   string
	}{
		{&tags.HorizontalTile, horizontalTilePSA},
		{&tags.VerticalTile, verticalTilePSA},
	} {
		raw, ok := values[tile.name]
		if !ok {
			return d.missing(tile.name, psaPath)
		}
		if *tile.target, err = parseInt(raw, tile.name, psaPath, d.href); err != nil {
			return err
		}
	}

	tileID, ok := values[tileIDPSA]
	if !ok {
		return d.missing(tileIDPSA, psaPath)
	}
	tags.TileID = tileID
	return nil
}
