package metadata

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/venicegeo/bf-viirs/granule"
	"github.com/venicegeo/bf-viirs/model"
)

// Attribute keys, lowercased. Where a field has had more than one spelling the
// candidates are tried in order and the first present wins.
var (
	localGranuleIDKeys = []string{"localgranuleid"}
	shortNameKeys      = []string{"shortname"}
	versionIDKeys      = []string{"versionid"}
	latitudeKeys       = []string{"gringlatitude", "gringpointlatitude"}
	longitudeKeys      = []string{"gringlongitude", "gringpointlongitude"}
	startTimeKeys      = []string{"starttime"}
	endTimeKeys        = []string{"endtime"}
	productionTimeKeys = []string{"productiontime"}
	horizontalTileKeys = []string{"horizontaltilenumber"}
	verticalTileKeys   = []string{"verticaltilenumber"}
	tileIDKeys         = []string{"tileid"}
	cloudCoverKeys     = []string{"qapercentcloudcover", "percentcloudy"}
)

// attributeTags reads granule tags from the source file's own attributes
type attributeTags struct {
	href string
}

// lookup returns the value of the first candidate key present
func lookup(attrs map[string]string, candidates []string) (string, bool) {
	for _, key := range candidates {
		if value, ok := attrs[strings.ToLower(key)]; ok {
			return value, true
		}
	}
	return "", false
}

func (a attributeTags) require(attrs map[string]string, attribute string, candidates []string) (string, error) {
	value, ok := lookup(attrs, candidates)
	if !ok || strings.TrimSpace(value) == "" {
		return "", model.MissingElementError{Attribute: attribute, Path: strings.Join(candidates, "|"), Href: a.href}
	}
	return strings.TrimSpace(value), nil
}

func (a attributeTags) read(source granule.Source) (*granuleTags, error) {
	attrs, err := source.Attributes()
	if err != nil {
		return nil, fmt.Errorf("failed to read attributes of %s: %w", a.href, err)
	}

	tags := granuleTags{}
	required := []struct {
		target     *string
		attribute  string
		candidates []string
	}{
		{&tags.LocalGranuleID, "id", localGranuleIDKeys},
		{&tags.Product, "product", shortNameKeys},
		{&tags.RawVersion, "version", versionIDKeys},
		{&tags.TileID, "tile_id", tileIDKeys},
	}
	for _, field := range required {
		if *field.target, err = a.require(attrs, field.attribute, field.candidates); err != nil {
			return nil, err
		}
	}

	for _, field := range []struct {
		target     *int
		attribute  string
		candidates []string
	}{
		{&tags.HorizontalTile, "horizontal_tile", horizontalTileKeys},
		{&tags.VerticalTile, "vertical_tile", verticalTileKeys},
	} {
		raw, err := a.require(attrs, field.attribute, field.candidates)
		if err != nil {
			return nil, err
		}
		if *field.target, err = parseInt(raw, field.attribute, field.candidates[0], a.href); err != nil {
			return nil, err
		}
	}

	for _, field := range []struct {
		target     *time.Time
		attribute  string
		candidates []string
	}{
		{&tags.Start, "start_datetime", startTimeKeys},
		{&tags.End, "end_datetime", endTimeKeys},
		{&tags.Production, "created", productionTimeKeys},
	} {
		raw, err := a.require(attrs, field.attribute, field.candidates)
		if err != nil {
			return nil, err
		}
		parsed, err := parseTime(raw, field.attribute, field.candidates[0], a.href)
		if err != nil {
			return nil, err
		}
		*field.target = parsed
	}

	if tags.Ring, err = a.ring(attrs); err != nil {
		return nil, err
	}

	if raw, ok := lookup(attrs, cloudCoverKeys); ok && strings.TrimSpace(raw) != "" {
		if tags.CloudCover, err = parseCloudCover(raw); err != nil {
			return nil, fmt.Errorf("%s in %s: %w", strings.Join(cloudCoverKeys, "|"), a.href, err)
		}
	}
	return &tags, nil
}

func (a attributeTags) ring(attrs map[string]string) ([][]float64, error) {
	rawLatitudes, err := a.require(attrs, "latitude", latitudeKeys)
	if err != nil {
		return nil, err
	}
	rawLongitudes, err := a.require(attrs, "longitude", longitudeKeys)
	if err != nil {
		return nil, err
	}
	latitudes, longitudes := strings.Fields(rawLatitudes), strings.Fields(rawLongitudes)
	if len(latitudes) != len(longitudes) {
		return nil, model.Malformed("%s has %d ring latitudes and %d longitudes", a.href, len(latitudes), len(longitudes))
	}

	ring := make([][]float64, 0, len(latitudes)+1)
	for i := range latitudes {
		lon, errLon := strconv.ParseFloat(longitudes[i], 64)
		lat, errLat := strconv.ParseFloat(latitudes[i], 64)
		if errLon != nil || errLat != nil {
			return nil, model.Malformed("%s ring point (%s, %s) is not numeric", a.href, longitudes[i], latitudes[i])
		}
		ring = append(ring, []float64{lon, lat})
	}
	return closeRing(ring), nil
}
