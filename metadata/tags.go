package metadata

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/venicegeo/bf-viirs/model"
)

// granuleTags are the fields recovered from either metadata source, before validation
type granuleTags struct {
	LocalGranuleID string
	Product        string
	RawVersion     string
	Start          time.Time
	End            time.Time
	Production     time.Time
	Updated        *time.Time
	HorizontalTile int
	VerticalTile   int
	TileID         string
	CloudCover     *int
	Ring           [][]float64
	XMLHref        string
}

// parseCloudCover reads "12%", "12.4 %" or "12.4" as a rounded percentage
func parseCloudCover(raw string) (*int, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "%"))
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, model.Malformed("cloud cover %q is not a percentage", raw)
	}
	rounded := int(math.Round(value))
	return &rounded, nil
}

// closeRing appends the first point when the ring is open
func closeRing(points [][]float64) [][]float64 {
	if len(points) == 0 {
		return points
	}
	first, last := points[0], points[len(points)-1]
	if first[0] != last[0] || first[1] != last[1] {
		points = append(points, []float64{first[0], first[1]})
	}
	return points
}

func parseInt(raw string, attribute, path, href string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, model.Malformed("%s at '%s' in %s is not an integer: %q", attribute, path, href, raw)
	}
	return value, nil
}

func parseTime(raw string, attribute, path, href string) (time.Time, error) {
	value, err := model.ParseGranuleTime(raw)
	if err != nil {
		return time.Time{}, model.Malformed("%s at '%s' in %s: %v", attribute, path, href, err)
	}
	return value, nil
}
