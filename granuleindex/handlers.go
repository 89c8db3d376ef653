package granuleindex

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/venicegeo/bf-viirs/granuleindex/db"
	"github.com/venicegeo/bf-viirs/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// DiscoverHandler is a handler for /granules/discover
// @Title granuleDiscoverHandler
// @Description discovers indexed VIIRS granules
// @Accept  plain
// @Param   bbox     query   string  false  "The bounding box, as a GeoJSON Bounding box (x1,y1,x2,y2)"
// @Param   product  query   string  false  "The product code, e.g. VNP13A1"
// @Param   start    query   string  false  "The earliest end of the time window, as RFC 3339"
// @Param   end      query   string  false  "The latest start of the time window, as RFC 3339"
// @Success 200 {object}  geojson.FeatureCollection
// @Failure 400 {object}  string
// @Router /granules/discover [get]
type DiscoverHandler struct {
	Context Context
}

// NewDiscoverHandler creates a new handler over the given store
func NewDiscoverHandler(store Store) *DiscoverHandler {
	return &DiscoverHandler{Context: Context{Store: store}}
}

func parseTimeParam(r *http.Request, name string) (time.Time, error) {
	value := r.FormValue(name)
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, value)
}

// ServeHTTP implements the http.Handler interface for the DiscoverHandler type
func (h DiscoverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params := db.SearchParams{Product: r.FormValue("product")}

	if r.FormValue("bbox") != "" {
		bbox, err := geojson.NewBoundingBox(r.FormValue("bbox"))
		if err == nil {
			err = bbox.Valid()
		}
		if err != nil {
			message := fmt.Sprintf("The bbox value of %v is invalid", r.FormValue("bbox"))
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
			return
		}
		params.Bbox = []float64(bbox)
	}

	var err error
	for _, bound := range []struct {
		name   string
		target *time.Time
	}{{"start", &params.Start}, {"end", &params.End}} {
		if *bound.target, err = parseTimeParam(r, bound.name); err != nil {
			message := fmt.Sprintf("The %s value of %v is invalid", bound.name, r.FormValue(bound.name))
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
			return
		}
	}
	if !params.End.IsZero() && params.Start.After(params.End) {
		message := "The start value is after the end value"
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	multiResult, err := discoverGranules(h.Context, params)
	if err != nil {
		message := fmt.Sprintf("Error searching for granules: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}

	featureCollection, err := multiResult.GeoJSONFeatureCollection()
	if err != nil {
		message := fmt.Sprintf("Error converting to feature collection: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write([]byte(featureCollection.String()))
}

// MetadataHandler is a handler for /granules/{id}
// @Title granuleMetadataHandler
// @Description returns one indexed VIIRS granule
// @Accept  plain
// @Param   id  path  string  true  "The ID of the requested granule"
// @Success 200 {object}  geojson.Feature
// @Failure 404 {object}  string
// @Router /granules/{id} [get]
type MetadataHandler struct {
	Context Context
}

// NewMetadataHandler creates a new handler over the given store
func NewMetadataHandler(store Store) *MetadataHandler {
	return &MetadataHandler{Context: Context{Store: store}}
}

func (h MetadataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	granuleID, ok := mux.Vars(r)["id"]
	if !ok {
		message := "No granule ID found in URL"
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}

	result, err := getGranule(h.Context, granuleID)
	if errors.Is(err, sql.ErrNoRows) {
		message := fmt.Sprintf("Granule not found: %s", granuleID)
		util.LogInfo(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}
	if err != nil {
		message := fmt.Sprintf("Server error searching for granule: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}

	feature, err := result.GeoJSONFeature()
	if err != nil {
		message := fmt.Sprintf("Error converting metadata to geojson: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write([]byte(feature.String()))
}

// Route registers the index handlers on a router
func Route(router *mux.Router, store Store) {
	router.Handle("/granules/discover", NewDiscoverHandler(store)).Methods(http.MethodGet)
	router.Handle("/granules/{id}", NewMetadataHandler(store)).Methods(http.MethodGet)
}
