// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venicegeo/bf-viirs/convert"
	"github.com/venicegeo/bf-viirs/footprint"
	"github.com/venicegeo/bf-viirs/granuleindex"
	"github.com/venicegeo/bf-viirs/granuleindex/db"
	"github.com/venicegeo/bf-viirs/model"
	"github.com/venicegeo/bf-viirs/util"
	"github.com/venicegeo/geojson-go/geojson"
	cli "gopkg.in/urfave/cli.v1"
)

func init() {
	// Exit errors must come back to the test instead of ending the process
	cli.OsExiter = func(int) {}
	cli.ErrWriter = io.Discard
}

// Mocks

type emptyStore struct{}

func (emptyStore) Upsert(db.Granule) (int64, error) {
	return 1, nil
}

func (emptyStore) Get(string) (*db.Granule, error) {
	return nil, errors.New("not found")
}

func (emptyStore) Search(db.SearchParams) ([]db.Granule, error) {
	return []db.Granule{}, nil
}

type fakeConverter struct {
	opts    convert.Options
	outdirs []string
}

func (f *fakeConverter) result(href string) *model.GranuleResult {
	meta := model.Metadata{
		ID:            "VNP46A2.A2019054.h11v05.001.2019060120000",
		Product:       "VNP46A2",
		Version:       "001",
		StartDatetime: time.Date(2019, 2, 23, 0, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2019, 2, 23, 23, 59, 59, 0, time.UTC),
	}
	grid := model.GridGeometry{
		Transform: model.Transform{10.0 / 2400, 0, -70, 0, -10.0 / 2400, 40},
		CRS:       model.EPSGCRS(4326),
		Shape:     [2]int{2400, 2400},
		Geometry:  geojson.NewPolygon([][][]float64{{{-70, 40}, {-70, 30}, {-60, 30}, {-60, 40}, {-70, 40}}}),
		Bbox:      []float64{-70, 30, -60, 40},
	}
	result := model.NewGranuleResult(meta, grid, convert.SourceAssets(href, meta))
	return &result
}

func (f *fakeConverter) Describe(href string) (*model.GranuleResult, error) {
	return f.result(href), nil
}

func (f *fakeConverter) Convert(href, outdir string) (*model.GranuleResult, error) {
	f.outdirs = append(f.outdirs, outdir)
	return f.result(href), nil
}

func mockConverter(t *testing.T) (*fakeConverter, *bytes.Buffer) {
	converter := &fakeConverter{}
	output := &bytes.Buffer{}
	previousConverter, previousStdout := newConverterFunc, stdout
	newConverterFunc = func(opts convert.Options, ctx util.LogContext) granuleConverter {
		converter.opts = opts
		return converter
	}
	stdout = output
	t.Cleanup(func() {
		newConverterFunc, stdout = previousConverter, previousStdout
	})
	return converter, output
}

func mockStore(t *testing.T) {
	previous := getStoreFunc
	getStoreFunc = func(util.LogContext) (granuleindex.Store, func() error, error) {
		return emptyStore{}, func() error { return nil }, nil
	}
	t.Cleanup(func() { getStoreFunc = previous })
}

// Actual tests

func TestServe_CallsLaunchServer(t *testing.T) {
	mockStore(t)
	success := make(chan bool, 1)
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		success <- true
	}
	timer := time.NewTimer(1 * time.Second)

	go serveAction(nil)

	select {
	case <-success:
	case <-timer.C:
		assert.Fail(t, "launchServer not called within 1 second of serve()")
	}
}

func TestServe_Routes(t *testing.T) {
	router := createRouter(emptyStore{})

	for target, expected := range map[string]int{
		"/":                   http.StatusOK,
		"/granules/discover":  http.StatusOK,
		"/granules/not-there": http.StatusInternalServerError,
	} {
		response := httptest.NewRecorder()
		router.ServeHTTP(response, httptest.NewRequest(http.MethodGet, target, strings.NewReader("")))
		assert.Equal(t, expected, response.Code, target)
		if target == "/" {
			body, _ := io.ReadAll(response.Result().Body)
			assert.Equal(t, "OK", string(body))
		}
	}
}

func TestMetadataCommand_FlagsOverrideEnvironment(t *testing.T) {
	// Mock
	converter, output := mockConverter(t)
	t.Setenv(util.BF_VIIRS_DENSIFY_FACTOR, "20")
	t.Setenv(util.BF_VIIRS_SIMPLIFY_TOLERANCE, "0.01")

	// Tested code
	err := createCliApp().Run([]string{"bf-viirs", "metadata", "-a", "normalize", "-t", "0", "/data/granule.h5"})

	// Asserts
	require.NoError(t, err)
	assert.Equal(t, footprint.Normalize, converter.opts.Strategy)
	assert.Equal(t, 20, converter.opts.DensifyFactor)
	assert.Equal(t, 0.0, converter.opts.SimplifyTolerance)

	feature, err := geojson.FeatureFromBytes(output.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "VNP46A2.A2019054.h11v05.001.2019060120000", feature.IDStr())
}

func TestMetadataCommand_BadStrategy(t *testing.T) {
	mockConverter(t)

	err := createCliApp().Run([]string{"bf-viirs", "metadata", "-a", "wrap", "/data/granule.h5"})

	assert.NotNil(t, err)
}

func TestCreateCogsCommand(t *testing.T) {
	// Mock
	converter, output := mockConverter(t)
	outdir := t.TempDir() + "/tiles"

	// Tested code
	err := createCliApp().Run([]string{"bf-viirs", "create-cogs", "-o", outdir, "/data/granule.h5"})

	// Asserts
	require.NoError(t, err)
	assert.Equal(t, []string{outdir}, converter.outdirs)
	assert.DirExists(t, outdir)
	assert.Contains(t, output.String(), `"proj:epsg":4326`)
}

func TestCreateCogsCommand_DefaultOutput(t *testing.T) {
	// Mock
	converter, _ := mockConverter(t)
	dir := t.TempDir()

	// Tested code
	err := createCliApp().Run([]string{"bf-viirs", "create-cogs", filepath.Join(dir, "granule.h5")})
	require.NoError(t, err)
	err = createCliApp().Run([]string{"bf-viirs", "create-cogs", "https://example.com/granules/granule.h5"})
	require.NoError(t, err)

	// Asserts
	assert.Equal(t, []string{dir, "."}, converter.outdirs)
}

func TestCreateCogsCommand_MissingArgument(t *testing.T) {
	mockConverter(t)

	err := createCliApp().Run([]string{"bf-viirs", "create-cogs"})

	assert.NotNil(t, err)
}

func TestIngestCommand(t *testing.T) {
	// Mock
	mockConverter(t)
	mockStore(t)
	list := t.TempDir() + "/granules.txt"
	require.NoError(t, writeFile(list, "/data/a.h5\n/data/b.h5\n"))

	// Tested code
	err := createCliApp().Run([]string{"bf-viirs", "ingest", "-w", "2", list})

	// Asserts
	require.NoError(t, err)
	assert.Contains(t, stdout.(*bytes.Buffer).String(), "#Added:\t\t2")
}

func TestGetTimerDuration(t *testing.T) {
	t.Setenv(ingestFrequencyEnv, "30s")
	assert.Equal(t, defaultIngestFrequency, getTimerDuration())

	t.Setenv(ingestFrequencyEnv, "2h")
	assert.Equal(t, 2*time.Hour, getTimerDuration())
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
