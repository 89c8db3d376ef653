// Copyright 2016, RadiantBlue Technologies, Inc.
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

package util

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables
const (
	BF_VIIRS_DENSIFY_FACTOR        = "BF_VIIRS_DENSIFY_FACTOR"
	BF_VIIRS_SIMPLIFY_TOLERANCE    = "BF_VIIRS_SIMPLIFY_TOLERANCE"
	BF_VIIRS_ANTIMERIDIAN_STRATEGY = "BF_VIIRS_ANTIMERIDIAN_STRATEGY"
	BF_VIIRS_HREF_TOKEN            = "BF_VIIRS_HREF_TOKEN"
	PORT                           = "PORT"
)

const (
	defaultDensifyFactor       = 10
	defaultSimplifyTolerance   = 0.0006 // degrees, roughly 60m
	defaultAntimeridianSetting = "split"
	defaultPort                = "8080"
)

// LoadDotEnv loads variables from the given .env files into the environment.
// Variables already set win; a missing file is not an error.
func LoadDotEnv(filenames ...string) {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			LogAlert(&BasicLogContext{}, fmt.Sprintf("Could not load %s: %v", name, err))
		}
	}
}

// GetDensifyFactor returns the footprint densification factor
func GetDensifyFactor() int {
	str, ok := os.LookupEnv(BF_VIIRS_DENSIFY_FACTOR)
	if !ok {
		return defaultDensifyFactor
	}
	factor, err := strconv.Atoi(str)
	if err != nil || factor < 1 {
		LogAlert(&BasicLogContext{}, fmt.Sprintf("Invalid %s value '%s'. Using default %d.", BF_VIIRS_DENSIFY_FACTOR, str, defaultDensifyFactor))
		return defaultDensifyFactor
	}
	return factor
}

// GetSimplifyTolerance returns the footprint simplification tolerance in degrees
func GetSimplifyTolerance() float64 {
	str, ok := os.LookupEnv(BF_VIIRS_SIMPLIFY_TOLERANCE)
	if !ok {
		return defaultSimplifyTolerance
	}
	tolerance, err := strconv.ParseFloat(str, 64)
	if err != nil || tolerance < 0 {
		LogAlert(&BasicLogContext{}, fmt.Sprintf("Invalid %s value '%s'. Using default %v.", BF_VIIRS_SIMPLIFY_TOLERANCE, str, defaultSimplifyTolerance))
		return defaultSimplifyTolerance
	}
	return tolerance
}

// GetAntimeridianStrategy returns the raw antimeridian strategy name
func GetAntimeridianStrategy() string {
	strategy, ok := os.LookupEnv(BF_VIIRS_ANTIMERIDIAN_STRATEGY)
	if !ok || strategy == "" {
		return defaultAntimeridianSetting
	}
	return strategy
}

// GetHrefToken returns the access token appended to read hrefs, if any
func GetHrefToken() string {
	return os.Getenv(BF_VIIRS_HREF_TOKEN)
}

// GetPortStr returns the listen address for the HTTP server
func GetPortStr() string {
	port, ok := os.LookupEnv(PORT)
	if !ok {
		LogInfo(&BasicLogContext{}, "Did not get PORT from the environment. Using default port "+defaultPort)
		port = defaultPort
	}
	return ":" + port
}
