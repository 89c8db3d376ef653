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
	cli "gopkg.in/urfave/cli.v1"
)

// Version is set at link time
var Version = "0.1.0"

var footprintFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "antimeridian, a",
		Usage: "Antimeridian strategy for the footprint: split or normalize",
	},
	cli.IntFlag{
		Name:  "densify, d",
		Usage: "Number of points per footprint edge before reprojection",
	},
	cli.Float64Flag{
		Name:  "tolerance, t",
		Usage: "Footprint simplification tolerance in degrees",
	},
}

var commands = cli.Commands{
	cli.Command{
		Name:      "create-cogs",
		Aliases:   []string{"c"},
		Usage:     "Export every subdataset of a granule as a cloud-optimized GeoTIFF and print its feature",
		ArgsUsage: "INFILE",
		Flags: append([]cli.Flag{
			cli.StringFlag{
				Name:  "output, o",
				Usage: "Directory the tiles are written to, defaults to the directory of INFILE",
			},
		}, footprintFlags...),
		Action: createCogsAction,
	},
	cli.Command{
		Name:      "metadata",
		Aliases:   []string{"md"},
		Usage:     "Print the GeoJSON feature of a granule",
		ArgsUsage: "INFILE",
		Flags:     footprintFlags,
		Action:    metadataAction,
	},
	cli.Command{
		Name:      "ingest",
		Aliases:   []string{"i"},
		Usage:     "Index the granules listed in a file or URL, one href per line",
		ArgsUsage: "LISTFILE",
		Flags: append([]cli.Flag{
			cli.IntFlag{
				Name:  "workers, w",
				Value: 4,
				Usage: "Number of granules described in parallel",
			},
			cli.BoolFlag{
				Name:  "schedule",
				Usage: "Keep running, re-ingesting on BF_VIIRS_INGEST_FREQUENCY and serving job status over HTTP",
			},
		}, footprintFlags...),
		Action: ingestAction,
	},
	cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Launch the granule index webserver",
		Action:  serveAction,
	},
	cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Update database schema",
		Action:  migrateDatabaseAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the bf-viirs CLI",
		Action:  versionAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "bf-viirs"
	app.Usage = "Convert VIIRS granules into cloud-optimized GeoTIFFs and index them"
	app.Version = Version
	app.Commands = commands
	return
}
