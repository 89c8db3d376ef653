package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/venicegeo/bf-viirs/convert"
	"github.com/venicegeo/bf-viirs/footprint"
	"github.com/venicegeo/bf-viirs/model"
	"github.com/venicegeo/bf-viirs/util"
	cli "gopkg.in/urfave/cli.v1"
)

// granuleConverter is what the granule commands need from convert.Converter
type granuleConverter interface {
	Describe(h5Href string) (*model.GranuleResult, error)
	Convert(h5Href, outdir string) (*model.GranuleResult, error)
}

var newConverterFunc = func(opts convert.Options, ctx util.LogContext) granuleConverter {
	return convert.New(opts, ctx)
}

var stdout io.Writer = os.Stdout

// converterOptions reads the environment, then lets command flags override it
func converterOptions(c *cli.Context) (convert.Options, error) {
	opts, err := convert.OptionsFromEnv()
	if err != nil {
		return opts, err
	}
	if c.IsSet("antimeridian") {
		if opts.Strategy, err = footprint.ParseStrategy(c.String("antimeridian")); err != nil {
			return opts, err
		}
	}
	if c.IsSet("densify") {
		if opts.DensifyFactor = c.Int("densify"); opts.DensifyFactor < 1 {
			return opts, fmt.Errorf("densify factor must be at least 1, got %d", opts.DensifyFactor)
		}
	}
	if c.IsSet("tolerance") {
		if opts.SimplifyTolerance = c.Float64("tolerance"); opts.SimplifyTolerance < 0 {
			return opts, fmt.Errorf("simplify tolerance must not be negative, got %v", opts.SimplifyTolerance)
		}
	}
	return opts, nil
}

func granuleArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.NewExitError("Expected exactly one INFILE argument", 2)
	}
	return c.Args().First(), nil
}

func printFeature(result *model.GranuleResult) error {
	feature, err := result.GeoJSONFeature()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, feature.String())
	return err
}

// defaultOutdir is the directory holding a local granule, or the working directory for remote ones
func defaultOutdir(href string) string {
	if strings.Contains(href, "://") {
		return "."
	}
	return filepath.Dir(href)
}

func createCogsAction(c *cli.Context) error {
	href, err := granuleArg(c)
	if err != nil {
		return err
	}
	opts, err := converterOptions(c)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	outdir := c.String("output")
	if outdir == "" {
		outdir = defaultOutdir(href)
	}
	if err = os.MkdirAll(outdir, 0755); err != nil {
		return err
	}

	result, err := newConverterFunc(opts, &util.BasicLogContext{}).Convert(href, outdir)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Failed to convert %s: %v", href, err), 1)
	}
	return printFeature(result)
}

func metadataAction(c *cli.Context) error {
	href, err := granuleArg(c)
	if err != nil {
		return err
	}
	opts, err := converterOptions(c)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}

	result, err := newConverterFunc(opts, &util.BasicLogContext{}).Describe(href)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Failed to read metadata of %s: %v", href, err), 1)
	}
	return printFeature(result)
}

func versionAction(*cli.Context) error {
	_, err := fmt.Fprintln(stdout, "bf-viirs version "+Version)
	return err
}
