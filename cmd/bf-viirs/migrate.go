package main

import (
	"fmt"

	"github.com/pressly/goose"
	cli "gopkg.in/urfave/cli.v1"

	_ "github.com/venicegeo/bf-viirs/migrations"
	"github.com/venicegeo/bf-viirs/util"
)

func migrateDatabaseAction(*cli.Context) error {
	database, err := getDbConnectionFunc(&util.BasicLogContext{})
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Could not open database connection: %v", err), 1)
	}
	defer database.Close()

	if err = goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Run("up", database, ".")
}
