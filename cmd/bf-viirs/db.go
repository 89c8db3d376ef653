package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"

	_ "github.com/lib/pq"
	"github.com/venicegeo/bf-viirs/granuleindex/db"
	"github.com/venicegeo/bf-viirs/util"
)

const connectionStringEnv = "DATABASE_URL"
const vcapServicesEnv = "VCAP_SERVICES"
const postgresService = "pz-postgres"

//getDbConnection opens a new database connection.
func getDbConnection(ctx util.LogContext) (*sql.DB, error) {
	connStr := os.Getenv(connectionStringEnv)
	if connStr == "" {
		util.LogInfo(ctx, "No DB connection found in DATABASE_URL, checking VCAP_SERVICES")
		services, err := util.ParseVcapServices([]byte(os.Getenv(vcapServicesEnv)))
		if err != nil {
			return nil, errors.New("Could not get DB connection from DATABASE_URL or VCAP_SERVICES (no valid VCAP_SERVICES found): " + err.Error())
		}
		service := services.FindServiceByName(postgresService)
		if service == nil {
			return nil, fmt.Errorf("Could not get DB connection from DATABASE_URL or VCAP_SERVICES ('%s' service not found); available services: %v",
				postgresService, services.GetServiceNames())
		}
		connStr, err = service.Credentials.String("uri")
		if err != nil {
			return nil, errors.New("Could not get DB connection from DATABASE_URL or VCAP_SERVICES (error getting URI string): " + err.Error())
		}
	}

	dbURI, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	params := dbURI.Query()
	if params.Get("sslmode") == "" {
		params.Set("sslmode", "disable")
	}
	dbURI.RawQuery = params.Encode()

	util.LogInfo(ctx, fmt.Sprintf("Creating database connection at: `%s`", dbURI.Redacted()))
	database, err := sql.Open("postgres", dbURI.String())
	if err != nil {
		return nil, err
	}

	if err = database.Ping(); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}

var getDbConnectionFunc db.ConnectionProvider = getDbConnection
