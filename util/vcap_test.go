package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vcapJSON = `{
	"user-provided": [
		{"name": "pz-postgres", "credentials": {"uri": "postgres://viirs:secret@db:5432/granules", "port": 5432}}
	],
	"p-redis": [
		{"name": "cache", "credentials": {}}
	]
}`

func TestParseVcapServices(t *testing.T) {
	// Tested code
	services, err := ParseVcapServices([]byte(vcapJSON))

	// Asserts
	require.NoError(t, err)
	assert.Equal(t, []string{"cache", "pz-postgres"}, services.GetServiceNames())

	postgres := services.FindServiceByName("pz-postgres")
	require.NotNil(t, postgres)
	uri, err := postgres.Credentials.String("uri")
	assert.NoError(t, err)
	assert.Equal(t, "postgres://viirs:secret@db:5432/granules", uri)

	_, err = postgres.Credentials.String("port")
	assert.NotNil(t, err)
	_, err = postgres.Credentials.String("password")
	assert.NotNil(t, err)
	assert.Nil(t, services.FindServiceByName("mysql"))
}

func TestParseVcapServices_Invalid(t *testing.T) {
	_, err := ParseVcapServices([]byte("not json"))
	assert.NotNil(t, err)
}
