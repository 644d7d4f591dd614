package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-booking-platform/internal/config"
)

func TestLoadMigrations_OrderedAndNamed(t *testing.T) {
	migrations, err := LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 4)

	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version)
		assert.NotEmpty(t, m.SQL)
	}
	assert.Equal(t, "create_products", migrations[0].Name)
	assert.Equal(t, "create_contest_entries", migrations[3].Name)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "postgres://u:p@h/db", DSN(config.DatabaseConfig{URL: "postgres://u:p@h/db"}))

	dsn := DSN(config.DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", DBName: "meadowlark", SSLMode: "disable"})
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=meadowlark sslmode=disable", dsn)
}
