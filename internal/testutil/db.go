// Package testutil provides an in-memory catalog database for package tests.
package testutil

import (
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"movie-catalog/internal/config"
	"movie-catalog/internal/database"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory SQLite database with the catalog schema
// migrated. It is closed when the test ends.
func NewDB(t testing.TB) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:catalog_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbSeq.Add(1))
	db, err := database.Open(sqlite.Open(dsn), config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		QueryTimeout:    5 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// Logger returns a logrus logger that discards output.
func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// CSVFiles builds an in-memory source tree in the layout the seed loader
// reads.
func CSVFiles(genres, actors, movies string) fstest.MapFS {
	return fstest.MapFS{
		"genres.csv": {Data: []byte(genres)},
		"actors.csv": {Data: []byte(actors)},
		"movies.csv": {Data: []byte(movies)},
	}
}
