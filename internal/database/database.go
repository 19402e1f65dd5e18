package database

import (
	"strings"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

// Connect opens the store behind a gorm handle. A postgres DSN gets the real
// thing (with PostGIS for proximity search); anything else is treated as a
// SQLite path for local development and tests.
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		logrus.Info("connecting to PostgreSQL")
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, err
		}
		db.Exec("CREATE EXTENSION IF NOT EXISTS postgis;")
		return db, nil
	}

	logrus.WithField("dsn", dsn).Info("using SQLite for local development")
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}
