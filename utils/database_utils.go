// database_utils should be the canonical place to put shared DB utils.
// It should not include:
// 1. Any util that doesn't manipulate DB
// 2. Any util that contains business logic
package utils

import (
	"fmt"
	"os"
	"testing"

	"github.com/DarrenRF/rt/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestDBPrefix         = "testonlydb_"
	TestDBNameCharLength = 8
)

// GormTransaction is the callback function used during db.Transaction in Gorm.
type GormTransaction func(tx *gorm.DB) error

// GetDBConnection opens the database specified by env. The default is a local
// sqlite file so dev needs no setup; set DB_DRIVER=postgres to use the
// postgres variables instead.
func GetDBConnection() (*gorm.DB, error) {
	if os.Getenv("DB_DRIVER") == "postgres" {
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"),
			os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
		return getDB(postgres.Open(dsn))
	}

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "db.sqlite3"
	}
	return getDB(sqlite.Open(path))
}

func getDB(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// DatabaseSetupAndMigration creates/updates every table the service reads or
// writes. Safe to run on every startup.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Rating{},
		&model.RatingComment{},
		&model.RatingLike{},
		&model.RatingCategoryVote{},
		&model.ProfileComment{},
		&model.Follow{},
		&model.BulletinPost{},
		&model.Activity{},
		&model.ActivityDismissal{},
		&model.ActivityClear{},
		&model.Alert{},
		&model.Playlist{},
		&model.PlaylistSong{},
		&model.PlaylistLike{},
		&model.Song{},
	)
}

// CreateTempDB creates a throwaway in-memory database for one test case,
// migrated and ready to use. The database lives as long as the connection, so
// callers never clean up explicitly; we still close the pool on test cleanup
// to avoid exceeding open-connection limits across a package run.
func CreateTempDB(t *testing.T) (*gorm.DB, string) {
	t.Helper()

	dbName := TestDBPrefix + RandomAlphabetString(TestDBNameCharLength)
	// cache=shared keeps the database visible across the pooled connections
	// gorm opens for the same DSN.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)

	db, err := getDB(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("cannot open temp DB %s: %v", dbName, err)
	}
	if err := DatabaseSetupAndMigration(db); err != nil {
		t.Fatalf("cannot migrate temp DB %s: %v", dbName, err)
	}

	t.Cleanup(func() {
		conn, err := db.DB()
		if err == nil {
			conn.Close()
		}
	})

	return db, dbName
}
