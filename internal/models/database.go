package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var DB *gorm.DB

type MHContext string

const (
	DBContextURL MHContext = "mh-backend-url"
)

// Connect opens the SQLite database, migrates the schema and configures
// the connection pool.
func Connect(dsn string) error {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: newQueryLog(log.Logger),
	}

	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Prevents SQLITE_BUSY errors
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "money_health:after_query", queryCallback},
		{db.Callback().Query().After("*"), "money_health:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "money_health:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "money_health:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "money_health:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "money_health:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "money_health:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return fmt.Errorf("failed to register callback %s: %w", c.name, err)
		}
	}

	// Set the exported variable
	DB = db

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Remove plural "s"
		name = regexp.MustCompile("s$").ReplaceAllString(name, "")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if strings.Contains(db.Error.Error(), "FOREIGN KEY constraint failed") {
		db.Error = fmt.Errorf("%w resource with the ID you referenced", ErrResourceNotFound)
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral

		return
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(Profile{}, Debt{}, Transaction{}, MatchRule{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
