package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/forgeops/buildboard/internal/logging"
	"github.com/forgeops/buildboard/internal/models"
)

var DB *gorm.DB

// Init opens the datastore named by driver ("sqlite" or "mysql") and keeps
// the handle in DB. It does not touch the schema; run Migrate for that.
func Init(driver, dsn string) error {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return fmt.Errorf("unsupported db driver: %s", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return err
	}
	DB = db
	logging.C("db").Infof("connected (%s)", driver)
	return nil
}

// Migrate creates or updates the schema. It is idempotent and meant to be
// run as an explicit deployment step, not during request handling.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Project{}, &models.Build{})
}

// Ping runs a no-op query against the datastore. Only a failure here is
// treated as a connectivity problem.
func Ping(db *gorm.DB) error {
	return db.Exec("SELECT 1").Error
}
