package db

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/forgeops/buildboard/internal/logging"
	"github.com/forgeops/buildboard/internal/models"
)

// ErrNoAdminPassword is returned when seeding is requested without a
// credential outside of development.
var ErrNoAdminPassword = errors.New("no admin password provided")

// SeedAdmin creates the admin account if no user with that username exists.
// An empty password is only acceptable in development, where a one-time
// random credential is generated and logged exactly once; production
// deployments must supply ADMIN_PASSWORD.
func SeedAdmin(db *gorm.DB, username, password string, dev bool) error {
	log := logging.C("seed")

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	if password == "" {
		if !dev {
			return ErrNoAdminPassword
		}
		password = uuid.NewString()
		log.Warnf("generated one-time admin password: %s", password)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{Username: username, PasswordHash: string(hash), IsAdmin: true}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	log.Infof("seeded admin user %q", username)
	return nil
}
