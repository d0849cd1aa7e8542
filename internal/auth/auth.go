package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/forgeops/buildboard/internal/db"
	"github.com/forgeops/buildboard/internal/models"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords
// so callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticate looks up the user and verifies the password against the
// stored bcrypt hash.
func Authenticate(gdb *gorm.DB, username, password string) (*models.User, error) {
	user, err := db.GetUserByUsername(gdb, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
