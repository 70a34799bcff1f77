package models

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settings stores the identity of the current user. There is exactly one
// row; it is created on first startup and stamped into export headers.
type Settings struct {
	DefaultModel
	CurrentUserName string
	AccountEmail    string
}

var ErrNoSettings = errors.New("the current user identity has not been initialized")

// LoadSettings returns the singleton settings row.
func LoadSettings(db *gorm.DB) (Settings, error) {
	var settings Settings
	err := db.First(&settings).Error
	// The query callback translates gorm.ErrRecordNotFound before it
	// reaches us
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
		return Settings{}, ErrNoSettings
	}
	if err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// EnsureSettings returns the settings row, creating it with the given
// identity when none exists yet.
func EnsureSettings(db *gorm.DB, name, email string) (Settings, error) {
	settings, err := LoadSettings(db)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, ErrNoSettings) {
		return Settings{}, err
	}

	settings = Settings{
		DefaultModel:    DefaultModel{ID: uuid.New()},
		CurrentUserName: name,
		AccountEmail:    email,
	}
	err = db.Create(&settings).Error
	if err != nil {
		return Settings{}, err
	}

	return settings, nil
}
