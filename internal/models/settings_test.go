package models_test

import (
	"github.com/stretchr/testify/assert"

	"github.com/payback-app/backend/internal/models"
)

func (suite *TestSuiteStandard) TestLoadSettingsEmpty() {
	_, err := models.LoadSettings(models.DB)
	assert.ErrorIs(suite.T(), err, models.ErrNoSettings)
}

func (suite *TestSuiteStandard) TestEnsureSettingsCreates() {
	settings, err := models.EnsureSettings(models.DB, "Me", "me@example.com")
	suite.Require().NoError(err)

	assert.Equal(suite.T(), "Me", settings.CurrentUserName)
	assert.Equal(suite.T(), "me@example.com", settings.AccountEmail)

	loaded, err := models.LoadSettings(models.DB)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), settings.ID, loaded.ID)
}

func (suite *TestSuiteStandard) TestEnsureSettingsIsStable() {
	first, err := models.EnsureSettings(models.DB, "Me", "me@example.com")
	suite.Require().NoError(err)

	// A second call must not create a second identity
	second, err := models.EnsureSettings(models.DB, "Someone Else", "other@example.com")
	suite.Require().NoError(err)

	assert.Equal(suite.T(), first.ID, second.ID)
	assert.Equal(suite.T(), "Me", second.CurrentUserName)
}

func (suite *TestSuiteStandard) TestLoadSettingsClosedDB() {
	suite.CloseDB()

	_, err := models.LoadSettings(models.DB)
	assert.Error(suite.T(), err)
	assert.NotErrorIs(suite.T(), err, models.ErrNoSettings)
}
