package models_test

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/payback-app/backend/internal/models"
)

func (suite *TestSuiteStandard) TestConnectInvalidPath() {
	err := models.Connect("/this/path/does/not/exist/db")
	assert.Error(suite.T(), err)
}

func (suite *TestSuiteStandard) TestResourceNotFound() {
	var friend models.Friend
	err := models.DB.First(&friend, "id = ?", uuid.New()).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Equal(suite.T(), "there is no friend matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestGeneralErrorOnClosedDB() {
	suite.CloseDB()

	var friends []models.Friend
	err := models.DB.Find(&friends).Error

	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
