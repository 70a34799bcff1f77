package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/payback-app/backend/internal/models"
)

func (suite *TestSuiteStandard) TestModelTimeUTC() {
	tz, _ := time.LoadLocation("Europe/Berlin")

	model := models.DefaultModel{
		Timestamps: models.Timestamps{
			CreatedAt: time.Date(2000, 1, 2, 3, 4, 5, 6, tz),
			UpdatedAt: time.Date(2001, 2, 3, 4, 5, 6, 7, tz),
			DeletedAt: &gorm.DeletedAt{Time: time.Now().In(tz)},
		},
	}

	err := model.AfterFind(models.DB)
	if err != nil {
		assert.Fail(suite.T(), "model.AfterFind failed")
	}

	assert.Equal(suite.T(), time.UTC, model.CreatedAt.Location(), "Timezone for model is not UTC")
	assert.Equal(suite.T(), time.UTC, model.UpdatedAt.Location(), "Timezone for model is not UTC")
	assert.Equal(suite.T(), time.UTC, model.DeletedAt.Time.Location(), "Timezone for model is not UTC")
}

func (suite *TestSuiteStandard) TestModelGeneratesID() {
	friend := models.Friend{Name: "Alice"}
	suite.Require().NoError(models.DB.Create(&friend).Error)

	assert.NotEqual(suite.T(), uuid.Nil, friend.ID)
}

func (suite *TestSuiteStandard) TestModelKeepsAssignedID() {
	id := uuid.New()
	friend := models.Friend{DefaultModel: models.DefaultModel{ID: id}, Name: "Alice"}
	suite.Require().NoError(models.DB.Create(&friend).Error)

	assert.Equal(suite.T(), id, friend.ID)

	var reloaded models.Friend
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", id).Error)
	assert.Equal(suite.T(), id, reloaded.ID)
}
