package models_test

import (
	"github.com/stretchr/testify/assert"

	"github.com/payback-app/backend/internal/models"
)

func (suite *TestSuiteStandard) TestFriendTrimWhitespace() {
	friend := models.Friend{
		Name:     "  Alice \t",
		Nickname: " Ally ",
	}
	suite.Require().NoError(models.DB.Create(&friend).Error)

	assert.Equal(suite.T(), "Alice", friend.Name)
	assert.Equal(suite.T(), "Ally", friend.Nickname)
}

func (suite *TestSuiteStandard) TestFriendDefaultStatus() {
	friend := models.Friend{Name: "Alice"}
	suite.Require().NoError(models.DB.Create(&friend).Error)

	assert.Equal(suite.T(), models.FriendStatusFriend, friend.Status)
}

func (suite *TestSuiteStandard) TestFriendKeepsPeerStatus() {
	friend := models.Friend{Name: "Bob", Status: models.FriendStatusPeer}
	suite.Require().NoError(models.DB.Create(&friend).Error)

	var reloaded models.Friend
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", friend.ID).Error)
	assert.Equal(suite.T(), models.FriendStatusPeer, reloaded.Status)
}

func (suite *TestSuiteStandard) TestFriendSameNameAllowed() {
	// Two distinct people can share a name
	first := models.Friend{Name: "Alice"}
	suite.Require().NoError(models.DB.Create(&first).Error)

	second := models.Friend{Name: "Alice"}
	assert.NoError(suite.T(), models.DB.Create(&second).Error)
}
