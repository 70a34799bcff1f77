package models_test

import (
	"github.com/stretchr/testify/assert"

	"github.com/payback-app/backend/internal/models"
)

func (suite *TestSuiteStandard) TestGroupNameEmpty() {
	group := models.Group{Name: "   "}
	err := models.DB.Create(&group).Error

	assert.ErrorIs(suite.T(), err, models.ErrGroupNameEmpty)
}

func (suite *TestSuiteStandard) TestGroupTrimWhitespace() {
	group := models.Group{Name: " Trip "}
	suite.Require().NoError(models.DB.Create(&group).Error)

	assert.Equal(suite.T(), "Trip", group.Name)
}

func (suite *TestSuiteStandard) TestGroupMemberUnique() {
	group := models.Group{Name: "Trip"}
	suite.Require().NoError(models.DB.Create(&group).Error)

	friend := models.Friend{Name: "Alice"}
	suite.Require().NoError(models.DB.Create(&friend).Error)

	member := models.GroupMember{
		GroupID:    group.ID,
		MemberID:   friend.ID,
		MemberName: "Alice",
	}
	suite.Require().NoError(models.DB.Create(&member).Error)

	duplicate := models.GroupMember{
		GroupID:    group.ID,
		MemberID:   friend.ID,
		MemberName: "Alice",
	}
	err := models.DB.Create(&duplicate).Error

	assert.ErrorIs(suite.T(), err, models.ErrGroupMemberNotUnique)
}

func (suite *TestSuiteStandard) TestGroupMemberTrimWhitespace() {
	group := models.Group{Name: "Trip"}
	suite.Require().NoError(models.DB.Create(&group).Error)

	friend := models.Friend{Name: "Alice"}
	suite.Require().NoError(models.DB.Create(&friend).Error)

	member := models.GroupMember{
		GroupID:    group.ID,
		MemberID:   friend.ID,
		MemberName: " Alice ",
	}
	suite.Require().NoError(models.DB.Create(&member).Error)
	assert.Equal(suite.T(), "Alice", member.MemberName)
}
