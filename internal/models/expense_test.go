package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/payback-app/backend/internal/models"
)

func (suite *TestSuiteStandard) createTestGroup() models.Group {
	group := models.Group{Name: "Trip"}
	suite.Require().NoError(models.DB.Create(&group).Error)
	return group
}

func (suite *TestSuiteStandard) TestExpenseAmountNegative() {
	group := suite.createTestGroup()

	expense := models.Expense{
		GroupID:     group.ID,
		Description: "Refund gone wrong",
		TotalAmount: decimal.RequireFromString("-10.00"),
	}
	err := models.DB.Create(&expense).Error

	assert.ErrorIs(suite.T(), err, models.ErrExpenseAmountNegative)
}

func (suite *TestSuiteStandard) TestExpenseDateDefaultsToNow() {
	group := suite.createTestGroup()

	expense := models.Expense{
		GroupID:     group.ID,
		Description: "Dinner",
		TotalAmount: decimal.RequireFromString("100.00"),
	}
	suite.Require().NoError(models.DB.Create(&expense).Error)

	assert.False(suite.T(), expense.Date.IsZero())
	assert.Equal(suite.T(), time.UTC, expense.Date.Location())
}

func (suite *TestSuiteStandard) TestExpenseDateUTC() {
	group := suite.createTestGroup()

	tz, _ := time.LoadLocation("Europe/Berlin")
	expense := models.Expense{
		GroupID:     group.ID,
		Description: "Dinner",
		Date:        time.Date(2024, 4, 2, 19, 30, 0, 0, tz),
		TotalAmount: decimal.RequireFromString("100.00"),
	}
	suite.Require().NoError(models.DB.Create(&expense).Error)

	var reloaded models.Expense
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", expense.ID).Error)

	assert.Equal(suite.T(), time.UTC, reloaded.Date.Location(), "Timezone for expense date is not UTC")
	assert.True(suite.T(), expense.Date.Equal(reloaded.Date))
}

func (suite *TestSuiteStandard) TestExpenseAmountPrecision() {
	group := suite.createTestGroup()

	expense := models.Expense{
		GroupID:     group.ID,
		Description: "Split three ways",
		TotalAmount: decimal.RequireFromString("33.33333333"),
	}
	suite.Require().NoError(models.DB.Create(&expense).Error)

	var reloaded models.Expense
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", expense.ID).Error)

	assert.True(suite.T(), reloaded.TotalAmount.Equal(decimal.RequireFromString("33.33333333")))
}

func (suite *TestSuiteStandard) TestParticipantNameUnique() {
	group := suite.createTestGroup()

	expense := models.Expense{
		GroupID:     group.ID,
		Description: "Dinner",
		TotalAmount: decimal.RequireFromString("100.00"),
	}
	suite.Require().NoError(models.DB.Create(&expense).Error)

	friend := models.Friend{Name: "Guest"}
	suite.Require().NoError(models.DB.Create(&friend).Error)

	name := models.ParticipantName{
		ExpenseID:   expense.ID,
		MemberID:    friend.ID,
		DisplayName: "Guest",
	}
	suite.Require().NoError(models.DB.Create(&name).Error)

	duplicate := models.ParticipantName{
		ExpenseID:   expense.ID,
		MemberID:    friend.ID,
		DisplayName: "Guest again",
	}
	err := models.DB.Create(&duplicate).Error

	assert.ErrorIs(suite.T(), err, models.ErrParticipantNameNotUnique)
}
