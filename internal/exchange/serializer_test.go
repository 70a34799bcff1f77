package exchange

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payback-app/backend/internal/models"
)

// exportableLocal builds a local snapshot with two groups, one of them
// debug, and one expense each.
func exportableLocal() Local {
	me := uuid.New()
	alice := uuid.New()

	trip := models.Group{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Trip"}
	debug := models.Group{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Test Data", IsDebug: true}

	newExpense := func(group models.Group, description string) LocalExpense {
		id := uuid.New()
		return LocalExpense{
			Expense: models.Expense{
				DefaultModel:   models.DefaultModel{ID: id},
				GroupID:        group.ID,
				Description:    description,
				Date:           time.Date(2024, 4, 2, 19, 30, 0, 0, time.UTC),
				TotalAmount:    decimal.RequireFromString("100.00"),
				PaidByMemberID: alice,
			},
			Involved: []models.ExpenseInvolvedMember{
				{ExpenseID: id, MemberID: me},
				{ExpenseID: id, MemberID: alice},
			},
			Splits: []models.ExpenseSplit{
				{DefaultModel: models.DefaultModel{ID: uuid.New()}, ExpenseID: id, MemberID: me, Amount: decimal.RequireFromString("50.00")},
				{DefaultModel: models.DefaultModel{ID: uuid.New()}, ExpenseID: id, MemberID: alice, Amount: decimal.New(0, 0)},
			},
		}
	}

	return Local{
		CurrentUserID:   me,
		CurrentUserName: "Me",
		AccountEmail:    "me@example.com",
		Friends: []models.Friend{
			{DefaultModel: models.DefaultModel{ID: me}, Name: "Me"},
			{DefaultModel: models.DefaultModel{ID: alice}, Name: "Alice, the 2nd", Status: models.FriendStatusFriend},
		},
		Groups: []LocalGroup{
			{Group: trip, Members: []models.GroupMember{
				{GroupID: trip.ID, MemberID: me, MemberName: "Me"},
				{GroupID: trip.ID, MemberID: alice, MemberName: "Alice, the 2nd"},
			}},
			{Group: debug, Members: []models.GroupMember{
				{GroupID: debug.ID, MemberID: me, MemberName: "Me"},
			}},
		},
		Expenses: []LocalExpense{
			newExpense(trip, "Dinner"),
			newExpense(debug, "Fake Dinner"),
		},
	}
}

func TestExportEnvelope(t *testing.T) {
	local := exportableLocal()
	text := Export(local, ExportOptions{})

	assert.True(t, strings.HasPrefix(text, headerMarker+"\n"))
	assert.True(t, strings.HasSuffix(text, footerMarker+"\n"))
	assert.True(t, ValidateFormat(text))

	assert.Contains(t, text, "ACCOUNT_EMAIL: me@example.com")
	assert.Contains(t, text, "CURRENT_USER_ID: "+local.CurrentUserID.String())
}

func TestExportSkipsCurrentUserInFriends(t *testing.T) {
	local := exportableLocal()
	snapshot, err := Parse(Export(local, ExportOptions{}))
	require.NoError(t, err)

	require.Len(t, snapshot.Friends, 1)
	assert.Equal(t, "Alice, the 2nd", snapshot.Friends[0].Name)
}

func TestExportExcludesDebugData(t *testing.T) {
	local := exportableLocal()

	snapshot, err := Parse(Export(local, ExportOptions{}))
	require.NoError(t, err)

	require.Len(t, snapshot.Groups, 1)
	assert.Equal(t, "Trip", snapshot.Groups[0].Name)
	require.Len(t, snapshot.Expenses, 1)
	assert.Equal(t, "Dinner", snapshot.Expenses[0].Description)

	withDebug, err := Parse(Export(local, ExportOptions{IncludeDebug: true}))
	require.NoError(t, err)
	assert.Len(t, withDebug.Groups, 2)
	assert.Len(t, withDebug.Expenses, 2)
}

func TestExportExcludeGroupsGlob(t *testing.T) {
	local := exportableLocal()

	snapshot, err := Parse(Export(local, ExportOptions{
		ExcludeGroups: []string{"Tri*"},
		IncludeDebug:  true,
	}))
	require.NoError(t, err)

	require.Len(t, snapshot.Groups, 1)
	assert.Equal(t, "Test Data", snapshot.Groups[0].Name)

	// The excluded group's expenses are gone too
	require.Len(t, snapshot.Expenses, 1)
	assert.Equal(t, "Fake Dinner", snapshot.Expenses[0].Description)
}

func TestExportOmitsNearZeroSplits(t *testing.T) {
	local := exportableLocal()

	snapshot, err := Parse(Export(local, ExportOptions{}))
	require.NoError(t, err)

	// The zero-amount split is not written
	require.Len(t, snapshot.Splits, 1)
	assert.True(t, snapshot.Splits[0].Amount.Equal(decimal.RequireFromString("50.00")))
}

func TestExportRoundTrip(t *testing.T) {
	local := exportableLocal()

	snapshot, err := Parse(Export(local, ExportOptions{}))
	require.NoError(t, err)

	assert.Equal(t, local.CurrentUserID, snapshot.Header.CurrentUserID)
	assert.Equal(t, "Me", snapshot.Header.CurrentUserName)

	// Names with commas survive quoting
	require.Len(t, snapshot.GroupMembers, 2)
	assert.Equal(t, "Alice, the 2nd", snapshot.GroupMembers[1].MemberName)

	require.Len(t, snapshot.Expenses, 1)
	expense := snapshot.Expenses[0]
	assert.Equal(t, local.Expenses[0].ID, expense.ExpenseID)
	assert.True(t, expense.TotalAmount.Equal(local.Expenses[0].TotalAmount))
	assert.True(t, expense.Date.Equal(local.Expenses[0].Date))
	assert.Len(t, snapshot.InvolvedMembers, 2)
}
