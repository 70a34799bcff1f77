package exchange

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/payback-app/backend/internal/models"
)

func TestDuplicateGroup(t *testing.T) {
	me := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	existing := []LocalGroup{{
		Group: models.Group{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Trip"},
		Members: []models.GroupMember{
			{MemberID: me},
			{MemberID: alice},
			{MemberID: bob},
		},
	}}

	tests := []struct {
		name      string
		groupName string
		members   []uuid.UUID
		duplicate bool
	}{
		{"exact match", "Trip", []uuid.UUID{me, alice, bob}, true},
		{"case-insensitive name", "tRiP", []uuid.UUID{me, alice, bob}, true},
		{"member order does not matter", "Trip", []uuid.UUID{bob, me, alice}, true},
		{"different name", "Holiday", []uuid.UUID{me, alice, bob}, false},
		{"missing member", "Trip", []uuid.UUID{me, alice}, false},
		{"extra member", "Trip", []uuid.UUID{me, alice, bob, uuid.New()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := duplicateGroup(tt.groupName, tt.members, existing)
			assert.Equal(t, tt.duplicate, ok)
			if tt.duplicate {
				assert.Equal(t, existing[0].ID, id)
			}
		})
	}
}

func TestDuplicateExpense(t *testing.T) {
	groupID := uuid.New()
	payer := uuid.New()
	other := uuid.New()
	date := time.Date(2024, 4, 2, 19, 30, 0, 0, time.UTC)

	existing := []LocalExpense{{
		Expense: models.Expense{
			DefaultModel:   models.DefaultModel{ID: uuid.New()},
			GroupID:        groupID,
			Description:    "Dinner",
			Date:           date,
			TotalAmount:    decimal.RequireFromString("100.00"),
			PaidByMemberID: payer,
		},
		Involved: []models.ExpenseInvolvedMember{
			{MemberID: payer},
			{MemberID: other},
		},
	}}

	base := models.Expense{
		GroupID:        groupID,
		Description:    "Dinner",
		Date:           date,
		TotalAmount:    decimal.RequireFromString("100.00"),
		PaidByMemberID: payer,
	}
	involved := []uuid.UUID{payer, other}

	t.Run("exact match", func(t *testing.T) {
		assert.True(t, duplicateExpense(base, involved, existing))
	})

	t.Run("amount within tolerance", func(t *testing.T) {
		candidate := base
		candidate.TotalAmount = decimal.RequireFromString("100.009")
		assert.True(t, duplicateExpense(candidate, involved, existing))
	})

	t.Run("amount outside tolerance", func(t *testing.T) {
		candidate := base
		candidate.TotalAmount = decimal.RequireFromString("100.02")
		assert.False(t, duplicateExpense(candidate, involved, existing))
	})

	t.Run("date within tolerance", func(t *testing.T) {
		candidate := base
		candidate.Date = date.Add(299 * time.Second)
		assert.True(t, duplicateExpense(candidate, involved, existing))

		candidate.Date = date.Add(-299 * time.Second)
		assert.True(t, duplicateExpense(candidate, involved, existing))
	})

	t.Run("date outside tolerance", func(t *testing.T) {
		candidate := base
		candidate.Date = date.Add(301 * time.Second)
		assert.False(t, duplicateExpense(candidate, involved, existing))
	})

	t.Run("different description", func(t *testing.T) {
		candidate := base
		candidate.Description = "dinner"
		assert.False(t, duplicateExpense(candidate, involved, existing))
	})

	t.Run("different payer", func(t *testing.T) {
		candidate := base
		candidate.PaidByMemberID = other
		assert.False(t, duplicateExpense(candidate, involved, existing))
	})

	t.Run("different involved set", func(t *testing.T) {
		assert.False(t, duplicateExpense(base, []uuid.UUID{payer}, existing))
	})

	t.Run("different group", func(t *testing.T) {
		candidate := base
		candidate.GroupID = uuid.New()
		assert.False(t, duplicateExpense(candidate, involved, existing))
	})
}

func TestSameMemberSet(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	assert.True(t, sameMemberSet([]uuid.UUID{a, b}, []uuid.UUID{b, a}))
	assert.True(t, sameMemberSet([]uuid.UUID{a, a, b}, []uuid.UUID{a, b}))
	assert.True(t, sameMemberSet(nil, nil))
	assert.False(t, sameMemberSet([]uuid.UUID{a}, []uuid.UUID{a, b}))
	assert.False(t, sameMemberSet([]uuid.UUID{a}, []uuid.UUID{b}))
}
