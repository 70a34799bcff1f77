package exchange

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payback-app/backend/internal/models"
)

// Equality thresholds for expense deduplication. Amounts within one cent
// and dates within five minutes are considered the same expense when all
// exact fields match.
var (
	amountTolerance = decimal.NewFromFloat(0.01)
	dateTolerance   = 300 * time.Second
)

// sameMemberSet reports whether two ID slices contain the same set of
// members, ignoring order and duplicates.
func sameMemberSet(a, b []uuid.UUID) bool {
	setA := make(map[uuid.UUID]struct{}, len(a))
	for _, id := range a {
		setA[id] = struct{}{}
	}

	setB := make(map[uuid.UUID]struct{}, len(b))
	for _, id := range b {
		setB[id] = struct{}{}
	}

	if len(setA) != len(setB) {
		return false
	}

	for id := range setA {
		if _, ok := setB[id]; !ok {
			return false
		}
	}

	return true
}

// duplicateGroup scans the existing groups for one that matches the
// candidate by case-insensitive name and identical member set. Imported
// IDs are foreign, so the comparison is structural, never by ID.
func duplicateGroup(name string, members []uuid.UUID, existing []LocalGroup) (uuid.UUID, bool) {
	key := foldName(name)

	for _, group := range existing {
		if foldName(group.Name) != key {
			continue
		}

		existingMembers := make([]uuid.UUID, 0, len(group.Members))
		for _, member := range group.Members {
			existingMembers = append(existingMembers, member.MemberID)
		}

		if sameMemberSet(members, existingMembers) {
			return group.ID, true
		}
	}

	return uuid.Nil, false
}

// duplicateExpense reports whether an equivalent expense already exists
// in the target group: same description and payer, amount within one
// cent, date within five minutes, and the same involved member set.
func duplicateExpense(candidate models.Expense, involved []uuid.UUID, existing []LocalExpense) bool {
	for _, expense := range existing {
		if expense.GroupID != candidate.GroupID {
			continue
		}
		if expense.Description != candidate.Description {
			continue
		}
		if expense.PaidByMemberID != candidate.PaidByMemberID {
			continue
		}
		if expense.TotalAmount.Sub(candidate.TotalAmount).Abs().GreaterThan(amountTolerance) {
			continue
		}

		diff := expense.Date.Sub(candidate.Date)
		if diff < 0 {
			diff = -diff
		}
		if diff > dateTolerance {
			continue
		}

		existingInvolved := make([]uuid.UUID, 0, len(expense.Involved))
		for _, member := range expense.Involved {
			existingInvolved = append(existingInvolved, member.MemberID)
		}

		if sameMemberSet(involved, existingInvolved) {
			return true
		}
	}

	return false
}
