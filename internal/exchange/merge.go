package exchange

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/payback-app/backend/internal/models"
)

// Summary counts the records an import added to the local store.
type Summary struct {
	FriendsAdded  int `json:"friendsAdded" example:"2"`
	GroupsAdded   int `json:"groupsAdded" example:"1"`
	ExpensesAdded int `json:"expensesAdded" example:"17"`
}

// MergeResult is the outcome of merging one parsed snapshot into the
// local view. The mapping and group IDs are needed afterwards to remap
// the snapshot for remote submission.
type MergeResult struct {
	Summary   Summary
	Warnings  []string
	Mutations Mutations
	Mapping   *IdentityMapping
	GroupIDs  map[uuid.UUID]uuid.UUID
}

// Merge resolves all identities in the snapshot and commits the records
// that do not already exist to the local view.
//
// The processing order is load-bearing: friends claim the name cache
// first, then group members, then expense payers/involved/split owners,
// and free-text participant names only as a last resort. Later steps
// depend on mapping state built by earlier ones, so the steps must not
// be reordered or parallelized.
func Merge(snapshot Snapshot, local *Local, resolutions Resolutions) MergeResult {
	if resolutions == nil {
		resolutions = Resolutions{}
	}

	result := MergeResult{
		Mapping:  NewIdentityMapping(snapshot.Header, *local),
		GroupIDs: make(map[uuid.UUID]uuid.UUID),
	}

	mergeFriends(snapshot, local, resolutions, &result)
	mergeGroups(snapshot, local, resolutions, &result)
	backfillGroupFriends(snapshot, local, &result)
	mergeExpenses(snapshot, local, resolutions, &result)

	return result
}

// friendIndex returns the position of the friend with the given target
// ID, or -1.
func friendIndex(local *Local, id uuid.UUID) int {
	return slices.IndexFunc(local.Friends, func(f models.Friend) bool { return f.ID == id })
}

// addFriend appends a new friend to the local view and the mutation
// list.
func addFriend(local *Local, result *MergeResult, friend models.Friend) {
	local.Friends = append(local.Friends, friend)
	result.Mutations.Friends = append(result.Mutations.Friends, friend)
	result.Summary.FriendsAdded++
}

func mergeFriends(snapshot Snapshot, local *Local, resolutions Resolutions, result *MergeResult) {
	for _, friend := range snapshot.Friends {
		if friend.MemberID == snapshot.Header.CurrentUserID {
			continue
		}

		target := result.Mapping.Resolve(friend.MemberID, friend.Name, resolutions)
		if target == local.CurrentUserID {
			continue
		}

		if idx := friendIndex(local, target); idx >= 0 {
			if local.Friends[idx].Status == models.FriendStatusFriend {
				continue
			}

			// Known so far only as a group peer, now explicitly a friend
			local.Friends[idx].Status = models.FriendStatusFriend
			result.Mutations.UpdatedFriends = append(result.Mutations.UpdatedFriends, local.Friends[idx])
			continue
		}

		status := friend.Status
		if status == "" {
			status = models.FriendStatusFriend
		}

		addFriend(local, result, models.Friend{
			DefaultModel:       models.DefaultModel{ID: target},
			Name:               friend.Name,
			Nickname:           friend.Nickname,
			HasLinkedAccount:   friend.HasLinkedAccount,
			LinkedAccountID:    friend.LinkedAccountID,
			LinkedAccountEmail: friend.LinkedAccountEmail,
			ProfileImageURL:    friend.ProfileImageURL,
			ProfileColorHex:    friend.ProfileColorHex,
			Status:             status,
		})
	}
}

func mergeGroups(snapshot Snapshot, local *Local, resolutions Resolutions, result *MergeResult) {
	for _, group := range snapshot.Groups {
		members := snapshot.membersFor(group.GroupID)

		targetIDs := make([]uuid.UUID, 0, len(members)+1)
		memberRows := make([]models.GroupMember, 0, len(members)+1)
		hasCurrentUser := false

		for _, member := range members {
			var target uuid.UUID
			if member.MemberID == snapshot.Header.CurrentUserID {
				target = local.CurrentUserID
			} else {
				target = result.Mapping.Resolve(member.MemberID, member.MemberName, resolutions)
			}

			if slices.Contains(targetIDs, target) {
				continue
			}
			targetIDs = append(targetIDs, target)

			name := member.MemberName
			if target == local.CurrentUserID {
				hasCurrentUser = true
				name = local.CurrentUserName
			}

			memberRows = append(memberRows, models.GroupMember{
				MemberID:        target,
				MemberName:      name,
				ProfileImageURL: member.ProfileImageURL,
				ProfileColorHex: member.ProfileColorHex,
			})
		}

		// The current user is part of every group, even when the export
		// omitted them
		if !hasCurrentUser {
			targetIDs = append([]uuid.UUID{local.CurrentUserID}, targetIDs...)
			memberRows = append([]models.GroupMember{{
				MemberID:   local.CurrentUserID,
				MemberName: local.CurrentUserName,
			}}, memberRows...)
		}

		if existingID, ok := duplicateGroup(group.Name, targetIDs, local.Groups); ok {
			result.GroupIDs[group.GroupID] = existingID
			continue
		}

		groupID := uuid.New()
		result.GroupIDs[group.GroupID] = groupID

		for i := range memberRows {
			memberRows[i].GroupID = groupID
		}

		localGroup := LocalGroup{
			Group: models.Group{
				DefaultModel: models.DefaultModel{ID: groupID},
				Name:         group.Name,
				IsDirect:     group.IsDirect,
				IsDebug:      group.IsDebug,
			},
			Members: memberRows,
		}

		local.Groups = append(local.Groups, localGroup)
		result.Mutations.Groups = append(result.Mutations.Groups, localGroup)
		result.Summary.GroupsAdded++
	}
}

// backfillGroupFriends ensures that every imported group member has a
// friend record before expenses are imported, so that every expense
// participant resolves to a display identity.
func backfillGroupFriends(snapshot Snapshot, local *Local, result *MergeResult) {
	processed := make(map[string]bool)

	for _, group := range snapshot.Groups {
		for _, member := range snapshot.membersFor(group.GroupID) {
			if member.MemberID == snapshot.Header.CurrentUserID {
				continue
			}

			target, ok := result.Mapping.Target(member.MemberID)
			if !ok || target == local.CurrentUserID {
				continue
			}

			if friendIndex(local, target) >= 0 {
				continue
			}

			// The same person can be a member of several imported groups
			key := foldName(member.MemberName)
			if processed[key] {
				continue
			}
			processed[key] = true

			addFriend(local, result, models.Friend{
				DefaultModel:    models.DefaultModel{ID: target},
				Name:            member.MemberName,
				ProfileImageURL: member.ProfileImageURL,
				ProfileColorHex: member.ProfileColorHex,
				Status:          models.FriendStatusFriend,
			})
		}
	}
}

func mergeExpenses(snapshot Snapshot, local *Local, resolutions Resolutions, result *MergeResult) {
	for _, expense := range snapshot.Expenses {
		groupID, ok := result.GroupIDs[expense.GroupID]
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("expense %q skipped: its group was not part of this import", expense.Description))
			continue
		}

		resolveMember := func(id uuid.UUID, name string) uuid.UUID {
			if id == snapshot.Header.CurrentUserID {
				return local.CurrentUserID
			}
			return result.Mapping.Resolve(id, name, resolutions)
		}

		payer := resolveMember(expense.PaidByMemberID, "")

		involvedRows := snapshot.involvedFor(expense.ExpenseID)
		involved := make([]uuid.UUID, 0, len(involvedRows))
		for _, member := range involvedRows {
			involved = append(involved, resolveMember(member.MemberID, ""))
		}

		candidate := models.Expense{
			DefaultModel:   models.DefaultModel{ID: uuid.New()},
			GroupID:        groupID,
			Description:    expense.Description,
			Date:           expense.Date,
			TotalAmount:    expense.TotalAmount,
			PaidByMemberID: payer,
			IsSettled:      expense.IsSettled,
			IsDebug:        expense.IsDebug,
		}

		if duplicateExpense(candidate, involved, local.Expenses) {
			continue
		}

		localExpense := LocalExpense{Expense: candidate}

		for _, id := range involved {
			localExpense.Involved = append(localExpense.Involved, models.ExpenseInvolvedMember{
				ExpenseID: candidate.ID,
				MemberID:  id,
			})
		}

		for _, split := range snapshot.splitsFor(expense.ExpenseID) {
			localExpense.Splits = append(localExpense.Splits, models.ExpenseSplit{
				DefaultModel: models.DefaultModel{ID: uuid.New()},
				ExpenseID:    candidate.ID,
				MemberID:     resolveMember(split.MemberID, ""),
				Amount:       split.Amount,
				IsSettled:    split.IsSettled,
			})
		}

		for _, sub := range snapshot.subexpensesFor(expense.ExpenseID) {
			localExpense.Subexpenses = append(localExpense.Subexpenses, models.Subexpense{
				DefaultModel: models.DefaultModel{ID: uuid.New()},
				ExpenseID:    candidate.ID,
				Amount:       sub.Amount,
			})
		}

		// Free-text participant names are the last-resort name source: a
		// name that only ever appears here still deserves a durable
		// identity, so a minimal friend is synthesized for it.
		for _, name := range snapshot.participantNamesFor(expense.ExpenseID) {
			target := resolveMember(name.MemberID, name.DisplayName)

			if target != local.CurrentUserID && friendIndex(local, target) < 0 {
				addFriend(local, result, models.Friend{
					DefaultModel: models.DefaultModel{ID: target},
					Name:         name.DisplayName,
					Status:       models.FriendStatusFriend,
				})
			}

			localExpense.ParticipantNames = append(localExpense.ParticipantNames, models.ParticipantName{
				ExpenseID:   candidate.ID,
				MemberID:    target,
				DisplayName: name.DisplayName,
			})
		}

		local.Expenses = append(local.Expenses, localExpense)
		result.Mutations.Expenses = append(result.Mutations.Expenses, localExpense)
		result.Summary.ExpensesAdded++
	}
}
