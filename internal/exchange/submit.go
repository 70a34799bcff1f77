package exchange

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultChunkSize is the number of expenses per bulk-import request.
const defaultChunkSize = 100

// Submitter pushes one chunk of import data to the remote store.
// Implementations must be safe for sequential reuse; they are never
// called concurrently.
type Submitter interface {
	SubmitChunk(ctx context.Context, request BulkImportRequest) (BulkImportResponse, error)
}

// BulkImportRequest is the wire format of one chunk. Friends, groups and
// group memberships ride along only on the first chunk; later chunks
// carry expenses only.
type BulkImportRequest struct {
	Friends  []BulkFriend  `json:"friends"`
	Groups   []BulkGroup   `json:"groups"`
	Expenses []BulkExpense `json:"expenses"`
}

type BulkFriend struct {
	MemberID           uuid.UUID `json:"member_id"`
	Name               string    `json:"name"`
	Nickname           string    `json:"nickname"`
	Status             string    `json:"status"`
	ProfileImageURL    string    `json:"profile_image_url"`
	ProfileAvatarColor string    `json:"profile_avatar_color"`
}

type BulkGroup struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Members  []BulkGroupMember `json:"members"`
	IsDirect bool              `json:"is_direct"`
}

type BulkGroupMember struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	ProfileAvatarColor string    `json:"profile_avatar_color"`
}

type BulkExpense struct {
	ID                   uuid.UUID         `json:"id"`
	GroupID              uuid.UUID         `json:"group_id"`
	Description          string            `json:"description"`
	DateMS               int64             `json:"date_ms"`
	TotalAmount          decimal.Decimal   `json:"total_amount"`
	PaidByMemberID       uuid.UUID         `json:"paid_by_member_id"`
	InvolvedMemberIDs    []uuid.UUID       `json:"involved_member_ids"`
	Splits               []BulkSplit       `json:"splits"`
	IsSettled            bool              `json:"is_settled"`
	ParticipantMemberIDs []uuid.UUID       `json:"participant_member_ids"`
	Participants         []BulkParticipant `json:"participants"`
	Subexpenses          []BulkSubexpense  `json:"subexpenses,omitempty"`
}

type BulkSplit struct {
	ID        uuid.UUID       `json:"id"`
	MemberID  uuid.UUID       `json:"member_id"`
	Amount    decimal.Decimal `json:"amount"`
	IsSettled bool            `json:"is_settled"`
}

type BulkParticipant struct {
	MemberID           uuid.UUID `json:"member_id"`
	Name               string    `json:"name"`
	LinkedAccountID    string    `json:"linked_account_id,omitempty"`
	LinkedAccountEmail string    `json:"linked_account_email,omitempty"`
}

type BulkSubexpense struct {
	ID     uuid.UUID       `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

// BulkImportResponse is the remote store's answer for one chunk.
type BulkImportResponse struct {
	Created CreatedCounts `json:"created"`
	Errors  []string      `json:"errors"`
}

// CreatedCounts sums what the remote store created.
type CreatedCounts struct {
	Friends  int `json:"friends"`
	Groups   int `json:"groups"`
	Expenses int `json:"expenses"`
}

func (c *CreatedCounts) add(other CreatedCounts) {
	c.Friends += other.Friends
	c.Groups += other.Groups
	c.Expenses += other.Expenses
}

// SubmitResult aggregates the outcome of all chunk submissions.
type SubmitResult struct {
	Created  CreatedCounts
	Errors   []string
	Requests int
}

// Coordinator submits one import's data to the remote store in bounded
// chunks.
type Coordinator struct {
	Submitter Submitter
	ChunkSize int
}

// Submit remaps the parsed snapshot to target IDs, partitions the
// expenses into chunks and submits them sequentially. A chunk failure is
// recorded and submission continues with the next chunk; the remote
// creation order stays deterministic and a failure is always
// attributable to one chunk index.
//
// A snapshot without expenses still causes one request so that friends
// and groups are synced.
func (c Coordinator) Submit(ctx context.Context, snapshot Snapshot, merge MergeResult) SubmitResult {
	chunkSize := c.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	friends, groups := remapRoster(snapshot, merge)
	expenses := remapExpenses(snapshot, merge)

	var chunks []BulkImportRequest
	if len(expenses) == 0 {
		chunks = []BulkImportRequest{{Friends: friends, Groups: groups, Expenses: []BulkExpense{}}}
	} else {
		for start := 0; start < len(expenses); start += chunkSize {
			end := min(start+chunkSize, len(expenses))

			request := BulkImportRequest{Expenses: expenses[start:end]}
			if start == 0 {
				request.Friends = friends
				request.Groups = groups
			}

			chunks = append(chunks, request)
		}
	}

	result := SubmitResult{Requests: len(chunks)}

	for i, chunk := range chunks {
		// The only legitimate suspension point of an import; a caller
		// cancelling mid-run loses at most the remaining chunks.
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Chunk %d failed: %v", i+1, err))
			continue
		}

		response, err := c.Submitter.SubmitChunk(ctx, chunk)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Chunk %d failed: %v", i+1, err))
			continue
		}

		result.Created.add(response.Created)
		result.Errors = append(result.Errors, response.Errors...)
	}

	return result
}

// remapRoster builds the friend and group payloads with all imported IDs
// replaced by the target IDs the merge resolved, so that the remote
// store ends up referentially identical to the local one.
func remapRoster(snapshot Snapshot, merge MergeResult) ([]BulkFriend, []BulkGroup) {
	friends := make([]BulkFriend, 0, len(snapshot.Friends))
	for _, friend := range snapshot.Friends {
		target, ok := merge.Mapping.Target(friend.MemberID)
		if !ok {
			continue
		}

		status := friend.Status
		if status == "" {
			status = "friend"
		}

		friends = append(friends, BulkFriend{
			MemberID:           target,
			Name:               friend.Name,
			Nickname:           friend.Nickname,
			Status:             status,
			ProfileImageURL:    friend.ProfileImageURL,
			ProfileAvatarColor: friend.ProfileColorHex,
		})
	}

	groups := make([]BulkGroup, 0, len(snapshot.Groups))
	for _, group := range snapshot.Groups {
		groupID, ok := merge.GroupIDs[group.GroupID]
		if !ok {
			continue
		}

		bulkGroup := BulkGroup{
			ID:       groupID,
			Name:     group.Name,
			IsDirect: group.IsDirect,
			Members:  make([]BulkGroupMember, 0, group.MemberCount),
		}

		for _, member := range snapshot.membersFor(group.GroupID) {
			target, ok := merge.Mapping.Target(member.MemberID)
			if !ok {
				continue
			}

			bulkGroup.Members = append(bulkGroup.Members, BulkGroupMember{
				ID:                 target,
				Name:               member.MemberName,
				ProfileAvatarColor: member.ProfileColorHex,
			})
		}

		groups = append(groups, bulkGroup)
	}

	return friends, groups
}

// remapExpenses builds the expense payloads with resolved IDs. Expenses
// whose group was never mapped are dropped here as well; the merge
// already reported them as warnings.
func remapExpenses(snapshot Snapshot, merge MergeResult) []BulkExpense {
	target := func(id uuid.UUID) uuid.UUID {
		if resolved, ok := merge.Mapping.Target(id); ok {
			return resolved
		}
		return id
	}

	expenses := make([]BulkExpense, 0, len(snapshot.Expenses))

	for _, expense := range snapshot.Expenses {
		groupID, ok := merge.GroupIDs[expense.GroupID]
		if !ok {
			continue
		}

		bulk := BulkExpense{
			ID:             uuid.New(),
			GroupID:        groupID,
			Description:    expense.Description,
			DateMS:         expense.Date.UnixMilli(),
			TotalAmount:    expense.TotalAmount,
			PaidByMemberID: target(expense.PaidByMemberID),
			IsSettled:      expense.IsSettled,
		}

		for _, member := range snapshot.involvedFor(expense.ExpenseID) {
			bulk.InvolvedMemberIDs = append(bulk.InvolvedMemberIDs, target(member.MemberID))
		}

		for _, split := range snapshot.splitsFor(expense.ExpenseID) {
			bulk.Splits = append(bulk.Splits, BulkSplit{
				ID:        uuid.New(),
				MemberID:  target(split.MemberID),
				Amount:    split.Amount,
				IsSettled: split.IsSettled,
			})
		}

		for _, sub := range snapshot.subexpensesFor(expense.ExpenseID) {
			bulk.Subexpenses = append(bulk.Subexpenses, BulkSubexpense{
				ID:     uuid.New(),
				Amount: sub.Amount,
			})
		}

		for _, name := range snapshot.participantNamesFor(expense.ExpenseID) {
			memberID := target(name.MemberID)
			bulk.ParticipantMemberIDs = append(bulk.ParticipantMemberIDs, memberID)
			bulk.Participants = append(bulk.Participants, BulkParticipant{
				MemberID: memberID,
				Name:     name.DisplayName,
			})
		}

		expenses = append(expenses, bulk)
	}

	return expenses
}
