package exchange

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/payback-app/backend/internal/models"
)

// Conflict is an imported person whose name matches someone who already
// exists locally. The caller has to decide whether the two are the same
// person before the import can proceed.
type Conflict struct {
	ImportedMemberID        uuid.UUID     `json:"importedMemberId"`
	ImportedName            string        `json:"importedName"`
	ImportedProfileImageURL string        `json:"importedProfileImageUrl"`
	ImportedProfileColorHex string        `json:"importedProfileColorHex"`
	ExistingFriend          models.Friend `json:"existingFriend"`
}

// ResolutionKind is the caller's decision for one conflicting imported
// member ID.
type ResolutionKind string

const (
	// ResolutionCreateNew treats the imported person as distinct from the
	// existing one. Repeated occurrences of the same name within one
	// import still collapse to a single new person.
	ResolutionCreateNew ResolutionKind = "CREATE_NEW"

	// ResolutionLinkExisting aliases the imported person to an existing
	// friend.
	ResolutionLinkExisting ResolutionKind = "LINK_EXISTING"
)

// Resolution is one conflict decision.
type Resolution struct {
	Kind     ResolutionKind `json:"kind" example:"LINK_EXISTING"`
	TargetID uuid.UUID      `json:"targetId,omitempty"`
}

// Resolutions maps imported member IDs to their decisions.
type Resolutions map[uuid.UUID]Resolution

// foldName normalizes a display name for case-insensitive comparison.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// DetectConflicts compares the parsed people against the local roster.
//
// The index covers existing friends and every member of every existing
// group. Parsed friends are checked first, then parsed group members in
// group order. The current user never conflicts, and each imported ID is
// flagged at most once even when it appears in several groups.
func DetectConflicts(snapshot Snapshot, local Local) []Conflict {
	index := make(map[string]models.Friend)

	addToIndex := func(friend models.Friend) {
		if friend.ID == local.CurrentUserID {
			return
		}

		key := foldName(friend.Name)
		if _, ok := index[key]; !ok && key != "" {
			index[key] = friend
		}
	}

	for _, friend := range local.Friends {
		addToIndex(friend)
	}

	for _, group := range local.Groups {
		for _, member := range group.Members {
			addToIndex(models.Friend{
				DefaultModel:    models.DefaultModel{ID: member.MemberID},
				Name:            member.MemberName,
				ProfileImageURL: member.ProfileImageURL,
				ProfileColorHex: member.ProfileColorHex,
				Status:          models.FriendStatusPeer,
			})
		}
	}

	conflicts := make([]Conflict, 0)
	flagged := make(map[uuid.UUID]bool)

	check := func(memberID uuid.UUID, name, imageURL, colorHex string) {
		if memberID == snapshot.Header.CurrentUserID || flagged[memberID] {
			return
		}

		existing, ok := index[foldName(name)]
		if !ok {
			return
		}

		flagged[memberID] = true
		conflicts = append(conflicts, Conflict{
			ImportedMemberID:        memberID,
			ImportedName:            name,
			ImportedProfileImageURL: imageURL,
			ImportedProfileColorHex: colorHex,
			ExistingFriend:          existing,
		})
	}

	for _, friend := range snapshot.Friends {
		check(friend.MemberID, friend.Name, friend.ProfileImageURL, friend.ProfileColorHex)
	}

	for _, group := range snapshot.Groups {
		for _, member := range snapshot.membersFor(group.GroupID) {
			check(member.MemberID, member.MemberName, member.ProfileImageURL, member.ProfileColorHex)
		}
	}

	return conflicts
}
