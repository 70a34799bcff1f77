package exchange

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payback-app/backend/internal/models"
)

func TestDetectConflictsCaseInsensitive(t *testing.T) {
	existing := models.Friend{
		DefaultModel: models.DefaultModel{ID: uuid.New()},
		Name:         "Alice",
		Status:       models.FriendStatusFriend,
	}

	local := Local{
		CurrentUserID:   uuid.New(),
		CurrentUserName: "Me",
		Friends:         []models.Friend{existing},
	}

	imported := uuid.New()
	snapshot := Snapshot{
		Friends: []Friend{{MemberID: imported, Name: "aLiCe"}},
	}

	conflicts := DetectConflicts(snapshot, local)
	require.Len(t, conflicts, 1)
	assert.Equal(t, imported, conflicts[0].ImportedMemberID)
	assert.Equal(t, "aLiCe", conflicts[0].ImportedName)
	assert.Equal(t, existing.ID, conflicts[0].ExistingFriend.ID)
}

func TestDetectConflictsNoMatch(t *testing.T) {
	local := Local{
		CurrentUserID:   uuid.New(),
		CurrentUserName: "Me",
		Friends: []models.Friend{{
			DefaultModel: models.DefaultModel{ID: uuid.New()},
			Name:         "Alice",
		}},
	}

	snapshot := Snapshot{
		Friends: []Friend{{MemberID: uuid.New(), Name: "Charlie"}},
	}

	assert.Empty(t, DetectConflicts(snapshot, local))
}

func TestDetectConflictsSkipsCurrentUser(t *testing.T) {
	currentUserID := uuid.New()
	importedUserID := uuid.New()

	local := Local{
		CurrentUserID:   currentUserID,
		CurrentUserName: "Me",
		Friends: []models.Friend{{
			DefaultModel: models.DefaultModel{ID: currentUserID},
			Name:         "Me",
		}},
	}

	// The remote current user carries the same name as a local friend
	// record for the current user; neither side may conflict
	snapshot := Snapshot{
		Header:  Header{CurrentUserID: importedUserID, CurrentUserName: "Me"},
		Friends: []Friend{{MemberID: importedUserID, Name: "Me"}},
	}

	assert.Empty(t, DetectConflicts(snapshot, local))
}

func TestDetectConflictsGroupMembersAreCandidates(t *testing.T) {
	peerID := uuid.New()

	local := Local{
		CurrentUserID:   uuid.New(),
		CurrentUserName: "Me",
		Groups: []LocalGroup{{
			Group: models.Group{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Trip"},
			Members: []models.GroupMember{{
				MemberID:   peerID,
				MemberName: "Bob",
			}},
		}},
	}

	snapshot := Snapshot{
		Friends: []Friend{{MemberID: uuid.New(), Name: "bob"}},
	}

	conflicts := DetectConflicts(snapshot, local)
	require.Len(t, conflicts, 1)
	assert.Equal(t, peerID, conflicts[0].ExistingFriend.ID)
	assert.Equal(t, models.FriendStatusPeer, conflicts[0].ExistingFriend.Status)
}

func TestDetectConflictsFlagsEachImportedIDOnce(t *testing.T) {
	local := Local{
		CurrentUserID:   uuid.New(),
		CurrentUserName: "Me",
		Friends: []models.Friend{{
			DefaultModel: models.DefaultModel{ID: uuid.New()},
			Name:         "Alice",
		}},
	}

	// Alice is a friend and a member of two imported groups
	imported := uuid.New()
	groupA := uuid.New()
	groupB := uuid.New()

	snapshot := Snapshot{
		Friends: []Friend{{MemberID: imported, Name: "Alice"}},
		Groups: []Group{
			{GroupID: groupA, Name: "Trip"},
			{GroupID: groupB, Name: "Dinner Club"},
		},
		GroupMembers: []GroupMember{
			{GroupID: groupA, MemberID: imported, MemberName: "Alice"},
			{GroupID: groupB, MemberID: imported, MemberName: "Alice"},
		},
	}

	assert.Len(t, DetectConflicts(snapshot, local), 1)
}
