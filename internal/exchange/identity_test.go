package exchange

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIdentityMappingSeedsCurrentUser(t *testing.T) {
	localUserID := uuid.New()
	remoteUserID := uuid.New()

	m := NewIdentityMapping(
		Header{CurrentUserID: remoteUserID, CurrentUserName: "Remote Me"},
		Local{CurrentUserID: localUserID, CurrentUserName: "Me"},
	)

	target, ok := m.Target(remoteUserID)
	assert.True(t, ok)
	assert.Equal(t, localUserID, target)

	assert.True(t, m.KnownName("me"))
	assert.True(t, m.KnownName("REMOTE ME"))
	assert.False(t, m.KnownName("Alice"))
}

func TestResolveIsStable(t *testing.T) {
	m := NewIdentityMapping(Header{}, Local{CurrentUserID: uuid.New(), CurrentUserName: "Me"})

	imported := uuid.New()
	first := m.Resolve(imported, "Alice", nil)
	second := m.Resolve(imported, "Alice", nil)

	assert.Equal(t, first, second)
	assert.NotEqual(t, uuid.Nil, first)
}

func TestResolveNameCacheCollapsesSameName(t *testing.T) {
	m := NewIdentityMapping(Header{}, Local{CurrentUserID: uuid.New(), CurrentUserName: "Me"})

	// Two different imported IDs with the same folded name end up as one
	// person
	first := m.Resolve(uuid.New(), "Alice", nil)
	second := m.Resolve(uuid.New(), "alice ", nil)

	assert.Equal(t, first, second)
}

func TestResolveLinkExisting(t *testing.T) {
	m := NewIdentityMapping(Header{}, Local{CurrentUserID: uuid.New(), CurrentUserName: "Me"})

	imported := uuid.New()
	existing := uuid.New()

	resolutions := Resolutions{
		imported: {Kind: ResolutionLinkExisting, TargetID: existing},
	}

	assert.Equal(t, existing, m.Resolve(imported, "Alice", resolutions))

	// Another imported member with the same name collapses onto the
	// linked friend through the name cache
	assert.Equal(t, existing, m.Resolve(uuid.New(), "Alice", nil))
}

func TestResolveCreateNewCollapsesWithinImport(t *testing.T) {
	m := NewIdentityMapping(Header{}, Local{CurrentUserID: uuid.New(), CurrentUserName: "Me"})

	first := uuid.New()
	second := uuid.New()

	resolutions := Resolutions{
		first:  {Kind: ResolutionCreateNew},
		second: {Kind: ResolutionCreateNew},
	}

	// CreateNew means distinct from the existing store, not distinct
	// from other rows with the same name in this import
	targetA := m.Resolve(first, "Alice", resolutions)
	targetB := m.Resolve(second, "Alice", resolutions)

	assert.Equal(t, targetA, targetB)
}

func TestResolveDistinctNamesStayDistinct(t *testing.T) {
	m := NewIdentityMapping(Header{}, Local{CurrentUserID: uuid.New(), CurrentUserName: "Me"})

	alice := m.Resolve(uuid.New(), "Alice", nil)
	bob := m.Resolve(uuid.New(), "Bob", nil)

	assert.NotEqual(t, alice, bob)
}

func TestResolveEmptyNameAllocatesFreshID(t *testing.T) {
	m := NewIdentityMapping(Header{}, Local{CurrentUserID: uuid.New(), CurrentUserName: "Me"})

	// Members known only by ID never collapse through the name cache
	first := m.Resolve(uuid.New(), "", nil)
	second := m.Resolve(uuid.New(), "", nil)

	assert.NotEqual(t, first, second)
}

func TestResolveCurrentUserNameCollapsesToCurrentUser(t *testing.T) {
	localUserID := uuid.New()
	m := NewIdentityMapping(Header{}, Local{CurrentUserID: localUserID, CurrentUserName: "Me"})

	assert.Equal(t, localUserID, m.Resolve(uuid.New(), "me", nil))
}
