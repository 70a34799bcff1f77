package exchange

import (
	"github.com/google/uuid"
)

// IdentityMapping is the session-scoped mapping from imported member IDs
// to target IDs. It lives for exactly one import operation and is not
// safe for concurrent use.
//
// Both maps grow monotonically: once an imported ID has a target it is
// never remapped, and once a name has claimed a target ID every later
// occurrence of that name resolves to it. Resolution order therefore
// matters; Merge resolves friends first, then group members, then
// expense members, then free-text participant names.
type IdentityMapping struct {
	targets map[uuid.UUID]uuid.UUID
	names   map[string]uuid.UUID

	currentUserID uuid.UUID
}

// NewIdentityMapping creates the mapping for one import run. The current
// user's imported ID always maps to the local current-user ID, and both
// the local and the imported display name seed the name cache so that no
// duplicate "self" friend can ever be created.
func NewIdentityMapping(header Header, local Local) *IdentityMapping {
	m := &IdentityMapping{
		targets:       make(map[uuid.UUID]uuid.UUID),
		names:         make(map[string]uuid.UUID),
		currentUserID: local.CurrentUserID,
	}

	if header.CurrentUserID != uuid.Nil {
		m.targets[header.CurrentUserID] = local.CurrentUserID
	}
	if name := foldName(local.CurrentUserName); name != "" {
		m.names[name] = local.CurrentUserID
	}
	if name := foldName(header.CurrentUserName); name != "" {
		m.names[name] = local.CurrentUserID
	}

	return m
}

// Target returns the target ID an imported ID has already resolved to.
func (m *IdentityMapping) Target(importedID uuid.UUID) (uuid.UUID, bool) {
	id, ok := m.targets[importedID]
	return id, ok
}

// KnownName reports whether a display name has already claimed a target
// ID in this run.
func (m *IdentityMapping) KnownName(name string) bool {
	_, ok := m.names[foldName(name)]
	return ok
}

// Resolve computes the target ID for one imported member.
//
// The precedence is fixed: an already-resolved imported ID wins, then an
// explicit resolution, then the name cache, and only then is a fresh ID
// allocated. A CreateNew resolution still consults the name cache:
// "create new" means distinct from the existing store, not distinct from
// other rows with the same name in this import.
func (m *IdentityMapping) Resolve(importedID uuid.UUID, name string, resolutions Resolutions) uuid.UUID {
	if target, ok := m.targets[importedID]; ok {
		return target
	}

	var target uuid.UUID

	if resolution, ok := resolutions[importedID]; ok && resolution.Kind == ResolutionLinkExisting && resolution.TargetID != uuid.Nil {
		target = resolution.TargetID
	} else {
		// CreateNew and never-conflicted names share the same logic:
		// collapse onto a target already claimed by this name, or
		// allocate a fresh one.
		key := foldName(name)
		if existing, ok := m.names[key]; ok && key != "" {
			target = existing
		} else {
			target = uuid.New()
		}
	}

	m.record(importedID, name, target)
	return target
}

// record stores a resolved pair in both maps.
func (m *IdentityMapping) record(importedID uuid.UUID, name string, target uuid.UUID) {
	if importedID != uuid.Nil {
		m.targets[importedID] = target
	}

	key := foldName(name)
	if _, ok := m.names[key]; !ok && key != "" {
		m.names[key] = target
	}
}
