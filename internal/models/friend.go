package models

import (
	"strings"

	"gorm.io/gorm"
)

// Statuses a person in the roster can have. A peer is someone we only
// know through a shared group, a friend is part of the user's roster.
const (
	FriendStatusFriend = "friend"
	FriendStatusPeer   = "peer"
)

// Friend represents a person in the local roster.
//
// The name is deliberately not unique: two distinct people can share a
// name, which is exactly what the import conflict flow exists for.
type Friend struct {
	DefaultModel
	Name               string
	Nickname           string
	HasLinkedAccount   bool
	LinkedAccountID    string
	LinkedAccountEmail string
	ProfileImageURL    string
	ProfileColorHex    string
	Status             string
}

// BeforeSave trims whitespace and defaults the status.
func (f *Friend) BeforeSave(_ *gorm.DB) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Nickname = strings.TrimSpace(f.Nickname)

	if f.Status == "" {
		f.Status = FriendStatusFriend
	}

	return nil
}
