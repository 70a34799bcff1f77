package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group represents a set of people sharing expenses, e.g. a trip or a
// household. Direct groups are the implicit one-on-one groups between
// the current user and a single friend.
type Group struct {
	DefaultModel
	Name     string
	IsDirect bool
	IsDebug  bool
}

var ErrGroupNameEmpty = errors.New("the group name must not be empty")

func (g *Group) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	return nil
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	if g.Name == "" {
		return ErrGroupNameEmpty
	}

	return nil
}

// GroupMember is the join row between a group and a person. The display
// name and avatar fields are denormalized so that a group remains
// renderable even for members without a friend record.
type GroupMember struct {
	Timestamps
	GroupID         uuid.UUID `gorm:"primaryKey"`
	Group           Group     `json:"-"`
	MemberID        uuid.UUID `gorm:"primaryKey"`
	MemberName      string
	ProfileImageURL string
	ProfileColorHex string
}

func (m *GroupMember) BeforeSave(_ *gorm.DB) error {
	m.MemberName = strings.TrimSpace(m.MemberName)
	return nil
}
