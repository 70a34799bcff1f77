package models

import (
	"errors"
)

var (
	ErrGeneral                  = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound         = errors.New("there is no")
	ErrGroupMemberNotUnique     = errors.New("the person is already a member of this group")
	ErrParticipantNameNotUnique = errors.New("there is already a participant name for this person on this expense")
)
