package exchange

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Header holds the metadata lines preceding the first section of an
// export.
type Header struct {
	ExportedAt      time.Time
	AccountEmail    string
	CurrentUserID   uuid.UUID
	CurrentUserName string
}

// Snapshot is the parsed form of one export text. All IDs in it are
// foreign: they must not be written to the local store before they have
// been resolved to target IDs.
type Snapshot struct {
	Header           Header
	Friends          []Friend
	Groups           []Group
	GroupMembers     []GroupMember
	Expenses         []Expense
	InvolvedMembers  []InvolvedMember
	Splits           []Split
	Subexpenses      []Subexpense
	ParticipantNames []ParticipantName
}

// Friend is one row of the [FRIENDS] section.
type Friend struct {
	MemberID           uuid.UUID
	Name               string
	Nickname           string
	HasLinkedAccount   bool
	LinkedAccountID    string
	LinkedAccountEmail string
	ProfileImageURL    string
	ProfileColorHex    string
	Status             string
}

// Group is one row of the [GROUPS] section.
type Group struct {
	GroupID     uuid.UUID
	Name        string
	IsDirect    bool
	IsDebug     bool
	CreatedAt   time.Time
	MemberCount int
}

// GroupMember is one row of the [GROUP_MEMBERS] section.
type GroupMember struct {
	GroupID         uuid.UUID
	MemberID        uuid.UUID
	MemberName      string
	ProfileImageURL string
	ProfileColorHex string
}

// Expense is one row of the [EXPENSES] section.
type Expense struct {
	ExpenseID      uuid.UUID
	GroupID        uuid.UUID
	Description    string
	Date           time.Time
	TotalAmount    decimal.Decimal
	PaidByMemberID uuid.UUID
	IsSettled      bool
	IsDebug        bool
}

// InvolvedMember is one row of the [EXPENSE_INVOLVED_MEMBERS] section.
type InvolvedMember struct {
	ExpenseID uuid.UUID
	MemberID  uuid.UUID
}

// Split is one row of the [EXPENSE_SPLITS] section.
type Split struct {
	ExpenseID uuid.UUID
	SplitID   uuid.UUID
	MemberID  uuid.UUID
	Amount    decimal.Decimal
	IsSettled bool
}

// Subexpense is one row of the [EXPENSE_SUBEXPENSES] section.
type Subexpense struct {
	ExpenseID    uuid.UUID
	SubexpenseID uuid.UUID
	Amount       decimal.Decimal
}

// ParticipantName is one row of the [PARTICIPANT_NAMES] section: a
// free-text display name for a participant without a durable identity.
type ParticipantName struct {
	ExpenseID   uuid.UUID
	MemberID    uuid.UUID
	DisplayName string
}

// involvedFor collects the involved member IDs for one expense.
func (s Snapshot) involvedFor(expenseID uuid.UUID) []InvolvedMember {
	var members []InvolvedMember
	for _, m := range s.InvolvedMembers {
		if m.ExpenseID == expenseID {
			members = append(members, m)
		}
	}
	return members
}

// splitsFor collects the splits for one expense.
func (s Snapshot) splitsFor(expenseID uuid.UUID) []Split {
	var splits []Split
	for _, sp := range s.Splits {
		if sp.ExpenseID == expenseID {
			splits = append(splits, sp)
		}
	}
	return splits
}

// subexpensesFor collects the subexpenses for one expense.
func (s Snapshot) subexpensesFor(expenseID uuid.UUID) []Subexpense {
	var subs []Subexpense
	for _, sub := range s.Subexpenses {
		if sub.ExpenseID == expenseID {
			subs = append(subs, sub)
		}
	}
	return subs
}

// participantNamesFor collects the free-text participant names for one
// expense.
func (s Snapshot) participantNamesFor(expenseID uuid.UUID) []ParticipantName {
	var names []ParticipantName
	for _, n := range s.ParticipantNames {
		if n.ExpenseID == expenseID {
			names = append(names, n)
		}
	}
	return names
}

// membersFor collects the member rows for one group.
func (s Snapshot) membersFor(groupID uuid.UUID) []GroupMember {
	var members []GroupMember
	for _, m := range s.GroupMembers {
		if m.GroupID == groupID {
			members = append(members, m)
		}
	}
	return members
}
