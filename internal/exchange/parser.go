package exchange

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/payback-app/backend/internal/exchange/lineformat"
)

// Envelope markers. The V1 marker is still accepted so that old exports
// remain importable.
const (
	headerMarker       = "===PAYBACK_EXPORT==="
	legacyHeaderMarker = "===PAYBACK_EXPORT_V1==="
	footerMarker       = "===END_PAYBACK_EXPORT==="
)

// Section names of the export format, in the order they are written.
const (
	sectionFriends          = "FRIENDS"
	sectionGroups           = "GROUPS"
	sectionGroupMembers     = "GROUP_MEMBERS"
	sectionExpenses         = "EXPENSES"
	sectionInvolvedMembers  = "EXPENSE_INVOLVED_MEMBERS"
	sectionSplits           = "EXPENSE_SPLITS"
	sectionSubexpenses      = "EXPENSE_SUBEXPENSES"
	sectionParticipantNames = "PARTICIPANT_NAMES"
)

// ErrInvalidFormat is returned when the text is missing the envelope
// markers. Anything below the envelope level is recovered row by row.
var ErrInvalidFormat = errors.New("the file is not a Payback export")

// ValidateFormat reports whether the text carries a valid envelope: a
// recognized header marker and the end marker.
func ValidateFormat(text string) bool {
	var header, footer bool

	for _, line := range strings.Split(text, "\n") {
		switch strings.TrimSpace(line) {
		case headerMarker, legacyHeaderMarker:
			header = true
		case footerMarker:
			footer = true
		}
	}

	return header && footer
}

// Parse turns export text into a Snapshot.
//
// Only a broken envelope is fatal. Rows that fail field-count or type
// checks are dropped and parsing continues; this mirrors the tolerance
// users expect from hand-edited exports.
func Parse(text string) (Snapshot, error) {
	if !ValidateFormat(text) {
		return Snapshot{}, ErrInvalidFormat
	}

	var snapshot Snapshot
	var section string

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)

		// Blank lines, comments and the envelope markers carry no data
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if trimmed == headerMarker || trimmed == legacyHeaderMarker || trimmed == footerMarker {
			continue
		}

		// Section switch
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]")
			continue
		}

		// Header metadata appears before the first section
		if section == "" {
			key, value, found := strings.Cut(trimmed, ":")
			if found {
				snapshot.Header.set(strings.TrimSpace(key), strings.TrimSpace(value))
			}
			continue
		}

		fields := lineformat.TokenizeLine(line)
		if err := snapshot.addRow(section, fields); err != nil {
			log.Debug().Err(err).Str("section", section).Msg("dropping malformed export row")
		}
	}

	return snapshot, nil
}

// set assigns one header metadata line. Unknown keys and unparseable
// values are ignored; header metadata is informational.
func (h *Header) set(key, value string) {
	switch key {
	case "EXPORTED_AT":
		if ts, err := time.Parse(time.RFC3339, value); err == nil {
			h.ExportedAt = ts
		}
	case "ACCOUNT_EMAIL":
		h.AccountEmail = value
	case "CURRENT_USER_ID":
		if id, err := uuid.Parse(value); err == nil {
			h.CurrentUserID = id
		}
	case "CURRENT_USER_NAME":
		h.CurrentUserName = lineformat.TokenizeLine(value)[0]
	}
}

var (
	errFieldCount = errors.New("wrong field count")
	errBadID      = errors.New("invalid UUID")
	errBadNumber  = errors.New("invalid number")
	errBadDate    = errors.New("invalid date")
)

// addRow dispatches one tokenized row to the builder for its section.
// Rows in unknown sections are ignored without error so that newer
// exports with additional sections still import.
func (s *Snapshot) addRow(section string, fields []string) error {
	switch section {
	case sectionFriends:
		return s.addFriend(fields)
	case sectionGroups:
		return s.addGroup(fields)
	case sectionGroupMembers:
		return s.addGroupMember(fields)
	case sectionExpenses:
		return s.addExpense(fields)
	case sectionInvolvedMembers:
		return s.addInvolvedMember(fields)
	case sectionSplits:
		return s.addSplit(fields)
	case sectionSubexpenses:
		return s.addSubexpense(fields)
	case sectionParticipantNames:
		return s.addParticipantName(fields)
	}

	return nil
}

func (s *Snapshot) addFriend(fields []string) error {
	if len(fields) < 9 {
		return errFieldCount
	}

	id, err := uuid.Parse(fields[0])
	if err != nil {
		return errBadID
	}

	hasLinked, _ := strconv.ParseBool(fields[3])

	s.Friends = append(s.Friends, Friend{
		MemberID:           id,
		Name:               fields[1],
		Nickname:           fields[2],
		HasLinkedAccount:   hasLinked,
		LinkedAccountID:    fields[4],
		LinkedAccountEmail: fields[5],
		ProfileImageURL:    fields[6],
		ProfileColorHex:    fields[7],
		Status:             fields[8],
	})
	return nil
}

func (s *Snapshot) addGroup(fields []string) error {
	if len(fields) < 6 {
		return errFieldCount
	}

	id, err := uuid.Parse(fields[0])
	if err != nil {
		return errBadID
	}

	createdAt, err := time.Parse(time.RFC3339, fields[4])
	if err != nil {
		return errBadDate
	}

	memberCount, err := strconv.Atoi(fields[5])
	if err != nil {
		return errBadNumber
	}

	isDirect, _ := strconv.ParseBool(fields[2])
	isDebug, _ := strconv.ParseBool(fields[3])

	s.Groups = append(s.Groups, Group{
		GroupID:     id,
		Name:        fields[1],
		IsDirect:    isDirect,
		IsDebug:     isDebug,
		CreatedAt:   createdAt,
		MemberCount: memberCount,
	})
	return nil
}

func (s *Snapshot) addGroupMember(fields []string) error {
	if len(fields) < 5 {
		return errFieldCount
	}

	groupID, err := uuid.Parse(fields[0])
	if err != nil {
		return errBadID
	}

	memberID, err := uuid.Parse(fields[1])
	if err != nil {
		return errBadID
	}

	s.GroupMembers = append(s.GroupMembers, GroupMember{
		GroupID:         groupID,
		MemberID:        memberID,
		MemberName:      fields[2],
		ProfileImageURL: fields[3],
		ProfileColorHex: fields[4],
	})
	return nil
}

func (s *Snapshot) addExpense(fields []string) error {
	if len(fields) < 8 {
		return errFieldCount
	}

	expenseID, err := uuid.Parse(fields[0])
	if err != nil {
		return errBadID
	}

	groupID, err := uuid.Parse(fields[1])
	if err != nil {
		return errBadID
	}

	date, err := time.Parse(time.RFC3339, fields[3])
	if err != nil {
		return errBadDate
	}

	amount, err := decimal.NewFromString(fields[4])
	if err != nil {
		return errBadNumber
	}

	paidBy, err := uuid.Parse(fields[5])
	if err != nil {
		return errBadID
	}

	isSettled, _ := strconv.ParseBool(fields[6])
	isDebug, _ := strconv.ParseBool(fields[7])

	s.Expenses = append(s.Expenses, Expense{
		ExpenseID:      expenseID,
		GroupID:        groupID,
		Description:    fields[2],
		Date:           date,
		TotalAmount:    amount,
		PaidByMemberID: paidBy,
		IsSettled:      isSettled,
		IsDebug:        isDebug,
	})
	return nil
}

func (s *Snapshot) addInvolvedMember(fields []string) error {
	if len(fields) < 2 {
		return errFieldCount
	}

	expenseID, err := uuid.Parse(fields[0])
	if err != nil {
		return errBadID
	}

	memberID, err := uuid.Parse(fields[1])
	if err != nil {
		return errBadID
	}

	s.InvolvedMembers = append(s.InvolvedMembers, InvolvedMember{
		ExpenseID: expenseID,
		MemberID:  memberID,
	})
	return nil
}

func (s *Snapshot) addSplit(fields []string) error {
	if len(fields) < 5 {
		return errFieldCount
	}

	expenseID, err := uuid.Parse(fields[0])
	if err != nil {
		return errBadID
	}

	splitID, err := uuid.Parse(fields[1])
	if err != nil {
		return errBadID
	}

	memberID, err := uuid.Parse(fields[2])
	if err != nil {
		return errBadID
	}

	amount, err := decimal.NewFromString(fields[3])
	if err != nil {
		return errBadNumber
	}

	isSettled, _ := strconv.ParseBool(fields[4])

	s.Splits = append(s.Splits, Split{
		ExpenseID: expenseID,
		SplitID:   splitID,
		MemberID:  memberID,
		Amount:    amount,
		IsSettled: isSettled,
	})
	return nil
}

func (s *Snapshot) addSubexpense(fields []string) error {
	if len(fields) < 3 {
		return errFieldCount
	}

	expenseID, err := uuid.Parse(fields[0])
	if err != nil {
		return errBadID
	}

	subexpenseID, err := uuid.Parse(fields[1])
	if err != nil {
		return errBadID
	}

	amount, err := decimal.NewFromString(fields[2])
	if err != nil {
		return errBadNumber
	}

	s.Subexpenses = append(s.Subexpenses, Subexpense{
		ExpenseID:    expenseID,
		SubexpenseID: subexpenseID,
		Amount:       amount,
	})
	return nil
}

func (s *Snapshot) addParticipantName(fields []string) error {
	if len(fields) < 3 {
		return errFieldCount
	}

	expenseID, err := uuid.Parse(fields[0])
	if err != nil {
		return errBadID
	}

	memberID, err := uuid.Parse(fields[1])
	if err != nil {
		return errBadID
	}

	s.ParticipantNames = append(s.ParticipantNames, ParticipantName{
		ExpenseID:   expenseID,
		MemberID:    memberID,
		DisplayName: fields[2],
	})
	return nil
}
