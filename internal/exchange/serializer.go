package exchange

import (
	"strconv"
	"strings"
	"time"

	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"

	"github.com/payback-app/backend/internal/exchange/lineformat"
)

// nearZero is the threshold below which splits and subexpenses are left
// out of exports. Zero-amount rows carry no information and inflate the
// file, this is not a correctness rule.
var nearZero = decimal.NewFromFloat(0.001)

// ExportOptions filter what Export writes.
type ExportOptions struct {
	// ExcludeGroups holds glob patterns; groups whose name matches any
	// pattern are left out together with their expenses.
	ExcludeGroups []string

	// IncludeDebug also exports records flagged as debug data.
	IncludeDebug bool
}

func (o ExportOptions) excludesGroup(name string, isDebug bool) bool {
	if isDebug && !o.IncludeDebug {
		return true
	}

	for _, pattern := range o.ExcludeGroups {
		if glob.Glob(pattern, name) {
			return true
		}
	}

	return false
}

// Export serializes the local snapshot into the text format Parse reads.
func Export(local Local, options ExportOptions) string {
	var b strings.Builder

	writeLine := func(fields ...string) {
		b.WriteString(lineformat.DetokenizeFields(fields))
		b.WriteByte('\n')
	}

	section := func(name string) {
		b.WriteByte('\n')
		b.WriteString("[" + name + "]\n")
	}

	b.WriteString(headerMarker + "\n")
	b.WriteString("EXPORTED_AT: " + time.Now().UTC().Format(time.RFC3339) + "\n")
	b.WriteString("ACCOUNT_EMAIL: " + local.AccountEmail + "\n")
	b.WriteString("CURRENT_USER_ID: " + local.CurrentUserID.String() + "\n")
	b.WriteString("CURRENT_USER_NAME: " + lineformat.DetokenizeFields([]string{local.CurrentUserName}) + "\n")

	excluded := make(map[string]bool)
	for _, group := range local.Groups {
		if options.excludesGroup(group.Name, group.IsDebug) {
			excluded[group.ID.String()] = true
		}
	}

	section(sectionFriends)
	for _, friend := range local.Friends {
		if friend.ID == local.CurrentUserID {
			continue
		}

		writeLine(
			friend.ID.String(),
			friend.Name,
			friend.Nickname,
			strconv.FormatBool(friend.HasLinkedAccount),
			friend.LinkedAccountID,
			friend.LinkedAccountEmail,
			friend.ProfileImageURL,
			friend.ProfileColorHex,
			friend.Status,
		)
	}

	section(sectionGroups)
	for _, group := range local.Groups {
		if excluded[group.ID.String()] {
			continue
		}

		writeLine(
			group.ID.String(),
			group.Name,
			strconv.FormatBool(group.IsDirect),
			strconv.FormatBool(group.IsDebug),
			group.CreatedAt.UTC().Format(time.RFC3339),
			strconv.Itoa(len(group.Members)),
		)
	}

	section(sectionGroupMembers)
	for _, group := range local.Groups {
		if excluded[group.ID.String()] {
			continue
		}

		for _, member := range group.Members {
			writeLine(
				group.ID.String(),
				member.MemberID.String(),
				member.MemberName,
				member.ProfileImageURL,
				member.ProfileColorHex,
			)
		}
	}

	exportable := make([]LocalExpense, 0, len(local.Expenses))
	for _, expense := range local.Expenses {
		if excluded[expense.GroupID.String()] {
			continue
		}
		if expense.IsDebug && !options.IncludeDebug {
			continue
		}
		exportable = append(exportable, expense)
	}

	section(sectionExpenses)
	for _, expense := range exportable {
		writeLine(
			expense.ID.String(),
			expense.GroupID.String(),
			expense.Description,
			expense.Date.UTC().Format(time.RFC3339),
			expense.TotalAmount.String(),
			expense.PaidByMemberID.String(),
			strconv.FormatBool(expense.IsSettled),
			strconv.FormatBool(expense.IsDebug),
		)
	}

	section(sectionInvolvedMembers)
	for _, expense := range exportable {
		for _, member := range expense.Involved {
			writeLine(expense.ID.String(), member.MemberID.String())
		}
	}

	section(sectionSplits)
	for _, expense := range exportable {
		for _, split := range expense.Splits {
			if split.Amount.Abs().LessThanOrEqual(nearZero) {
				continue
			}

			writeLine(
				expense.ID.String(),
				split.ID.String(),
				split.MemberID.String(),
				split.Amount.String(),
				strconv.FormatBool(split.IsSettled),
			)
		}
	}

	section(sectionSubexpenses)
	for _, expense := range exportable {
		for _, sub := range expense.Subexpenses {
			if sub.Amount.Abs().LessThanOrEqual(nearZero) {
				continue
			}

			writeLine(expense.ID.String(), sub.ID.String(), sub.Amount.String())
		}
	}

	section(sectionParticipantNames)
	for _, expense := range exportable {
		for _, name := range expense.ParticipantNames {
			writeLine(expense.ID.String(), name.MemberID.String(), name.DisplayName)
		}
	}

	b.WriteByte('\n')
	b.WriteString(footerMarker + "\n")

	return b.String()
}
