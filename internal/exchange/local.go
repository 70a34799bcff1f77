package exchange

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/payback-app/backend/internal/models"
)

// Local is the in-memory view of the local store that one import or
// export operation works against. It is loaded once per operation and
// mutated only by Merge; nothing outside an operation may share it.
type Local struct {
	CurrentUserID   uuid.UUID
	CurrentUserName string
	AccountEmail    string
	Friends         []models.Friend
	Groups          []LocalGroup
	Expenses        []LocalExpense
}

// LocalGroup is a group with its member rows.
type LocalGroup struct {
	models.Group
	Members []models.GroupMember
}

// LocalExpense is an expense with all of its dependent rows.
type LocalExpense struct {
	models.Expense
	Involved         []models.ExpenseInvolvedMember
	Splits           []models.ExpenseSplit
	Subexpenses      []models.Subexpense
	ParticipantNames []models.ParticipantName
}

// Mutations is the list of records an import added to the Local view and
// that still need to be persisted. Every entry is a plain insert except
// UpdatedFriends, which holds peers that were upgraded to friends.
type Mutations struct {
	Friends        []models.Friend
	UpdatedFriends []models.Friend
	Groups         []LocalGroup
	Expenses       []LocalExpense
}

func (m Mutations) empty() bool {
	return len(m.Friends) == 0 && len(m.UpdatedFriends) == 0 && len(m.Groups) == 0 && len(m.Expenses) == 0
}

// LoadLocal reads the full local snapshot from the database.
func LoadLocal(db *gorm.DB) (Local, error) {
	settings, err := models.LoadSettings(db)
	if err != nil {
		return Local{}, err
	}

	local := Local{
		CurrentUserID:   settings.ID,
		CurrentUserName: settings.CurrentUserName,
		AccountEmail:    settings.AccountEmail,
	}

	err = db.Find(&local.Friends).Error
	if err != nil {
		return Local{}, err
	}

	local.Groups, err = loadGroups(db)
	if err != nil {
		return Local{}, err
	}

	local.Expenses, err = loadExpenses(db)
	if err != nil {
		return Local{}, err
	}

	return local, nil
}

// loadGroups reads all groups together with their member rows.
func loadGroups(db *gorm.DB) ([]LocalGroup, error) {
	var groups []models.Group
	err := db.Find(&groups).Error
	if err != nil {
		return nil, err
	}

	loaded := make([]LocalGroup, 0, len(groups))
	for _, group := range groups {
		var members []models.GroupMember
		err = db.Where(&models.GroupMember{GroupID: group.ID}).Find(&members).Error
		if err != nil {
			return nil, err
		}

		loaded = append(loaded, LocalGroup{Group: group, Members: members})
	}

	return loaded, nil
}

// loadExpenses reads all expenses together with their dependent rows.
func loadExpenses(db *gorm.DB) ([]LocalExpense, error) {
	var expenses []models.Expense
	err := db.Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	loaded := make([]LocalExpense, 0, len(expenses))
	for _, expense := range expenses {
		e := LocalExpense{Expense: expense}

		err = db.Where(&models.ExpenseInvolvedMember{ExpenseID: expense.ID}).Find(&e.Involved).Error
		if err != nil {
			return nil, err
		}

		err = db.Where(&models.ExpenseSplit{ExpenseID: expense.ID}).Find(&e.Splits).Error
		if err != nil {
			return nil, err
		}

		err = db.Where(&models.Subexpense{ExpenseID: expense.ID}).Find(&e.Subexpenses).Error
		if err != nil {
			return nil, err
		}

		err = db.Where(&models.ParticipantName{ExpenseID: expense.ID}).Find(&e.ParticipantNames).Error
		if err != nil {
			return nil, err
		}

		loaded = append(loaded, e)
	}

	return loaded, nil
}

// persist writes all mutations in one transaction so that a failed
// import never leaves a partially written store.
func persist(db *gorm.DB, mutations Mutations) error {
	if mutations.empty() {
		return nil
	}

	tx := db.Begin()

	for _, friend := range mutations.Friends {
		friend := friend
		if err := tx.Create(&friend).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	for _, friend := range mutations.UpdatedFriends {
		if err := tx.Model(&models.Friend{}).Where("id = ?", friend.ID).Update("status", friend.Status).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	for _, group := range mutations.Groups {
		group := group
		if err := tx.Create(&group.Group).Error; err != nil {
			tx.Rollback()
			return err
		}

		for _, member := range group.Members {
			member := member
			if err := tx.Create(&member).Error; err != nil {
				tx.Rollback()
				return err
			}
		}
	}

	for _, expense := range mutations.Expenses {
		expense := expense
		if err := tx.Create(&expense.Expense).Error; err != nil {
			tx.Rollback()
			return err
		}

		for _, involved := range expense.Involved {
			involved := involved
			if err := tx.Create(&involved).Error; err != nil {
				tx.Rollback()
				return err
			}
		}

		for _, split := range expense.Splits {
			split := split
			if err := tx.Create(&split).Error; err != nil {
				tx.Rollback()
				return err
			}
		}

		for _, sub := range expense.Subexpenses {
			sub := sub
			if err := tx.Create(&sub).Error; err != nil {
				tx.Rollback()
				return err
			}
		}

		for _, name := range expense.ParticipantNames {
			name := name
			if err := tx.Create(&name).Error; err != nil {
				tx.Rollback()
				return err
			}
		}
	}

	return tx.Commit().Error
}
