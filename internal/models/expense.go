package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense represents a single shared expense inside a group.
type Expense struct {
	DefaultModel
	GroupID        uuid.UUID
	Group          Group `json:"-"`
	Description    string
	Date           time.Time
	TotalAmount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaidByMemberID uuid.UUID
	IsSettled      bool
	IsDebug        bool
}

var ErrExpenseAmountNegative = errors.New("the total amount of an expense must not be negative")

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Description = strings.TrimSpace(e.Description)

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	return nil
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	if e.TotalAmount.IsNegative() {
		return ErrExpenseAmountNegative
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000,
// see DefaultModel.AfterFind.
func (e *Expense) AfterFind(tx *gorm.DB) error {
	_ = e.DefaultModel.AfterFind(tx)

	e.Date = e.Date.In(time.UTC)
	return nil
}

// ExpenseInvolvedMember is the join row between an expense and a member
// taking part in it.
type ExpenseInvolvedMember struct {
	Timestamps
	ExpenseID uuid.UUID `gorm:"primaryKey"`
	Expense   Expense   `json:"-"`
	MemberID  uuid.UUID `gorm:"primaryKey"`
}

// ExpenseSplit is one member's share of an expense.
type ExpenseSplit struct {
	DefaultModel
	ExpenseID uuid.UUID
	Expense   Expense `json:"-"`
	MemberID  uuid.UUID
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	IsSettled bool
}

// Subexpense is an itemized part of an expense, e.g. one receipt line.
type Subexpense struct {
	DefaultModel
	ExpenseID uuid.UUID
	Expense   Expense `json:"-"`
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

// ParticipantName is a free-text display name for an expense participant
// without a durable identity, e.g. a guest who joined a single dinner.
type ParticipantName struct {
	Timestamps
	ExpenseID   uuid.UUID `gorm:"primaryKey"`
	Expense     Expense   `json:"-"`
	MemberID    uuid.UUID `gorm:"primaryKey"`
	DisplayName string
}

func (p *ParticipantName) BeforeSave(_ *gorm.DB) error {
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	return nil
}
