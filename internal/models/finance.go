package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FinanceType string

const (
	FinancePayment FinanceType = "Payment"
	FinanceRefund  FinanceType = "Refund"
	FinanceExpense FinanceType = "Expense"
)

type FinanceStatus string

const (
	FinancePending   FinanceStatus = "Pending"
	FinanceCompleted FinanceStatus = "Completed"
	FinanceFailed    FinanceStatus = "Failed"
	FinanceRefunded  FinanceStatus = "Refunded"
)

type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "Credit Card"
	MethodDebitCard    PaymentMethod = "Debit Card"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodCash         PaymentMethod = "Cash"
)

type Finance struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Type        FinanceType `gorm:"size:20;not null;index" json:"type"`
	Amount      float64     `gorm:"not null" json:"amount"`
	Description string      `gorm:"size:255;not null" json:"description"`

	ParentID uuid.UUID `gorm:"type:uuid;not null;index" json:"parentId"`
	Parent   *User     `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"parent,omitempty"`

	BabysitterID *uuid.UUID `gorm:"type:uuid;index" json:"babysitterId"`
	Babysitter   *User      `gorm:"foreignKey:BabysitterID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"babysitter,omitempty"`

	ChildID *uuid.UUID `gorm:"type:uuid;index" json:"childId"`
	Child   *Child     `gorm:"foreignKey:ChildID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"child,omitempty"`

	Date          Date          `gorm:"not null;index" json:"date"`
	Status        FinanceStatus `gorm:"size:20;default:'Pending'" json:"status"`
	PaymentMethod PaymentMethod `gorm:"size:20;not null" json:"paymentMethod"`
	TransactionID string        `gorm:"size:100;index" json:"transactionId"`
	Receipt       string        `gorm:"size:255" json:"receipt"`
	CheckoutURL   string        `gorm:"size:255" json:"checkoutUrl"`
	Notes         string        `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (f *Finance) BeforeCreate(tx *gorm.DB) error {
	ensureID(&f.ID)
	return nil
}
