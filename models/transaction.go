package models

import (
	"time"
)

// TransactionType представляет тип операции по карте
type TransactionType string

const (
	TransactionTypePurchase    TransactionType = "PURCHASE"
	TransactionTypePayment     TransactionType = "PAYMENT"
	TransactionTypeRefund      TransactionType = "REFUND"
	TransactionTypeCashAdvance TransactionType = "CASH_ADVANCE"
	TransactionTypeFee         TransactionType = "FEE"
	TransactionTypeInterest    TransactionType = "INTEREST"
)

// IsDebit сообщает, увеличивает ли операция задолженность по карте
func (t TransactionType) IsDebit() bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeCashAdvance, TransactionTypeFee, TransactionTypeInterest:
		return true
	}
	return false
}

// IsValid сообщает, известен ли тип операции
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypePurchase, TransactionTypePayment, TransactionTypeRefund,
		TransactionTypeCashAdvance, TransactionTypeFee, TransactionTypeInterest:
		return true
	}
	return false
}

// TransactionStatus представляет статус операции
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// CardTransaction представляет одну операцию по кредитной карте
type CardTransaction struct {
	ID               uint              `gorm:"primaryKey;autoIncrement"`
	CardID           uint              `gorm:"column:card_id;not null;index"`
	CustomerID       uint              `gorm:"column:customer_id;not null;index"`
	Type             TransactionType   `gorm:"column:type;type:varchar(20);not null"`
	Amount           float64           `gorm:"column:amount;type:decimal(20,2);not null"`
	Currency         string            `gorm:"column:currency;size:3;not null;default:'INR'"`
	MerchantName     string            `gorm:"column:merchant_name;size:100"`
	MerchantCategory string            `gorm:"column:merchant_category;size:50"`
	Description      string            `gorm:"column:description;size:255"`
	Status           TransactionStatus `gorm:"column:status;type:varchar(20);not null;default:'PENDING'"`
	ReferenceNumber  string            `gorm:"column:reference_number;unique;not null;size:20"`
	TransactionDate  time.Time         `gorm:"column:transaction_date;not null"`
	SettlementDate   *time.Time        `gorm:"column:settlement_date"`
	CreatedAt        time.Time         `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

// TableName возвращает имя таблицы для модели CardTransaction
func (CardTransaction) TableName() string {
	return "card_transactions"
}
