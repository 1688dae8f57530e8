package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Ошибки операций по балансу карты
var (
	ErrNonPositiveAmount = errors.New("сумма операции должна быть больше 0")
	ErrCreditLimitExceed = errors.New("операция превышает кредитный лимит")
)

// CreditCard представляет выпущенную кредитную карту.
// Инвариант: AvailableCredit == CreditLimit - CurrentBalance после
// каждой операции; CurrentBalance никогда не становится отрицательным.
type CreditCard struct {
	gorm.Model
	CustomerID          uint       `gorm:"not null;index"`
	Customer            Customer   `gorm:"foreignKey:CustomerID"`
	CardHolderName      string     `gorm:"not null;size:100"`
	NumberEncrypted     string     `gorm:"not null"`
	NumberHMAC          string     `gorm:"not null;index"`
	ExpirationEncrypted string     `gorm:"not null"`
	ExpirationHMAC      string     `gorm:"not null"`
	CVV                 string     `gorm:"not null"` // bcrypt-хэш
	PIN                 string     `gorm:"size:100"` // bcrypt-хэш, пусто пока не установлен
	BankName            string     `gorm:"not null;size:100"`
	CardName            string     `gorm:"not null;size:100"`
	CardType            string     `gorm:"not null;size:50"`
	CreditLimit         float64    `gorm:"type:decimal(20,2);not null"`
	CurrentBalance      float64    `gorm:"type:decimal(20,2);not null;default:0.0"`
	AvailableCredit     float64    `gorm:"type:decimal(20,2);not null"`
	InterestRate        float64    `gorm:"type:decimal(5,2);not null"` // Годовая ставка, %
	IsActive            bool       `gorm:"not null;default:true"`
	Transactions        []CardTransaction `gorm:"foreignKey:CardID"`
}

// TableName возвращает имя таблицы для модели CreditCard
func (CreditCard) TableName() string {
	return "credit_cards"
}

// ApplyDebit увеличивает задолженность по карте (покупка, комиссия,
// проценты, снятие наличных). Лимит проверяется и здесь: прямое списание
// в обход постера не может превысить кредитный лимит.
func (c *CreditCard) ApplyDebit(amount float64) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	if c.CurrentBalance+amount > c.CreditLimit {
		return ErrCreditLimitExceed
	}
	c.CurrentBalance += amount
	c.AvailableCredit = c.CreditLimit - c.CurrentBalance
	return nil
}

// ApplyCredit уменьшает задолженность по карте (платеж, возврат).
// Переплата не создает отрицательный баланс: задолженность
// ограничивается нулем снизу.
func (c *CreditCard) ApplyCredit(amount float64) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	c.CurrentBalance -= amount
	if c.CurrentBalance < 0 {
		c.CurrentBalance = 0
	}
	c.AvailableCredit = c.CreditLimit - c.CurrentBalance
	return nil
}

// Utilization возвращает использование кредитного лимита в процентах
func (c *CreditCard) Utilization() float64 {
	if c.CreditLimit <= 0 {
		return 0
	}
	return c.CurrentBalance / c.CreditLimit * 100
}

// ExpirationDate вычисляет дату истечения срока действия карты
// (текущий месяц/год + 5 лет, последний день месяца)
func ExpirationDate(now time.Time) time.Time {
	expiration := now.AddDate(5, 0, 0)
	return time.Date(expiration.Year(), expiration.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}
