package models

import (
	"gorm.io/gorm"
	"time"
)

// ApplicationStatus представляет статус заявки на карту
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// CardApplication представляет заявку клиента на кредитную карту.
// Заявка создается в статусе PENDING и ровно один раз переводится
// менеджером в терминальный статус APPROVED или REJECTED.
type CardApplication struct {
	gorm.Model
	CustomerID      uint              `gorm:"not null;index"`
	Customer        Customer          `gorm:"foreignKey:CustomerID"`
	CardName        string            `gorm:"not null;size:100"`
	BankName        string            `gorm:"not null;size:100"`
	CardType        string            `gorm:"not null;size:50;default:'Standard'"`
	RequestedLimit  float64           `gorm:"type:decimal(20,2);not null"`
	Status          ApplicationStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ApprovedLimit   *float64          `gorm:"type:decimal(20,2)"` // Установлен только при одобрении
	RejectionReason *string           `gorm:"size:255"`           // Установлена только при отказе
	ProcessedByID   *uint             // ID менеджера, принявшего решение
	AppliedAt       time.Time         `gorm:"not null"`
	ProcessedAt     *time.Time        // Установлен, когда статус не PENDING
}

// TableName возвращает имя таблицы для модели CardApplication
func (CardApplication) TableName() string {
	return "card_applications"
}

// IsPending сообщает, ожидает ли заявка решения
func (a *CardApplication) IsPending() bool {
	return a.Status == ApplicationStatusPending
}
