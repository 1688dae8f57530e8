package models

import (
	"time"
)

// Manager представляет менеджера банка, обрабатывающего заявки
type Manager struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	FirstName  string    `gorm:"column:first_name;not null;size:50"`
	LastName   string    `gorm:"column:last_name;not null;size:50"`
	Email      string    `gorm:"column:email;unique;not null;size:100;index"`
	Password   string    `gorm:"column:password;not null;size:100"`
	EmployeeID string    `gorm:"column:employee_id;unique;not null;size:20"`
	Department string    `gorm:"column:department;size:50"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

// TableName возвращает имя таблицы для модели Manager
func (Manager) TableName() string {
	return "managers"
}

// FullName возвращает полное имя менеджера
func (m *Manager) FullName() string {
	return m.FirstName + " " + m.LastName
}
