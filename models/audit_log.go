package models

import (
	"time"
)

// AuditLog представляет запись журнала аудита
type AuditLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"column:user_id;not null;index"`
	UserType  string    `gorm:"column:user_type;not null;size:20"`
	Action    string    `gorm:"column:action;not null;size:50;index"`
	Details   string    `gorm:"column:details;type:text"` // JSON с деталями действия
	IPAddress string    `gorm:"column:ip_address;size:45"`
	UserAgent string    `gorm:"column:user_agent;size:255"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
}

// TableName возвращает имя таблицы для модели AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
