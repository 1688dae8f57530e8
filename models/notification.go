package models

import (
	"time"
)

// Notification представляет уведомление пользователя
type Notification struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	UserID    uint       `gorm:"column:user_id;not null;index"`
	UserType  string     `gorm:"column:user_type;not null;size:20"` // customer или manager
	Type      string     `gorm:"column:type;not null;size:50"`
	Message   string     `gorm:"column:message;not null;size:500"`
	Data      string     `gorm:"column:data;type:text"` // JSON с деталями события
	IsRead    bool       `gorm:"column:is_read;not null;default:false"`
	ReadAt    *time.Time `gorm:"column:read_at"`
	CreatedAt time.Time  `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
}

// TableName возвращает имя таблицы для модели Notification
func (Notification) TableName() string {
	return "notifications"
}
