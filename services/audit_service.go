package services

import (
	"encoding/json"

	"cardProject/models"
	"cardProject/utils"
	"gorm.io/gorm"
)

// AuditService записывает действия пользователей в журнал аудита.
// Запись выполняется по принципу fire-and-forget: сбой аудита
// логируется, но никогда не прерывает бизнес-операцию.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService создает новый экземпляр AuditService
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record записывает действие пользователя в журнал аудита
func (s *AuditService) Record(userID uint, userType, action string, details map[string]interface{}, ipAddress, userAgent string) {
	detailsJSON := ""
	if details != nil {
		if data, err := json.Marshal(details); err == nil {
			detailsJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:    userID,
		UserType:  userType,
		Action:    action,
		Details:   detailsJSON,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := s.db.Create(entry).Error; err != nil {
		utils.LogError("Не удалось записать аудит %s для пользователя %d: %v", action, userID, err)
	}
}

// ListByUser возвращает записи аудита пользователя с пагинацией
func (s *AuditService) ListByUser(userID uint, userType string, limit, offset int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var logs []models.AuditLog
	err := s.db.Where("user_id = ? AND user_type = ?", userID, userType).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, utils.InternalError("не удалось получить журнал аудита", err)
	}
	return logs, nil
}
