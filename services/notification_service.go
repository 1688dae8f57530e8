package services

import (
	"encoding/json"
	"time"

	"cardProject/models"
	"cardProject/utils"
	"gorm.io/gorm"
)

// NotificationService создает и выдает уведомления пользователей.
// Создание уведомления выполняется по принципу fire-and-forget:
// сбой доставки логируется, но не прерывает бизнес-операцию.
type NotificationService struct {
	db    *gorm.DB
	email *EmailService
}

// NewNotificationService создает новый экземпляр NotificationService
func NewNotificationService(db *gorm.DB, email *EmailService) *NotificationService {
	return &NotificationService{db: db, email: email}
}

// Notify создает уведомление для пользователя
func (s *NotificationService) Notify(userID uint, userType, notificationType, message string, data map[string]interface{}) {
	dataJSON := ""
	if data != nil {
		if encoded, err := json.Marshal(data); err == nil {
			dataJSON = string(encoded)
		}
	}

	notification := &models.Notification{
		UserID:   userID,
		UserType: userType,
		Type:     notificationType,
		Message:  message,
		Data:     dataJSON,
	}

	if err := s.db.Create(notification).Error; err != nil {
		utils.LogError("Не удалось создать уведомление %s для пользователя %d: %v", notificationType, userID, err)
	}
}

// NotifyCustomerByEmail создает уведомление и отправляет письмо
func (s *NotificationService) NotifyCustomerByEmail(customer *models.Customer, notificationType, subject, message string, data map[string]interface{}) {
	s.Notify(customer.ID, "customer", notificationType, message, data)

	if s.email != nil {
		go func() {
			if err := s.email.Send(customer.Email, subject, message); err != nil {
				utils.LogError("Не удалось отправить письмо клиенту %d: %v", customer.ID, err)
			}
		}()
	}
}

// List возвращает уведомления пользователя с пагинацией
func (s *NotificationService) List(userID uint, userType string, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := s.db.Where("user_id = ? AND user_type = ?", userID, userType)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error
	if err != nil {
		return nil, utils.InternalError("не удалось получить уведомления", err)
	}
	return notifications, nil
}

// MarkRead помечает уведомление прочитанным
func (s *NotificationService) MarkRead(userID uint, userType string, notificationID uint) error {
	now := time.Now()
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND user_type = ?", notificationID, userID, userType).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now})
	if result.Error != nil {
		return utils.InternalError("не удалось пометить уведомление", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NotFoundError("уведомление не найдено")
	}
	return nil
}

// UnreadCount возвращает количество непрочитанных уведомлений
func (s *NotificationService) UnreadCount(userID uint, userType string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND user_type = ? AND is_read = ?", userID, userType, false).
		Count(&count).Error
	if err != nil {
		return 0, utils.InternalError("не удалось посчитать уведомления", err)
	}
	return count, nil
}
