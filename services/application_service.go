package services

import (
	"fmt"
	"time"

	"cardProject/config"
	"cardProject/models"
	"cardProject/utils"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreateApplicationDTO представляет заявку клиента на карту
type CreateApplicationDTO struct {
	CardName       string  `json:"card_name" validate:"required,min=2,max=100"`
	BankName       string  `json:"bank_name" validate:"required,min=2,max=100"`
	CardType       string  `json:"card_type" validate:"max=50"`
	RequestedLimit float64 `json:"requested_limit" validate:"required,gt=0"`
}

// ApproveApplicationDTO представляет решение об одобрении заявки
type ApproveApplicationDTO struct {
	ApprovedLimit float64 `json:"approved_limit" validate:"gte=0"`
}

// RejectApplicationDTO представляет решение об отказе по заявке
type RejectApplicationDTO struct {
	Reason string `json:"reason" validate:"required"`
}

// ApplicationStatistics представляет сводку по заявкам для менеджера
type ApplicationStatistics struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// ApplicationService управляет жизненным циклом заявок на карты.
// Заявка обрабатывается ровно один раз: переход из PENDING в
// терминальный статус защищен условным UPDATE, и проигравшая
// конкурентная попытка получает ошибку конфликта.
type ApplicationService struct {
	db            *gorm.DB
	cfg           *config.Config
	validate      *validator.Validate
	cards         *CardService
	transactions  *TransactionService
	notifications *NotificationService
	metrics       *utils.Metrics
	audit         *AuditService
}

// NewApplicationService создает новый экземпляр ApplicationService
func NewApplicationService(
	db *gorm.DB,
	cfg *config.Config,
	cards *CardService,
	transactions *TransactionService,
	notifications *NotificationService,
	metrics *utils.Metrics,
	audit *AuditService,
) *ApplicationService {
	return &ApplicationService{
		db:            db,
		cfg:           cfg,
		validate:      validator.New(),
		cards:         cards,
		transactions:  transactions,
		notifications: notifications,
		metrics:       metrics,
		audit:         audit,
	}
}

// Submit создает новую заявку на карту в статусе PENDING
func (s *ApplicationService) Submit(customerID uint, dto *CreateApplicationDTO) (*models.CardApplication, error) {
	// Валидируем DTO
	if err := s.validate.Struct(dto); err != nil {
		return nil, utils.ValidationError("некорректные данные заявки")
	}

	if dto.RequestedLimit < s.cfg.Business.MinCreditLimit || dto.RequestedLimit > s.cfg.Business.MaxCreditLimit {
		return nil, utils.ValidationError(fmt.Sprintf("запрашиваемый лимит должен быть от %.0f до %.0f",
			s.cfg.Business.MinCreditLimit, s.cfg.Business.MaxCreditLimit))
	}

	var customer models.Customer
	if err := s.db.First(&customer, customerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("клиент не найден")
		}
		return nil, utils.InternalError("не удалось получить клиента", err)
	}
	if !customer.IsActive {
		return nil, utils.ForbiddenError("учетная запись клиента деактивирована")
	}

	// Один банк выпускает клиенту не больше одной активной карты
	var activeCards int64
	err := s.db.Model(&models.CreditCard{}).
		Where("customer_id = ? AND bank_name = ? AND is_active = ?", customerID, dto.BankName, true).
		Count(&activeCards).Error
	if err != nil {
		return nil, utils.InternalError("не удалось проверить карты клиента", err)
	}
	if activeCards > 0 {
		return nil, utils.ConflictError("у клиента уже есть активная карта этого банка")
	}

	cardType := dto.CardType
	if cardType == "" {
		cardType = "Standard"
	}

	application := &models.CardApplication{
		CustomerID:     customerID,
		CardName:       dto.CardName,
		BankName:       dto.BankName,
		CardType:       cardType,
		RequestedLimit: dto.RequestedLimit,
		Status:         models.ApplicationStatusPending,
		AppliedAt:      time.Now(),
	}

	if err := s.db.Create(application).Error; err != nil {
		return nil, utils.InternalError("не удалось создать заявку", err)
	}

	s.metrics.RecordApplication("submitted")
	s.audit.Record(customerID, "customer", "application.submit", map[string]interface{}{
		"application_id":  application.ID,
		"card_name":       dto.CardName,
		"requested_limit": dto.RequestedLimit,
	}, "", "")
	s.notifications.Notify(customerID, "customer", "application",
		fmt.Sprintf("Заявка на карту %s принята и ожидает рассмотрения", dto.CardName),
		map[string]interface{}{"application_id": application.ID})

	return application, nil
}

// Approve одобряет заявку и выпускает карту. Смена статуса, выпуск
// карты и демонстрационные операции выполняются в одной транзакции.
func (s *ApplicationService) Approve(managerID, applicationID uint, dto *ApproveApplicationDTO) (*models.CardApplication, error) {
	if err := s.validate.Struct(dto); err != nil {
		return nil, utils.ValidationError("некорректные данные решения")
	}

	var application models.CardApplication
	var customer models.Customer

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&application, applicationID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFoundError("заявка не найдена")
			}
			return utils.InternalError("не удалось получить заявку", err)
		}

		if err := tx.First(&customer, application.CustomerID).Error; err != nil {
			return utils.InternalError("не удалось получить клиента", err)
		}

		// Лимит по умолчанию равен запрошенному
		approvedLimit := dto.ApprovedLimit
		if approvedLimit == 0 {
			approvedLimit = application.RequestedLimit
		}
		if approvedLimit < s.cfg.Business.MinCreditLimit || approvedLimit > s.cfg.Business.MaxCreditLimit {
			return utils.ValidationError(fmt.Sprintf("одобренный лимит должен быть от %.0f до %.0f",
				s.cfg.Business.MinCreditLimit, s.cfg.Business.MaxCreditLimit))
		}

		// Переводим заявку в APPROVED только из PENDING
		now := time.Now()
		result := tx.Model(&models.CardApplication{}).
			Where("id = ? AND status = ?", applicationID, models.ApplicationStatusPending).
			Updates(map[string]interface{}{
				"status":          models.ApplicationStatusApproved,
				"approved_limit":  approvedLimit,
				"processed_by_id": managerID,
				"processed_at":    &now,
			})
		if result.Error != nil {
			return utils.InternalError("не удалось обновить заявку", result.Error)
		}
		if result.RowsAffected == 0 {
			return utils.ConflictError("заявка уже обработана")
		}

		application.Status = models.ApplicationStatusApproved
		application.ApprovedLimit = &approvedLimit
		application.ProcessedByID = &managerID
		application.ProcessedAt = &now

		// Выпускаем карту
		card, err := s.cards.IssueCard(tx, &customer, &application, approvedLimit)
		if err != nil {
			return err
		}

		// Создаем демонстрационные операции; сбой не отменяет одобрение
		if err := s.transactions.SeedDemoTransactions(tx, card); err != nil {
			utils.LogError("Не удалось создать демонстрационные операции по карте %d: %v", card.ID, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordApplication("approved")
	s.audit.Record(managerID, "manager", "application.approve", map[string]interface{}{
		"application_id": applicationID,
		"approved_limit": *application.ApprovedLimit,
	}, "", "")
	s.notifications.NotifyCustomerByEmail(&customer, "application",
		"Заявка на кредитную карту одобрена",
		fmt.Sprintf("Заявка на карту %s одобрена, лимит %.2f", application.CardName, *application.ApprovedLimit),
		map[string]interface{}{"application_id": applicationID})

	return &application, nil
}

// Reject отклоняет заявку с указанием причины
func (s *ApplicationService) Reject(managerID, applicationID uint, dto *RejectApplicationDTO) (*models.CardApplication, error) {
	if err := s.validate.Struct(dto); err != nil {
		return nil, utils.ValidationError("некорректные данные решения")
	}
	if len(dto.Reason) < s.cfg.Business.MinRejectionReason {
		return nil, utils.ValidationError(fmt.Sprintf("причина отказа должна содержать не менее %d символов",
			s.cfg.Business.MinRejectionReason))
	}

	var application models.CardApplication
	if err := s.db.First(&application, applicationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("заявка не найдена")
		}
		return nil, utils.InternalError("не удалось получить заявку", err)
	}

	// Переводим заявку в REJECTED только из PENDING
	now := time.Now()
	result := s.db.Model(&models.CardApplication{}).
		Where("id = ? AND status = ?", applicationID, models.ApplicationStatusPending).
		Updates(map[string]interface{}{
			"status":           models.ApplicationStatusRejected,
			"rejection_reason": dto.Reason,
			"processed_by_id":  managerID,
			"processed_at":     &now,
		})
	if result.Error != nil {
		return nil, utils.InternalError("не удалось обновить заявку", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, utils.ConflictError("заявка уже обработана")
	}

	application.Status = models.ApplicationStatusRejected
	application.RejectionReason = &dto.Reason
	application.ProcessedByID = &managerID
	application.ProcessedAt = &now

	s.metrics.RecordApplication("rejected")
	s.audit.Record(managerID, "manager", "application.reject", map[string]interface{}{
		"application_id": applicationID,
		"reason":         dto.Reason,
	}, "", "")

	var customer models.Customer
	if err := s.db.First(&customer, application.CustomerID).Error; err == nil {
		s.notifications.NotifyCustomerByEmail(&customer, "application",
			"Решение по заявке на кредитную карту",
			fmt.Sprintf("Заявка на карту %s отклонена: %s", application.CardName, dto.Reason),
			map[string]interface{}{"application_id": applicationID})
	}

	return &application, nil
}

// GetCustomerApplications возвращает заявки клиента
func (s *ApplicationService) GetCustomerApplications(customerID uint) ([]models.CardApplication, error) {
	var applications []models.CardApplication
	err := s.db.Where("customer_id = ?", customerID).
		Order("applied_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, utils.InternalError("не удалось получить заявки", err)
	}
	return applications, nil
}

// GetPendingApplications возвращает заявки, ожидающие решения
func (s *ApplicationService) GetPendingApplications(limit, offset int) ([]models.CardApplication, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var applications []models.CardApplication
	err := s.db.Preload("Customer").
		Where("status = ?", models.ApplicationStatusPending).
		Order("applied_at").
		Limit(limit).
		Offset(offset).
		Find(&applications).Error
	if err != nil {
		return nil, utils.InternalError("не удалось получить заявки", err)
	}
	return applications, nil
}

// GetApplication возвращает заявку с данными клиента
func (s *ApplicationService) GetApplication(applicationID uint) (*models.CardApplication, error) {
	var application models.CardApplication
	err := s.db.Preload("Customer").First(&application, applicationID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("заявка не найдена")
		}
		return nil, utils.InternalError("не удалось получить заявку", err)
	}
	return &application, nil
}

// Statistics возвращает сводку по заявкам
func (s *ApplicationService) Statistics() (*ApplicationStatistics, error) {
	stats := &ApplicationStatistics{}

	type statusCount struct {
		Status models.ApplicationStatus
		Count  int64
	}
	var counts []statusCount
	err := s.db.Model(&models.CardApplication{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, utils.InternalError("не удалось получить статистику", err)
	}

	for _, c := range counts {
		stats.Total += c.Count
		switch c.Status {
		case models.ApplicationStatusPending:
			stats.Pending = c.Count
		case models.ApplicationStatusApproved:
			stats.Approved = c.Count
		case models.ApplicationStatusRejected:
			stats.Rejected = c.Count
		}
	}
	return stats, nil
}
