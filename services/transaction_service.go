package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"cardProject/config"
	"cardProject/models"
	"cardProject/utils"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CreateTransactionDTO представляет запрос на проведение операции
type CreateTransactionDTO struct {
	CardID           uint    `json:"card_id" validate:"required"`
	Type             string  `json:"type" validate:"required"`
	Amount           float64 `json:"amount" validate:"required,gt=0"`
	MerchantName     string  `json:"merchant_name" validate:"max=100"`
	MerchantCategory string  `json:"merchant_category" validate:"max=50"`
	Description      string  `json:"description" validate:"max=255"`
}

// PayBillDTO представляет запрос на погашение задолженности по карте
type PayBillDTO struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// CategorySummary представляет расходы по одной категории
type CategorySummary struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// MonthlyTrend представляет расходы за один месяц
type MonthlyTrend struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// TransactionService проводит операции по картам и отвечает
// за атомарность изменения баланса
type TransactionService struct {
	db            *gorm.DB
	cfg           *config.Config
	validate      *validator.Validate
	metrics       *utils.Metrics
	audit         *AuditService
	notifications *NotificationService
}

// NewTransactionService создает новый экземпляр TransactionService
func NewTransactionService(db *gorm.DB, cfg *config.Config, metrics *utils.Metrics, audit *AuditService, notifications *NotificationService) *TransactionService {
	return &TransactionService{
		db:            db,
		cfg:           cfg,
		validate:      validator.New(),
		metrics:       metrics,
		audit:         audit,
		notifications: notifications,
	}
}

// CreateTransaction проводит операцию по карте. Баланс карты и запись
// операции изменяются в одной транзакции базы данных: либо операция
// проведена полностью, либо состояние карты не меняется.
func (s *TransactionService) CreateTransaction(customerID uint, dto *CreateTransactionDTO) (*models.CardTransaction, error) {
	// Валидируем DTO
	if err := s.validate.Struct(dto); err != nil {
		return nil, utils.ValidationError("некорректные данные операции")
	}

	txType := models.TransactionType(dto.Type)
	if !txType.IsValid() {
		return nil, utils.ValidationError("неизвестный тип операции")
	}

	if dto.Amount <= 0 || dto.Amount > s.cfg.Business.MaxTransactionAmount {
		return nil, utils.ValidationError(fmt.Sprintf("сумма операции должна быть больше 0 и не превышать %.0f", s.cfg.Business.MaxTransactionAmount))
	}

	var transaction *models.CardTransaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Получаем карту и проверяем принадлежность
		var card models.CreditCard
		if err := tx.First(&card, dto.CardID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFoundError("карта не найдена")
			}
			return utils.InternalError("не удалось получить карту", err)
		}
		if card.CustomerID != customerID {
			return utils.ForbiddenError("карта принадлежит другому клиенту")
		}
		if !card.IsActive {
			return utils.ConflictError("карта деактивирована")
		}

		// Платеж строже базовой кредитовой операции: переплата
		// отклоняется, а не ограничивается нулем
		if txType == models.TransactionTypePayment && dto.Amount > card.CurrentBalance {
			return utils.ValidationError("платеж не может превышать текущую задолженность")
		}

		previousBalance := card.CurrentBalance

		// Применяем операцию к балансу
		var applyErr error
		if txType.IsDebit() {
			applyErr = card.ApplyDebit(dto.Amount)
		} else {
			applyErr = card.ApplyCredit(dto.Amount)
		}
		if applyErr != nil {
			switch applyErr {
			case models.ErrCreditLimitExceed:
				return utils.ValidationError("операция превышает кредитный лимит")
			case models.ErrNonPositiveAmount:
				return utils.ValidationError("сумма операции должна быть больше 0")
			default:
				return utils.InternalError("не удалось применить операцию", applyErr)
			}
		}

		// Обновляем баланс с проверкой на конкурентное изменение
		result := tx.Model(&models.CreditCard{}).
			Where("id = ? AND current_balance = ? AND is_active = ?", card.ID, previousBalance, true).
			Updates(map[string]interface{}{
				"current_balance":  card.CurrentBalance,
				"available_credit": card.AvailableCredit,
			})
		if result.Error != nil {
			return utils.InternalError("не удалось обновить баланс карты", result.Error)
		}
		if result.RowsAffected == 0 {
			return utils.ConflictError("баланс карты изменен параллельной операцией, повторите запрос")
		}

		// Генерируем уникальный номер операции
		reference, err := s.generateReference(tx)
		if err != nil {
			return utils.InternalError("не удалось сгенерировать номер операции", err)
		}

		now := time.Now()
		transaction = &models.CardTransaction{
			CardID:           card.ID,
			CustomerID:       customerID,
			Type:             txType,
			Amount:           dto.Amount,
			Currency:         "INR",
			MerchantName:     dto.MerchantName,
			MerchantCategory: dto.MerchantCategory,
			Description:      dto.Description,
			Status:           models.TransactionStatusCompleted,
			ReferenceNumber:  reference,
			TransactionDate:  now,
			SettlementDate:   &now,
		}

		if err := tx.Create(transaction).Error; err != nil {
			return utils.InternalError("не удалось сохранить операцию", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTransaction(dto.Amount)
	s.audit.Record(customerID, "customer", "transaction.create", map[string]interface{}{
		"card_id":   dto.CardID,
		"type":      dto.Type,
		"amount":    dto.Amount,
		"reference": transaction.ReferenceNumber,
	}, "", "")
	s.notifications.Notify(customerID, "customer", "transaction",
		fmt.Sprintf("Операция %s на сумму %.2f проведена", transaction.ReferenceNumber, dto.Amount),
		map[string]interface{}{"transaction_id": transaction.ID})

	return transaction, nil
}

// PayBill погашает задолженность по карте. Переплата не создает
// отрицательный баланс
func (s *TransactionService) PayBill(customerID, cardID uint, dto *PayBillDTO) (*models.CardTransaction, error) {
	if err := s.validate.Struct(dto); err != nil {
		return nil, utils.ValidationError("некорректная сумма платежа")
	}

	return s.CreateTransaction(customerID, &CreateTransactionDTO{
		CardID:      cardID,
		Type:        string(models.TransactionTypePayment),
		Amount:      dto.Amount,
		Description: "Погашение задолженности по карте",
	})
}

// GetCardTransactions возвращает операции по карте с пагинацией
func (s *TransactionService) GetCardTransactions(customerID, cardID uint, limit, offset int) ([]models.CardTransaction, error) {
	// Проверяем принадлежность карты
	var card models.CreditCard
	if err := s.db.First(&card, cardID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("карта не найдена")
		}
		return nil, utils.InternalError("не удалось получить карту", err)
	}
	if card.CustomerID != customerID {
		return nil, utils.ForbiddenError("карта принадлежит другому клиенту")
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var transactions []models.CardTransaction
	err := s.db.Where("card_id = ?", cardID).
		Order("transaction_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, utils.InternalError("не удалось получить операции", err)
	}
	return transactions, nil
}

// GetCustomerTransactions возвращает все операции клиента с пагинацией
func (s *TransactionService) GetCustomerTransactions(customerID uint, limit, offset int) ([]models.CardTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var transactions []models.CardTransaction
	err := s.db.Where("customer_id = ?", customerID).
		Order("transaction_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, utils.InternalError("не удалось получить операции", err)
	}
	return transactions, nil
}

// SpendingSummary возвращает расходы клиента по категориям за период
func (s *TransactionService) SpendingSummary(customerID uint, days int) ([]CategorySummary, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var summary []CategorySummary
	err := s.db.Model(&models.CardTransaction{}).
		Select("COALESCE(NULLIF(merchant_category, ''), 'other') AS category, SUM(amount) AS total, COUNT(*) AS count").
		Where("customer_id = ? AND type IN ? AND status = ? AND transaction_date >= ?",
			customerID,
			[]models.TransactionType{models.TransactionTypePurchase, models.TransactionTypeCashAdvance, models.TransactionTypeFee},
			models.TransactionStatusCompleted,
			since,
		).
		Group("category").
		Order("total DESC").
		Scan(&summary).Error
	if err != nil {
		return nil, utils.InternalError("не удалось построить сводку расходов", err)
	}
	return summary, nil
}

// MonthlySpendingTrend возвращает расходы клиента по месяцам
func (s *TransactionService) MonthlySpendingTrend(customerID uint, months int) ([]MonthlyTrend, error) {
	if months <= 0 || months > 24 {
		months = 6
	}
	since := time.Now().AddDate(0, -months, 0)

	var trend []MonthlyTrend
	err := s.db.Model(&models.CardTransaction{}).
		Select("to_char(transaction_date, 'YYYY-MM') AS month, SUM(amount) AS total").
		Where("customer_id = ? AND type IN ? AND status = ? AND transaction_date >= ?",
			customerID,
			[]models.TransactionType{models.TransactionTypePurchase, models.TransactionTypeCashAdvance, models.TransactionTypeFee},
			models.TransactionStatusCompleted,
			since,
		).
		Group("month").
		Order("month").
		Scan(&trend).Error
	if err != nil {
		return nil, utils.InternalError("не удалось построить помесячную сводку", err)
	}
	return trend, nil
}

// SeedDemoTransactions создает несколько демонстрационных операций
// по новой карте. Вызывается после одобрения заявки; сбой не влияет
// на результат одобрения.
func (s *TransactionService) SeedDemoTransactions(tx *gorm.DB, card *models.CreditCard) error {
	samples := []struct {
		merchant string
		category string
		amount   float64
	}{
		{"Amazon", "shopping", 2499.00},
		{"Swiggy", "food", 649.50},
		{"Indian Oil", "fuel", 1500.00},
		{"BigBasket", "groceries", 1820.75},
		{"BookMyShow", "entertainment", 800.00},
	}

	for _, sample := range samples {
		if card.ApplyDebit(sample.amount) != nil {
			continue
		}

		reference, err := s.generateReference(tx)
		if err != nil {
			return err
		}

		now := time.Now()
		transaction := &models.CardTransaction{
			CardID:           card.ID,
			CustomerID:       card.CustomerID,
			Type:             models.TransactionTypePurchase,
			Amount:           sample.amount,
			Currency:         "INR",
			MerchantName:     sample.merchant,
			MerchantCategory: sample.category,
			Description:      "Демонстрационная операция",
			Status:           models.TransactionStatusCompleted,
			ReferenceNumber:  reference,
			TransactionDate:  now,
			SettlementDate:   &now,
		}
		if err := tx.Create(transaction).Error; err != nil {
			return err
		}
	}

	// Сохраняем итоговый баланс карты
	return tx.Model(&models.CreditCard{}).
		Where("id = ?", card.ID).
		Updates(map[string]interface{}{
			"current_balance":  card.CurrentBalance,
			"available_credit": card.AvailableCredit,
		}).Error
}

// generateReference генерирует уникальный номер операции вида
// TXN + 10 символов; при коллизии генерация повторяется
func (s *TransactionService) generateReference(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		suffix := make([]byte, 10)
		for i := range suffix {
			idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceAlphabet))))
			if err != nil {
				return "", err
			}
			suffix[i] = referenceAlphabet[idx.Int64()]
		}
		reference := "TXN" + string(suffix)

		var count int64
		if err := tx.Model(&models.CardTransaction{}).Where("reference_number = ?", reference).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return reference, nil
		}
	}
	return "", fmt.Errorf("не удалось сгенерировать уникальный номер операции")
}
