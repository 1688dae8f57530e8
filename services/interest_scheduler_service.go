package services

import (
	"errors"
	"log"
	"time"

	"cardProject/config"
	"cardProject/models"
	"gorm.io/gorm"
)

// InterestSchedulerService периодически начисляет проценты на
// непогашенную задолженность по активным картам
type InterestSchedulerService struct {
	db           *gorm.DB
	cfg          *config.Config
	transactions *TransactionService
	stop         chan struct{}
}

// NewInterestSchedulerService создает новый экземпляр InterestSchedulerService
func NewInterestSchedulerService(db *gorm.DB, cfg *config.Config, transactions *TransactionService) *InterestSchedulerService {
	return &InterestSchedulerService{
		db:           db,
		cfg:          cfg,
		transactions: transactions,
		stop:         make(chan struct{}),
	}
}

// Start запускает планировщик начисления процентов
func (s *InterestSchedulerService) Start() {
	ticker := time.NewTicker(s.cfg.Scheduler.InterestInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.AccrueInterest(); err != nil {
					log.Printf("Ошибка при начислении процентов: %v", err)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop останавливает планировщик
func (s *InterestSchedulerService) Stop() {
	close(s.stop)
}

// AccrueInterest начисляет проценты на задолженность по всем
// активным картам. Месячная ставка равна годовой, деленной на 12.
func (s *InterestSchedulerService) AccrueInterest() error {
	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return errors.New("ошибка при начале транзакции")
	}

	// Получаем активные карты с задолженностью
	var cards []models.CreditCard
	if err := tx.Where("is_active = ? AND current_balance > 0", true).Find(&cards).Error; err != nil {
		tx.Rollback()
		return errors.New("ошибка при получении карт")
	}

	for i := range cards {
		if err := s.accrueCardInterest(tx, &cards[i]); err != nil {
			tx.Rollback()
			return err
		}
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return errors.New("ошибка при подтверждении транзакции")
	}

	return nil
}

// accrueCardInterest начисляет проценты по одной карте
func (s *InterestSchedulerService) accrueCardInterest(tx *gorm.DB, card *models.CreditCard) error {
	interest := card.CurrentBalance * card.InterestRate / 100 / 12
	if interest <= 0 {
		return nil
	}

	// Начисление не ограничено кредитным лимитом: задолженность
	// может превысить лимит за счет процентов
	card.CurrentBalance += interest
	card.AvailableCredit = card.CreditLimit - card.CurrentBalance
	if card.AvailableCredit < 0 {
		card.AvailableCredit = 0
	}

	if err := tx.Model(&models.CreditCard{}).
		Where("id = ?", card.ID).
		Updates(map[string]interface{}{
			"current_balance":  card.CurrentBalance,
			"available_credit": card.AvailableCredit,
		}).Error; err != nil {
		return errors.New("ошибка при обновлении баланса карты")
	}

	reference, err := s.transactions.generateReference(tx)
	if err != nil {
		return errors.New("ошибка при генерации номера операции")
	}

	now := time.Now()
	transaction := &models.CardTransaction{
		CardID:          card.ID,
		CustomerID:      card.CustomerID,
		Type:            models.TransactionTypeInterest,
		Amount:          interest,
		Currency:        "INR",
		Description:     "Начисление процентов на задолженность",
		Status:          models.TransactionStatusCompleted,
		ReferenceNumber: reference,
		TransactionDate: now,
		SettlementDate:  &now,
	}

	if err := tx.Create(transaction).Error; err != nil {
		return errors.New("ошибка при сохранении операции начисления процентов")
	}

	return nil
}
