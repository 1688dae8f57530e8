package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"cardProject/config"
	"cardProject/models"
	"cardProject/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// CardOffer представляет карту из каталога доступных предложений
type CardOffer struct {
	CardName     string  `json:"card_name"`
	BankName     string  `json:"bank_name"`
	CardType     string  `json:"card_type"`
	MinLimit     float64 `json:"min_limit"`
	MaxLimit     float64 `json:"max_limit"`
	InterestRate float64 `json:"interest_rate"`
	AnnualFee    float64 `json:"annual_fee"`
	Features     string  `json:"features"`
}

// CardResponse представляет карту в ответе API: номер замаскирован,
// CVV и PIN не возвращаются никогда
type CardResponse struct {
	ID              uint    `json:"id"`
	CardHolderName  string  `json:"card_holder_name"`
	MaskedNumber    string  `json:"masked_number"`
	Expiration      string  `json:"expiration"`
	BankName        string  `json:"bank_name"`
	CardName        string  `json:"card_name"`
	CardType        string  `json:"card_type"`
	CreditLimit     float64 `json:"credit_limit"`
	CurrentBalance  float64 `json:"current_balance"`
	AvailableCredit float64 `json:"available_credit"`
	InterestRate    float64 `json:"interest_rate"`
	IsActive        bool    `json:"is_active"`
	HasPIN          bool    `json:"has_pin"`
}

// SetPINDTO представляет запрос на установку PIN-кода
type SetPINDTO struct {
	PIN string `json:"pin" validate:"required,len=4,numeric"`
}

// CardService представляет сервис для работы с кредитными картами
type CardService struct {
	db      *gorm.DB
	cfg     *config.Config
	metrics *utils.Metrics
	audit   *AuditService
}

// NewCardService создает новый экземпляр CardService
func NewCardService(db *gorm.DB, cfg *config.Config, metrics *utils.Metrics, audit *AuditService) *CardService {
	return &CardService{
		db:      db,
		cfg:     cfg,
		metrics: metrics,
		audit:   audit,
	}
}

// AvailableCards возвращает каталог карточных предложений
func (s *CardService) AvailableCards() []CardOffer {
	return []CardOffer{
		{
			CardName:     "Platinum Rewards",
			BankName:     "HDFC Bank",
			CardType:     "Platinum",
			MinLimit:     50000,
			MaxLimit:     1000000,
			InterestRate: 36.0,
			AnnualFee:    999,
			Features:     "5% cashback on online shopping, airport lounge access",
		},
		{
			CardName:     "Gold Cashback",
			BankName:     "ICICI Bank",
			CardType:     "Gold",
			MinLimit:     25000,
			MaxLimit:     500000,
			InterestRate: 40.0,
			AnnualFee:    499,
			Features:     "2% cashback on all purchases, fuel surcharge waiver",
		},
		{
			CardName:     "Classic Everyday",
			BankName:     "SBI Card",
			CardType:     "Standard",
			MinLimit:     10000,
			MaxLimit:     200000,
			InterestRate: 42.0,
			AnnualFee:    0,
			Features:     "1% cashback on groceries, zero annual fee",
		},
		{
			CardName:     "Travel Elite",
			BankName:     "Axis Bank",
			CardType:     "Premium",
			MinLimit:     100000,
			MaxLimit:     1000000,
			InterestRate: 38.0,
			AnnualFee:    2999,
			Features:     "Air miles on every purchase, complimentary travel insurance",
		},
	}
}

// IssueCard выпускает новую карту внутри переданной транзакции.
// Номер карты генерируется с контрольной цифрой Луна, шифруется PGP
// и индексируется HMAC; CVV хранится только как bcrypt-хэш.
func (s *CardService) IssueCard(tx *gorm.DB, customer *models.Customer, application *models.CardApplication, creditLimit float64) (*models.CreditCard, error) {
	// Генерируем номер карты
	number, err := s.generateCardNumber(tx)
	if err != nil {
		return nil, utils.InternalError("не удалось сгенерировать номер карты", err)
	}

	// Генерируем CVV
	cvv, err := generateDigits(3)
	if err != nil {
		return nil, utils.InternalError("не удалось сгенерировать CVV", err)
	}

	// Шифруем номер карты
	encryptedNumber, err := utils.PGPEncrypt(number, s.cfg.CardPublicKey)
	if err != nil {
		return nil, utils.InternalError("не удалось зашифровать номер карты", err)
	}

	// Шифруем срок действия
	expiration := models.ExpirationDate(time.Now()).Format("01/06")
	encryptedExpiration, err := utils.PGPEncrypt(expiration, s.cfg.CardPublicKey)
	if err != nil {
		return nil, utils.InternalError("не удалось зашифровать срок действия", err)
	}

	// Хэшируем CVV
	hashedCVV, err := bcrypt.GenerateFromPassword([]byte(cvv), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.InternalError("не удалось захэшировать CVV", err)
	}

	card := &models.CreditCard{
		CustomerID:          customer.ID,
		CardHolderName:      customer.FullName(),
		NumberEncrypted:     encryptedNumber,
		NumberHMAC:          utils.GenerateHMAC(number, []byte(s.cfg.CardHMACKey)),
		ExpirationEncrypted: encryptedExpiration,
		ExpirationHMAC:      utils.GenerateHMAC(expiration, []byte(s.cfg.CardHMACKey)),
		CVV:                 string(hashedCVV),
		BankName:            application.BankName,
		CardName:            application.CardName,
		CardType:            application.CardType,
		CreditLimit:         creditLimit,
		CurrentBalance:      0,
		AvailableCredit:     creditLimit,
		InterestRate:        s.cfg.Business.DefaultInterestRate,
		IsActive:            true,
	}

	if err := tx.Create(card).Error; err != nil {
		return nil, utils.InternalError("не удалось сохранить карту", err)
	}

	s.metrics.RecordCardOperation("issue")
	return card, nil
}

// GetCustomerCards возвращает все карты клиента
func (s *CardService) GetCustomerCards(customerID uint) ([]CardResponse, error) {
	var cards []models.CreditCard
	if err := s.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&cards).Error; err != nil {
		return nil, utils.InternalError("не удалось получить карты", err)
	}

	responses := make([]CardResponse, 0, len(cards))
	for i := range cards {
		responses = append(responses, s.toResponse(&cards[i]))
	}
	return responses, nil
}

// GetCard возвращает карту клиента по идентификатору
func (s *CardService) GetCard(customerID, cardID uint) (*CardResponse, error) {
	card, err := s.findOwnedCard(customerID, cardID)
	if err != nil {
		return nil, err
	}
	response := s.toResponse(card)
	return &response, nil
}

// SetPIN устанавливает PIN-код карты. PIN хранится только как bcrypt-хэш
func (s *CardService) SetPIN(customerID, cardID uint, dto *SetPINDTO) error {
	// Валидируем формат PIN
	if !pinPattern.MatchString(dto.PIN) {
		return utils.ValidationError("PIN должен состоять ровно из 4 цифр")
	}

	card, err := s.findOwnedCard(customerID, cardID)
	if err != nil {
		return err
	}
	if !card.IsActive {
		return utils.ConflictError("карта деактивирована")
	}

	hashedPIN, err := bcrypt.GenerateFromPassword([]byte(dto.PIN), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalError("не удалось захэшировать PIN", err)
	}

	result := s.db.Model(&models.CreditCard{}).
		Where("id = ? AND customer_id = ?", cardID, customerID).
		Update("pin", string(hashedPIN))
	if result.Error != nil {
		return utils.InternalError("не удалось сохранить PIN", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NotFoundError("карта не найдена")
	}

	s.audit.Record(customerID, "customer", "card.set_pin", map[string]interface{}{"card_id": cardID}, "", "")
	return nil
}

// VerifyPIN проверяет PIN-код карты
func (s *CardService) VerifyPIN(customerID, cardID uint, pin string) error {
	card, err := s.findOwnedCard(customerID, cardID)
	if err != nil {
		return err
	}
	if card.PIN == "" {
		return utils.ConflictError("PIN-код не установлен")
	}
	if bcrypt.CompareHashAndPassword([]byte(card.PIN), []byte(pin)) != nil {
		return utils.ForbiddenError("неверный PIN-код")
	}
	return nil
}

// Deactivate деактивирует карту. Операция идемпотентна: повторная
// деактивация уже неактивной карты не является ошибкой
func (s *CardService) Deactivate(customerID, cardID uint) error {
	card, err := s.findOwnedCard(customerID, cardID)
	if err != nil {
		return err
	}
	if !card.IsActive {
		return nil
	}

	result := s.db.Model(&models.CreditCard{}).
		Where("id = ? AND customer_id = ? AND is_active = ?", cardID, customerID, true).
		Update("is_active", false)
	if result.Error != nil {
		return utils.InternalError("не удалось деактивировать карту", result.Error)
	}

	if result.RowsAffected > 0 {
		s.metrics.RecordCardOperation("deactivate")
		s.audit.Record(customerID, "customer", "card.deactivate", map[string]interface{}{"card_id": cardID}, "", "")
	}
	return nil
}

// findOwnedCard ищет карту и проверяет принадлежность клиенту
func (s *CardService) findOwnedCard(customerID, cardID uint) (*models.CreditCard, error) {
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
	return &card, nil
}

// toResponse преобразует карту в DTO с маскированным номером
func (s *CardService) toResponse(card *models.CreditCard) CardResponse {
	maskedNumber := "**** **** **** ****"
	if number, err := utils.PGPDecrypt(card.NumberEncrypted, s.cfg.CardPrivateKey); err == nil {
		maskedNumber = utils.MaskCardNumber(number)
	}

	expiration := ""
	if exp, err := utils.PGPDecrypt(card.ExpirationEncrypted, s.cfg.CardPrivateKey); err == nil {
		expiration = exp
	}

	return CardResponse{
		ID:              card.ID,
		CardHolderName:  card.CardHolderName,
		MaskedNumber:    maskedNumber,
		Expiration:      expiration,
		BankName:        card.BankName,
		CardName:        card.CardName,
		CardType:        card.CardType,
		CreditLimit:     card.CreditLimit,
		CurrentBalance:  card.CurrentBalance,
		AvailableCredit: card.AvailableCredit,
		InterestRate:    card.InterestRate,
		IsActive:        card.IsActive,
		HasPIN:          card.PIN != "",
	}
}

// generateCardNumber генерирует уникальный 16-значный номер карты
// с контрольной цифрой Луна
func (s *CardService) generateCardNumber(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		body, err := generateDigits(15)
		if err != nil {
			return "", err
		}
		number := body + fmt.Sprintf("%d", utils.LuhnChecksum(body))

		// Проверяем уникальность по HMAC-индексу
		mac := utils.GenerateHMAC(number, []byte(s.cfg.CardHMACKey))
		var count int64
		if err := tx.Model(&models.CreditCard{}).Where("number_hmac = ?", mac).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", fmt.Errorf("не удалось сгенерировать уникальный номер карты")
}

// generateDigits генерирует строку из n случайных цифр
func generateDigits(n int) (string, error) {
	digits := make([]byte, n)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + d.Int64())
	}
	return string(digits), nil
}
