package services

import (
	"bytes"
	"testing"

	"cardProject/config"
	"cardProject/models"
	"cardProject/utils"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/openpgp"
	"golang.org/x/crypto/openpgp/armor"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB создает базу данных в памяти с мигрированными моделями
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("не удалось открыть тестовую базу: %v", err)
	}

	// Одно соединение, чтобы все запросы видели одну базу в памяти
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("не удалось получить пул соединений: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Customer{},
		&models.Manager{},
		&models.CardApplication{},
		&models.CreditCard{},
		&models.CardTransaction{},
		&models.Notification{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("не удалось мигрировать модели: %v", err)
	}

	return db
}

// newTestConfig создает конфигурацию с тестовыми бизнес-правилами
// и свежей парой PGP-ключей
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	publicKey, privateKey := generateTestKeyPair(t)

	cfg := &config.Config{}
	cfg.Business.MinCreditLimit = 10000
	cfg.Business.MaxCreditLimit = 1000000
	cfg.Business.MaxTransactionAmount = 100000
	cfg.Business.MinRejectionReason = 10
	cfg.Business.DefaultInterestRate = 36.0
	cfg.CardPublicKey = publicKey
	cfg.CardPrivateKey = privateKey
	cfg.CardHMACKey = "test-hmac-key"
	return cfg
}

// generateTestKeyPair генерирует PGP-пару для шифрования данных карт
func generateTestKeyPair(t *testing.T) (publicKey, privateKey string) {
	t.Helper()

	entity, err := openpgp.NewEntity("card-test", "", "cards@test.local", nil)
	if err != nil {
		t.Fatalf("не удалось сгенерировать ключи: %v", err)
	}

	var privBuf bytes.Buffer
	privWriter, err := armor.Encode(&privBuf, openpgp.PrivateKeyType, nil)
	if err != nil {
		t.Fatalf("не удалось закодировать приватный ключ: %v", err)
	}
	if err := entity.SerializePrivate(privWriter, nil); err != nil {
		t.Fatalf("не удалось сериализовать приватный ключ: %v", err)
	}
	privWriter.Close()

	var pubBuf bytes.Buffer
	pubWriter, err := armor.Encode(&pubBuf, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatalf("не удалось закодировать публичный ключ: %v", err)
	}
	if err := entity.Serialize(pubWriter); err != nil {
		t.Fatalf("не удалось сериализовать публичный ключ: %v", err)
	}
	pubWriter.Close()

	return pubBuf.String(), privBuf.String()
}

// testServices собирает связанные сервисы поверх тестовой базы
type testServices struct {
	db            *gorm.DB
	cfg           *config.Config
	cards         *CardService
	transactions  *TransactionService
	applications  *ApplicationService
	notifications *NotificationService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	db := newTestDB(t)
	cfg := newTestConfig(t)
	metrics := utils.NewMetrics()
	audit := NewAuditService(db)
	notifications := NewNotificationService(db, nil)
	cards := NewCardService(db, cfg, metrics, audit)
	transactions := NewTransactionService(db, cfg, metrics, audit, notifications)
	applications := NewApplicationService(db, cfg, cards, transactions, notifications, metrics, audit)

	return &testServices{
		db:            db,
		cfg:           cfg,
		cards:         cards,
		transactions:  transactions,
		applications:  applications,
		notifications: notifications,
	}
}

// assertErrorKind проверяет категорию ошибки приложения
func assertErrorKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()

	if err == nil {
		t.Fatal("ожидалась ошибка, получен nil")
	}
	appErr, ok := utils.AsAppError(err)
	if !ok {
		t.Fatalf("ожидалась ошибка приложения, получено: %v", err)
	}
	if appErr.Kind != kind {
		t.Fatalf("ожидалась категория %d, получена %d: %v", kind, appErr.Kind, appErr)
	}
}

// createTestCustomer создает клиента напрямую в базе
func createTestCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		FirstName:      "Иван",
		LastName:       "Петров",
		Email:          "ivan.petrov@test.local",
		Password:       "hashed",
		Age:            30,
		EmploymentType: models.EmploymentSalaried,
		AnnualIncome:   600000,
		CreditScore:    650,
		IsActive:       true,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("не удалось создать клиента: %v", err)
	}
	return customer
}

// createTestManager создает менеджера напрямую в базе
func createTestManager(t *testing.T, db *gorm.DB) *models.Manager {
	t.Helper()

	manager := &models.Manager{
		FirstName:  "Анна",
		LastName:   "Смирнова",
		Email:      "anna.smirnova@test.local",
		Password:   "hashed",
		EmployeeID: "EMP001",
		Department: "credit",
		IsActive:   true,
	}
	if err := db.Create(manager).Error; err != nil {
		t.Fatalf("не удалось создать менеджера: %v", err)
	}
	return manager
}

// createTestCard создает активную карту напрямую в базе
func createTestCard(t *testing.T, db *gorm.DB, customerID uint, bankName string, limit, balance float64) *models.CreditCard {
	t.Helper()

	card := &models.CreditCard{
		CustomerID:          customerID,
		CardHolderName:      "Иван Петров",
		NumberEncrypted:     "encrypted-number",
		NumberHMAC:          "number-hmac-" + bankName,
		ExpirationEncrypted: "encrypted-expiration",
		ExpirationHMAC:      "expiration-hmac",
		CVV:                 "hashed-cvv",
		BankName:            bankName,
		CardName:            "Test Card",
		CardType:            "Standard",
		CreditLimit:         limit,
		CurrentBalance:      balance,
		AvailableCredit:     limit - balance,
		InterestRate:        36.0,
		IsActive:            true,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("не удалось создать карту: %v", err)
	}
	return card
}
