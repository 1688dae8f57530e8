package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"cardProject/config"
	"cardProject/models"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database представляет подключение к базе данных
type Database struct {
	DB *gorm.DB
}

// NewDatabase создает новое подключение к базе данных
func NewDatabase(cfg *config.Config) (*Database, error) {
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	return &Database{DB: db}, nil
}

// GetDB возвращает экземпляр GORM
func (d *Database) GetDB() *gorm.DB {
	return d.DB
}

// Close закрывает подключение к базе данных
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Connect устанавливает соединение с базой данных и выполняет миграции
func Connect(cfg *config.Config) (*gorm.DB, error) {
	// Формируем строку подключения
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.DBName,
	)

	// Настраиваем логгер
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// Устанавливаем соединение
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %v", err)
	}

	// Настраиваем пул соединений
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пула соединений: %v", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Выполняем SQL миграции
	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("ошибка выполнения SQL миграций: %v", err)
	}

	// Выполняем автоматическую миграцию моделей
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("ошибка автоматической миграции моделей: %v", err)
	}

	return db, nil
}

// runMigrations выполняет SQL миграции
func runMigrations(cfg *config.Config) error {
	// Формируем URL для миграций
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.DBName,
	)

	// Создаем экземпляр миграции
	m, err := migrate.New(
		"file://migrations",
		dsn,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания миграции: %v", err)
	}

	// Выполняем миграции
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("ошибка выполнения миграций: %v", err)
	}

	return nil
}

// autoMigrate выполняет автоматическую миграцию моделей
func autoMigrate(db *gorm.DB) error {
	// Автоматическая миграция моделей
	err := db.AutoMigrate(
		&models.Customer{},
		&models.Manager{},
		&models.CardApplication{},
		&models.CreditCard{},
		&models.CardTransaction{},
		&models.Notification{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("ошибка автоматической миграции: %v", err)
	}

	return nil
}

// Методы для работы с клиентами

func (d *Database) CreateCustomer(customer *models.Customer) error {
	return d.DB.Create(customer).Error
}

func (d *Database) GetCustomerByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	err := d.DB.First(&customer, id).Error
	return &customer, err
}

func (d *Database) GetCustomerByEmail(email string) (*models.Customer, error) {
	var customer models.Customer
	err := d.DB.Where("email = ?", email).First(&customer).Error
	return &customer, err
}

// Методы для работы с менеджерами

func (d *Database) CreateManager(manager *models.Manager) error {
	return d.DB.Create(manager).Error
}

func (d *Database) GetManagerByEmail(email string) (*models.Manager, error) {
	var manager models.Manager
	err := d.DB.Where("email = ?", email).First(&manager).Error
	return &manager, err
}

// Методы для работы с заявками

func (d *Database) GetApplicationByID(id uint) (*models.CardApplication, error) {
	var application models.CardApplication
	err := d.DB.First(&application, id).Error
	return &application, err
}

// Методы для работы с картами

func (d *Database) GetCardByID(id uint) (*models.CreditCard, error) {
	var card models.CreditCard
	err := d.DB.First(&card, id).Error
	return &card, err
}

// Методы для работы с транзакциями

func (d *Database) GetTransactionByID(id uint) (*models.CardTransaction, error) {
	var transaction models.CardTransaction
	err := d.DB.First(&transaction, id).Error
	return &transaction, err
}
