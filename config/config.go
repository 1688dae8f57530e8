package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config представляет конфигурацию приложения
type Config struct {
	Server struct {
		Port int
	}
	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}
	JWT struct {
		SecretKey string
		ExpiresIn int // в часах
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Business struct {
		MinCreditLimit       float64 // Минимальный кредитный лимит по заявке
		MaxCreditLimit       float64 // Максимальный кредитный лимит по заявке
		MaxTransactionAmount float64 // Максимальная сумма одной транзакции
		MinRejectionReason   int     // Минимальная длина причины отказа
		DefaultInterestRate  float64 // Годовая процентная ставка по умолчанию
	}
	Scheduler struct {
		InterestInterval time.Duration // Интервал начисления процентов
	}
	Insights struct {
		APIURL string // URL внешнего сервиса генерации текста
		APIKey string // Ключ внешнего сервиса (пусто = только fallback)
	}
	CardPrivateKey string // Приватный ключ для расшифровки данных карт
	CardPublicKey  string // Публичный ключ для шифрования данных карт
	CardHMACKey    string // Ключ для HMAC-подписи данных карт
}

// NewConfig создает новый экземпляр конфигурации
func NewConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Настройки сервера
	v.SetDefault("SERVER_PORT", 8080)

	// Настройки базы данных
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "card_db")

	// Настройки JWT
	v.SetDefault("JWT_SECRET_KEY", "your-secret-key-here")
	v.SetDefault("JWT_EXPIRES_IN", 24)

	// Настройки SMTP
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "your-email@gmail.com")
	v.SetDefault("SMTP_PASSWORD", "your-app-password")
	v.SetDefault("SMTP_FROM", "your-email@gmail.com")

	// Бизнес-правила
	v.SetDefault("BUSINESS_MIN_CREDIT_LIMIT", 10000.0)
	v.SetDefault("BUSINESS_MAX_CREDIT_LIMIT", 1000000.0)
	v.SetDefault("BUSINESS_MAX_TRANSACTION_AMOUNT", 100000.0)
	v.SetDefault("BUSINESS_MIN_REJECTION_REASON", 10)
	v.SetDefault("BUSINESS_DEFAULT_INTEREST_RATE", 36.0)

	// Планировщик (раз в 30 дней)
	v.SetDefault("SCHEDULER_INTEREST_INTERVAL", "720h")

	// Внешний сервис аналитики расходов
	v.SetDefault("INSIGHTS_API_URL", "")
	v.SetDefault("INSIGHTS_API_KEY", "")

	// Настройки карт
	v.SetDefault("CARD_PRIVATE_KEY", "your-card-private-key-here")
	v.SetDefault("CARD_PUBLIC_KEY", "your-card-public-key-here")
	v.SetDefault("CARD_HMAC_KEY", "your-card-hmac-key-here")

	cfg := &Config{}

	cfg.Server.Port = v.GetInt("SERVER_PORT")

	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetInt("DB_PORT")
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.DBName = v.GetString("DB_NAME")

	cfg.JWT.SecretKey = v.GetString("JWT_SECRET_KEY")
	cfg.JWT.ExpiresIn = v.GetInt("JWT_EXPIRES_IN")

	cfg.SMTP.Host = v.GetString("SMTP_HOST")
	cfg.SMTP.Port = v.GetInt("SMTP_PORT")
	cfg.SMTP.Username = v.GetString("SMTP_USERNAME")
	cfg.SMTP.Password = v.GetString("SMTP_PASSWORD")
	cfg.SMTP.From = v.GetString("SMTP_FROM")

	cfg.Business.MinCreditLimit = v.GetFloat64("BUSINESS_MIN_CREDIT_LIMIT")
	cfg.Business.MaxCreditLimit = v.GetFloat64("BUSINESS_MAX_CREDIT_LIMIT")
	cfg.Business.MaxTransactionAmount = v.GetFloat64("BUSINESS_MAX_TRANSACTION_AMOUNT")
	cfg.Business.MinRejectionReason = v.GetInt("BUSINESS_MIN_REJECTION_REASON")
	cfg.Business.DefaultInterestRate = v.GetFloat64("BUSINESS_DEFAULT_INTEREST_RATE")

	cfg.Scheduler.InterestInterval = v.GetDuration("SCHEDULER_INTEREST_INTERVAL")

	cfg.Insights.APIURL = v.GetString("INSIGHTS_API_URL")
	cfg.Insights.APIKey = v.GetString("INSIGHTS_API_KEY")

	cfg.CardPrivateKey = v.GetString("CARD_PRIVATE_KEY")
	cfg.CardPublicKey = v.GetString("CARD_PUBLIC_KEY")
	cfg.CardHMACKey = v.GetString("CARD_HMAC_KEY")

	return cfg, nil
}
