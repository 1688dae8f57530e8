package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cardProject/config"
	"cardProject/models"
	"cardProject/utils"
	"gorm.io/gorm"
)

// SpendingInsight представляет текстовую рекомендацию по расходам
type SpendingInsight struct {
	Summary     string            `json:"summary"`
	Tips        []string          `json:"tips"`
	Utilization float64           `json:"utilization"`
	Categories  []CategorySummary `json:"categories"`
	GeneratedAt time.Time         `json:"generated_at"`
	Source      string            `json:"source"` // api или fallback
}

// InsightGenerator формирует текст рекомендации по профилю расходов
type InsightGenerator interface {
	Generate(utilization float64, categories []CategorySummary) (string, error)
}

// InsightService строит аналитику расходов клиента. Текст рекомендации
// запрашивается у внешнего сервиса; при недоступности используется
// локальная генерация по уровню использования лимита.
type InsightService struct {
	db           *gorm.DB
	transactions *TransactionService
	generator    InsightGenerator
}

// NewInsightService создает новый экземпляр InsightService
func NewInsightService(db *gorm.DB, transactions *TransactionService, generator InsightGenerator) *InsightService {
	return &InsightService{
		db:           db,
		transactions: transactions,
		generator:    generator,
	}
}

// GetInsight возвращает рекомендацию по расходам клиента
func (s *InsightService) GetInsight(customerID uint) (*SpendingInsight, error) {
	// Считаем суммарное использование лимита по активным картам
	var cards []models.CreditCard
	if err := s.db.Where("customer_id = ? AND is_active = ?", customerID, true).Find(&cards).Error; err != nil {
		return nil, utils.InternalError("не удалось получить карты", err)
	}

	var totalLimit, totalBalance float64
	for _, card := range cards {
		totalLimit += card.CreditLimit
		totalBalance += card.CurrentBalance
	}

	utilization := 0.0
	if totalLimit > 0 {
		utilization = totalBalance / totalLimit * 100
	}

	categories, err := s.transactions.SpendingSummary(customerID, 30)
	if err != nil {
		return nil, err
	}

	insight := &SpendingInsight{
		Utilization: utilization,
		Categories:  categories,
		GeneratedAt: time.Now(),
	}

	if s.generator != nil {
		if summary, genErr := s.generator.Generate(utilization, categories); genErr == nil {
			insight.Summary = summary
			insight.Source = "api"
			return insight, nil
		} else {
			utils.LogError("Внешний сервис аналитики недоступен: %v", genErr)
		}
	}

	insight.Summary = fallbackSummary(utilization)
	insight.Tips = s.fallbackTips(customerID, cards)
	insight.Source = "fallback"
	return insight, nil
}

// fallbackTips формирует дополнительные рекомендации по состоянию
// карт и профилю клиента
func (s *InsightService) fallbackTips(customerID uint, cards []models.CreditCard) []string {
	var tips []string

	// Предупреждаем о картах с почти исчерпанным лимитом
	for _, card := range cards {
		if card.CreditLimit > 0 && card.AvailableCredit < card.CreditLimit*0.1 {
			tips = append(tips, fmt.Sprintf("По карте %s доступно менее 10%% лимита. Погасите задолженность, чтобы избежать отказов по операциям.", card.CardName))
		}
	}

	// Клиентам с высоким доходом предлагаем премиальную карту
	var customer models.Customer
	if err := s.db.First(&customer, customerID).Error; err == nil {
		if customer.AnnualIncome >= 1000000 {
			hasPremium := false
			for _, card := range cards {
				if card.CardType == "Premium" || card.CardType == "Platinum" {
					hasPremium = true
					break
				}
			}
			if !hasPremium {
				tips = append(tips, "С вашим уровнем дохода вам доступны премиальные карты с повышенным кэшбэком и лучшими условиями.")
			}
		}
	}

	return tips
}

// fallbackSummary формирует рекомендацию по уровню использования лимита
func fallbackSummary(utilization float64) string {
	switch {
	case utilization > 80:
		return fmt.Sprintf("Использование кредитного лимита %.0f%% критически высокое. Рекомендуем погасить часть задолженности: высокая утилизация снижает кредитный рейтинг.", utilization)
	case utilization > 50:
		return fmt.Sprintf("Использование кредитного лимита %.0f%% выше рекомендуемого. Постарайтесь держать задолженность ниже половины лимита.", utilization)
	default:
		return fmt.Sprintf("Использование кредитного лимита %.0f%% в пределах нормы. Продолжайте своевременно погашать задолженность.", utilization)
	}
}

// HTTPInsightGenerator запрашивает текст рекомендации у внешнего API
type HTTPInsightGenerator struct {
	apiURL string
	apiKey string
	client *http.Client
}

// NewHTTPInsightGenerator создает генератор на основе внешнего API.
// Возвращает nil, если URL не настроен.
func NewHTTPInsightGenerator(cfg *config.Config) *HTTPInsightGenerator {
	if cfg.Insights.APIURL == "" {
		return nil
	}
	return &HTTPInsightGenerator{
		apiURL: cfg.Insights.APIURL,
		apiKey: cfg.Insights.APIKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Generate запрашивает рекомендацию у внешнего сервиса
func (g *HTTPInsightGenerator) Generate(utilization float64, categories []CategorySummary) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"utilization": utilization,
		"categories":  categories,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, g.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("сервис аналитики вернул статус %d", resp.StatusCode)
	}

	var result struct {
		Summary string `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.Summary == "" {
		return "", fmt.Errorf("сервис аналитики вернул пустой ответ")
	}
	return result.Summary, nil
}
