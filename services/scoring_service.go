package services

import (
	"cardProject/models"
)

// Границы кредитного скоринга
const (
	MinCreditScore  = 300
	MaxCreditScore  = 900
	BaseCreditScore = 300
)

// ScoringService вычисляет кредитный рейтинг клиента
type ScoringService struct{}

// NewScoringService создает новый экземпляр ScoringService
func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// ScoreInput содержит данные профиля для расчета рейтинга
type ScoreInput struct {
	AnnualIncome       float64
	YearsOfExperience  int
	EmploymentType     models.EmploymentType
	Age                int
	ExistingLoanAmount float64
}

// Calculate вычисляет кредитный рейтинг по профилю клиента.
// Рейтинг складывается из базы 300 и аддитивных компонент за доход,
// стаж, тип занятости и возраст, минус штраф за текущую задолженность.
// Результат всегда в диапазоне [300, 900].
func (s *ScoringService) Calculate(input ScoreInput) int {
	score := BaseCreditScore

	// Компонента дохода
	switch {
	case input.AnnualIncome >= 1000000:
		score += 200
	case input.AnnualIncome >= 500000:
		score += 150
	case input.AnnualIncome >= 300000:
		score += 100
	}

	// Компонента стажа
	switch {
	case input.YearsOfExperience >= 5:
		score += 100
	case input.YearsOfExperience >= 2:
		score += 50
	}

	// Компонента занятости
	switch input.EmploymentType {
	case models.EmploymentSalaried:
		score += 100
	case models.EmploymentSelfEmployed:
		score += 50
	}

	// Компонента возраста
	if input.Age >= 25 && input.Age <= 35 {
		score += 50
	} else if input.Age >= 36 && input.Age <= 45 {
		score += 75
	}

	// Штраф за существующую задолженность
	penalty := int(input.ExistingLoanAmount / 10000)
	if penalty > 100 {
		penalty = 100
	}
	score -= penalty

	// Ограничиваем диапазон
	if score < MinCreditScore {
		score = MinCreditScore
	}
	if score > MaxCreditScore {
		score = MaxCreditScore
	}

	return score
}

// CalculateForCustomer вычисляет рейтинг по данным модели клиента
func (s *ScoringService) CalculateForCustomer(customer *models.Customer) int {
	return s.Calculate(ScoreInput{
		AnnualIncome:       customer.AnnualIncome,
		YearsOfExperience:  customer.YearsOfExperience,
		EmploymentType:     customer.EmploymentType,
		Age:                customer.Age,
		ExistingLoanAmount: customer.ExistingLoanAmount,
	})
}

// ScoreBand возвращает словесную оценку рейтинга
func (s *ScoringService) ScoreBand(score int) string {
	switch {
	case score >= 750:
		return "отличный"
	case score >= 650:
		return "хороший"
	case score >= 550:
		return "удовлетворительный"
	default:
		return "низкий"
	}
}
