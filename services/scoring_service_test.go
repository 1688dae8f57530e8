package services

import (
	"testing"

	"cardProject/models"
)

func TestCalculateScoreComponents(t *testing.T) {
	s := NewScoringService()

	tests := []struct {
		name     string
		input    ScoreInput
		expected int
	}{
		{
			name: "средний доход со стажем",
			input: ScoreInput{
				AnnualIncome:      600000,
				YearsOfExperience: 3,
				EmploymentType:    models.EmploymentSalaried,
				Age:               25,
			},
			expected: 650,
		},
		{
			name: "высокий доход и большой стаж",
			input: ScoreInput{
				AnnualIncome:      1200000,
				YearsOfExperience: 7,
				EmploymentType:    models.EmploymentSalaried,
				Age:               40,
			},
			expected: 775,
		},
		{
			name: "безработный без дохода",
			input: ScoreInput{
				AnnualIncome:   0,
				EmploymentType: models.EmploymentUnemployed,
				Age:            50,
			},
			expected: 300,
		},
		{
			name: "самозанятый на нижней границе дохода",
			input: ScoreInput{
				AnnualIncome:      300000,
				YearsOfExperience: 2,
				EmploymentType:    models.EmploymentSelfEmployed,
				Age:               30,
			},
			expected: 550,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Calculate(tt.input)
			if got != tt.expected {
				t.Errorf("Calculate() = %d, ожидалось %d", got, tt.expected)
			}
		})
	}
}

func TestCalculateScoreLoanPenalty(t *testing.T) {
	s := NewScoringService()

	base := ScoreInput{
		AnnualIncome:      600000,
		YearsOfExperience: 3,
		EmploymentType:    models.EmploymentSalaried,
		Age:               25,
	}

	withLoan := base
	withLoan.ExistingLoanAmount = 200000

	noLoan := s.Calculate(base)
	penalized := s.Calculate(withLoan)

	if noLoan-penalized != 20 {
		t.Errorf("штраф за кредит 200000 = %d, ожидалось 20", noLoan-penalized)
	}

	// Штраф ограничен сверху 100 баллами
	hugeLoan := base
	hugeLoan.ExistingLoanAmount = 5000000
	if noLoan-s.Calculate(hugeLoan) != 100 {
		t.Errorf("штраф должен быть ограничен 100 баллами")
	}
}

func TestCalculateScoreBounds(t *testing.T) {
	s := NewScoringService()

	// Максимальные компоненты не превышают верхнюю границу
	high := s.Calculate(ScoreInput{
		AnnualIncome:      2000000,
		YearsOfExperience: 10,
		EmploymentType:    models.EmploymentSalaried,
		Age:               40,
	})
	if high > MaxCreditScore {
		t.Errorf("рейтинг %d превышает максимум %d", high, MaxCreditScore)
	}

	// Большая задолженность не опускает рейтинг ниже нижней границы
	low := s.Calculate(ScoreInput{
		EmploymentType:     models.EmploymentUnemployed,
		Age:                60,
		ExistingLoanAmount: 10000000,
	})
	if low < MinCreditScore {
		t.Errorf("рейтинг %d ниже минимума %d", low, MinCreditScore)
	}
}

func TestCalculateForCustomer(t *testing.T) {
	s := NewScoringService()

	customer := &models.Customer{
		AnnualIncome:      600000,
		YearsOfExperience: 3,
		EmploymentType:    models.EmploymentSalaried,
		Age:               25,
	}

	if got := s.CalculateForCustomer(customer); got != 650 {
		t.Errorf("CalculateForCustomer() = %d, ожидалось 650", got)
	}
}

func TestScoreBand(t *testing.T) {
	s := NewScoringService()

	tests := []struct {
		score    int
		expected string
	}{
		{800, "отличный"},
		{700, "хороший"},
		{600, "удовлетворительный"},
		{400, "низкий"},
	}

	for _, tt := range tests {
		if got := s.ScoreBand(tt.score); got != tt.expected {
			t.Errorf("ScoreBand(%d) = %q, ожидалось %q", tt.score, got, tt.expected)
		}
	}
}
