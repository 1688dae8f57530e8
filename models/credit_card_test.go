package models

import (
	"testing"
	"time"
)

func newTestCard(limit, balance float64) *CreditCard {
	return &CreditCard{
		CreditLimit:     limit,
		CurrentBalance:  balance,
		AvailableCredit: limit - balance,
	}
}

func TestApplyDebit(t *testing.T) {
	card := newTestCard(50000, 10000)

	if err := card.ApplyDebit(5000); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if card.CurrentBalance != 15000 {
		t.Errorf("баланс = %.2f, ожидалось 15000", card.CurrentBalance)
	}
	if card.AvailableCredit != 35000 {
		t.Errorf("доступный кредит = %.2f, ожидалось 35000", card.AvailableCredit)
	}
}

func TestApplyDebitExceedsLimit(t *testing.T) {
	card := newTestCard(50000, 45000)

	err := card.ApplyDebit(10000)
	if err != ErrCreditLimitExceed {
		t.Fatalf("ожидалась ошибка ErrCreditLimitExceed, получено %v", err)
	}

	// Неуспешная операция не меняет состояние карты
	if card.CurrentBalance != 45000 {
		t.Errorf("баланс изменился после отклоненной операции: %.2f", card.CurrentBalance)
	}
	if card.AvailableCredit != 5000 {
		t.Errorf("доступный кредит изменился после отклоненной операции: %.2f", card.AvailableCredit)
	}
}

func TestApplyDebitExactLimit(t *testing.T) {
	card := newTestCard(50000, 45000)

	// Операция ровно до лимита допустима
	if err := card.ApplyDebit(5000); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if card.CurrentBalance != 50000 {
		t.Errorf("баланс = %.2f, ожидалось 50000", card.CurrentBalance)
	}
	if card.AvailableCredit != 0 {
		t.Errorf("доступный кредит = %.2f, ожидалось 0", card.AvailableCredit)
	}
}

func TestApplyDebitNonPositive(t *testing.T) {
	card := newTestCard(50000, 0)

	if err := card.ApplyDebit(0); err != ErrNonPositiveAmount {
		t.Errorf("ожидалась ошибка ErrNonPositiveAmount для нуля, получено %v", err)
	}
	if err := card.ApplyDebit(-100); err != ErrNonPositiveAmount {
		t.Errorf("ожидалась ошибка ErrNonPositiveAmount для отрицательной суммы, получено %v", err)
	}
}

func TestApplyCredit(t *testing.T) {
	card := newTestCard(50000, 20000)

	if err := card.ApplyCredit(15000); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if card.CurrentBalance != 5000 {
		t.Errorf("баланс = %.2f, ожидалось 5000", card.CurrentBalance)
	}
	if card.AvailableCredit != 45000 {
		t.Errorf("доступный кредит = %.2f, ожидалось 45000", card.AvailableCredit)
	}
}

func TestApplyCreditOverpayment(t *testing.T) {
	card := newTestCard(50000, 3000)

	// Переплата не создает отрицательный баланс
	if err := card.ApplyCredit(10000); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if card.CurrentBalance != 0 {
		t.Errorf("баланс = %.2f, ожидалось 0", card.CurrentBalance)
	}
	if card.AvailableCredit != 50000 {
		t.Errorf("доступный кредит = %.2f, ожидалось 50000", card.AvailableCredit)
	}
}

func TestApplyCreditNonPositive(t *testing.T) {
	card := newTestCard(50000, 10000)

	if err := card.ApplyCredit(0); err != ErrNonPositiveAmount {
		t.Errorf("ожидалась ошибка ErrNonPositiveAmount, получено %v", err)
	}
}

func TestBalanceInvariantAfterOperations(t *testing.T) {
	card := newTestCard(100000, 0)

	operations := []struct {
		debit  bool
		amount float64
	}{
		{true, 30000},
		{false, 10000},
		{true, 50000},
		{false, 70001},
		{true, 99999},
	}

	for _, op := range operations {
		if op.debit {
			card.ApplyDebit(op.amount)
		} else {
			card.ApplyCredit(op.amount)
		}

		if card.CurrentBalance < 0 {
			t.Fatalf("баланс стал отрицательным: %.2f", card.CurrentBalance)
		}
		if card.CurrentBalance > card.CreditLimit {
			t.Fatalf("баланс превысил лимит: %.2f", card.CurrentBalance)
		}
		if card.AvailableCredit != card.CreditLimit-card.CurrentBalance {
			t.Fatalf("нарушен инвариант доступного кредита: %.2f != %.2f",
				card.AvailableCredit, card.CreditLimit-card.CurrentBalance)
		}
	}
}

func TestUtilization(t *testing.T) {
	card := newTestCard(50000, 25000)
	if got := card.Utilization(); got != 50 {
		t.Errorf("Utilization() = %.2f, ожидалось 50", got)
	}

	empty := newTestCard(0, 0)
	if got := empty.Utilization(); got != 0 {
		t.Errorf("Utilization() для нулевого лимита = %.2f, ожидалось 0", got)
	}
}

func TestExpirationDate(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	got := ExpirationDate(now)

	expected := time.Date(2031, 8, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(expected) {
		t.Errorf("ExpirationDate() = %v, ожидалось %v", got, expected)
	}
}
