package models

import "testing"

func TestTransactionTypeIsDebit(t *testing.T) {
	debits := []TransactionType{
		TransactionTypePurchase,
		TransactionTypeCashAdvance,
		TransactionTypeFee,
		TransactionTypeInterest,
	}
	for _, tt := range debits {
		if !tt.IsDebit() {
			t.Errorf("%s должен увеличивать задолженность", tt)
		}
	}

	credits := []TransactionType{
		TransactionTypePayment,
		TransactionTypeRefund,
	}
	for _, tt := range credits {
		if tt.IsDebit() {
			t.Errorf("%s должен уменьшать задолженность", tt)
		}
	}
}

func TestTransactionTypeIsValid(t *testing.T) {
	valid := []TransactionType{
		TransactionTypePurchase,
		TransactionTypePayment,
		TransactionTypeRefund,
		TransactionTypeCashAdvance,
		TransactionTypeFee,
		TransactionTypeInterest,
	}
	for _, tt := range valid {
		if !tt.IsValid() {
			t.Errorf("%s должен быть допустимым типом", tt)
		}
	}

	if TransactionType("TRANSFER").IsValid() {
		t.Error("неизвестный тип не должен быть допустимым")
	}
	if TransactionType("").IsValid() {
		t.Error("пустой тип не должен быть допустимым")
	}
}

func TestApplicationIsPending(t *testing.T) {
	app := &CardApplication{Status: ApplicationStatusPending}
	if !app.IsPending() {
		t.Error("заявка в статусе PENDING должна ожидать решения")
	}

	app.Status = ApplicationStatusApproved
	if app.IsPending() {
		t.Error("одобренная заявка не должна ожидать решения")
	}
}
