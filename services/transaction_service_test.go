package services

import (
	"context"
	"strings"
	"testing"

	"cardProject/models"
	"cardProject/utils"
	"gorm.io/gorm"
)

func TestPayBillRejectsOverpayment(t *testing.T) {
	svc := newTestServices(t)
	customer := createTestCustomer(t, svc.db)
	card := createTestCard(t, svc.db, customer.ID, "HDFC Bank", 50000, 0)

	_, err := svc.transactions.PayBill(customer.ID, card.ID, &PayBillDTO{Amount: 5000})
	assertErrorKind(t, err, utils.KindValidation)

	var stored models.CreditCard
	if err := svc.db.First(&stored, card.ID).Error; err != nil {
		t.Fatalf("не удалось получить карту: %v", err)
	}
	if stored.CurrentBalance != 0 {
		t.Errorf("баланс не должен меняться при отклоненном платеже, получен %.2f", stored.CurrentBalance)
	}

	var count int64
	if err := svc.db.Model(&models.CardTransaction{}).Count(&count).Error; err != nil {
		t.Fatalf("не удалось посчитать операции: %v", err)
	}
	if count != 0 {
		t.Errorf("отклоненный платеж не должен записываться, записано %d операций", count)
	}
}

func TestPayBillPartialPayment(t *testing.T) {
	svc := newTestServices(t)
	customer := createTestCustomer(t, svc.db)
	card := createTestCard(t, svc.db, customer.ID, "HDFC Bank", 50000, 6000)

	transaction, err := svc.transactions.PayBill(customer.ID, card.ID, &PayBillDTO{Amount: 2500})
	if err != nil {
		t.Fatalf("платеж в пределах задолженности должен проходить: %v", err)
	}
	if transaction.Type != models.TransactionTypePayment {
		t.Errorf("ожидался тип PAYMENT, получен %s", transaction.Type)
	}
	if transaction.Status != models.TransactionStatusCompleted {
		t.Errorf("ожидался статус COMPLETED, получен %s", transaction.Status)
	}
	if !strings.HasPrefix(transaction.ReferenceNumber, "TXN") {
		t.Errorf("номер операции должен начинаться с TXN, получен %s", transaction.ReferenceNumber)
	}

	var stored models.CreditCard
	if err := svc.db.First(&stored, card.ID).Error; err != nil {
		t.Fatalf("не удалось получить карту: %v", err)
	}
	if stored.CurrentBalance != 3500 {
		t.Errorf("ожидался баланс 3500, получен %.2f", stored.CurrentBalance)
	}
	if stored.AvailableCredit != 46500 {
		t.Errorf("ожидался доступный кредит 46500, получен %.2f", stored.AvailableCredit)
	}
}

func TestPayBillFullBalance(t *testing.T) {
	svc := newTestServices(t)
	customer := createTestCustomer(t, svc.db)
	card := createTestCard(t, svc.db, customer.ID, "HDFC Bank", 50000, 4000)

	if _, err := svc.transactions.PayBill(customer.ID, card.ID, &PayBillDTO{Amount: 4000}); err != nil {
		t.Fatalf("платеж ровно на сумму задолженности должен проходить: %v", err)
	}

	var stored models.CreditCard
	if err := svc.db.First(&stored, card.ID).Error; err != nil {
		t.Fatalf("не удалось получить карту: %v", err)
	}
	if stored.CurrentBalance != 0 {
		t.Errorf("ожидался нулевой баланс, получен %.2f", stored.CurrentBalance)
	}
}

func TestCreateTransactionPurchaseUpdatesBalance(t *testing.T) {
	svc := newTestServices(t)
	customer := createTestCustomer(t, svc.db)
	card := createTestCard(t, svc.db, customer.ID, "HDFC Bank", 50000, 1000)

	_, err := svc.transactions.CreateTransaction(customer.ID, &CreateTransactionDTO{
		CardID:           card.ID,
		Type:             string(models.TransactionTypePurchase),
		Amount:           2499,
		MerchantName:     "Amazon",
		MerchantCategory: "shopping",
	})
	if err != nil {
		t.Fatalf("покупка в пределах лимита должна проходить: %v", err)
	}

	var stored models.CreditCard
	if err := svc.db.First(&stored, card.ID).Error; err != nil {
		t.Fatalf("не удалось получить карту: %v", err)
	}
	if stored.CurrentBalance != 3499 {
		t.Errorf("ожидался баланс 3499, получен %.2f", stored.CurrentBalance)
	}
	if stored.AvailableCredit != 46501 {
		t.Errorf("ожидался доступный кредит 46501, получен %.2f", stored.AvailableCredit)
	}
}

func TestCreateTransactionBalanceConflict(t *testing.T) {
	svc := newTestServices(t)
	customer := createTestCustomer(t, svc.db)
	card := createTestCard(t, svc.db, customer.ID, "HDFC Bank", 50000, 1000)

	// Перед условным обновлением баланса меняем его тем же соединением,
	// воспроизводя проигрыш конкурентной операции
	raced := false
	err := svc.db.Callback().Update().Before("gorm:update").Register("test_concurrent_balance", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "credit_cards" {
			return
		}
		raced = true
		_, execErr := tx.Statement.ConnPool.ExecContext(context.Background(),
			"UPDATE credit_cards SET current_balance = current_balance + 100 WHERE id = ?", card.ID)
		if execErr != nil {
			t.Errorf("не удалось изменить баланс конкурентно: %v", execErr)
		}
	})
	if err != nil {
		t.Fatalf("не удалось зарегистрировать колбэк: %v", err)
	}

	_, err = svc.transactions.CreateTransaction(customer.ID, &CreateTransactionDTO{
		CardID:       card.ID,
		Type:         string(models.TransactionTypePurchase),
		Amount:       500,
		MerchantName: "Swiggy",
	})
	assertErrorKind(t, err, utils.KindConflict)
	if !raced {
		t.Fatal("конкурентное изменение баланса не было воспроизведено")
	}

	// Проигравшая операция откатывается целиком
	var stored models.CreditCard
	if err := svc.db.First(&stored, card.ID).Error; err != nil {
		t.Fatalf("не удалось получить карту: %v", err)
	}
	if stored.CurrentBalance != 1000 {
		t.Errorf("баланс не должен меняться при откате, получен %.2f", stored.CurrentBalance)
	}

	var count int64
	if err := svc.db.Model(&models.CardTransaction{}).Count(&count).Error; err != nil {
		t.Fatalf("не удалось посчитать операции: %v", err)
	}
	if count != 0 {
		t.Errorf("проигравшая операция не должна записываться, записано %d", count)
	}
}

func TestCreateTransactionOnDeactivatedCard(t *testing.T) {
	svc := newTestServices(t)
	customer := createTestCustomer(t, svc.db)
	card := createTestCard(t, svc.db, customer.ID, "HDFC Bank", 50000, 0)

	if err := svc.cards.Deactivate(customer.ID, card.ID); err != nil {
		t.Fatalf("не удалось деактивировать карту: %v", err)
	}

	_, err := svc.transactions.CreateTransaction(customer.ID, &CreateTransactionDTO{
		CardID: card.ID,
		Type:   string(models.TransactionTypePurchase),
		Amount: 100,
	})
	assertErrorKind(t, err, utils.KindConflict)
}
