package services

import (
	"fmt"
	"time"

	"cardProject/models"
	"cardProject/utils"
	"github.com/beevik/etree"
	"gorm.io/gorm"
)

// StatementService формирует выписку по карте в формате XML
type StatementService struct {
	db    *gorm.DB
	cards *CardService
}

// NewStatementService создает новый экземпляр StatementService
func NewStatementService(db *gorm.DB, cards *CardService) *StatementService {
	return &StatementService{db: db, cards: cards}
}

// GenerateXML формирует XML-выписку по карте за указанный период
func (s *StatementService) GenerateXML(customerID, cardID uint, from, to time.Time) ([]byte, error) {
	card, err := s.cards.GetCard(customerID, cardID)
	if err != nil {
		return nil, err
	}

	var transactions []models.CardTransaction
	err = s.db.Where("card_id = ? AND transaction_date >= ? AND transaction_date < ?", cardID, from, to).
		Order("transaction_date").
		Find(&transactions).Error
	if err != nil {
		return nil, utils.InternalError("не удалось получить операции", err)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	statement := doc.CreateElement("statement")
	statement.CreateAttr("generated_at", time.Now().Format(time.RFC3339))

	cardElem := statement.CreateElement("card")
	cardElem.CreateElement("holder").SetText(card.CardHolderName)
	cardElem.CreateElement("number").SetText(card.MaskedNumber)
	cardElem.CreateElement("bank").SetText(card.BankName)
	cardElem.CreateElement("credit_limit").SetText(fmt.Sprintf("%.2f", card.CreditLimit))
	cardElem.CreateElement("current_balance").SetText(fmt.Sprintf("%.2f", card.CurrentBalance))
	cardElem.CreateElement("available_credit").SetText(fmt.Sprintf("%.2f", card.AvailableCredit))

	period := statement.CreateElement("period")
	period.CreateElement("from").SetText(from.Format("2006-01-02"))
	period.CreateElement("to").SetText(to.Format("2006-01-02"))

	txList := statement.CreateElement("transactions")
	txList.CreateAttr("count", fmt.Sprintf("%d", len(transactions)))

	var totalDebits, totalCredits float64
	for _, tx := range transactions {
		txElem := txList.CreateElement("transaction")
		txElem.CreateAttr("reference", tx.ReferenceNumber)
		txElem.CreateElement("date").SetText(tx.TransactionDate.Format("2006-01-02"))
		txElem.CreateElement("type").SetText(string(tx.Type))
		txElem.CreateElement("amount").SetText(fmt.Sprintf("%.2f", tx.Amount))
		txElem.CreateElement("currency").SetText(tx.Currency)
		if tx.MerchantName != "" {
			txElem.CreateElement("merchant").SetText(tx.MerchantName)
		}
		txElem.CreateElement("status").SetText(string(tx.Status))

		if tx.Status == models.TransactionStatusCompleted {
			if tx.Type.IsDebit() {
				totalDebits += tx.Amount
			} else {
				totalCredits += tx.Amount
			}
		}
	}

	totals := statement.CreateElement("totals")
	totals.CreateElement("debits").SetText(fmt.Sprintf("%.2f", totalDebits))
	totals.CreateElement("credits").SetText(fmt.Sprintf("%.2f", totalCredits))

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, utils.InternalError("не удалось сформировать выписку", err)
	}
	return data, nil
}
