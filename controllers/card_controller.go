package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"cardProject/middleware"
	"cardProject/services"
	"cardProject/utils"
)

// CardController обрабатывает запросы клиентов по картам и заявкам
type CardController struct {
	cards        *services.CardService
	applications *services.ApplicationService
	transactions *services.TransactionService
	statements   *services.StatementService
}

// NewCardController создает новый экземпляр CardController
func NewCardController(
	cards *services.CardService,
	applications *services.ApplicationService,
	transactions *services.TransactionService,
	statements *services.StatementService,
) *CardController {
	return &CardController{
		cards:        cards,
		applications: applications,
		transactions: transactions,
		statements:   statements,
	}
}

// AvailableCards возвращает каталог карточных предложений
func (c *CardController) AvailableCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.cards.AvailableCards())
}

// Apply обрабатывает подачу заявки на карту
func (c *CardController) Apply(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	var dto services.CreateApplicationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	application, err := c.applications.Submit(principal.UserID, &dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, application)
}

// MyApplications возвращает заявки текущего клиента
func (c *CardController) MyApplications(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	applications, err := c.applications.GetCustomerApplications(principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, applications)
}

// MyCards возвращает карты текущего клиента
func (c *CardController) MyCards(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	cards, err := c.cards.GetCustomerCards(principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cards)
}

// CardDetails возвращает одну карту клиента
func (c *CardController) CardDetails(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	cardID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid card id", http.StatusBadRequest)
		return
	}

	card, err := c.cards.GetCard(principal.UserID, cardID)
	if err != nil {
		writeError(w, err)
		return
	}

	// Дополняем ответ последними операциями по карте
	recent, err := c.transactions.GetCardTransactions(principal.UserID, cardID, 10, 0)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"card":                card,
		"recent_transactions": recent,
	})
}

// SetPIN обрабатывает установку PIN-кода карты
func (c *CardController) SetPIN(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	cardID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid card id", http.StatusBadRequest)
		return
	}

	var dto services.SetPINDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := c.cards.SetPIN(principal.UserID, cardID, &dto); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "PIN-код установлен"})
}

// Deactivate обрабатывает деактивацию карты
func (c *CardController) Deactivate(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	cardID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid card id", http.StatusBadRequest)
		return
	}

	if err := c.cards.Deactivate(principal.UserID, cardID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "карта деактивирована"})
}

// PayBill обрабатывает погашение задолженности по карте
func (c *CardController) PayBill(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	cardID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid card id", http.StatusBadRequest)
		return
	}

	var dto services.PayBillDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	transaction, err := c.transactions.PayBill(principal.UserID, cardID, &dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, transaction)
}

// Statement возвращает XML-выписку по карте за период
func (c *CardController) Statement(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	cardID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid card id", http.StatusBadRequest)
		return
	}

	// По умолчанию выписка за последние 30 дней
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		if parsed, err := time.Parse("2006-01-02", fromParam); err == nil {
			from = parsed
		}
	}
	if toParam := r.URL.Query().Get("to"); toParam != "" {
		if parsed, err := time.Parse("2006-01-02", toParam); err == nil {
			to = parsed.AddDate(0, 0, 1)
		}
	}

	data, err := c.statements.GenerateXML(principal.UserID, cardID, from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
