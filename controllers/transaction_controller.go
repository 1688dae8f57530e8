package controllers

import (
	"encoding/json"
	"net/http"

	"cardProject/middleware"
	"cardProject/services"
	"cardProject/utils"
)

// TransactionController обрабатывает операции по картам
type TransactionController struct {
	transactions *services.TransactionService
}

// NewTransactionController создает новый экземпляр TransactionController
func NewTransactionController(transactions *services.TransactionService) *TransactionController {
	return &TransactionController{transactions: transactions}
}

// Create обрабатывает проведение операции по карте
func (c *TransactionController) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	var dto services.CreateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	transaction, err := c.transactions.CreateTransaction(principal.UserID, &dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, transaction)
}

// ListByCard возвращает операции по карте с пагинацией
func (c *TransactionController) ListByCard(w http.ResponseWriter, r *http.Request) {
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

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	transactions, err := c.transactions.GetCardTransactions(principal.UserID, cardID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

// ListMine возвращает все операции текущего клиента
func (c *TransactionController) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	transactions, err := c.transactions.GetCustomerTransactions(principal.UserID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

// SpendingSummary возвращает расходы по категориям за период
func (c *TransactionController) SpendingSummary(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	days := queryInt(r, "days", 30)

	summary, err := c.transactions.SpendingSummary(principal.UserID, days)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// MonthlyTrend возвращает расходы по месяцам
func (c *TransactionController) MonthlyTrend(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	months := queryInt(r, "months", 6)

	trend, err := c.transactions.MonthlySpendingTrend(principal.UserID, months)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trend)
}
