package controllers

import (
	"encoding/json"
	"net/http"

	"cardProject/middleware"
	"cardProject/services"
	"cardProject/utils"
)

// CustomerController обрабатывает запросы профиля клиента
type CustomerController struct {
	users         *services.UserService
	insights      *services.InsightService
	notifications *services.NotificationService
}

// NewCustomerController создает новый экземпляр CustomerController
func NewCustomerController(
	users *services.UserService,
	insights *services.InsightService,
	notifications *services.NotificationService,
) *CustomerController {
	return &CustomerController{
		users:         users,
		insights:      insights,
		notifications: notifications,
	}
}

// Profile возвращает профиль текущего клиента
func (c *CustomerController) Profile(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	customer, err := c.users.GetCustomer(principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, services.ToCustomerResponse(customer))
}

// UpdateProfile обновляет профиль текущего клиента
func (c *CustomerController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	var dto services.UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	customer, err := c.users.UpdateProfile(principal.UserID, &dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, services.ToCustomerResponse(customer))
}

// CreditScore возвращает кредитный рейтинг текущего клиента
func (c *CustomerController) CreditScore(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	customer, err := c.users.GetCustomer(principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"credit_score": customer.CreditScore,
	})
}

// Insights возвращает аналитику расходов текущего клиента
func (c *CustomerController) Insights(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	insight, err := c.insights.GetInsight(principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, insight)
}

// Notifications возвращает уведомления текущего клиента
func (c *CustomerController) Notifications(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := c.notifications.List(principal.UserID, principal.Role, unreadOnly, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

// MarkNotificationRead помечает уведомление прочитанным
func (c *CustomerController) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	notificationID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid notification id", http.StatusBadRequest)
		return
	}

	if err := c.notifications.MarkRead(principal.UserID, principal.Role, notificationID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "уведомление прочитано"})
}
