package controllers

import (
	"encoding/json"
	"net/http"

	"cardProject/middleware"
	"cardProject/services"
	"cardProject/utils"
)

// ManagerController обрабатывает запросы менеджеров
type ManagerController struct {
	applications *services.ApplicationService
	users        *services.UserService
}

// NewManagerController создает новый экземпляр ManagerController
func NewManagerController(applications *services.ApplicationService, users *services.UserService) *ManagerController {
	return &ManagerController{
		applications: applications,
		users:        users,
	}
}

// PendingApplications возвращает заявки, ожидающие решения
func (c *ManagerController) PendingApplications(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	applications, err := c.applications.GetPendingApplications(limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, applications)
}

// ApplicationDetails возвращает заявку с данными клиента
func (c *ManagerController) ApplicationDetails(w http.ResponseWriter, r *http.Request) {
	applicationID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid application id", http.StatusBadRequest)
		return
	}

	application, err := c.applications.GetApplication(applicationID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, application)
}

// Approve обрабатывает одобрение заявки
func (c *ManagerController) Approve(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	applicationID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid application id", http.StatusBadRequest)
		return
	}

	var dto services.ApproveApplicationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	application, err := c.applications.Approve(principal.UserID, applicationID, &dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, application)
}

// Reject обрабатывает отклонение заявки
func (c *ManagerController) Reject(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		writeError(w, utils.UnauthenticatedError("требуется аутентификация"))
		return
	}

	applicationID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid application id", http.StatusBadRequest)
		return
	}

	var dto services.RejectApplicationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	application, err := c.applications.Reject(principal.UserID, applicationID, &dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, application)
}

// Statistics возвращает сводку по заявкам
func (c *ManagerController) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := c.applications.Statistics()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Customers возвращает список клиентов
func (c *ManagerController) Customers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	customers, err := c.users.ListCustomers(limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]services.CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, services.ToCustomerResponse(&customers[i]))
	}

	writeJSON(w, http.StatusOK, responses)
}

// CustomerDetails возвращает одного клиента
func (c *ManagerController) CustomerDetails(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid customer id", http.StatusBadRequest)
		return
	}

	customer, err := c.users.GetCustomer(customerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, services.ToCustomerResponse(customer))
}
