package controllers

import (
	"encoding/json"
	"net/http"

	"cardProject/services"
)

// AuthController обрабатывает регистрацию и вход пользователей
type AuthController struct {
	users *services.UserService
}

// AuthResponse представляет ответ на успешную аутентификацию
type AuthResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// NewAuthController создает новый экземпляр AuthController
func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{users: users}
}

// SignUpCustomer обрабатывает регистрацию клиента
func (c *AuthController) SignUpCustomer(w http.ResponseWriter, r *http.Request) {
	var dto services.RegisterCustomerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	customer, err := c.users.RegisterCustomer(&dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, services.ToCustomerResponse(customer))
}

// SignInCustomer обрабатывает вход клиента
func (c *AuthController) SignInCustomer(w http.ResponseWriter, r *http.Request) {
	var dto services.SignInDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, customer, err := c.users.SignInCustomer(&dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Token: token,
		User:  services.ToCustomerResponse(customer),
	})
}

// SignUpManager обрабатывает регистрацию менеджера
func (c *AuthController) SignUpManager(w http.ResponseWriter, r *http.Request) {
	var dto services.RegisterManagerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	manager, err := c.users.RegisterManager(&dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":          manager.ID,
		"first_name":  manager.FirstName,
		"last_name":   manager.LastName,
		"email":       manager.Email,
		"employee_id": manager.EmployeeID,
		"department":  manager.Department,
	})
}

// SignInManager обрабатывает вход менеджера
func (c *AuthController) SignInManager(w http.ResponseWriter, r *http.Request) {
	var dto services.SignInDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, manager, err := c.users.SignInManager(&dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Token: token,
		User: map[string]interface{}{
			"id":          manager.ID,
			"first_name":  manager.FirstName,
			"last_name":   manager.LastName,
			"email":       manager.Email,
			"employee_id": manager.EmployeeID,
		},
	})
}
