package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cardProject/utils"
	"github.com/gorilla/mux"
)

// writeJSON отправляет JSON-ответ с указанным статусом
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			utils.LogError("Не удалось сериализовать ответ: %v", err)
		}
	}
}

// writeError отправляет ошибку клиенту. Категория ошибки определяет
// HTTP-статус; внутренние детали клиенту не раскрываются.
func writeError(w http.ResponseWriter, err error) {
	if appErr, ok := utils.AsAppError(err); ok {
		writeJSON(w, appErr.HTTPStatus(), map[string]string{"error": appErr.Message})
		return
	}
	utils.LogError("Необработанная ошибка: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "внутренняя ошибка сервера"})
}

// pathID извлекает числовой идентификатор из параметров маршрута
func pathID(r *http.Request, name string) (uint, error) {
	value, ok := mux.Vars(r)[name]
	if !ok {
		return 0, strconv.ErrSyntax
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// queryInt извлекает числовой параметр запроса со значением по умолчанию
func queryInt(r *http.Request, name string, fallback int) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
