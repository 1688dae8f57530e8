package utils

import (
	"errors"
	"net/http"
)

// ErrorKind представляет категорию ошибки приложения
type ErrorKind int

const (
	KindValidation ErrorKind = iota // Некорректные входные данные
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict // Нарушение состояния или уникальности
	KindInternal
)

// AppError представляет ошибку приложения с категорией
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error // Исходная ошибка, не показывается клиенту
}

// Error реализует интерфейс error
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap возвращает исходную ошибку
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus возвращает HTTP-статус для категории ошибки
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError создает ошибку валидации
func ValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// UnauthenticatedError создает ошибку аутентификации
func UnauthenticatedError(message string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

// ForbiddenError создает ошибку доступа
func ForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

// NotFoundError создает ошибку отсутствия ресурса
func NotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// ConflictError создает ошибку конфликта состояния
func ConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// InternalError создает внутреннюю ошибку; исходная причина логируется,
// клиенту уходит только безопасное сообщение
func InternalError(message string, err error) *AppError {
	if err != nil {
		LogError("Internal error: %s: %v", message, err)
	}
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// AsAppError извлекает AppError из цепочки ошибок
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
