package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorHTTPStatus(t *testing.T) {
	tests := []struct {
		err      *AppError
		expected int
	}{
		{ValidationError("bad input"), http.StatusBadRequest},
		{UnauthenticatedError("no token"), http.StatusUnauthorized},
		{ForbiddenError("not yours"), http.StatusForbidden},
		{NotFoundError("missing"), http.StatusNotFound},
		{ConflictError("already processed"), http.StatusConflict},
		{InternalError("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.err.HTTPStatus(); got != tt.expected {
			t.Errorf("HTTPStatus() для %q = %d, ожидалось %d", tt.err.Message, got, tt.expected)
		}
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFoundError("карта не найдена")

	// Ошибка извлекается напрямую
	got, ok := AsAppError(appErr)
	if !ok || got.Kind != KindNotFound {
		t.Error("AppError должен извлекаться напрямую")
	}

	// Ошибка извлекается из обернутой цепочки
	wrapped := fmt.Errorf("контекст: %w", appErr)
	got, ok = AsAppError(wrapped)
	if !ok || got.Message != "карта не найдена" {
		t.Error("AppError должен извлекаться из обернутой цепочки")
	}

	// Обычная ошибка не извлекается
	if _, ok := AsAppError(errors.New("plain")); ok {
		t.Error("обычная ошибка не должна распознаваться как AppError")
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := &AppError{Kind: KindInternal, Message: "база недоступна", Err: cause}

	if !errors.Is(appErr, cause) {
		t.Error("исходная ошибка должна быть доступна через errors.Is")
	}
	if appErr.Error() != "база недоступна" {
		t.Errorf("Error() = %q", appErr.Error())
	}
}
