package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cardProject/services"
	"github.com/golang-jwt/jwt/v5"
)

var testKey = []byte("test-secret-key")

func signToken(t *testing.T, userID uint, role string, key []byte) string {
	t.Helper()

	claims := &services.Claims{
		UserID: userID,
		Email:  "test@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("не удалось подписать токен: %v", err)
	}
	return token
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	var captured *Principal
	handler := AuthMiddleware(testKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = GetPrincipal(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/cards", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 42, "customer", testKey))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидалось 200", rec.Code)
	}
	if captured == nil {
		t.Fatal("пользователь не попал в контекст")
	}
	if captured.UserID != 42 || captured.Role != "customer" {
		t.Errorf("некорректный пользователь в контексте: %+v", captured)
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	handler := AuthMiddleware(testKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("обработчик не должен вызываться без токена")
	}))

	req := httptest.NewRequest("GET", "/api/cards", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("статус = %d, ожидалось 401", rec.Code)
	}
}

func TestAuthMiddlewareWrongKey(t *testing.T) {
	handler := AuthMiddleware(testKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("обработчик не должен вызываться с недействительным токеном")
	}))

	req := httptest.NewRequest("GET", "/api/cards", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 42, "customer", []byte("other-key")))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("статус = %d, ожидалось 401", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole("manager")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Менеджер проходит
	req := WithPrincipal(httptest.NewRequest("GET", "/api/manager/statistics", nil),
		&Principal{UserID: 1, Role: "manager"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("статус для менеджера = %d, ожидалось 200", rec.Code)
	}

	// Клиент получает отказ
	req = WithPrincipal(httptest.NewRequest("GET", "/api/manager/statistics", nil),
		&Principal{UserID: 2, Role: "customer"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("статус для клиента = %d, ожидалось 403", rec.Code)
	}

	// Без аутентификации
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/manager/statistics", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("статус без токена = %d, ожидалось 401", rec.Code)
	}
}
