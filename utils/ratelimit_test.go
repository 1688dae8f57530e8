package utils

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("client") {
			t.Fatalf("запрос %d должен быть разрешен", i+1)
		}
	}

	if limiter.Allow("client") {
		t.Error("запрос сверх лимита должен быть отклонен")
	}

	// Лимиты разных клиентов независимы
	if !limiter.Allow("other") {
		t.Error("лимит другого клиента не должен быть исчерпан")
	}
}

func TestRateLimiterReset(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)

	limiter.Allow("client")
	if limiter.Allow("client") {
		t.Fatal("лимит должен быть исчерпан")
	}

	limiter.Reset("client")
	if !limiter.Allow("client") {
		t.Error("после сброса запрос должен быть разрешен")
	}
}

func TestRateLimiterGetRemaining(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute)

	if got := limiter.GetRemaining("client"); got != 5 {
		t.Errorf("GetRemaining() = %d, ожидалось 5", got)
	}

	limiter.Allow("client")
	limiter.Allow("client")

	if got := limiter.GetRemaining("client"); got != 3 {
		t.Errorf("GetRemaining() = %d, ожидалось 3", got)
	}
}
