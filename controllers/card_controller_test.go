package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardProject/config"
	"cardProject/services"
	"cardProject/utils"
	"github.com/gorilla/mux"
)

func TestAvailableCards(t *testing.T) {
	cfg := &config.Config{}
	cards := services.NewCardService(nil, cfg, utils.NewMetrics(), nil)
	controller := NewCardController(cards, nil, nil, nil)

	router := mux.NewRouter()
	router.HandleFunc("/api/cards/available", controller.AvailableCards).Methods("GET")

	req := httptest.NewRequest("GET", "/api/cards/available", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидалось 200", rec.Code)
	}

	var offers []services.CardOffer
	if err := json.Unmarshal(rec.Body.Bytes(), &offers); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if len(offers) == 0 {
		t.Fatal("каталог предложений не должен быть пустым")
	}

	for _, offer := range offers {
		if offer.CardName == "" || offer.BankName == "" {
			t.Errorf("предложение без названия: %+v", offer)
		}
		if offer.MinLimit <= 0 || offer.MaxLimit < offer.MinLimit {
			t.Errorf("некорректные лимиты предложения %s", offer.CardName)
		}
	}
}

func TestWriteErrorMapsAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, utils.ConflictError("заявка уже обработана"))

	if rec.Code != http.StatusConflict {
		t.Errorf("статус = %d, ожидалось 409", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if body["error"] != "заявка уже обработана" {
		t.Errorf("сообщение = %q", body["error"])
	}
}
