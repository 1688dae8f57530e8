package utils

import "testing"

func TestLuhnChecksum(t *testing.T) {
	// 4532015112830366 — корректный номер, контрольная цифра 6
	if got := LuhnChecksum("453201511283036"); got != 6 {
		t.Errorf("LuhnChecksum() = %d, ожидалось 6", got)
	}
}

func TestValidateLuhn(t *testing.T) {
	valid := []string{
		"4532015112830366",
		"4111111111111111",
	}
	for _, number := range valid {
		if !ValidateLuhn(number) {
			t.Errorf("номер %s должен проходить проверку Луна", number)
		}
	}

	invalid := []string{
		"4532015112830367",
		"1234567890123456",
		"45320151abc",
		"",
		"4",
	}
	for _, number := range invalid {
		if ValidateLuhn(number) {
			t.Errorf("номер %q не должен проходить проверку Луна", number)
		}
	}
}

func TestGenerateAndValidateHMAC(t *testing.T) {
	key := []byte("test-hmac-key")
	data := "4532015112830366"

	mac := GenerateHMAC(data, key)
	if mac == "" {
		t.Fatal("HMAC не должен быть пустым")
	}

	if !ValidateHMAC(data, mac, key) {
		t.Error("корректный HMAC не прошел проверку")
	}
	if ValidateHMAC("другие данные", mac, key) {
		t.Error("HMAC других данных не должен проходить проверку")
	}
	if ValidateHMAC(data, mac, []byte("другой ключ")) {
		t.Error("HMAC с другим ключом не должен проходить проверку")
	}
}

func TestMaskCardNumber(t *testing.T) {
	if got := MaskCardNumber("4532015112830366"); got != "**** **** **** 0366" {
		t.Errorf("MaskCardNumber() = %q", got)
	}
	if got := MaskCardNumber("12"); got != "****" {
		t.Errorf("MaskCardNumber() для короткого номера = %q", got)
	}
}

func TestGenerateRandomKey(t *testing.T) {
	key, err := GenerateRandomKey(32)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(key) != 32 {
		t.Errorf("длина ключа = %d, ожидалось 32", len(key))
	}

	other, _ := GenerateRandomKey(32)
	if string(key) == string(other) {
		t.Error("два сгенерированных ключа не должны совпадать")
	}
}
