package main

import (
	"testing"

	"cardProject/config"
)

func TestInsightGeneratorDisabledWithoutURL(t *testing.T) {
	cfg := &config.Config{}

	// Без настроенного URL генератор отсутствует и используется fallback
	if generator := insightGenerator(cfg); generator != nil {
		t.Error("генератор должен отсутствовать без настроенного URL")
	}
}

func TestInsightGeneratorEnabledWithURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.Insights.APIURL = "http://localhost:9999/insights"

	if generator := insightGenerator(cfg); generator == nil {
		t.Error("генератор должен создаваться при настроенном URL")
	}
}
