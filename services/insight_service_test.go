package services

import (
	"strings"
	"testing"
)

func TestFallbackSummaryBands(t *testing.T) {
	high := fallbackSummary(85)
	if !strings.Contains(high, "критически") {
		t.Errorf("для утилизации 85%% ожидалась критическая рекомендация: %q", high)
	}

	medium := fallbackSummary(60)
	if !strings.Contains(medium, "выше рекомендуемого") {
		t.Errorf("для утилизации 60%% ожидалось предупреждение: %q", medium)
	}

	low := fallbackSummary(20)
	if !strings.Contains(low, "в пределах нормы") {
		t.Errorf("для утилизации 20%% ожидалась спокойная рекомендация: %q", low)
	}

	// Границы диапазонов
	if !strings.Contains(fallbackSummary(80), "выше рекомендуемого") {
		t.Error("ровно 80 процентов относится к среднему диапазону")
	}
	if !strings.Contains(fallbackSummary(50), "в пределах нормы") {
		t.Error("ровно 50 процентов относится к нормальному диапазону")
	}
}
