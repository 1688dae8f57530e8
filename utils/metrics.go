package utils

import (
	"sync"
	"time"
)

// Metrics содержит метрики приложения
type Metrics struct {
	mu sync.RWMutex

	// Метрики запросов
	TotalRequests   int64
	FailedRequests  int64
	RequestLatency  time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Метрики заявок
	ApplicationsSubmitted int64
	ApplicationsApproved  int64
	ApplicationsRejected  int64

	// Метрики карт
	CardsIssued       int64
	CardsDeactivated  int64
	LastCardOperation time.Time

	// Метрики транзакций
	TransactionsPosted int64
	TransactionVolume  float64

	// Метрики ошибок
	ErrorCount    int64
	LastErrorTime time.Time
	ErrorTypes    map[string]int64
}

// NewMetrics создает новый экземпляр метрик
func NewMetrics() *Metrics {
	return &Metrics{
		ErrorTypes: make(map[string]int64),
	}
}

// RecordRequest записывает метрики запроса
func (m *Metrics) RecordRequest(duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.RequestLatency += duration
	m.AverageLatency = m.RequestLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if failed {
		m.FailedRequests++
	}
}

// RecordApplication записывает метрики обработки заявки
func (m *Metrics) RecordApplication(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch action {
	case "submitted":
		m.ApplicationsSubmitted++
	case "approved":
		m.ApplicationsApproved++
	case "rejected":
		m.ApplicationsRejected++
	}
}

// RecordCardOperation записывает метрики операции с картой
func (m *Metrics) RecordCardOperation(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastCardOperation = time.Now()

	switch operation {
	case "issue":
		m.CardsIssued++
	case "deactivate":
		m.CardsDeactivated++
	}
}

// RecordTransaction записывает метрики проведенной транзакции
func (m *Metrics) RecordTransaction(amount float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TransactionsPosted++
	m.TransactionVolume += amount
}

// RecordError записывает метрики ошибки
func (m *Metrics) RecordError(errorType string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ErrorCount++
	m.LastErrorTime = time.Now()
	m.ErrorTypes[errorType]++
}

// GetMetricsSnapshot возвращает снимок текущих метрик
func (m *Metrics) GetMetricsSnapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	errorTypes := make(map[string]int64, len(m.ErrorTypes))
	for k, v := range m.ErrorTypes {
		errorTypes[k] = v
	}

	return map[string]interface{}{
		"total_requests":         m.TotalRequests,
		"failed_requests":        m.FailedRequests,
		"average_latency":        m.AverageLatency.String(),
		"applications_submitted": m.ApplicationsSubmitted,
		"applications_approved":  m.ApplicationsApproved,
		"applications_rejected":  m.ApplicationsRejected,
		"cards_issued":           m.CardsIssued,
		"cards_deactivated":      m.CardsDeactivated,
		"transactions_posted":    m.TransactionsPosted,
		"transaction_volume":     m.TransactionVolume,
		"error_count":            m.ErrorCount,
		"error_types":            errorTypes,
	}
}

// ResetMetrics сбрасывает все метрики
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests = 0
	m.FailedRequests = 0
	m.RequestLatency = 0
	m.AverageLatency = 0
	m.ApplicationsSubmitted = 0
	m.ApplicationsApproved = 0
	m.ApplicationsRejected = 0
	m.CardsIssued = 0
	m.CardsDeactivated = 0
	m.TransactionsPosted = 0
	m.TransactionVolume = 0
	m.ErrorCount = 0
	m.ErrorTypes = make(map[string]int64)
}
