package services

import (
	"fmt"
	"time"

	"cardProject/config"
	"gopkg.in/gomail.v2"
)

// EmailService предоставляет методы для отправки email
type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
	}
}

// Send отправляет email
func (s *EmailService) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("ошибка отправки email: %v", err)
	}

	return nil
}

// SendApplicationApproved отправляет уведомление об одобрении заявки
func (s *EmailService) SendApplicationApproved(to, cardName string, approvedLimit float64) error {
	subject := "Ваша заявка на кредитную карту одобрена"
	body := fmt.Sprintf(`
		<h2>Поздравляем!</h2>
		<p>Ваша заявка на карту %s одобрена.</p>
		<p>Кредитный лимит: %.2f</p>
		<p>Карта уже выпущена и доступна в личном кабинете.</p>
		<p>Дата: %s</p>
	`, cardName, approvedLimit, time.Now().Format("02.01.2006 15:04:05"))

	return s.Send(to, subject, body)
}

// SendApplicationRejected отправляет уведомление об отказе по заявке
func (s *EmailService) SendApplicationRejected(to, cardName, reason string) error {
	subject := "Решение по заявке на кредитную карту"
	body := fmt.Sprintf(`
		<h2>Решение по заявке</h2>
		<p>К сожалению, заявка на карту %s отклонена.</p>
		<p>Причина: %s</p>
		<p>Вы можете подать новую заявку в любой момент.</p>
	`, cardName, reason)

	return s.Send(to, subject, body)
}

// SendTransactionNotification отправляет уведомление о транзакции
func (s *EmailService) SendTransactionNotification(to, maskedNumber string, amount float64, transactionType string) error {
	subject := "Уведомление об операции по карте"
	body := fmt.Sprintf(`
		<h2>Операция по карте</h2>
		<p>Карта: %s</p>
		<p>Тип операции: %s</p>
		<p>Сумма: %.2f</p>
		<p>Дата: %s</p>
	`, maskedNumber, transactionType, amount, time.Now().Format("02.01.2006 15:04:05"))

	return s.Send(to, subject, body)
}
