package main

import (
	"fmt"
	"log"
	"net/http"

	"cardProject/config"
	"cardProject/controllers"
	"cardProject/database"
	"cardProject/middleware"
	"cardProject/services"
	"cardProject/utils"
	"github.com/gorilla/mux"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Подключаемся к базе данных
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	// Создаем сервисы
	metrics := utils.NewMetrics()
	auditService := services.NewAuditService(db.GetDB())
	emailService := services.NewEmailService(cfg)
	notificationService := services.NewNotificationService(db.GetDB(), emailService)
	scoringService := services.NewScoringService()
	userService := services.NewUserService(db.GetDB(), cfg, scoringService, auditService)
	cardService := services.NewCardService(db.GetDB(), cfg, metrics, auditService)
	transactionService := services.NewTransactionService(db.GetDB(), cfg, metrics, auditService, notificationService)
	applicationService := services.NewApplicationService(
		db.GetDB(), cfg, cardService, transactionService,
		notificationService, metrics, auditService,
	)
	insightService := services.NewInsightService(db.GetDB(), transactionService, insightGenerator(cfg))
	statementService := services.NewStatementService(db.GetDB(), cardService)

	// Запускаем планировщик начисления процентов
	interestScheduler := services.NewInterestSchedulerService(db.GetDB(), cfg, transactionService)
	interestScheduler.Start()
	defer interestScheduler.Stop()

	// Создаем контроллеры
	authController := controllers.NewAuthController(userService)
	cardController := controllers.NewCardController(cardService, applicationService, transactionService, statementService)
	transactionController := controllers.NewTransactionController(transactionService)
	customerController := controllers.NewCustomerController(userService, insightService, notificationService)
	managerController := controllers.NewManagerController(applicationService, userService)
	opsController := controllers.NewOpsController(db.GetDB(), metrics)

	// Настраиваем маршрутизацию
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)

	// Служебные эндпоинты
	opsEngine := opsController.Engine()
	router.Handle("/health", opsEngine)
	router.Handle("/metrics", opsEngine)

	// Публичные маршруты
	router.HandleFunc("/api/auth/customer/signup", authController.SignUpCustomer).Methods("POST")
	router.HandleFunc("/api/auth/customer/signin", authController.SignInCustomer).Methods("POST")
	router.HandleFunc("/api/auth/manager/signup", authController.SignUpManager).Methods("POST")
	router.HandleFunc("/api/auth/manager/signin", authController.SignInManager).Methods("POST")
	router.HandleFunc("/api/cards/available", cardController.AvailableCards).Methods("GET")

	auth := middleware.AuthMiddleware([]byte(cfg.JWT.SecretKey))

	// Маршруты клиента
	customer := router.PathPrefix("/api").Subrouter()
	customer.Use(auth)
	customer.Use(middleware.RequireRole("customer"))
	customer.HandleFunc("/applications", cardController.Apply).Methods("POST")
	customer.HandleFunc("/applications", cardController.MyApplications).Methods("GET")
	customer.HandleFunc("/cards", cardController.MyCards).Methods("GET")
	customer.HandleFunc("/cards/{id:[0-9]+}", cardController.CardDetails).Methods("GET")
	customer.HandleFunc("/cards/{id:[0-9]+}", cardController.Deactivate).Methods("DELETE")
	customer.HandleFunc("/cards/{id:[0-9]+}/pin", cardController.SetPIN).Methods("POST")
	customer.HandleFunc("/cards/{id:[0-9]+}/pay", cardController.PayBill).Methods("POST")
	customer.HandleFunc("/cards/{id:[0-9]+}/statement", cardController.Statement).Methods("GET")
	customer.HandleFunc("/cards/{id:[0-9]+}/transactions", transactionController.ListByCard).Methods("GET")
	customer.HandleFunc("/transactions", transactionController.Create).Methods("POST")
	customer.HandleFunc("/transactions", transactionController.ListMine).Methods("GET")
	customer.HandleFunc("/transactions/summary", transactionController.SpendingSummary).Methods("GET")
	customer.HandleFunc("/transactions/trend", transactionController.MonthlyTrend).Methods("GET")
	customer.HandleFunc("/profile", customerController.Profile).Methods("GET")
	customer.HandleFunc("/profile", customerController.UpdateProfile).Methods("PUT")
	customer.HandleFunc("/profile/score", customerController.CreditScore).Methods("GET")
	customer.HandleFunc("/profile/insights", customerController.Insights).Methods("GET")
	customer.HandleFunc("/notifications", customerController.Notifications).Methods("GET")
	customer.HandleFunc("/notifications/{id:[0-9]+}/read", customerController.MarkNotificationRead).Methods("POST")

	// Маршруты менеджера
	manager := router.PathPrefix("/api/manager").Subrouter()
	manager.Use(auth)
	manager.Use(middleware.RequireRole("manager"))
	manager.HandleFunc("/applications/pending", managerController.PendingApplications).Methods("GET")
	manager.HandleFunc("/applications/{id:[0-9]+}", managerController.ApplicationDetails).Methods("GET")
	manager.HandleFunc("/applications/{id:[0-9]+}/approve", managerController.Approve).Methods("POST")
	manager.HandleFunc("/applications/{id:[0-9]+}/reject", managerController.Reject).Methods("POST")
	manager.HandleFunc("/statistics", managerController.Statistics).Methods("GET")
	manager.HandleFunc("/customers", managerController.Customers).Methods("GET")
	manager.HandleFunc("/customers/{id:[0-9]+}", managerController.CustomerDetails).Methods("GET")

	// Запускаем сервер
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}

// insightGenerator возвращает генератор аналитики или nil,
// если внешний сервис не настроен
func insightGenerator(cfg *config.Config) services.InsightGenerator {
	if generator := services.NewHTTPInsightGenerator(cfg); generator != nil {
		return generator
	}
	return nil
}
