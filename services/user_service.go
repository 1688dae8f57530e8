package services

import (
	"errors"
	"time"

	"cardProject/config"
	"cardProject/models"
	"cardProject/utils"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterCustomerDTO представляет запрос на регистрацию клиента
type RegisterCustomerDTO struct {
	FirstName          string  `json:"first_name" validate:"required,min=2,max=50"`
	LastName           string  `json:"last_name" validate:"required,min=2,max=50"`
	Email              string  `json:"email" validate:"required,email"`
	Password           string  `json:"password" validate:"required,min=8"`
	PhoneNumber        string  `json:"phone_number" validate:"max=20"`
	Age                int     `json:"age" validate:"required,gte=18,lte=100"`
	EmploymentType     string  `json:"employment_type" validate:"required,oneof=salaried self_employed unemployed"`
	Company            string  `json:"company" validate:"max=100"`
	YearsOfExperience  int     `json:"years_of_experience" validate:"gte=0"`
	AnnualIncome       float64 `json:"annual_income" validate:"gte=0"`
	ExistingLoanAmount float64 `json:"existing_loan_amount" validate:"gte=0"`
}

// RegisterManagerDTO представляет запрос на регистрацию менеджера
type RegisterManagerDTO struct {
	FirstName  string `json:"first_name" validate:"required,min=2,max=50"`
	LastName   string `json:"last_name" validate:"required,min=2,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	EmployeeID string `json:"employee_id" validate:"required,min=3,max=20"`
	Department string `json:"department" validate:"max=50"`
}

// SignInDTO представляет запрос на вход
type SignInDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileDTO представляет изменяемые поля профиля клиента.
// Указатели различают "поле не передано" и "передано нулевое значение".
type UpdateProfileDTO struct {
	FirstName          *string  `json:"first_name" validate:"omitempty,min=2,max=50"`
	LastName           *string  `json:"last_name" validate:"omitempty,min=2,max=50"`
	PhoneNumber        *string  `json:"phone_number" validate:"omitempty,max=20"`
	EmploymentType     *string  `json:"employment_type" validate:"omitempty,oneof=salaried self_employed unemployed"`
	Company            *string  `json:"company" validate:"omitempty,max=100"`
	YearsOfExperience  *int     `json:"years_of_experience" validate:"omitempty,gte=0"`
	AnnualIncome       *float64 `json:"annual_income" validate:"omitempty,gte=0"`
	ExistingLoanAmount *float64 `json:"existing_loan_amount" validate:"omitempty,gte=0"`
}

// Claims представляет полезную нагрузку JWT-токена
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"` // customer или manager
	jwt.RegisteredClaims
}

// CustomerResponse представляет клиента в ответе API
type CustomerResponse struct {
	ID                 uint    `json:"id"`
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	Email              string  `json:"email"`
	PhoneNumber        string  `json:"phone_number"`
	Age                int     `json:"age"`
	EmploymentType     string  `json:"employment_type"`
	Company            string  `json:"company"`
	YearsOfExperience  int     `json:"years_of_experience"`
	AnnualIncome       float64 `json:"annual_income"`
	ExistingLoanAmount float64 `json:"existing_loan_amount"`
	CreditScore        int     `json:"credit_score"`
	IsActive           bool    `json:"is_active"`
}

// UserService отвечает за регистрацию, аутентификацию и профили
type UserService struct {
	db       *gorm.DB
	cfg      *config.Config
	validate *validator.Validate
	scoring  *ScoringService
	audit    *AuditService
}

// NewUserService создает новый экземпляр UserService
func NewUserService(db *gorm.DB, cfg *config.Config, scoring *ScoringService, audit *AuditService) *UserService {
	return &UserService{
		db:       db,
		cfg:      cfg,
		validate: validator.New(),
		scoring:  scoring,
		audit:    audit,
	}
}

// RegisterCustomer регистрирует нового клиента. Кредитный рейтинг
// вычисляется сразу при регистрации.
func (s *UserService) RegisterCustomer(dto *RegisterCustomerDTO) (*models.Customer, error) {
	// Валидируем DTO
	if err := s.validate.Struct(dto); err != nil {
		return nil, utils.ValidationError("некорректные данные регистрации")
	}

	// Проверяем, существует ли клиент с таким email
	var existing models.Customer
	if err := s.db.Where("LOWER(email) = LOWER(?)", dto.Email).First(&existing).Error; err == nil {
		return nil, utils.ConflictError("клиент с таким email уже существует")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.InternalError("не удалось проверить email", err)
	}

	// Хешируем пароль
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.InternalError("не удалось захэшировать пароль", err)
	}

	customer := &models.Customer{
		FirstName:          dto.FirstName,
		LastName:           dto.LastName,
		Email:              dto.Email,
		Password:           string(hashedPassword),
		PhoneNumber:        dto.PhoneNumber,
		Age:                dto.Age,
		EmploymentType:     models.EmploymentType(dto.EmploymentType),
		Company:            dto.Company,
		YearsOfExperience:  dto.YearsOfExperience,
		AnnualIncome:       dto.AnnualIncome,
		ExistingLoanAmount: dto.ExistingLoanAmount,
		IsActive:           true,
	}
	customer.CreditScore = s.scoring.CalculateForCustomer(customer)

	if err := s.db.Create(customer).Error; err != nil {
		return nil, utils.InternalError("не удалось создать клиента", err)
	}

	s.audit.Record(customer.ID, "customer", "customer.register", map[string]interface{}{
		"email": customer.Email,
	}, "", "")

	return customer, nil
}

// RegisterManager регистрирует нового менеджера
func (s *UserService) RegisterManager(dto *RegisterManagerDTO) (*models.Manager, error) {
	if err := s.validate.Struct(dto); err != nil {
		return nil, utils.ValidationError("некорректные данные регистрации")
	}

	var existing models.Manager
	if err := s.db.Where("LOWER(email) = LOWER(?) OR employee_id = ?", dto.Email, dto.EmployeeID).First(&existing).Error; err == nil {
		return nil, utils.ConflictError("менеджер с таким email или табельным номером уже существует")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.InternalError("не удалось проверить email", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.InternalError("не удалось захэшировать пароль", err)
	}

	manager := &models.Manager{
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		Email:      dto.Email,
		Password:   string(hashedPassword),
		EmployeeID: dto.EmployeeID,
		Department: dto.Department,
		IsActive:   true,
	}

	if err := s.db.Create(manager).Error; err != nil {
		return nil, utils.InternalError("не удалось создать менеджера", err)
	}

	s.audit.Record(manager.ID, "manager", "manager.register", map[string]interface{}{
		"email": manager.Email,
	}, "", "")

	return manager, nil
}

// SignInCustomer аутентифицирует клиента и возвращает JWT-токен
func (s *UserService) SignInCustomer(dto *SignInDTO) (string, *models.Customer, error) {
	if err := s.validate.Struct(dto); err != nil {
		return "", nil, utils.ValidationError("некорректные данные входа")
	}

	var customer models.Customer
	if err := s.db.Where("LOWER(email) = LOWER(?)", dto.Email).First(&customer).Error; err != nil {
		return "", nil, utils.UnauthenticatedError("неверный email или пароль")
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(dto.Password)) != nil {
		return "", nil, utils.UnauthenticatedError("неверный email или пароль")
	}
	if !customer.IsActive {
		return "", nil, utils.ForbiddenError("учетная запись деактивирована")
	}

	token, err := s.generateToken(customer.ID, customer.Email, "customer")
	if err != nil {
		return "", nil, utils.InternalError("не удалось сгенерировать токен", err)
	}

	s.audit.Record(customer.ID, "customer", "customer.signin", nil, "", "")
	return token, &customer, nil
}

// SignInManager аутентифицирует менеджера и возвращает JWT-токен
func (s *UserService) SignInManager(dto *SignInDTO) (string, *models.Manager, error) {
	if err := s.validate.Struct(dto); err != nil {
		return "", nil, utils.ValidationError("некорректные данные входа")
	}

	var manager models.Manager
	if err := s.db.Where("LOWER(email) = LOWER(?)", dto.Email).First(&manager).Error; err != nil {
		return "", nil, utils.UnauthenticatedError("неверный email или пароль")
	}
	if bcrypt.CompareHashAndPassword([]byte(manager.Password), []byte(dto.Password)) != nil {
		return "", nil, utils.UnauthenticatedError("неверный email или пароль")
	}
	if !manager.IsActive {
		return "", nil, utils.ForbiddenError("учетная запись деактивирована")
	}

	token, err := s.generateToken(manager.ID, manager.Email, "manager")
	if err != nil {
		return "", nil, utils.InternalError("не удалось сгенерировать токен", err)
	}

	s.audit.Record(manager.ID, "manager", "manager.signin", nil, "", "")
	return token, &manager, nil
}

// GetCustomer возвращает клиента по идентификатору
func (s *UserService) GetCustomer(customerID uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("клиент не найден")
		}
		return nil, utils.InternalError("не удалось получить клиента", err)
	}
	return &customer, nil
}

// ListCustomers возвращает клиентов с пагинацией
func (s *UserService) ListCustomers(limit, offset int) ([]models.Customer, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var customers []models.Customer
	err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&customers).Error
	if err != nil {
		return nil, utils.InternalError("не удалось получить клиентов", err)
	}
	return customers, nil
}

// UpdateProfile обновляет профиль клиента и пересчитывает кредитный
// рейтинг, если изменились влияющие на него поля
func (s *UserService) UpdateProfile(customerID uint, dto *UpdateProfileDTO) (*models.Customer, error) {
	if err := s.validate.Struct(dto); err != nil {
		return nil, utils.ValidationError("некорректные данные профиля")
	}

	var customer models.Customer
	if err := s.db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("клиент не найден")
		}
		return nil, utils.InternalError("не удалось получить клиента", err)
	}

	scoreAffected := false

	if dto.FirstName != nil {
		customer.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		customer.LastName = *dto.LastName
	}
	if dto.PhoneNumber != nil {
		customer.PhoneNumber = *dto.PhoneNumber
	}
	if dto.EmploymentType != nil {
		customer.EmploymentType = models.EmploymentType(*dto.EmploymentType)
		scoreAffected = true
	}
	if dto.Company != nil {
		customer.Company = *dto.Company
	}
	if dto.YearsOfExperience != nil {
		customer.YearsOfExperience = *dto.YearsOfExperience
		scoreAffected = true
	}
	if dto.AnnualIncome != nil {
		customer.AnnualIncome = *dto.AnnualIncome
		scoreAffected = true
	}
	if dto.ExistingLoanAmount != nil {
		customer.ExistingLoanAmount = *dto.ExistingLoanAmount
		scoreAffected = true
	}

	if scoreAffected {
		customer.CreditScore = s.scoring.CalculateForCustomer(&customer)
	}

	if err := s.db.Save(&customer).Error; err != nil {
		return nil, utils.InternalError("не удалось сохранить профиль", err)
	}

	s.audit.Record(customerID, "customer", "customer.update_profile", map[string]interface{}{
		"score_recalculated": scoreAffected,
	}, "", "")

	return &customer, nil
}

// ToCustomerResponse преобразует клиента в DTO ответа
func ToCustomerResponse(customer *models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                 customer.ID,
		FirstName:          customer.FirstName,
		LastName:           customer.LastName,
		Email:              customer.Email,
		PhoneNumber:        customer.PhoneNumber,
		Age:                customer.Age,
		EmploymentType:     string(customer.EmploymentType),
		Company:            customer.Company,
		YearsOfExperience:  customer.YearsOfExperience,
		AnnualIncome:       customer.AnnualIncome,
		ExistingLoanAmount: customer.ExistingLoanAmount,
		CreditScore:        customer.CreditScore,
		IsActive:           customer.IsActive,
	}
}

// generateToken создает JWT-токен с ролью пользователя
func (s *UserService) generateToken(userID uint, email, role string) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(s.cfg.JWT.ExpiresIn) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}
