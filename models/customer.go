package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// EmploymentType представляет тип занятости клиента
type EmploymentType string

const (
	EmploymentSalaried     EmploymentType = "salaried"
	EmploymentSelfEmployed EmploymentType = "self_employed"
	EmploymentUnemployed   EmploymentType = "unemployed"
)

// Customer представляет клиента банка
type Customer struct {
	ID                 uint           `gorm:"primaryKey;autoIncrement"`
	FirstName          string         `gorm:"column:first_name;not null;size:50"`
	LastName           string         `gorm:"column:last_name;not null;size:50"`
	Email              string         `gorm:"column:email;unique;not null;size:100;index"`
	Password           string         `gorm:"column:password;not null;size:100"`
	PhoneNumber        string         `gorm:"column:phone_number;size:20"`
	Age                int            `gorm:"column:age;not null"`
	EmploymentType     EmploymentType `gorm:"column:employment_type;type:varchar(20);not null;default:'unemployed'"`
	Company            string         `gorm:"column:company;size:100"`
	YearsOfExperience  int            `gorm:"column:years_of_experience;not null;default:0"`
	AnnualIncome       float64        `gorm:"column:annual_income;type:decimal(20,2);not null;default:0.0"`
	ExistingLoanAmount float64        `gorm:"column:existing_loan_amount;type:decimal(20,2);not null;default:0.0"`
	CreditScore        int            `gorm:"column:credit_score;not null;default:0"`
	IsActive           bool           `gorm:"column:is_active;not null;default:true"`
	Applications       []CardApplication `gorm:"foreignKey:CustomerID"`
	Cards              []CreditCard      `gorm:"foreignKey:CustomerID"`
	CreatedAt          time.Time      `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

// TableName возвращает имя таблицы для модели Customer
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate хук для валидации перед созданием
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if len(c.FirstName) < 2 || len(c.FirstName) > 50 {
		return errors.New("first name must be between 2 and 50 characters")
	}
	if len(c.LastName) < 2 || len(c.LastName) > 50 {
		return errors.New("last name must be between 2 and 50 characters")
	}
	if len(c.Email) < 3 || len(c.Email) > 100 {
		return errors.New("email must be between 3 and 100 characters")
	}
	if c.Age < 18 || c.Age > 100 {
		return errors.New("age must be between 18 and 100")
	}
	return nil
}

// FullName возвращает полное имя клиента
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
