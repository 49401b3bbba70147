package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"traveldesk-service/internal/domain/entity"
	"traveldesk-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormPersonRepository implements the PersonRepository interface. Each of
// the four identity variants lives in its own master table; FindContact
// dispatches on person type and maps the variant-specific fields into the
// common messaging projection.
type GormPersonRepository struct {
	db *gorm.DB
}

// NewGormPersonRepository creates a new GORM person repository
func NewGormPersonRepository(db *gorm.DB) repository.PersonRepository {
	return &GormPersonRepository{
		db: db,
	}
}

// Employees GORM model for database mapping
type Employees struct {
	ID        uint   `gorm:"primaryKey"`
	FullName  string `gorm:"column:full_name"`
	Email     string
	Phone     string
	Position  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides the default table name
func (Employees) TableName() string {
	return "m_employees"
}

// Stakeholders GORM model for database mapping
type Stakeholders struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Stakeholders) TableName() string {
	return "m_stakeholders"
}

// Employers GORM model for database mapping
type Employers struct {
	ID           uint   `gorm:"primaryKey"`
	CompanyName  string `gorm:"column:company_name"`
	PrimaryEmail string `gorm:"column:primary_email"`
	PrimaryPhone string `gorm:"column:primary_phone"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Employers) TableName() string {
	return "m_employers"
}

// TaskHelpers GORM model for database mapping
type TaskHelpers struct {
	ID        uint   `gorm:"primaryKey"`
	FullName  string `gorm:"column:full_name"`
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (TaskHelpers) TableName() string {
	return "m_task_helpers"
}

// FindContact resolves one identity into the messaging projection.
func (r *GormPersonRepository) FindContact(ctx context.Context, personType string, personID uint) (*entity.Contact, error) {
	switch personType {
	case entity.PersonTypeEmployee:
		var model Employees
		if err := r.first(ctx, &model, personID); err != nil {
			return nil, err
		}
		e := entity.Employee{ID: model.ID, FullName: model.FullName, Email: model.Email, Phone: model.Phone}
		contact := e.Contact()
		return &contact, nil

	case entity.PersonTypeStakeholder:
		var model Stakeholders
		if err := r.first(ctx, &model, personID); err != nil {
			return nil, err
		}
		s := entity.Stakeholder{ID: model.ID, FirstName: model.FirstName, LastName: model.LastName, Email: model.Email, Phone: model.Phone}
		contact := s.Contact()
		return &contact, nil

	case entity.PersonTypeEmployer:
		var model Employers
		if err := r.first(ctx, &model, personID); err != nil {
			return nil, err
		}
		e := entity.Employer{ID: model.ID, CompanyName: model.CompanyName, PrimaryEmail: model.PrimaryEmail, PrimaryPhone: model.PrimaryPhone}
		contact := e.Contact()
		return &contact, nil

	case entity.PersonTypeTaskHelper:
		var model TaskHelpers
		if err := r.first(ctx, &model, personID); err != nil {
			return nil, err
		}
		t := entity.TaskHelper{ID: model.ID, FullName: model.FullName, Email: model.Email, Phone: model.Phone}
		contact := t.Contact()
		return &contact, nil
	}

	return nil, fmt.Errorf("%w: unknown person type %q", entity.ErrInvalidRequest, personType)
}

func (r *GormPersonRepository) first(ctx context.Context, model interface{}, id uint) error {
	result := r.db.WithContext(ctx).First(model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return entity.ErrNotFound
		}
		return result.Error
	}
	return nil
}
