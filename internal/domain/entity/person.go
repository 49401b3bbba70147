package entity

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Person types a passenger record can point at
const (
	PersonTypeEmployee    = "EMPLOYEE"
	PersonTypeStakeholder = "STAKEHOLDER"
	PersonTypeEmployer    = "EMPLOYER"
	PersonTypeTaskHelper  = "TASK_HELPER"
)

// ValidPersonType reports whether t is one of the four identity variants.
func ValidPersonType(t string) bool {
	switch t {
	case PersonTypeEmployee, PersonTypeStakeholder, PersonTypeEmployer, PersonTypeTaskHelper:
		return true
	}
	return false
}

// Contact is the common messaging projection of an identity. Email and
// Phone are empty when the underlying record has none.
type Contact struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// Employee is a household/enterprise employee identity.
type Employee struct {
	ID        uint
	FullName  string
	Email     string
	Phone     string
	Position  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

// Contact projects the employee into the messaging shape.
func (e *Employee) Contact() Contact {
	return Contact{ID: e.ID, DisplayName: e.FullName, Email: e.Email, Phone: e.Phone}
}

// Stakeholder is a family member / principal identity.
type Stakeholder struct {
	ID        uint
	FirstName string
	LastName  string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

// Contact projects the stakeholder into the messaging shape. The display
// name is assembled from first and last name.
func (s *Stakeholder) Contact() Contact {
	name := strings.TrimSpace(s.FirstName + " " + s.LastName)
	return Contact{ID: s.ID, DisplayName: name, Email: s.Email, Phone: s.Phone}
}

// Employer is a company identity; its primary contact fields map to the
// generic email/phone slots.
type Employer struct {
	ID           uint
	CompanyName  string
	PrimaryEmail string
	PrimaryPhone string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt
}

// Contact projects the employer into the messaging shape.
func (e *Employer) Contact() Contact {
	return Contact{ID: e.ID, DisplayName: e.CompanyName, Email: e.PrimaryEmail, Phone: e.PrimaryPhone}
}

// TaskHelper is an external helper identity for daily tasks.
type TaskHelper struct {
	ID        uint
	FullName  string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

// Contact projects the task helper into the messaging shape.
func (t *TaskHelper) Contact() Contact {
	return Contact{ID: t.ID, DisplayName: t.FullName, Email: t.Email, Phone: t.Phone}
}
