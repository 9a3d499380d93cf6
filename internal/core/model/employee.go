package model

import (
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID          int64            `json:"employeeId"`
	UserID      int64            `json:"userId"`
	Email       string           `json:"email,omitempty"`
	FirstName   string           `json:"firstName"`
	LastName    string           `json:"lastName"`
	Department  string           `json:"department"`
	Position    string           `json:"position"`
	Phone       string           `json:"phone"`
	Address     string           `json:"address"`
	Address2    string           `json:"address2"`
	Salary      *decimal.Decimal `json:"salary"`
	Gender      string           `json:"gender"`
	HireDate    *Date            `json:"hireDate"`
	TotalLeaves int              `json:"totalLeaves"`
}

func (e Employee) FullName() string {
	return User{FirstName: e.FirstName, LastName: e.LastName}.FullName()
}

// EmployeePatch carries the fields of a partial update; nil means unchanged.
// ClearHireDate removes the hire date.
type EmployeePatch struct {
	FirstName     *string
	LastName      *string
	Department    *string
	Position      *string
	Phone         *string
	Address       *string
	Address2      *string
	Gender        *string
	Salary        *decimal.Decimal
	HireDate      *Date
	ClearHireDate bool
	TotalLeaves   *int
}

// Apply writes the set fields of p onto e.
func (p EmployeePatch) Apply(e *Employee) {
	setString(&e.FirstName, p.FirstName)
	setString(&e.LastName, p.LastName)
	setString(&e.Department, p.Department)
	setString(&e.Position, p.Position)
	setString(&e.Phone, p.Phone)
	setString(&e.Address, p.Address)
	setString(&e.Address2, p.Address2)
	setString(&e.Gender, p.Gender)
	if p.Salary != nil {
		s := *p.Salary
		e.Salary = &s
	}
	if p.ClearHireDate {
		e.HireDate = nil
	} else if p.HireDate != nil {
		d := *p.HireDate
		e.HireDate = &d
	}
	if p.TotalLeaves != nil {
		e.TotalLeaves = *p.TotalLeaves
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
