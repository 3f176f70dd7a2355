package models

import "time"

// Employee statuses
const (
	EmployeeStatusActive     = "active"
	EmployeeStatusSuspended  = "suspended"
	EmployeeStatusTerminated = "terminated"
)

type Employee struct {
	ID         string     `json:"id,omitempty"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	Status     string     `json:"status"`
	HireDate   *time.Time `json:"hireDate,omitempty"`
	CreatedAt  string     `json:"createdAt,omitempty"`
	UpdatedAt  string     `json:"updatedAt,omitempty"`
}

func IsValidEmployeeStatus(s string) bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusSuspended, EmployeeStatusTerminated:
		return true
	}
	return false
}
