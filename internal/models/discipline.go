package models

// Disciplinary action categories
const (
	DisciplineCategoryWarning    = "warning"
	DisciplineCategoryReprimand  = "reprimand"
	DisciplineCategorySuspension = "suspension"
)

func IsValidDisciplineCategory(c string) bool {
	switch c {
	case DisciplineCategoryWarning, DisciplineCategoryReprimand, DisciplineCategorySuspension:
		return true
	}
	return false
}

type DisciplinaryAction struct {
	ID           string `json:"id,omitempty"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	IssuedBy     string `json:"issuedBy"`
	IssuedByName string `json:"issuedByName"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}
