package dto

import (
	"time"

	"github.com/staffdesk/backend/internal/models"
)

type CreateEmployeeRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	Status     string     `json:"status"`
	HireDate   *time.Time `json:"hireDate"`
}

type UpdateEmployeeRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	Status     string     `json:"status"`
	HireDate   *time.Time `json:"hireDate"`
}

type RequestLeaveRequest struct {
	EmployeeID string    `json:"employeeId"`
	Type       string    `json:"type"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Reason     string    `json:"reason"`
}

type DecideLeaveRequest struct {
	Note string `json:"note"`
}

type CreateDisciplineRequest struct {
	EmployeeID  string `json:"employeeId"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type UpdateDisciplineRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

type CreateInventoryItemRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Unit         string `json:"unit"`
	CurrentStock int    `json:"currentStock"`
	MinStock     int    `json:"minStock"`
}

type UpdateInventoryItemRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Unit         string `json:"unit"`
	CurrentStock int    `json:"currentStock"`
	MinStock     int    `json:"minStock"`
}

type WithdrawRequest struct {
	Quantity int    `json:"quantity"`
	Purpose  string `json:"purpose"`
}

type CreateBlacklistRequest struct {
	SubjectName string `json:"subjectName"`
	IDNumber    string `json:"idNumber"`
	Reason      string `json:"reason"`
}

type CreateBackupRequest struct {
	ScheduleID  string `json:"scheduleId"`
	IsAutomatic bool   `json:"isAutomatic"`
}

// RestoreRequest carries a whole snapshot back from the client, so a
// downloaded backup file can be restored without ever touching history.
type RestoreRequest struct {
	Backup        *models.BackupSnapshot `json:"backup"`
	ClearExisting bool                   `json:"clearExisting"`
}

type CreateScheduleRequest struct {
	Frequency     string   `json:"frequency"`
	Time          string   `json:"time"`
	DayOfWeek     *int     `json:"dayOfWeek"`
	DayOfMonth    *int     `json:"dayOfMonth"`
	IsActive      bool     `json:"isActive"`
	RetentionDays int      `json:"retentionDays"`
	Collections   []string `json:"collections"`
}

type UpdateScheduleRequest struct {
	Frequency     *string  `json:"frequency"`
	Time          *string  `json:"time"`
	DayOfWeek     *int     `json:"dayOfWeek"`
	DayOfMonth    *int     `json:"dayOfMonth"`
	IsActive      *bool    `json:"isActive"`
	RetentionDays *int     `json:"retentionDays"`
	Collections   []string `json:"collections"`
}
