package models

import "time"

// Leave statuses
const (
	LeaveStatusPending   = "pending"
	LeaveStatusApproved  = "approved"
	LeaveStatusRejected  = "rejected"
	LeaveStatusCancelled = "cancelled"
)

// Leave types
const (
	LeaveTypeAnnual = "annual"
	LeaveTypeSick   = "sick"
	LeaveTypeUnpaid = "unpaid"
)

// ValidLeaveTransitions: a request is decided or cancelled exactly once.
var ValidLeaveTransitions = map[string][]string{
	LeaveStatusPending:   {LeaveStatusApproved, LeaveStatusRejected, LeaveStatusCancelled},
	LeaveStatusApproved:  {},
	LeaveStatusRejected:  {},
	LeaveStatusCancelled: {},
}

func IsValidLeaveTransition(from, to string) bool {
	for _, t := range ValidLeaveTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func IsValidLeaveType(t string) bool {
	switch t {
	case LeaveTypeAnnual, LeaveTypeSick, LeaveTypeUnpaid:
		return true
	}
	return false
}

type Leave struct {
	ID            string     `json:"id,omitempty"`
	EmployeeID    string     `json:"employeeId"`
	EmployeeName  string     `json:"employeeName"`
	Type          string     `json:"type"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       time.Time  `json:"endDate"`
	Reason        string     `json:"reason,omitempty"`
	Status        string     `json:"status"`
	DecidedBy     string     `json:"decidedBy,omitempty"`
	DecidedByName string     `json:"decidedByName,omitempty"`
	DecidedAt     *time.Time `json:"decidedAt,omitempty"`
	DecisionNote  string     `json:"decisionNote,omitempty"`
	CreatedAt     string     `json:"createdAt,omitempty"`
	UpdatedAt     string     `json:"updatedAt,omitempty"`
}
