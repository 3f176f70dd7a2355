package models

import "testing"

func TestIsValidLeaveTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		{LeaveStatusPending, LeaveStatusApproved, true},
		{LeaveStatusPending, LeaveStatusRejected, true},
		{LeaveStatusPending, LeaveStatusCancelled, true},

		{LeaveStatusApproved, LeaveStatusRejected, false},
		{LeaveStatusApproved, LeaveStatusCancelled, false},
		{LeaveStatusRejected, LeaveStatusApproved, false},
		{LeaveStatusCancelled, LeaveStatusPending, false},
		{LeaveStatusApproved, LeaveStatusPending, false},
		{"nonexistent", LeaveStatusApproved, false},
		{LeaveStatusPending, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidLeaveTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidLeaveTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestDecidedStatusesAreTerminal(t *testing.T) {
	for _, status := range []string{LeaveStatusApproved, LeaveStatusRejected, LeaveStatusCancelled} {
		if len(ValidLeaveTransitions[status]) != 0 {
			t.Errorf("status %q should have no transitions, got %v", status, ValidLeaveTransitions[status])
		}
	}
}
