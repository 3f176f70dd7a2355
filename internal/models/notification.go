package models

// Notification kinds
const (
	NotificationLeaveDecided    = "leave_decided"
	NotificationLowStock        = "low_stock"
	NotificationBackupCompleted = "backup_completed"
	NotificationGeneral         = "general"
)

type Notification struct {
	ID          string `json:"id,omitempty"`
	RecipientID string `json:"recipientId"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Body        string `json:"body,omitempty"`
	EntityType  string `json:"entityType,omitempty"`
	EntityID    string `json:"entityId,omitempty"`
	Read        bool   `json:"read"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}
