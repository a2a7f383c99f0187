package models

import "time"

// NotificationType is the visual severity of a notification
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// NotificationCategory groups notifications by originating domain
type NotificationCategory string

const (
	CategoryEvent    NotificationCategory = "event"
	CategoryCredit   NotificationCategory = "credit"
	CategoryAbsence  NotificationCategory = "absence"
	CategorySanction NotificationCategory = "sanction"
	CategorySystem   NotificationCategory = "system"
)

// RelatedRef points a notification at the entity that produced it
type RelatedRef struct {
	Model string `json:"model" example:"credit"`
	ID    int64  `json:"id" example:"42"`
}

// NotificationRetention is how long notifications are kept before the
// scheduler purges them
const NotificationRetention = 30 * 24 * time.Hour

// Notification defines an in-app notification based on the 'notifications'
// table
type Notification struct {
	ID          int64                `json:"id" db:"id"`
	RecipientID int64                `json:"recipientId" db:"recipient_id"`
	Title       string               `json:"title" db:"title"`
	Message     string               `json:"message" db:"message"`
	Type        NotificationType     `json:"type" db:"notification_type"`
	Category    NotificationCategory `json:"category" db:"category"`
	Related     *RelatedRef          `json:"relatedTo,omitempty"`
	IsRead      bool                 `json:"isRead" db:"is_read"`
	IsEmailSent bool                 `json:"isEmailSent" db:"is_email_sent"`
	CreatedAt   time.Time            `json:"createdAt" db:"created_at"`
}
