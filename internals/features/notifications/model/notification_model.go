// file: internals/features/notifications/model/notification_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Tipe event billing yang dikenal
const (
	NotificationTypeBillingIssued    = "BILLING_ISSUED"
	NotificationTypePaymentConfirmed = "PAYMENT_CONFIRMED"
)

type Notification struct {
	NotificationID          uuid.UUID      `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationType        string         `gorm:"column:notification_type;type:varchar(40);not null;index" json:"notification_type"`
	NotificationTitle       string         `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationDescription string         `gorm:"column:notification_description;type:text" json:"notification_description"`
	NotificationRecipients  pq.StringArray `gorm:"column:notification_recipients;type:text[];not null" json:"notification_recipients"`
	NotificationInvoiceID   *uuid.UUID     `gorm:"column:notification_invoice_id;type:uuid;index" json:"notification_invoice_id,omitempty"`
	NotificationTags        pq.StringArray `gorm:"column:notification_tags;type:text[]" json:"notification_tags"`
	NotificationCreatedAt   time.Time      `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
	NotificationReadAt      *time.Time     `gorm:"column:notification_read_at" json:"notification_read_at,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
