package repository

import (
	"time"

	"github.com/kursadbilgin/notify-api/internal/domain"
)

// EmailNotificationModel is the persistence model for email_notifications.
type EmailNotificationModel struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	UserID    int64     `gorm:"not null;index"`
	EmailTo   string    `gorm:"type:varchar(320);not null;index"`
	Subject   string    `gorm:"type:text;not null"`
	Body      string    `gorm:"type:text;not null"`
	Sent      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

func (EmailNotificationModel) TableName() string {
	return "email_notifications"
}

// SMSNotificationModel is the persistence model for sms_notifications.
type SMSNotificationModel struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	UserID    int64     `gorm:"not null;index"`
	To        string    `gorm:"column:to_number;type:varchar(32);not null"`
	Body      string    `gorm:"type:text;not null"`
	SID       *string   `gorm:"column:sid;type:varchar(64)"`
	CreatedAt time.Time `gorm:"not null"`
}

func (SMSNotificationModel) TableName() string {
	return "sms_notifications"
}

// InAppNotificationModel is the persistence model for inapp_notifications.
type InAppNotificationModel struct {
	ID               string           `gorm:"type:varchar(64);primaryKey"`
	UserID           int64            `gorm:"not null;index"`
	Title            string           `gorm:"type:varchar(255);not null"`
	Message          string           `gorm:"type:text;not null"`
	NotificationType domain.InAppType `gorm:"type:varchar(16);not null;default:'info'"`
	Link             *string          `gorm:"type:text"`
	Read             bool             `gorm:"column:is_read;not null;default:false"`
	CreatedAt        time.Time        `gorm:"not null"`
}

func (InAppNotificationModel) TableName() string {
	return "inapp_notifications"
}

func emailModelFromDomain(n *domain.EmailNotification) *EmailNotificationModel {
	return &EmailNotificationModel{
		ID:        n.ID,
		UserID:    n.UserID,
		EmailTo:   n.EmailTo,
		Subject:   n.Subject,
		Body:      n.Body,
		Sent:      n.Sent,
		CreatedAt: n.CreatedAt,
	}
}

func emailModelToDomain(m *EmailNotificationModel) domain.EmailNotification {
	return domain.EmailNotification{
		ID:        m.ID,
		UserID:    m.UserID,
		EmailTo:   m.EmailTo,
		Subject:   m.Subject,
		Body:      m.Body,
		Sent:      m.Sent,
		CreatedAt: m.CreatedAt,
	}
}

func smsModelFromDomain(n *domain.SMSNotification) *SMSNotificationModel {
	return &SMSNotificationModel{
		ID:        n.ID,
		UserID:    n.UserID,
		To:        n.To,
		Body:      n.Body,
		SID:       n.SID,
		CreatedAt: n.CreatedAt,
	}
}

func smsModelToDomain(m *SMSNotificationModel) domain.SMSNotification {
	return domain.SMSNotification{
		ID:        m.ID,
		UserID:    m.UserID,
		To:        m.To,
		Body:      m.Body,
		SID:       m.SID,
		CreatedAt: m.CreatedAt,
	}
}

func inAppModelFromDomain(n *domain.InAppNotification) *InAppNotificationModel {
	return &InAppNotificationModel{
		ID:               n.ID,
		UserID:           n.UserID,
		Title:            n.Title,
		Message:          n.Message,
		NotificationType: n.NotificationType,
		Link:             n.Link,
		Read:             n.Read,
		CreatedAt:        n.CreatedAt,
	}
}

func inAppModelToDomain(m *InAppNotificationModel) domain.InAppNotification {
	return domain.InAppNotification{
		ID:               m.ID,
		UserID:           m.UserID,
		Title:            m.Title,
		Message:          m.Message,
		NotificationType: m.NotificationType,
		Link:             m.Link,
		Read:             m.Read,
		CreatedAt:        m.CreatedAt,
	}
}
