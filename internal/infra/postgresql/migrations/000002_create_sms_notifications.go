package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/kursadbilgin/notify-api/internal/repository"
	"gorm.io/gorm"
)

func createSMSNotificationsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000002_create_sms_notifications",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&repository.SMSNotificationModel{}); err != nil {
				return err
			}
			return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_sms_notifications_user_created ON sms_notifications (user_id, created_at)`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.SMSNotificationModel{})
		},
	}
}
