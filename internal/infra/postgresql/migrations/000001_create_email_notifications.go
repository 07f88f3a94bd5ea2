package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/kursadbilgin/notify-api/internal/repository"
	"gorm.io/gorm"
)

func createEmailNotificationsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_create_email_notifications",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&repository.EmailNotificationModel{}); err != nil {
				return err
			}
			return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_email_notifications_user_created ON email_notifications (user_id, created_at)`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.EmailNotificationModel{})
		},
	}
}
