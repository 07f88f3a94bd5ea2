package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/kursadbilgin/notify-api/internal/repository"
	"gorm.io/gorm"
)

func createInAppNotificationsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000003_create_inapp_notifications",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&repository.InAppNotificationModel{}); err != nil {
				return err
			}
			indexes := []string{
				`CREATE INDEX IF NOT EXISTS idx_inapp_notifications_user_created ON inapp_notifications (user_id, created_at DESC)`,
				`CREATE INDEX IF NOT EXISTS idx_inapp_notifications_unread ON inapp_notifications (user_id) WHERE is_read = false`,
			}
			for _, sql := range indexes {
				if err := tx.Exec(sql).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.InAppNotificationModel{})
		},
	}
}
