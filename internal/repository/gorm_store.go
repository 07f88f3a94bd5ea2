package repository

import (
	"context"
	"errors"

	"github.com/kursadbilgin/notify-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	_ LogStore[domain.EmailNotification] = (*GormStore[domain.EmailNotification, EmailNotificationModel])(nil)
	_ LogStore[domain.SMSNotification]   = (*GormStore[domain.SMSNotification, SMSNotificationModel])(nil)
	_ LogStore[domain.InAppNotification] = (*GormStore[domain.InAppNotification, InAppNotificationModel])(nil)
)

// GormStore is a LogStore persisted through gorm. M is the table model of T.
type GormStore[T Record, M any] struct {
	db       *gorm.DB
	toModel  func(*T) *M
	toDomain func(*M) T
}

func NewGormEmailStore(db *gorm.DB) *GormStore[domain.EmailNotification, EmailNotificationModel] {
	return &GormStore[domain.EmailNotification, EmailNotificationModel]{
		db:       db,
		toModel:  emailModelFromDomain,
		toDomain: emailModelToDomain,
	}
}

func NewGormSMSStore(db *gorm.DB) *GormStore[domain.SMSNotification, SMSNotificationModel] {
	return &GormStore[domain.SMSNotification, SMSNotificationModel]{
		db:       db,
		toModel:  smsModelFromDomain,
		toDomain: smsModelToDomain,
	}
}

func NewGormInAppStore(db *gorm.DB) *GormStore[domain.InAppNotification, InAppNotificationModel] {
	return &GormStore[domain.InAppNotification, InAppNotificationModel]{
		db:       db,
		toModel:  inAppModelFromDomain,
		toDomain: inAppModelToDomain,
	}
}

func (r *GormStore[T, M]) Append(ctx context.Context, record T) error {
	return r.db.WithContext(ctx).Create(r.toModel(&record)).Error
}

func (r *GormStore[T, M]) FindByUser(ctx context.Context, userID int64) ([]T, error) {
	var models []M
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(models))
	for i := range models {
		records = append(records, r.toDomain(&models[i]))
	}
	return records, nil
}

func (r *GormStore[T, M]) FindByID(ctx context.Context, id string) (T, error) {
	var model M
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var zero T
		return zero, domain.ErrNotFound
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return r.toDomain(&model), nil
}

func (r *GormStore[T, M]) Update(ctx context.Context, id string, mutate func(*T)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model M
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		record := r.toDomain(&model)
		mutate(&record)
		return tx.Save(r.toModel(&record)).Error
	})
}

func (r *GormStore[T, M]) UpdateByUser(ctx context.Context, userID int64, mutate func(*T) bool) (int, error) {
	changed := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var models []M
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Find(&models).Error
		if err != nil {
			return err
		}

		for i := range models {
			record := r.toDomain(&models[i])
			if !mutate(&record) {
				continue
			}
			if err := tx.Save(r.toModel(&record)).Error; err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

func (r *GormStore[T, M]) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(M))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
