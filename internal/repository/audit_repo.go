package repository

import (
	"context"

	"invoicedesk/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalyticsRepository stores append-only invoice events.
type AnalyticsRepository interface {
	Append(ctx context.Context, event *model.AnalyticsEvent) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AnalyticsEvent, error)
	List(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.AnalyticsEvent, int64, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Append(ctx context.Context, event *model.AnalyticsEvent) error {
	return GetDB(ctx, r.db).Create(event).Error
}

func (r *analyticsRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AnalyticsEvent, error) {
	events := []model.AnalyticsEvent{}
	err := GetDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&events).Error
	return events, err
}

func (r *analyticsRepository) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.AnalyticsEvent, int64, error) {
	var events []model.AnalyticsEvent
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.AnalyticsEvent{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Where("user_id = ?", userID).Order("created_at desc").Offset(offset).Limit(limit).Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}
