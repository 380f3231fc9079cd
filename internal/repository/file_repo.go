package repository

import (
	"context"

	"invoicedesk/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileRepository stores UserFile metadata; the blobs live in object storage.
type FileRepository interface {
	Create(ctx context.Context, file *model.UserFile) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserFile, error)
	// ListByUser returns newest first; an empty category matches all.
	ListByUser(ctx context.Context, userID uuid.UUID, category string) ([]model.UserFile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, file *model.UserFile) error {
	return GetDB(ctx, r.db).Create(file).Error
}

func (r *fileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserFile, error) {
	var file model.UserFile
	if err := GetDB(ctx, r.db).First(&file, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &file, nil
}

func (r *fileRepository) ListByUser(ctx context.Context, userID uuid.UUID, category string) ([]model.UserFile, error) {
	files := []model.UserFile{}
	query := GetDB(ctx, r.db).Where("user_id = ?", userID)
	if category != "" {
		query = query.Where("file_category = ?", category)
	}
	if err := query.Order("created_at desc").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.UserFile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
