package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// DocumentRepository is the persistence contract shared by every document kind.
// T is the model struct, e.g. model.Invoice.
type DocumentRepository[T any] interface {
	Create(ctx context.Context, doc *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]T, error)
	Update(ctx context.Context, doc *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByNumberPrefix(ctx context.Context, userID uuid.UUID, prefix string) (int64, error)
}

type documentRepository[T any] struct {
	db *gorm.DB
}

// NewDocumentRepository returns a gorm-backed DocumentRepository for T.
func NewDocumentRepository[T any](db *gorm.DB) DocumentRepository[T] {
	return &documentRepository[T]{db: db}
}

func (r *documentRepository[T]) Create(ctx context.Context, doc *T) error {
	return GetDB(ctx, r.db).Create(doc).Error
}

func (r *documentRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var doc T
	if err := GetDB(ctx, r.db).First(&doc, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func (r *documentRepository[T]) ListByUser(ctx context.Context, userID uuid.UUID) ([]T, error) {
	docs := []T{}
	err := GetDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Update writes every column of doc; callers apply patches to a loaded copy first.
func (r *documentRepository[T]) Update(ctx context.Context, doc *T) error {
	return GetDB(ctx, r.db).Save(doc).Error
}

func (r *documentRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *documentRepository[T]) CountByNumberPrefix(ctx context.Context, userID uuid.UUID, prefix string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(new(T)).
		Where("user_id = ? AND invoice_number LIKE ?", userID, escapeLike(prefix)+"%").
		Count(&count).Error
	return count, err
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
