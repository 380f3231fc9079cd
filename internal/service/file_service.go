package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"invoicedesk/internal/auth"
	"invoicedesk/internal/model"
	"invoicedesk/internal/repository"

	"github.com/google/uuid"
)

// ObjectStore is the blob storage the file metadata points into.
type ObjectStore interface {
	GenerateUploadURL(ctx context.Context, userID uuid.UUID) (string, error)
	URL(ctx context.Context, storageID string) *string
}

type SaveFileRequest struct {
	StorageID    string `json:"storageId" binding:"required"`
	FileName     string `json:"fileName" binding:"required"`
	FileType     string `json:"fileType" binding:"required"`
	FileCategory string `json:"fileCategory" binding:"required"`
}

// FileResponse is a UserFile with its resolved URL; URL is null when the blob is gone.
type FileResponse struct {
	model.UserFile
	URL *string `json:"url"`
}

type FileService interface {
	GenerateUploadURL(ctx context.Context, s *auth.Session) (string, error)
	SaveFileMetadata(ctx context.Context, s *auth.Session, req SaveFileRequest) (uuid.UUID, error)
	ListUserFiles(ctx context.Context, s *auth.Session, category string) ([]FileResponse, error)
	DeleteFile(ctx context.Context, s *auth.Session, id uuid.UUID) (uuid.UUID, error)
}

type fileService struct {
	repo    repository.FileRepository
	objects ObjectStore
}

func NewFileService(repo repository.FileRepository, objects ObjectStore) FileService {
	return &fileService{repo: repo, objects: objects}
}

func (s *fileService) GenerateUploadURL(ctx context.Context, sess *auth.Session) (string, error) {
	if sess == nil {
		return "", ErrUnauthenticated
	}
	url, err := s.objects.GenerateUploadURL(ctx, sess.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to generate upload url: %w", err)
	}
	return url, nil
}

func (s *fileService) SaveFileMetadata(ctx context.Context, sess *auth.Session, req SaveFileRequest) (uuid.UUID, error) {
	if sess == nil {
		return uuid.Nil, ErrUnauthenticated
	}
	if !model.IsValidFileCategory(req.FileCategory) {
		return uuid.Nil, invalid("fileCategory", "must be logo, signature or seal")
	}
	if strings.TrimSpace(req.StorageID) == "" {
		return uuid.Nil, invalid("storageId", "is required")
	}

	file := &model.UserFile{
		ID:           uuid.New(),
		UserID:       sess.UserID,
		StorageID:    req.StorageID,
		FileName:     req.FileName,
		FileType:     req.FileType,
		FileCategory: req.FileCategory,
	}
	if err := s.repo.Create(ctx, file); err != nil {
		return uuid.Nil, fmt.Errorf("failed to save file: %w", err)
	}
	return file.ID, nil
}

func (s *fileService) ListUserFiles(ctx context.Context, sess *auth.Session, category string) ([]FileResponse, error) {
	if sess == nil {
		return []FileResponse{}, nil
	}
	if category != "" && !model.IsValidFileCategory(category) {
		return nil, invalid("category", "must be logo, signature or seal")
	}

	files, err := s.repo.ListByUser(ctx, sess.UserID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	out := make([]FileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, FileResponse{UserFile: f, URL: s.objects.URL(ctx, f.StorageID)})
	}
	return out, nil
}

// DeleteFile removes the metadata only; documents may still reference the blob.
func (s *fileService) DeleteFile(ctx context.Context, sess *auth.Session, id uuid.UUID) (uuid.UUID, error) {
	if sess == nil {
		return uuid.Nil, ErrUnauthenticated
	}

	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, &NotFoundError{Label: "File"}
		}
		return uuid.Nil, fmt.Errorf("failed to load file: %w", err)
	}
	if file.UserID != sess.UserID {
		return uuid.Nil, &NotFoundError{Label: "File"}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, &NotFoundError{Label: "File"}
		}
		return uuid.Nil, fmt.Errorf("failed to delete file: %w", err)
	}
	return id, nil
}
