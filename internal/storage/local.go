// Package storage keeps uploaded blobs on local disk behind write-once upload URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MaxObjectSize caps a single upload.
const MaxObjectSize = 10 << 20

var (
	ErrInvalidUploadURL = errors.New("upload url is invalid or expired")
	ErrAlreadyUploaded  = errors.New("upload url has already been used")
	ErrObjectNotFound   = errors.New("object not found")
	ErrTooLarge         = fmt.Errorf("object exceeds %d bytes", MaxObjectSize)
)

type uploadClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// LocalStore writes objects under a root directory, one file per storage id.
// A sidecar "<id>.type" file keeps the uploaded content type and "<id>.claim"
// marks a token as spent, even when its upload failed.
type LocalStore struct {
	root    string
	baseURL string
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
}

// NewLocalStore creates root if needed. baseURL is the public origin of the API.
func NewLocalStore(root, baseURL string, secret []byte, ttl time.Duration) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

// GenerateUploadURL reserves a storage id and returns a signed URL that accepts one PUT.
func (s *LocalStore) GenerateUploadURL(_ context.Context, userID uuid.UUID) (string, error) {
	now := s.now()
	claims := uploadClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign upload url: %w", err)
	}
	return s.baseURL + "/api/storage/upload/" + token, nil
}

// Put stores the body for the storage id named by token and returns that id.
// A second Put with the same token fails with ErrAlreadyUploaded, whether or
// not the first one succeeded.
func (s *LocalStore) Put(_ context.Context, token, contentType string, body io.Reader) (string, error) {
	claims := &uploadClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidUploadURL
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", ErrInvalidUploadURL
	}
	storageID := id.String()

	claim, err := os.OpenFile(s.path(storageID)+".claim", os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ErrAlreadyUploaded
		}
		return "", fmt.Errorf("claim upload: %w", err)
	}
	_ = claim.Close()

	f, err := os.OpenFile(s.path(storageID), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ErrAlreadyUploaded
		}
		return "", fmt.Errorf("create object: %w", err)
	}

	n, copyErr := io.Copy(f, io.LimitReader(body, MaxObjectSize+1))
	closeErr := f.Close()
	if copyErr == nil && n > MaxObjectSize {
		copyErr = ErrTooLarge
	}
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr == nil {
		copyErr = os.WriteFile(s.path(storageID)+".type", []byte(contentType), 0o644)
	}
	if copyErr != nil {
		_ = os.Remove(s.path(storageID))
		if errors.Is(copyErr, ErrTooLarge) {
			return "", ErrTooLarge
		}
		return "", fmt.Errorf("write object: %w", copyErr)
	}
	return storageID, nil
}

// Object is an opened blob; the caller closes Body.
type Object struct {
	Body        *os.File
	ContentType string
	ModTime     time.Time
}

// Open returns the blob stored under storageID.
func (s *LocalStore) Open(_ context.Context, storageID string) (*Object, error) {
	id, err := uuid.Parse(storageID)
	if err != nil {
		return nil, ErrObjectNotFound
	}
	f, err := os.Open(s.path(id.String()))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	contentType := "application/octet-stream"
	if b, err := os.ReadFile(s.path(id.String()) + ".type"); err == nil && len(b) > 0 {
		contentType = string(b)
	}
	return &Object{Body: f, ContentType: contentType, ModTime: info.ModTime()}, nil
}

// URL resolves a storage id to a fetchable URL, or nil when nothing was uploaded.
func (s *LocalStore) URL(_ context.Context, storageID string) *string {
	id, err := uuid.Parse(storageID)
	if err != nil {
		return nil
	}
	if _, err := os.Stat(s.path(id.String())); err != nil {
		return nil
	}
	url := s.baseURL + "/api/storage/objects/" + id.String()
	return &url
}

func (s *LocalStore) path(storageID string) string {
	return filepath.Join(s.root, storageID)
}
