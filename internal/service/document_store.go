package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"invoicedesk/internal/auth"
	"invoicedesk/internal/calc"
	"invoicedesk/internal/model"
	"invoicedesk/internal/repository"

	"github.com/google/uuid"
)

// Change actions pushed to the owner's live connections
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangeEvent tells a client which document changed.
type ChangeEvent struct {
	Kind   string    `json:"kind"`
	Action string    `json:"action"`
	ID     uuid.UUID `json:"id"`
}

// Notifier is told about every committed document mutation.
type Notifier interface {
	Notify(userID uuid.UUID, event ChangeEvent)
}

type nopNotifier struct{}

func (nopNotifier) Notify(uuid.UUID, ChangeEvent) {}

// Patch is a partial update. Fields left nil are not touched.
type Patch[T any] interface {
	Apply(doc *T)
}

// Hooks run inside the mutation's transaction; an error rolls the mutation back.
type Hooks[T any] struct {
	Created func(ctx context.Context, doc *T) error
	Updated func(ctx context.Context, before, after *T) error
	Removed func(ctx context.Context, doc *T) error
}

// Kind describes one document kind to the generic store.
type Kind[T any] struct {
	// Name is the route segment and the notification kind, e.g. "local-bills".
	Name string
	// Label is the human name used in errors, e.g. "Local bill".
	Label     string
	Numbering Numbering
	// Recalculate rewrites the derived fields from the items.
	Recalculate func(doc *T)
	Validate    func(doc *T) error
	Edit        func(doc *T, e calc.Edit) error
	Hooks       Hooks[T]
}

// DocumentService is the create/list/get/update/remove contract shared by every document kind.
type DocumentService[T any] interface {
	Kind() Kind[T]
	Create(ctx context.Context, s *auth.Session, doc *T) (uuid.UUID, error)
	List(ctx context.Context, s *auth.Session) ([]T, error)
	GetByID(ctx context.Context, s *auth.Session, id uuid.UUID) (*T, error)
	Update(ctx context.Context, s *auth.Session, id uuid.UUID, patch Patch[T]) (*T, error)
	Remove(ctx context.Context, s *auth.Session, id uuid.UUID) (uuid.UUID, error)
	NextNumber(ctx context.Context, s *auth.Session) (string, error)
	Preview(doc *T, edit *calc.Edit) (*T, error)
}

type documentStore[T any, PT model.DocumentPtr[T]] struct {
	kind     Kind[T]
	repo     repository.DocumentRepository[T]
	tx       repository.TransactionManager
	notifier Notifier
	now      func() time.Time
}

// StoreOption customizes a document store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	notifier Notifier
	now      func() time.Time
}

// WithNotifier sends change events to n after each commit.
func WithNotifier(n Notifier) StoreOption {
	return func(o *storeOptions) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithClock replaces time.Now for numbering.
func WithClock(now func() time.Time) StoreOption {
	return func(o *storeOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewDocumentStore returns the store for one document kind.
func NewDocumentStore[T any, PT model.DocumentPtr[T]](kind Kind[T], repo repository.DocumentRepository[T], tx repository.TransactionManager, opts ...StoreOption) DocumentService[T] {
	o := storeOptions{notifier: nopNotifier{}, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &documentStore[T, PT]{
		kind:     kind,
		repo:     repo,
		tx:       tx,
		notifier: o.notifier,
		now:      o.now,
	}
}

func (s *documentStore[T, PT]) Kind() Kind[T] {
	return s.kind
}

func (s *documentStore[T, PT]) Create(ctx context.Context, sess *auth.Session, doc *T) (uuid.UUID, error) {
	if sess == nil {
		return uuid.Nil, ErrUnauthenticated
	}

	b := PT(doc).Base()
	b.ID = uuid.New()
	b.UserID = sess.UserID
	b.CreatedAt, b.UpdatedAt = time.Time{}, time.Time{}

	if err := s.settle(doc); err != nil {
		return uuid.Nil, err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, doc); err != nil {
			return fmt.Errorf("failed to create %s: %w", s.kind.Label, err)
		}
		if s.kind.Hooks.Created != nil {
			return s.kind.Hooks.Created(txCtx, doc)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.notifier.Notify(sess.UserID, ChangeEvent{Kind: s.kind.Name, Action: ActionCreated, ID: b.ID})
	return b.ID, nil
}

func (s *documentStore[T, PT]) List(ctx context.Context, sess *auth.Session) ([]T, error) {
	if sess == nil {
		return []T{}, nil
	}
	docs, err := s.repo.ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.kind.Name, err)
	}
	return docs, nil
}

func (s *documentStore[T, PT]) GetByID(ctx context.Context, sess *auth.Session, id uuid.UUID) (*T, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	return s.load(ctx, sess, id)
}

func (s *documentStore[T, PT]) Update(ctx context.Context, sess *auth.Session, id uuid.UUID, patch Patch[T]) (*T, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}

	var updated *T
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.load(txCtx, sess, id)
		if err != nil {
			return err
		}
		before := *doc

		patch.Apply(doc)
		if err := s.settle(doc); err != nil {
			return err
		}
		if err := s.repo.Update(txCtx, doc); err != nil {
			return fmt.Errorf("failed to update %s: %w", s.kind.Label, err)
		}
		if s.kind.Hooks.Updated != nil {
			if err := s.kind.Hooks.Updated(txCtx, &before, doc); err != nil {
				return err
			}
		}
		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(sess.UserID, ChangeEvent{Kind: s.kind.Name, Action: ActionUpdated, ID: id})
	return updated, nil
}

func (s *documentStore[T, PT]) Remove(ctx context.Context, sess *auth.Session, id uuid.UUID) (uuid.UUID, error) {
	if sess == nil {
		return uuid.Nil, ErrUnauthenticated
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.load(txCtx, sess, id)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &NotFoundError{Label: s.kind.Label}
			}
			return fmt.Errorf("failed to delete %s: %w", s.kind.Label, err)
		}
		if s.kind.Hooks.Removed != nil {
			return s.kind.Hooks.Removed(txCtx, doc)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.notifier.Notify(sess.UserID, ChangeEvent{Kind: s.kind.Name, Action: ActionDeleted, ID: id})
	return id, nil
}

func (s *documentStore[T, PT]) NextNumber(ctx context.Context, sess *auth.Session) (string, error) {
	if sess == nil {
		return "", ErrUnauthenticated
	}
	prefix := s.kind.Numbering.Prefix(s.now())
	count, err := s.repo.CountByNumberPrefix(ctx, sess.UserID, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to count %s: %w", s.kind.Name, err)
	}
	return s.kind.Numbering.Format(prefix, count+1), nil
}

// Preview applies an optional cell edit and recomputes totals without persisting.
func (s *documentStore[T, PT]) Preview(doc *T, edit *calc.Edit) (*T, error) {
	if edit != nil {
		if s.kind.Edit == nil {
			return nil, invalid("edit", s.kind.Label+" items cannot be edited")
		}
		if err := s.kind.Edit(doc, *edit); err != nil {
			return nil, invalid("edit", err.Error())
		}
	}
	if s.kind.Recalculate != nil {
		s.kind.Recalculate(doc)
	}
	return doc, nil
}

// load returns the record only when sess owns it.
func (s *documentStore[T, PT]) load(ctx context.Context, sess *auth.Session, id uuid.UUID) (*T, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Label: s.kind.Label}
		}
		return nil, fmt.Errorf("failed to load %s: %w", s.kind.Label, err)
	}
	if PT(doc).Base().UserID != sess.UserID {
		return nil, &NotFoundError{Label: s.kind.Label}
	}
	return doc, nil
}

// settle recomputes derived fields and validates the result.
func (s *documentStore[T, PT]) settle(doc *T) error {
	if s.kind.Recalculate != nil {
		s.kind.Recalculate(doc)
	}
	b := PT(doc).Base()
	if b.Status != "" && !model.IsValidStatus(b.Status) {
		return invalid("status", fmt.Sprintf("must be one of %v", model.Statuses))
	}
	if s.kind.Validate != nil {
		return s.kind.Validate(doc)
	}
	return nil
}
