// Package memory implements the repository interfaces in process memory.
// It backs STORE_DRIVER=memory and the service and handler tests.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"invoicedesk/internal/model"
	"invoicedesk/internal/repository"

	"github.com/google/uuid"
)

// Clock returns the time stamped on new records.
type Clock func() time.Time

type row[T any] struct {
	seq int64
	val T
}

// table is an ordered map of records keyed by id.
type table[T any] struct {
	mu    sync.RWMutex
	seq   int64
	rows  map[uuid.UUID]row[T]
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{rows: make(map[uuid.UUID]row[T]), clone: clone}
}

func (t *table[T]) put(id uuid.UUID, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.rows[id]
	if !ok {
		t.seq++
		r.seq = t.seq
	}
	r.val = t.clone(v)
	t.rows[id] = r
}

func (t *table[T]) get(id uuid.UUID) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(r.val), true
}

func (t *table[T]) remove(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// filter returns matching records newest first; insertion order breaks ties.
func (t *table[T]) filter(match func(T) bool, createdAt func(T) time.Time) []T {
	t.mu.RLock()
	matched := make([]row[T], 0, len(t.rows))
	for _, r := range t.rows {
		if match(r.val) {
			matched = append(matched, r)
		}
	}
	t.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		ci, cj := createdAt(matched[i].val), createdAt(matched[j].val)
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return matched[i].seq > matched[j].seq
	})

	out := make([]T, len(matched))
	for i, r := range matched {
		out[i] = t.clone(r.val)
	}
	return out
}

// deepCopy round-trips v through JSON so callers never share item slices with the table.
func deepCopy[T any](v T) T {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

// DocumentRepository keeps one document kind in memory.
type DocumentRepository[T any, PT model.DocumentPtr[T]] struct {
	rows *table[T]
	now  Clock
}

// NewDocumentRepository returns an empty store for T.
func NewDocumentRepository[T any, PT model.DocumentPtr[T]](now Clock) *DocumentRepository[T, PT] {
	if now == nil {
		now = time.Now
	}
	return &DocumentRepository[T, PT]{rows: newTable[T](deepCopy[T]), now: now}
}

var _ repository.DocumentRepository[model.Invoice] = (*DocumentRepository[model.Invoice, *model.Invoice])(nil)

func base[T any, PT model.DocumentPtr[T]](v *T) *model.DocumentBase {
	return PT(v).Base()
}

func (r *DocumentRepository[T, PT]) Create(_ context.Context, doc *T) error {
	b := base[T, PT](doc)
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := r.now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	r.rows.put(b.ID, *doc)
	return nil
}

func (r *DocumentRepository[T, PT]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	doc, ok := r.rows.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &doc, nil
}

func (r *DocumentRepository[T, PT]) ListByUser(_ context.Context, userID uuid.UUID) ([]T, error) {
	return r.rows.filter(
		func(v T) bool { return base[T, PT](&v).UserID == userID },
		func(v T) time.Time { return base[T, PT](&v).CreatedAt },
	), nil
}

func (r *DocumentRepository[T, PT]) Update(_ context.Context, doc *T) error {
	b := base[T, PT](doc)
	if _, ok := r.rows.get(b.ID); !ok {
		return repository.ErrNotFound
	}
	b.UpdatedAt = r.now()
	r.rows.put(b.ID, *doc)
	return nil
}

func (r *DocumentRepository[T, PT]) Delete(_ context.Context, id uuid.UUID) error {
	if !r.rows.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *DocumentRepository[T, PT]) CountByNumberPrefix(_ context.Context, userID uuid.UUID, prefix string) (int64, error) {
	docs := r.rows.filter(
		func(v T) bool {
			b := base[T, PT](&v)
			return b.UserID == userID && strings.HasPrefix(b.InvoiceNumber, prefix)
		},
		func(v T) time.Time { return base[T, PT](&v).CreatedAt },
	)
	return int64(len(docs)), nil
}

// AnalyticsRepository keeps analytics events in memory.
type AnalyticsRepository struct {
	rows *table[model.AnalyticsEvent]
	now  Clock
}

func NewAnalyticsRepository(now Clock) *AnalyticsRepository {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsRepository{rows: newTable[model.AnalyticsEvent](nil), now: now}
}

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)

func (r *AnalyticsRepository) Append(_ context.Context, event *model.AnalyticsEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.now()
	}
	r.rows.put(event.ID, *event)
	return nil
}

func (r *AnalyticsRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]model.AnalyticsEvent, error) {
	return r.rows.filter(
		func(e model.AnalyticsEvent) bool { return e.UserID == userID },
		func(e model.AnalyticsEvent) time.Time { return e.CreatedAt },
	), nil
}

func (r *AnalyticsRepository) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.AnalyticsEvent, int64, error) {
	all, _ := r.ListByUser(ctx, userID)
	total := int64(len(all))

	offset := (page - 1) * limit
	if page < 1 || limit < 1 || offset < 0 || offset >= len(all) {
		return []model.AnalyticsEvent{}, total, nil
	}
	end := offset + limit
	if end < offset || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// FileRepository keeps UserFile metadata in memory.
type FileRepository struct {
	rows *table[model.UserFile]
	now  Clock
}

func NewFileRepository(now Clock) *FileRepository {
	if now == nil {
		now = time.Now
	}
	return &FileRepository{rows: newTable[model.UserFile](nil), now: now}
}

var _ repository.FileRepository = (*FileRepository)(nil)

func (r *FileRepository) Create(_ context.Context, file *model.UserFile) error {
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	if file.CreatedAt.IsZero() {
		file.CreatedAt = r.now()
	}
	r.rows.put(file.ID, *file)
	return nil
}

func (r *FileRepository) FindByID(_ context.Context, id uuid.UUID) (*model.UserFile, error) {
	f, ok := r.rows.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

func (r *FileRepository) ListByUser(_ context.Context, userID uuid.UUID, category string) ([]model.UserFile, error) {
	return r.rows.filter(
		func(f model.UserFile) bool {
			return f.UserID == userID && (category == "" || f.FileCategory == category)
		},
		func(f model.UserFile) time.Time { return f.CreatedAt },
	), nil
}

func (r *FileRepository) Delete(_ context.Context, id uuid.UUID) error {
	if !r.rows.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

// UserRepository keeps accounts in memory with a unique email index.
type UserRepository struct {
	mu      sync.Mutex
	rows    *table[model.User]
	byEmail map[string]uuid.UUID
	now     Clock
}

func NewUserRepository(now Clock) *UserRepository {
	if now == nil {
		now = time.Now
	}
	return &UserRepository{rows: newTable[model.User](nil), byEmail: make(map[string]uuid.UUID), now: now}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[user.Email]; taken {
		return repository.ErrDuplicate
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := r.now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.byEmail[user.Email] = user.ID
	r.rows.put(user.ID, *user)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.rows.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	id, ok := r.byEmail[email]
	r.mu.Unlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

type txKey struct{}

// TxManager serializes units of work. It does not roll back on error.
type TxManager struct {
	mu sync.Mutex
}

var _ repository.TransactionManager = (*TxManager)(nil)

func (t *TxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, t))
}
