package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"invoicedesk/internal/model"
	"invoicedesk/internal/repository"

	"github.com/google/uuid"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestDocumentRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository[model.Invoice](fixedClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)))
	owner, other := uuid.New(), uuid.New()

	for _, n := range []string{"IGS2025030101", "IGS2025030102", "IGS2025030103"} {
		inv := &model.Invoice{}
		inv.UserID, inv.InvoiceNumber = owner, n
		if err := repo.Create(ctx, inv); err != nil {
			t.Fatal(err)
		}
	}
	foreign := &model.Invoice{}
	foreign.UserID = other
	_ = repo.Create(ctx, foreign)

	got, err := repo.ListByUser(ctx, owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].InvoiceNumber != "IGS2025030103" || got[2].InvoiceNumber != "IGS2025030101" {
		t.Errorf("order = %s..%s", got[0].InvoiceNumber, got[2].InvoiceNumber)
	}
}

func TestDocumentRepositoryIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository[model.Invoice](nil)

	inv := &model.Invoice{Items: []model.LineItem{{Description: "A", Amount: 1}}}
	if err := repo.Create(ctx, inv); err != nil {
		t.Fatal(err)
	}
	inv.Items[0].Amount = 99

	got, err := repo.FindByID(ctx, inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Items[0].Amount != 1 {
		t.Errorf("stored row shares memory with caller")
	}
}

func TestDocumentRepositoryMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository[model.LocalChalan](nil)

	if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("FindByID err = %v", err)
	}
	if err := repo.Update(ctx, &model.LocalChalan{}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update err = %v", err)
	}
	if err := repo.Delete(ctx, uuid.New()); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Delete err = %v", err)
	}
}

func TestDocumentRepositoryCountByNumberPrefix(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository[model.ProformaInvoice](nil)
	user := uuid.New()

	for _, n := range []string{"GD20250301SAD-1", "GD20250301SAD-2", "GD20250228SAD-1"} {
		p := &model.ProformaInvoice{}
		p.UserID, p.InvoiceNumber = user, n
		_ = repo.Create(ctx, p)
	}

	got, _ := repo.CountByNumberPrefix(ctx, user, "GD20250301")
	if got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
	got, _ = repo.CountByNumberPrefix(ctx, uuid.New(), "GD20250301")
	if got != 0 {
		t.Errorf("count for stranger = %d, want 0", got)
	}
}

func TestAnalyticsRepositoryPaging(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewAnalyticsRepository(nil)
	user := uuid.New()

	for i := 0; i < 5; i++ {
		_ = repo.Append(ctx, &model.AnalyticsEvent{
			UserID:    user,
			EventType: model.EventInvoiceCreated,
			CreatedAt: start.Add(time.Duration(i) * time.Hour),
		})
	}

	page, total, err := repo.List(ctx, user, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 || len(page) != 2 {
		t.Fatalf("total = %d len = %d", total, len(page))
	}
	if !page[0].CreatedAt.Equal(start.Add(2 * time.Hour)) {
		t.Errorf("first on page 2 = %v", page[0].CreatedAt)
	}

	empty, _, _ := repo.List(ctx, user, 9, 2)
	if len(empty) != 0 {
		t.Errorf("past the end returned %d", len(empty))
	}

	for _, tt := range []struct{ page, limit int }{
		{184467440737095517, 100},
		{0, 2},
		{-3, 2},
	} {
		got, total, err := repo.List(ctx, user, tt.page, tt.limit)
		if err != nil || total != 5 || len(got) != 0 {
			t.Errorf("List(page=%d, limit=%d) = %d rows, total %d, err %v", tt.page, tt.limit, len(got), total, err)
		}
	}
}

func TestUserRepositoryUniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(nil)

	if err := repo.Create(ctx, &model.User{Email: "a@b.co", Password: "hash"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, &model.User{Email: "a@b.co"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("err = %v, want ErrDuplicate", err)
	}
	u, err := repo.GetByEmail(ctx, "a@b.co")
	if err != nil || u.Password != "hash" {
		t.Errorf("GetByEmail = %+v, %v", u, err)
	}
}

func TestFileRepositoryCategoryFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(nil)
	user := uuid.New()

	_ = repo.Create(ctx, &model.UserFile{UserID: user, FileCategory: model.FileCategoryLogo})
	_ = repo.Create(ctx, &model.UserFile{UserID: user, FileCategory: model.FileCategorySeal})

	all, _ := repo.ListByUser(ctx, user, "")
	seals, _ := repo.ListByUser(ctx, user, model.FileCategorySeal)
	if len(all) != 2 || len(seals) != 1 {
		t.Errorf("all = %d seals = %d", len(all), len(seals))
	}
}

func TestTxManagerNested(t *testing.T) {
	tm := &TxManager{}
	calls := 0
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		calls++
		return tm.RunInTx(ctx, func(context.Context) error {
			calls++
			return nil
		})
	})
	if err != nil || calls != 2 {
		t.Errorf("calls = %d err = %v", calls, err)
	}
}
