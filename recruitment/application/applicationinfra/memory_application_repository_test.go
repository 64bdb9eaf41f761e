package applicationinfra

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/application"
)

func seed(now time.Time) []application.AdminApplication {
	mk := func(id, name string, status application.Status) application.AdminApplication {
		return application.AdminApplication{Application: application.Application{
			ID:          kernel.ApplicationID(id),
			FullName:    name,
			Email:       kernel.Email(id + "@example.com"),
			JobPosition: "Backend Developer",
			Status:      status,
			SubmittedAt: now,
			UpdatedAt:   now,
		}}
	}
	return []application.AdminApplication{
		mk("a", "Ann", application.StatusNew),
		mk("b", "Ben", application.StatusReviewed),
		mk("c", "Cid", application.StatusNew),
	}
}

func TestMemoryRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryApplicationRepository(seed(now)...)

	app := &application.AdminApplication{Application: application.Application{ID: "d", FullName: "Dee", SubmittedAt: now, UpdatedAt: now}}
	if err := repo.Create(ctx, app); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, app); !errx.IsCode(err, application.CodeApplicationExists) {
		t.Fatalf("duplicate id must conflict, got %v", err)
	}

	got, err := repo.GetByID(ctx, "d")
	if err != nil || got.FullName != "Dee" {
		t.Fatalf("get: %+v, %v", got, err)
	}

	got.Status = application.StatusShortlisted
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	if stored, _ := repo.GetByID(ctx, "d"); stored.Status != application.StatusShortlisted {
		t.Fatalf("update not persisted: %+v", stored)
	}

	if err := repo.Update(ctx, &application.AdminApplication{Application: application.Application{ID: "zzz"}}); !application.IsNotFound(err) {
		t.Fatalf("update of unknown id must be NotFound, got %v", err)
	}

	if err := repo.Delete(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := repo.Exists(ctx, "b"); ok {
		t.Fatalf("deleted application still exists")
	}
	if err := repo.Delete(ctx, "b"); !application.IsNotFound(err) {
		t.Fatalf("second delete must be NotFound, got %v", err)
	}

	// Index stays consistent after removal from the middle
	if c, err := repo.GetByID(ctx, "c"); err != nil || c.FullName != "Cid" {
		t.Fatalf("get after delete: %+v, %v", c, err)
	}
	if repo.Len() != 3 {
		t.Fatalf("expected 3 applications, got %d", repo.Len())
	}
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	repo := NewMemoryApplicationRepository(seed(now)...)

	got, _ := repo.GetByID(ctx, "a")
	got.FullName = "changed"
	reviewed := now
	got.ReviewedAt = &reviewed

	again, _ := repo.GetByID(ctx, "a")
	if again.FullName != "Ann" || again.ReviewedAt != nil {
		t.Fatalf("store was mutated through a returned value: %+v", again)
	}
}

func TestMemoryRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryApplicationRepository(seed(time.Now())...)

	page, err := repo.List(ctx, application.Filters{Status: application.StatusNew}, kernel.PaginationOptions{Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page.Total != 2 || page.Page.Pages != 2 || len(page.Items) != 1 || page.Items[0].ID != "a" {
		t.Fatalf("unexpected page: %+v", page)
	}

	page, _ = repo.List(ctx, application.Filters{}, kernel.PaginationOptions{Page: 9, PageSize: 10})
	if !page.Empty || page.Page.Total != 3 {
		t.Fatalf("out of range page must be empty: %+v", page)
	}

	all, _ := repo.ListAll(ctx, application.Filters{Search: "BEN"})
	if len(all) != 1 || all[0].ID != "b" {
		t.Fatalf("unexpected search result: %+v", all)
	}
}
