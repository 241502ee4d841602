package seed_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"testing/fstest"

	dbfs "github.com/garnizeh/skillbridge/db"
	dbpkg "github.com/garnizeh/skillbridge/internal/db"
	"github.com/garnizeh/skillbridge/internal/repository/memory"
	"github.com/garnizeh/skillbridge/internal/repository/sqlstore"
	"github.com/garnizeh/skillbridge/internal/seed"
	"github.com/garnizeh/skillbridge/pkg/repository"
)

func TestRun_Memory_Twice(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	for i := 0; i < 2; i++ {
		if err := seed.Run(ctx, s, dbfs.SeedFiles, nil); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	n, err := s.CountUsers(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected exactly one user after two runs, got %d, %v", n, err)
	}
	u, _ := s.GetUserByEmail(ctx, "student@iitu.kz")
	if u == nil || u.Name != "Nurislam Kenzheyev" || u.Role != "student" {
		t.Fatalf("unexpected seed user %#v", u)
	}

	courses, err := s.ListCourses(ctx)
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(courses) != 3 {
		t.Fatalf("expected 3 seed courses, got %d", len(courses))
	}
	if want := []string{"Swift", "SwiftUI", "iOS"}; !reflect.DeepEqual(courses[0].Skills, want) {
		t.Fatalf("first course skills = %v, want %v", courses[0].Skills, want)
	}
}

func TestRun_SQLite(t *testing.T) {
	ctx := context.Background()
	d, err := dbpkg.New(ctx, "sqlite", ":memory:", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := dbpkg.Initialize(ctx, d, dbfs.Schema); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	repo := sqlstore.New(d, nil)
	defer repo.Close()

	if err := seed.Run(ctx, repo, dbfs.SeedFiles, nil); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := seed.Run(ctx, repo, dbfs.SeedFiles, nil); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if n, _ := repo.CountUsers(ctx); n != 1 {
		t.Fatalf("expected 1 user, got %d", n)
	}
	list, _ := repo.ListCourses(ctx)
	if len(list) != 3 || list[2].Rating == nil || *list[2].Rating != 4.9 {
		t.Fatalf("unexpected courses %#v", list)
	}
}

func TestRun_MissingFile(t *testing.T) {
	err := seed.Run(context.Background(), memory.New(), fstest.MapFS{}, nil)
	if err == nil {
		t.Fatalf("expected error for missing seed files")
	}
}

func TestRun_StoreUnavailable(t *testing.T) {
	s := memory.New()
	_ = s.Close()
	err := seed.Run(context.Background(), s, dbfs.SeedFiles, nil)
	if !errors.Is(err, repository.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}
