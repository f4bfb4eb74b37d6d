package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/passage/core/catalog"
	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/core/passage"
	"github.com/FocuswithJustin/passage/core/sqlite"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Options{Path: filepath.Join(t.TempDir(), "passages.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustPassage(t *testing.T, book string, nums ...int) passage.Passage {
	t.Helper()
	p, err := passage.FromName(nil, book, nums...)
	if err != nil {
		t.Fatalf("FromName(%s, %v) error = %v", book, nums, err)
	}
	return p
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	p := mustPassage(t, "Eph", 2, 1, 2, 10)
	rec, err := s.Save(ctx, p, Meta{Label: "Grace", Primary: true})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Error("Save() returned nil id")
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.Passage.Equal(p) {
		t.Errorf("Get() passage = %v, want %v", got.Passage, p)
	}
	if got.Meta != (Meta{Label: "Grace", Primary: true}) {
		t.Errorf("Get() meta = %+v", got.Meta)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
	if got.Passage.Catalog().ID() != catalog.ESV {
		t.Errorf("catalog = %s, want ESV", got.Passage.Catalog().ID())
	}
}

func TestSaveKeepsCatalog(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	kjv, err := catalog.ForTranslation(catalog.KJV)
	if err != nil {
		t.Fatal(err)
	}
	// Mark 9:44 only exists in the KJV.
	p, err := passage.FromBook(kjv, 41, 9, 44)
	if err != nil {
		t.Fatalf("FromBook() error = %v", err)
	}
	rec, err := s.Save(ctx, p, Meta{})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Passage.Catalog().ID() != catalog.KJV || got.Passage.String() != "Mark 9:44" {
		t.Errorf("Get() = %s (%s), want Mark 9:44 (KJV)", got.Passage, got.Passage.Catalog().ID())
	}
}

func TestSaveInvalid(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Save(context.Background(), passage.Passage{}, Meta{})
	if !errors.Is(err, errors.ErrInvalidPassage) {
		t.Errorf("Save(zero) error = %v, want ErrInvalidPassage", err)
	}
}

func TestSaveRejectsBadLabel(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Save(context.Background(), mustPassage(t, "Gen", 1), Meta{Label: "line\nbreak"})
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("Save(bad label) error = %v, want ErrInvalidInput", err)
	}
}

func TestListAndOverlapping(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	inputs := []passage.Passage{
		mustPassage(t, "Exod", 1),
		mustPassage(t, "Gen", 3),
		mustPassage(t, "Gen", 1),
		mustPassage(t, "Gen", 2, 4, 3, 1),
	}
	for _, p := range inputs {
		if _, err := s.Save(ctx, p, Meta{}); err != nil {
			t.Fatalf("Save(%s) error = %v", p, err)
		}
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"Genesis 1", "Genesis 2:4-3:1", "Genesis 3", "Exodus 1"}
	if len(all) != len(want) {
		t.Fatalf("List() returned %d records, want %d", len(all), len(want))
	}
	for i, rec := range all {
		if got := rec.Passage.String(); got != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, got, want[i])
		}
	}

	tests := []struct {
		query passage.Passage
		want  []string
	}{
		{mustPassage(t, "Gen", 1, 31, 2, 3), []string{"Genesis 1"}},
		{mustPassage(t, "Gen", 3, 1), []string{"Genesis 2:4-3:1", "Genesis 3"}},
		{mustPassage(t, "Gen", 50), nil},
	}
	for _, tt := range tests {
		t.Run(tt.query.String(), func(t *testing.T) {
			recs, err := s.Overlapping(ctx, tt.query)
			if err != nil {
				t.Fatalf("Overlapping() error = %v", err)
			}
			if len(recs) != len(tt.want) {
				t.Fatalf("Overlapping() returned %d records, want %d", len(recs), len(tt.want))
			}
			for i, rec := range recs {
				if rec.Passage.String() != tt.want[i] {
					t.Errorf("Overlapping()[%d] = %s, want %s", i, rec.Passage, tt.want[i])
				}
			}
		})
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	rec, err := s.Save(ctx, mustPassage(t, "John", 3, 16), Meta{Reading: true})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, rec.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestUnknownCatalog(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "passages.db")

	s, err := Open(ctx, Options{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	rec, err := s.Save(ctx, mustPassage(t, "Ruth", 1), Meta{})
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(ctx, Options{
		Path: path,
		Catalogs: func(id string) (*catalog.Catalog, error) {
			return nil, errors.NewNotFound("catalog", id)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestOpenMemoryAndValidation(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, Options{}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("Open(empty path) error = %v, want ErrInvalidInput", err)
	}

	s, err := Open(ctx, Options{Path: sqlite.Memory})
	if err != nil {
		t.Fatalf("Open(memory) error = %v", err)
	}
	defer s.Close()
	if _, err := s.Save(ctx, mustPassage(t, "Jude"), Meta{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	recs, err := s.List(ctx)
	if err != nil || len(recs) != 1 {
		t.Fatalf("List() = %d records, %v; want 1, nil", len(recs), err)
	}
}
