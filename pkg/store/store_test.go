package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/store"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func stores(t *testing.T) map[string]store.Store {
	t.Helper()
	dir, err := store.NewDir(filepath.Join(t.TempDir(), "forms"))
	if err != nil {
		t.Fatalf("new dir store: %v", err)
	}
	return map[string]store.Store{
		"memory": store.NewMemory(),
		"dir":    dir,
	}
}

func sampleDocument(id string) formdoc.Document {
	return formdoc.Document{
		ID:    id,
		Title: "Sample",
		Fields: field.Sequence{
			testsupport.Labeled("f1", field.SubtypeShortAnswer, "Name"),
			testsupport.Field("f2", field.SubtypeDropdown),
			testsupport.PageBreak("p1"),
			testsupport.Field("f3", field.SubtypeRating),
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			doc := sampleDocument("sample")
			if err := s.Save(ctx, doc); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := s.Load(ctx, "sample")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(doc, got); diff != "" {
				t.Fatalf("document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			doc := sampleDocument("sample")
			if err := s.Save(ctx, doc); err != nil {
				t.Fatalf("save: %v", err)
			}
			doc.Title = "Updated"
			doc.Fields = doc.Fields[:1]
			if err := s.Save(ctx, doc); err != nil {
				t.Fatalf("second save: %v", err)
			}
			got, err := s.Load(ctx, "sample")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(doc, got); diff != "" {
				t.Fatalf("document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"beta", "alpha", "gamma"} {
				if err := s.Save(ctx, sampleDocument(id)); err != nil {
					t.Fatalf("save %s: %v", id, err)
				}
			}
			ids, err := s.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if diff := cmp.Diff([]string{"alpha", "beta", "gamma"}, ids); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}

			if err := s.Delete(ctx, "beta"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := s.Load(ctx, "beta"); !errors.Is(err, store.ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
			if err := s.Delete(ctx, "beta"); !errors.Is(err, store.ErrNotFound) {
				t.Fatalf("expected ErrNotFound on second delete, got %v", err)
			}
		})
	}
}

func TestStoreErrors(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Load(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			for _, id := range []string{"", " padded ", "a/b", ".."} {
				if err := s.Save(ctx, sampleDocument(id)); !errors.Is(err, store.ErrInvalidID) {
					t.Fatalf("expected ErrInvalidID for %q, got %v", id, err)
				}
			}

			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			if err := s.Save(cancelled, sampleDocument("late")); !errors.Is(err, context.Canceled) {
				t.Fatalf("expected context.Canceled, got %v", err)
			}
		})
	}
}

func TestMemoryStoreCopiesDocuments(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	doc := sampleDocument("sample")
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	doc.Fields[1].Options[0].Value = "mutated"

	got, err := s.Load(ctx, "sample")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Fields[1].Options[0].Value == "mutated" {
		t.Fatalf("store shares option memory with caller")
	}
	got.Fields[0].Label = "changed"
	again, _ := s.Load(ctx, "sample")
	if again.Fields[0].Label != "Name" {
		t.Fatalf("loaded document aliases stored copy")
	}
}

func TestDirStoreWritesEncodedDocument(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := store.NewDir(root)
	if err != nil {
		t.Fatalf("new dir: %v", err)
	}
	doc := sampleDocument("sample")
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "sample.json"))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	want, err := formdoc.Encode(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if diff := cmp.Diff(string(want), string(data)); diff != "" {
		t.Fatalf("stored payload mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the committed file, found %d entries", len(entries))
	}
}

func TestDirStoreRejectsCorruptFile(t *testing.T) {
	root := t.TempDir()
	s, err := store.NewDir(root)
	if err != nil {
		t.Fatalf("new dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.Load(context.Background(), "broken"); err == nil || errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
