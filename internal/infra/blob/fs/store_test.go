package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"protocolkb/internal/blob/core"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "blobs"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return s
}

func TestStorePutGetHead(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	info, err := s.Put(ctx, "exports/e1/sheet.html", strings.NewReader("<html></html>"), core.PutOptions{
		ContentType: "text/html",
		Metadata:    map[string]string{"export_id": "e1"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 13 || len(info.ETag) != 64 || info.URL != "http://local.blob/exports/e1/sheet.html" {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := os.Stat(filepath.Join(s.Root(), "exports", "e1", "sheet.html.meta")); err != nil {
		t.Fatalf("expected sidecar: %v", err)
	}

	got, rc, err := s.Get(ctx, "exports/e1/sheet.html")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "<html></html>" || got.Metadata["export_id"] != "e1" || got.ETag != info.ETag {
		t.Fatalf("unexpected get %+v %q", got, body)
	}

	head, err := s.Head(ctx, "exports/e1/sheet.html")
	if err != nil || head.ContentType != "text/html" {
		t.Fatalf("unexpected head %+v %v", head, err)
	}

	if _, err := s.Put(ctx, "exports/e1/sheet.html", strings.NewReader("x"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestStoreMissingAndInvalidKeys(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	if _, _, err := s.Get(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Get, got %v", err)
	}
	if _, err := s.Head(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Head, got %v", err)
	}
	if ok, err := s.Delete(ctx, "nope"); ok || err != nil {
		t.Fatalf("expected (false, nil), got (%v, %v)", ok, err)
	}
	for _, key := range []string{"", "/etc/passwd", "../escape", "a/../../b"} {
		if _, err := s.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Fatalf("expected key %q to be rejected", key)
		}
	}
	if _, err := s.Put(ctx, "sheet.meta", strings.NewReader("x"), core.PutOptions{}); err == nil {
		t.Fatalf("expected reserved suffix to be rejected")
	}
}

func TestStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	for _, key := range []string{"exports/b/sheet.csv", "exports/a/sheet.json", "misc/readme"} {
		if _, err := s.Put(ctx, key, strings.NewReader(key), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	list, err := s.List(ctx, "exports/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != "exports/a/sheet.json" || list[1].Key != "exports/b/sheet.csv" {
		t.Fatalf("unexpected list %+v", list)
	}
	if ok, err := s.Delete(ctx, "exports/a/sheet.json"); !ok || err != nil {
		t.Fatalf("delete: %v %v", ok, err)
	}
	all, _ := s.List(ctx, "")
	if len(all) != 2 {
		t.Fatalf("expected 2 remaining blobs, got %d", len(all))
	}
}

func TestStorePresign(t *testing.T) {
	s := newStore(t)
	u, err := s.PresignURL(context.Background(), "exports/a", core.SignedURLOptions{Method: "get"})
	if err != nil || u != "http://local.blob/exports/a" {
		t.Fatalf("unexpected presign %q %v", u, err)
	}
	if _, err := s.PresignURL(context.Background(), "exports/a", core.SignedURLOptions{Method: "PUT"}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestNewDefaultsRoot(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Root() != defaultRoot || s.Driver() != core.DriverFilesystem {
		t.Fatalf("unexpected store %+v", s)
	}
}
