package blob

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()

	mem, err := Open(ctx, Options{Driver: DriverMemory})
	if err != nil || mem.Driver() != DriverMemory {
		t.Fatalf("memory: %v %v", mem, err)
	}

	root := filepath.Join(t.TempDir(), "artifacts")
	fsStore, err := Open(ctx, Options{FSRoot: root})
	if err != nil {
		t.Fatalf("fs: %v", err)
	}
	if fsStore.Driver() != DriverFilesystem {
		t.Fatalf("empty driver should select fs, got %s", fsStore.Driver())
	}
	if _, err := fsStore.Put(ctx, "a.txt", strings.NewReader("a"), PutOptions{}); err != nil {
		t.Fatalf("fs put: %v", err)
	}
	if _, err := fsStore.Put(ctx, "a.txt", strings.NewReader("b"), PutOptions{}); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists alias, got %v", err)
	}

	if _, err := Open(ctx, Options{Driver: DriverS3}); err == nil {
		t.Fatalf("s3 without bucket should fail")
	}
	if _, err := Open(ctx, Options{Driver: "ftp"}); err == nil || !strings.Contains(err.Error(), "unknown blob driver ftp") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
}

func TestDrivers(t *testing.T) {
	got := Drivers()
	if len(got) != 3 || got[0] != DriverFilesystem {
		t.Fatalf("unexpected drivers %v", got)
	}
}
