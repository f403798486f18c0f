package blob

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCleanKey(t *testing.T) {
	for _, key := range []string{"", "  ", "/etc/passwd", "../secret", "violations/../../x"} {
		if _, err := cleanKey(key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("cleanKey(%q) should be rejected, got %v", key, err)
		}
	}
	got, err := cleanKey("violations//a.jpg")
	if err != nil || got != "violations/a.jpg" {
		t.Errorf("unexpected clean key %q (%v)", got, err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to filesystem", func(t *testing.T) {
		store, err := Open(ctx, Config{FSRoot: t.TempDir()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.Driver() != DriverFilesystem {
			t.Errorf("expected fs driver, got %s", store.Driver())
		}
	})

	t.Run("memory", func(t *testing.T) {
		store, err := Open(ctx, Config{Driver: DriverMemory})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.Driver() != DriverMemory {
			t.Errorf("expected memory driver, got %s", store.Driver())
		}
	})

	t.Run("s3 requires bucket", func(t *testing.T) {
		if _, err := Open(ctx, Config{Driver: DriverS3}); err == nil {
			t.Error("expected error without bucket")
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		if _, err := Open(ctx, Config{Driver: "ftp"}); err == nil {
			t.Error("expected error for unknown driver")
		}
	})
}

func TestFilesystem(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := NewFilesystem(root, "/uploads/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := store.Put(ctx, "violations/a.jpg", strings.NewReader("photo"), PutOptions{ContentType: "image/jpeg"})
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if info.Size != 5 {
		t.Errorf("expected size 5, got %d", info.Size)
	}
	if info.URL != "/uploads/violations/a.jpg" {
		t.Errorf("unexpected url %s", info.URL)
	}

	data, err := os.ReadFile(filepath.Join(root, "violations", "a.jpg"))
	if err != nil || string(data) != "photo" {
		t.Fatalf("expected stored file, got %q (%v)", data, err)
	}

	if err := store.Delete(ctx, "violations/a.jpg"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "violations", "a.jpg")); !os.IsNotExist(err) {
		t.Error("expected file to be removed")
	}
	if err := store.Delete(ctx, "violations/a.jpg"); err != nil {
		t.Errorf("deleting a missing key should succeed, got %v", err)
	}
	if _, err := store.Put(ctx, "../escape", strings.NewReader("x"), PutOptions{}); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	store := NewMemory("")

	if _, err := store.Put(ctx, "violations/b.png", strings.NewReader("png"), PutOptions{}); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if b, ok := store.Bytes("violations/b.png"); !ok || string(b) != "png" {
		t.Errorf("unexpected content %q", b)
	}
	if store.URL("violations/b.png") != "/uploads/violations/b.png" {
		t.Errorf("unexpected url %s", store.URL("violations/b.png"))
	}
	if err := store.Delete(ctx, "violations/b.png"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d", store.Len())
	}
}
